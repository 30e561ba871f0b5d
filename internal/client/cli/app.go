package cli

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/technotes/internal/client/client"
	"github.com/dmitrijs2005/technotes/internal/client/config"
)

// Exit codes returned by ExitCode.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

type App struct {
	dial   func(addr string) (client.Client, error)
	client client.Client
	cfg    *config.Config
	reader *bufio.Reader
	out    io.Writer

	configFile string
}

// NewApp returns an App reading prompts from in and writing results to out.
func NewApp(in io.Reader, out io.Writer) *App {
	return &App{
		dial: func(addr string) (client.Client, error) {
			return client.NewTechNotesClient(addr)
		},
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run executes the command line in args (without the program name).
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.out)
	err := root.ExecuteContext(ctx)

	if a.client != nil {
		if cerr := a.client.Close(); cerr != nil && err == nil {
			err = cerr
		}
		a.client = nil
	}
	return err
}

func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.Timeout)
}

// ExitCode maps a Run error to the process exit status. Rejections by the
// server count as user errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, client.ErrConflict):
		return exitUserError
	default:
		return exitSysError
	}
}
