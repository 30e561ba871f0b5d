package cli

import (
	"encoding/json"
	"fmt"
)

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func (a *App) printMessage(msg string) error {
	_, err := fmt.Fprintln(a.out, msg)
	return err
}
