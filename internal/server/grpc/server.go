// Package grpc exposes the account and note managers over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/technotes/internal/logging"
	pb "github.com/dmitrijs2005/technotes/internal/proto"
	"github.com/dmitrijs2005/technotes/internal/server/metrics"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/services"
	"google.golang.org/grpc"
)

// AccountManager is the account side of the service layer.
type AccountManager interface {
	List(ctx context.Context) ([]models.AccountSummary, error)
	Get(ctx context.Context, id string) (*models.AccountSummary, error)
	Create(ctx context.Context, in services.CreateAccountInput) (string, error)
	Update(ctx context.Context, in services.UpdateAccountInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}

// NoteManager is the note side of the service layer.
type NoteManager interface {
	List(ctx context.Context) ([]models.NoteView, error)
	Get(ctx context.Context, id string) (*models.NoteView, error)
	Create(ctx context.Context, in services.CreateNoteInput) (string, error)
	Update(ctx context.Context, in services.UpdateNoteInput) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}

type GRPCServer struct {
	address  string
	accounts AccountManager
	notes    NoteManager
	metrics  *metrics.Metrics
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, m *metrics.Metrics, as AccountManager, ns NoteManager) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		metrics:  m,
		accounts: as,
		notes:    ns,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestInterceptor))

	// registers service
	pb.RegisterTechNotesServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
