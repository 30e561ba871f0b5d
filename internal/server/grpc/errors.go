package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/technotes/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Unexpected failures are
// logged and reported as a bare internal error.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var (
		ve *services.ValidationError
		nf *services.NotFoundError
		ce *services.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Message)
	case errors.As(err, &nf):
		return status.Error(codes.NotFound, nf.Message)
	case errors.As(err, &ce):
		if ce.Reason == services.ConflictDependents {
			return status.Error(codes.FailedPrecondition, ce.Message)
		}
		return status.Error(codes.AlreadyExists, ce.Message)
	}

	s.logger.Error(ctx, "internal error", "error", err)
	return status.Error(codes.Internal, "internal error")
}
