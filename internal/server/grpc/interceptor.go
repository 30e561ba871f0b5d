package grpc

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// requestInterceptor tags every call with a request id (taken from the
// caller's metadata or generated), echoes it back in the response header,
// logs failures and records call metrics.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.RequestIDHeaderName); len(values) > 0 {
			requestID = values[0]
		}
	}
	if requestID == "" {
		requestID = common.NewRequestID()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	method := path.Base(info.FullMethod)
	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err != nil {
		s.logger.Warn(ctx, "request failed", "method", method, "request_id", requestID, "code", code.String())
	}
	if s.metrics != nil {
		s.metrics.ObserveRequest("grpc", method, code.String(), time.Since(start))
	}

	return resp, err
}
