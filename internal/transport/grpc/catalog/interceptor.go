package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-catalog/internal/pkg/reqscope"
)

// RequestIDKey is the metadata key carrying the request id.
const RequestIDKey = "x-request-id"

// RequestScopeInterceptor installs a reqscope.Scope for every unary call and
// logs its outcome.
func RequestScopeInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(RequestIDKey); len(vals) > 0 {
				id = vals[0]
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, id))

		ctx = reqscope.WithScope(ctx, reqscope.NewWithID(id))
		resp, err := handler(ctx, req)

		logger.InfoContext(ctx, "grpc request",
			"request_id", id,
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency", time.Since(start),
		)
		return resp, err
	}
}
