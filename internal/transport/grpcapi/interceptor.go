package grpcapi

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/photo-studio/internal/access"
	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/logging"
)

// ActorMetadataKey carries the numeric id of the calling user.
const ActorMetadataKey = "x-actor-id"

func actorFromMetadata(ctx context.Context) (int64, bool, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, false, nil
	}
	vals := md.Get(ActorMetadataKey)
	if len(vals) == 0 || vals[0] == "" {
		return 0, false, nil
	}
	actor, err := strconv.ParseInt(vals[0], 10, 64)
	if err != nil || actor <= 0 {
		return 0, false, apperr.Unauthenticated("x-actor-id must be a positive integer")
	}
	return actor, true, nil
}

// UnaryServerInterceptor puts the actor and a request logger into the context
// and logs the outcome of every call.
func UnaryServerInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		reqLogger := logger.With("method", info.FullMethod)

		actor, ok, err := actorFromMetadata(ctx)
		if err != nil {
			reqLogger.WarnContext(ctx, "rejected request", "error", err)
			return nil, apperr.ToStatus(err)
		}
		if ok {
			ctx = access.WithActor(ctx, actor)
			reqLogger = reqLogger.With("actor_id", actor)
		}
		ctx = logging.ContextWithLogger(ctx, reqLogger)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{"code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			reqLogger.DebugContext(ctx, "rpc done", attrs...)
		case codes.Internal, codes.Unknown:
			reqLogger.ErrorContext(ctx, "rpc failed", append(attrs, "error", err)...)
		default:
			reqLogger.InfoContext(ctx, "rpc rejected", append(attrs, "error", err)...)
		}
		return resp, err
	}
}
