// Package observe holds the client-side Connect interceptor that logs and
// counts every call.
package observe

import (
	"context"
	"sort"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const codeOK = "ok"

// New returns a unary interceptor that logs the request before forwarding
// it and the outcome after. The request, response and error pass through
// untouched. metrics may be nil.
func New(logger *zap.Logger, metrics *Metrics) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			protocol := req.Peer().Protocol
			log := logger.With(
				zap.String("request_id", uuid.NewString()),
				zap.String("procedure", procedure),
				zap.String("protocol", protocol),
			)
			log.Debug("rpc request",
				zap.String("peer", req.Peer().Addr),
				zap.Strings("headers", headerKeys(req)),
			)

			started := time.Now()
			res, err := next(ctx, req)
			elapsed := time.Since(started)

			code := codeOK
			if err != nil {
				code = connect.CodeOf(err).String()
				log.Warn("rpc failed",
					zap.String("code", code),
					zap.Error(err),
					zap.Int64("latency_ms", elapsed.Milliseconds()),
				)
			} else {
				log.Debug("rpc response", zap.Int64("latency_ms", elapsed.Milliseconds()))
			}
			if metrics != nil {
				metrics.calls.WithLabelValues(procedure, protocol, code).Inc()
				metrics.duration.WithLabelValues(procedure).Observe(elapsed.Seconds())
			}
			return res, err
		}
	}
}

func headerKeys(req connect.AnyRequest) []string {
	keys := make([]string, 0, len(req.Header()))
	for k := range req.Header() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
