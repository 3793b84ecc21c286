// Package grpcsession reuses per-call session data on gRPC servers. Instead
// of allocating fresh state for every RPC, the interceptors borrow a handle
// from a datapool.Pool before the handler runs and bank it again afterwards.
package grpcsession

import (
	"context"

	"google.golang.org/grpc"

	"github.com/ozontech/datapool"
)

type sessionKey struct{}

// FromContext returns the session handle borrowed for the current call.
// ok is false when the pool's factory could not produce a handle.
func FromContext(ctx context.Context) (h any, ok bool) {
	h = ctx.Value(sessionKey{})
	return h, h != nil
}

// UnaryServerInterceptor borrows a handle from p for every unary call and
// returns it to the pool once the handler finishes. When the pool cannot
// produce a handle the call still runs; FromContext then reports absence.
func UnaryServerInterceptor(p *datapool.Pool) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		_ *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		h := p.Borrow()
		if h == nil {
			return handler(ctx, req)
		}
		defer p.Return(h)
		return handler(context.WithValue(ctx, sessionKey{}, h), req)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor; the handle stays borrowed for the whole stream.
func StreamServerInterceptor(p *datapool.Pool) grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		_ *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		h := p.Borrow()
		if h == nil {
			return handler(srv, ss)
		}
		defer p.Return(h)
		return handler(srv, &sessionStream{
			ServerStream: ss,
			ctx:          context.WithValue(ss.Context(), sessionKey{}, h),
		})
	}
}

type sessionStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *sessionStream) Context() context.Context { return s.ctx }
