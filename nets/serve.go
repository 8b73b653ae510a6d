package nets

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/reusee/taicc/logs"
	"golang.org/x/net/netutil"
)

// Serve runs the compile service on addr until ctx is done.
type Serve func(ctx context.Context, addr string) error

// Listen serves on an existing listener until ctx is done.
type Listen func(ctx context.Context, ln net.Listener) error

func (Module) Listen(
	handler Handler,
	maxConns MaxConns,
	logger logs.Logger,
) Listen {
	return func(ctx context.Context, ln net.Listener) error {
		ln = netutil.LimitListener(ln, int(maxConns))

		server := &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: time.Second * 10,
			BaseContext: func(net.Listener) context.Context {
				return ctx
			},
		}

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Warn("shutdown", "error", err)
				}
			case <-done:
			}
		}()

		logger.Info("serving",
			"addr", ln.Addr().String(),
			"max conns", maxConns,
		)
		err := server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return wrap(err)
	}
}

func (Module) Serve(
	listen Listen,
	isLocalAddr IsLocalAddr,
	logger logs.Logger,
) Serve {
	return func(ctx context.Context, addr string) error {
		if local, err := isLocalAddr(addr); err != nil || !local {
			logger.Warn("compile service is reachable from other hosts",
				"addr", addr,
			)
		}
		var lc net.ListenConfig
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			return wrap(err)
		}
		return listen(ctx, ln)
	}
}
