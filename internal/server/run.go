package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"trialsize/internal"
)

// Run serves every server until ctx is cancelled or one of them fails, then
// shuts all of them down within timeout
func Run(ctx context.Context, logger *internal.Logger, timeout time.Duration, servers ...*http.Server) error {
	if len(servers) == 0 {
		return fmt.Errorf("no servers to run")
	}

	listeners := make([]net.Listener, 0, len(servers))
	for _, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			for _, open := range listeners {
				_ = open.Close()
			}
			return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
		}
		listeners = append(listeners, ln)
	}

	return Serve(ctx, logger, timeout, servers, listeners)
}

// Serve is Run over listeners the caller already opened
func Serve(ctx context.Context, logger *internal.Logger, timeout time.Duration, servers []*http.Server, listeners []net.Listener) error {
	if len(servers) != len(listeners) {
		return fmt.Errorf("got %d servers but %d listeners", len(servers), len(listeners))
	}

	g, gctx := errgroup.WithContext(ctx)

	for i := range servers {
		srv, ln := servers[i], listeners[i]
		g.Go(func() error {
			logger.Info("[Server] listening on %s", ln.Addr())
			if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s: %w", ln.Addr(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("[Server] shutting down (timeout %s)", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	})

	return g.Wait()
}
