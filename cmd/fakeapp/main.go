// Command fakeapp serves the local stand-in for the QA web application so
// the suite can be developed and checked without the deployed site:
//
//	go run ./cmd/fakeapp --addr :8080
//	QA_BASE_URL=http://localhost:8080 go test -tags e2e ./tests/e2e/...
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kuitang/qa-suite/internal/config"
	"github.com/kuitang/qa-suite/internal/fakeapp"
	"github.com/kuitang/qa-suite/internal/obs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	addr := config.ParseFlags()
	obs.Init()
	log := obs.Pkg("fakeapp")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen_failed", "addr", addr, "error", err)
		os.Exit(1)
	}

	srv := fakeapp.NewServer(fakeapp.NewStore(fakeapp.NewBcryptHasher(fakeapp.DefaultBcryptCost)))
	if err := serve(ctx, ln, srv.Handler()); err != nil {
		log.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

// serve runs handler on ln until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	log := obs.Pkg("fakeapp")
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listening", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		_ = server.Close()
		return err
	}
	return <-errCh
}
