// Package server exposes the proposal engine over HTTP. Every request is an
// independent, stateless computation over the shared immutable reference
// dataset, so no locking or retry logic lives here.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/levenlabs/go-lflag"

	"github.com/levesol/solarproposal/pkg/log"
	"github.com/levesol/solarproposal/pkg/proposal"
	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/render"
)

// tokenVerifier validates a Google ID token.
type tokenVerifier func(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)

// Server handles the HTTP API for the proposal system. It orchestrates the
// assembler and the document renderer; it holds no per-request state.
type Server struct {
	ref       *refdata.Set
	assembler *proposal.Assembler
	renderer  *render.Renderer

	listenAddr string
	httpServer *http.Server

	oidcAudience string
	oidcVerifier tokenVerifier
	release      string
	serverName   string
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(ref *refdata.Set, a *proposal.Assembler, r *render.Renderer) *Server {
	srv := &Server{
		ref:        ref,
		assembler:  a,
		renderer:   r,
		serverName: "solarproposal",
	}
	revision := os.Getenv("K_REVISION")
	if revision != "" {
		srv.serverName = revision
	}

	// get the port from PORT when running in cloud run
	port := os.Getenv("PORT")
	if port == "" {
		// otherwise default to 8080
		port = "8080"
	}

	listenAddr := lflag.String("http-listen", ":"+port, "HTTP server listen address")
	oidcAudience := lflag.String("oidc-audience", "", "Google OIDC audience/client ID; when set, /api/ requires a verified bearer token")
	release := lflag.String("release", "production", "Release environment (production or staging)")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		srv.release = *release
		srv.oidcAudience = *oidcAudience

		if srv.oidcAudience != "" {
			provider, err := oidc.NewProvider(context.Background(), "https://accounts.google.com")
			if err != nil {
				log.Ctx(context.Background()).Error("failed to initialize Google OIDC provider", slog.Any("error", err))
				os.Exit(1)
			}
			srv.oidcVerifier = provider.Verifier(&oidc.Config{ClientID: srv.oidcAudience}).Verify
		}
	})

	return srv
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/proposal", s.handleCreateProposal)
	apiMux.HandleFunc("POST /api/proposal/pdf", s.handleProposalPDF)
	apiMux.HandleFunc("GET /api/referencedata", s.handleReferenceData)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.authMiddleware(apiMux))
	mux.HandleFunc("/healthz", s.handleHealthz)
	return s.revisionMiddleware(gziphandler.GzipHandler(mux))
}

// Run starts the HTTP server and blocks until the context is canceled or an
// error occurs. It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		slog.Warn("failed to write error response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) revisionMiddleware(next http.Handler) http.Handler {
	if s.serverName == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}
