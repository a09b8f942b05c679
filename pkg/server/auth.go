package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/levesol/solarproposal/pkg/log"
)

// authMiddleware optionally gates /api/ behind a verified Google ID token.
// When no OIDC audience is configured the API is open, which is the normal
// mode for a single-installer deployment behind a private network.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("reqPath", r.URL.Path)))

		if s.oidcVerifier != nil {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			idToken, err := s.oidcVerifier(ctx, token)
			if err != nil {
				log.Ctx(ctx).WarnContext(ctx, "token validation failed", slog.Any("error", err))
				writeJSONError(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			var claims struct {
				Email string `json:"email"`
			}
			if err := idToken.Claims(&claims); err == nil && claims.Email != "" {
				ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("email", claims.Email)))
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
