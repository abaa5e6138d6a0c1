package auth

import (
	"net/http"
	"strings"

	"github.com/redmonkez12/offiswap/internal/httputil"
	"github.com/redmonkez12/offiswap/internal/logging"
)

// TokenHeader carries the signed token on protected requests
const TokenHeader = "x-auth-token"

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth verifies the token on every request and attaches the
// identity to the request context. Nothing is cached between requests.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(TokenHeader))
		if token == "" {
			httputil.RespondErrorWithCode(w, "No token, authorization denied.", httputil.CodeUnauthenticated, http.StatusUnauthorized)
			return
		}

		identity, err := m.tokenService.VerifyToken(token)
		if err != nil {
			logging.GetLoggerFromContext(r.Context()).Warn("token verification failed")
			httputil.RespondErrorWithCode(w, "Token is not valid.", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
	})
}
