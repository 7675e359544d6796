package middleware

import (
	"net/http"

	"github.com/gigvora/gigvora-backend/internal/auth"
	"github.com/gigvora/gigvora-backend/internal/httperr"
	"github.com/gigvora/gigvora-backend/internal/pkg/metrics"
)

// AuthOptions configures the authentication stage for a route.
type AuthOptions struct {
	// Optional lets the request proceed without an identity when no
	// credential is presented or the credential fails verification. Faults
	// that are not authorization failures still abort the request.
	Optional bool
}

// Authenticate returns middleware that resolves the bearer credential into
// an identity and stores it in the request context. Runs before any
// authorization or validation middleware on the route.
func Authenticate(verifier *auth.Verifier, opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := auth.BearerFromHeader(r.Header)
			if credential == "" {
				if opts.Optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, r, http.StatusUnauthorized, httperr.Authorization("Authentication required"))
				return
			}
			identity, err := verifier.Resolve(r.Context(), credential)
			if err != nil {
				if ae, ok := httperr.AsAuthorization(err); ok {
					metrics.AuthTokenValidationsTotal.WithLabelValues("failure").Inc()
					if opts.Optional {
						// Optional auth degrades on a bad credential, the
						// caller just stays anonymous.
						next.ServeHTTP(w, r)
						return
					}
					writeAuthError(w, r, http.StatusUnauthorized, ae)
					return
				}
				// Anything else is an unexpected fault (store outage, bug).
				// Never degraded, even in optional mode; surfaced as the one
				// error kind this stage may emit.
				metrics.AuthTokenValidationsTotal.WithLabelValues("error").Inc()
				writeAuthError(w, r, http.StatusUnauthorized, httperr.Authorization("Authentication failed"))
				return
			}
			metrics.AuthTokenValidationsTotal.WithLabelValues("success").Inc()
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
