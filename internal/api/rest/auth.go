package carbon

import (
	"net/http"

	auth "github.com/glkeru/carbon/internal/api/auth"
)

// MiddlewareAuth - Authorization: Bearer <token>
func MiddlewareAuth(authn *auth.Authenticator, dev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authn.BearerIdentity(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, err, dev)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}
