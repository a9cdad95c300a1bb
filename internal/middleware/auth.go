package middleware

import (
	"net/http"
	"strings"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/ctxkeys"
	"github.com/objectifs/objectifs/internal/handler"
	"github.com/objectifs/objectifs/internal/model"
)

// Authenticator resolves a token to its user.
type Authenticator interface {
	Authenticate(token string) (*model.User, error)
}

var errNoToken = apperr.Unauthorized("not authorized, no token")

// RequireAuth accepts a bearer token in the Authorization header and puts
// the user in the request context.
func RequireAuth(auth Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return requireToken(auth, false)
}

// RequireAuthOrQueryToken also accepts ?token=, for downloads started from
// a plain link.
func RequireAuthOrQueryToken(auth Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return requireToken(auth, true)
}

func requireToken(auth Authenticator, allowQuery bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" && allowQuery {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				handler.WriteError(w, r, errNoToken)
				return
			}

			user, err := auth.Authenticate(token)
			if err != nil {
				handler.WriteError(w, r, err)
				return
			}

			// Never carry the hash past authentication
			user.PasswordHash = ""

			next(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
