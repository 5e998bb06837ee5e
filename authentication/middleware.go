package authentication

import (
	"context"
	"net/http"
	"strings"

	"github.com/arcenciel/creche-api/shared"
)

// https://medium.com/@matryer/the-http-handler-wrapper-technique-in-golang-updated-bc7fbcffa702

const bearerPrefix = "Bearer "

type contextKey string

const userContextKey contextKey = "user"

// User is the single administrator account of the demo deployment.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Authenticator guards routes with one static shared token. This is not a
// session system: every valid request acts as the configured administrator.
type Authenticator struct {
	Config *shared.AppConfig
	Logger *shared.Logger
}

// Guard rejects requests without a well-formed matching bearer token. The two
// error messages never disclose more than which check failed.
func (a *Authenticator) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		header := req.Header.Get("Authorization")

		if !strings.HasPrefix(header, bearerPrefix) {
			shared.HttpError(w, shared.NewMessage("Unauthorized"), http.StatusUnauthorized)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token != a.Config.ApiToken {
			shared.HttpError(w, shared.NewMessage("Invalid token"), http.StatusUnauthorized)
			return
		}

		req = req.WithContext(context.WithValue(req.Context(), userContextKey, a.adminUser()))
		next.ServeHTTP(w, req)
	})
}

func (a *Authenticator) adminUser() User {
	return User{
		Email: a.Config.AdminEmail,
		Name:  a.Config.AdminName,
	}
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userContextKey).(User)
	return user, ok
}
