package authentication

import (
	"encoding/json"
	"net/http"

	"github.com/arcenciel/creche-api/shared"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type meResponse struct {
	User User `json:"user"`
}

// Login exchanges the admin credentials for the static API token.
func (a *Authenticator) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		shared.HttpError(w, shared.NewMessage("Invalid credentials"), http.StatusUnauthorized)
		return
	}

	if request.Email != a.Config.AdminEmail || request.Password != a.Config.AdminPassword {
		shared.HttpError(w, shared.NewMessage("Invalid credentials"), http.StatusUnauthorized)
		return
	}

	shared.WriteJSON(w, loginResponse{
		Token: a.Config.ApiToken,
		User:  a.adminUser(),
	}, http.StatusOK)
}

// Me echoes back the user the guard injected into the request context.
func (a *Authenticator) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		shared.HttpError(w, shared.NewMessage("Unauthorized"), http.StatusUnauthorized)
		return
	}

	shared.WriteJSON(w, meResponse{User: user}, http.StatusOK)
}
