package auth

import (
	"context"
	"net/http"

	"homesweethome/models"
)

// Authorizer resolves the caller of a request. A nil user with a nil error
// is an anonymous caller.
type Authorizer interface {
	Authorize(ctx context.Context, creds Credentials) (*models.User, error)
}

// SessionService is the full session surface used by the GraphQL layer.
type SessionService interface {
	Authorizer
	AuthURL() string
	LogIn(ctx context.Context, w http.ResponseWriter, creds Credentials, code string) (*models.Viewer, error)
	LogInAsGuest(ctx context.Context, w http.ResponseWriter) (*models.Viewer, error)
	LogOut(w http.ResponseWriter) *models.Viewer
}
