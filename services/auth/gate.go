package auth

import (
	"context"
	"errors"
	"net/http"

	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"
	"homesweethome/services/identity"
	"homesweethome/utils"

	"go.uber.org/zap"
)

// Gate implements SessionService on top of the user store.
type Gate struct {
	Users    userRepo.UserRepository
	Identity identity.Provider
	Cookies  *CookieSigner
	GuestID  string
	Logger   *zap.Logger
	// NewToken is swappable for tests.
	NewToken func() (string, error)
}

func NewGate(users userRepo.UserRepository, idp identity.Provider, cookies *CookieSigner, guestID string, logger *zap.Logger) *Gate {
	return &Gate{
		Users:    users,
		Identity: idp,
		Cookies:  cookies,
		GuestID:  guestID,
		Logger:   logger,
		NewToken: newSessionToken,
	}
}

// Authorize returns the user whose id is in the signed cookie and whose
// stored token equals the CSRF header. Anything else is anonymous.
func (g *Gate) Authorize(ctx context.Context, creds Credentials) (*models.User, error) {
	if creds.CSRFToken == "" {
		return nil, nil
	}
	userID, err := g.Cookies.Verify(creds.ViewerCookie)
	if err != nil {
		return nil, nil
	}

	user, err := g.Users.GetBySession(ctx, userID, creds.CSRFToken)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, nil
		}
		return nil, utils.StoreFailure("failed to resolve viewer", err)
	}
	return user, nil
}

func (g *Gate) AuthURL() string {
	return g.Identity.AuthURL()
}

// LogIn signs in with an identity provider code, or, without a code,
// refreshes the session carried by the viewer cookie.
func (g *Gate) LogIn(ctx context.Context, w http.ResponseWriter, creds Credentials, code string) (*models.Viewer, error) {
	token, err := g.NewToken()
	if err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to log in", err)
	}

	if code != "" {
		return g.logInWithCode(ctx, w, code, token)
	}
	return g.logInWithCookie(ctx, w, creds, token)
}

func (g *Gate) logInWithCode(ctx context.Context, w http.ResponseWriter, code, token string) (*models.Viewer, error) {
	profile, err := g.Identity.ExchangeCode(ctx, code)
	if err != nil {
		return nil, utils.Upstream("failed to log in with Google", err)
	}

	user, err := g.Users.UpsertProfile(ctx, userRepo.ProfileUpdate{
		ID:      profile.ID,
		Name:    profile.Name,
		Avatar:  profile.Avatar,
		Contact: profile.Email,
		Token:   token,
	})
	if err != nil {
		return nil, utils.StoreFailure("failed to log in", err)
	}

	if err := g.Cookies.Set(w, user.ID); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to log in", err)
	}
	g.Logger.Info("User logged in", zap.String("userId", user.ID))
	return models.ViewerFromUser(user), nil
}

// logInWithCookie rotates the stored token so the previous one stops
// authorizing.
func (g *Gate) logInWithCookie(ctx context.Context, w http.ResponseWriter, creds Credentials, token string) (*models.Viewer, error) {
	userID, err := g.Cookies.Verify(creds.ViewerCookie)
	if err != nil {
		return &models.Viewer{DidRequest: true}, nil
	}

	user, err := g.Users.RotateToken(ctx, userID, token)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			g.Cookies.Clear(w)
			return &models.Viewer{DidRequest: true}, nil
		}
		return nil, utils.StoreFailure("failed to log in", err)
	}

	if err := g.Cookies.Set(w, user.ID); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to log in", err)
	}
	return models.ViewerFromUser(user), nil
}

// LogInAsGuest signs in as the shared demo account.
func (g *Gate) LogInAsGuest(ctx context.Context, w http.ResponseWriter) (*models.Viewer, error) {
	user, err := g.Users.GetByID(ctx, g.GuestID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, utils.NotFound("guest account is not available")
		}
		return nil, utils.StoreFailure("failed to log in as guest", err)
	}

	if err := g.Cookies.Set(w, user.ID); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to log in as guest", err)
	}
	return models.ViewerFromUser(user), nil
}

// LogOut clears the cookie. The stored token stays valid until the next
// login rotates it.
func (g *Gate) LogOut(w http.ResponseWriter) *models.Viewer {
	g.Cookies.Clear(w)
	return &models.Viewer{DidRequest: true}
}
