package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ViewerCookie is the name of the signed session cookie.
const ViewerCookie = "viewer"

var ErrInvalidCookie = errors.New("invalid viewer cookie")

// CookieSigner signs the viewer id into an HS256 token and writes it as an
// HttpOnly cookie.
type CookieSigner struct {
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

func NewCookieSigner(secret string, maxAge time.Duration, secure bool) *CookieSigner {
	return &CookieSigner{secret: []byte(secret), maxAge: maxAge, secure: secure, now: time.Now}
}

// Sign returns the cookie value carrying userID.
func (s *CookieSigner) Sign(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the user id inside a cookie value produced by Sign.
func (s *CookieSigner) Verify(value string) (string, error) {
	if value == "" {
		return "", ErrInvalidCookie
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidCookie
	}
	return claims.Subject, nil
}

// Set writes the signed cookie for userID.
func (s *CookieSigner) Set(w http.ResponseWriter, userID string) error {
	value, err := s.Sign(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ViewerCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear expires the cookie in the browser.
func (s *CookieSigner) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     ViewerCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
