package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
)

// CSRFHeader carries the anti-forgery token.
const CSRFHeader = "X-CSRF-TOKEN"

// Credentials are the raw session inputs of one request.
type Credentials struct {
	ViewerCookie string
	CSRFToken    string
}

// CredentialsFromRequest reads the viewer cookie and CSRF header. Missing
// values are left empty.
func CredentialsFromRequest(r *http.Request) Credentials {
	var creds Credentials
	if r == nil {
		return creds
	}
	if c, err := r.Cookie(ViewerCookie); err == nil {
		creds.ViewerCookie = c.Value
	}
	creds.CSRFToken = r.Header.Get(CSRFHeader)
	return creds
}

// newSessionToken returns 16 random bytes, hex encoded.
func newSessionToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
