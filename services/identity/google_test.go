package identity

import (
	"net/url"
	"testing"
	"time"

	"homesweethome/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	people "google.golang.org/api/people/v1"
)

func TestProfileFromPerson(t *testing.T) {
	p := &people.Person{
		Names: []*people.Name{{
			DisplayName: "Ada Lovelace",
			Metadata:    &people.FieldMetadata{Source: &people.Source{Id: "1093"}},
		}},
		Photos:         []*people.Photo{{Url: "https://example.com/ada.png"}},
		EmailAddresses: []*people.EmailAddress{{Value: "ada@example.com"}, {Value: "other@example.com"}},
	}

	prof, err := profileFromPerson(p)
	require.NoError(t, err)
	assert.Equal(t, &ExternalProfile{
		ID:     "1093",
		Name:   "Ada Lovelace",
		Avatar: "https://example.com/ada.png",
		Email:  "ada@example.com",
	}, prof)
}

func TestProfileFromPersonIncomplete(t *testing.T) {
	_, err := profileFromPerson(&people.Person{
		Names: []*people.Name{{DisplayName: "No Source"}},
	})
	assert.ErrorIs(t, err, ErrIncompleteProfile)

	_, err = profileFromPerson(&people.Person{})
	assert.ErrorIs(t, err, ErrIncompleteProfile)
}

func TestAuthURL(t *testing.T) {
	g := NewGoogleProvider(&config.Config{
		GoogleClientID:  "client-id",
		PublicURL:       "https://homes.example.com",
		IdentityTimeout: time.Second,
	})

	u, err := url.Parse(g.AuthURL())
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://homes.example.com/login", q.Get("redirect_uri"))
	assert.Contains(t, q.Get("scope"), "userinfo.email")
	assert.Equal(t, "online", q.Get("access_type"))
}
