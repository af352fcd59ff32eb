package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homesweethome/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
)

var ErrIncompleteProfile = errors.New("google profile is missing id, name, avatar or email")

// GoogleProvider implements Provider with Google OAuth2 and the People API.
type GoogleProvider struct {
	oauth   *oauth2.Config
	timeout time.Duration
}

func NewGoogleProvider(cfg *config.Config) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.PublicURL + "/login",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoints.Google,
		},
		timeout: cfg.IdentityTimeout,
	}
}

func (g *GoogleProvider) AuthURL() string {
	return g.oauth.AuthCodeURL("", oauth2.AccessTypeOnline)
}

func (g *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*ExternalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	svc, err := people.NewService(ctx, option.WithTokenSource(g.oauth.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("google people client: %w", err)
	}

	person, err := svc.People.Get("people/me").
		PersonFields("emailAddresses,names,photos").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google profile lookup failed: %w", err)
	}
	return profileFromPerson(person)
}

// profileFromPerson takes the first name, photo and email. The user id is the
// source id of the first name entry.
func profileFromPerson(p *people.Person) (*ExternalProfile, error) {
	var prof ExternalProfile
	if len(p.Names) > 0 && p.Names[0] != nil {
		prof.Name = p.Names[0].DisplayName
		if md := p.Names[0].Metadata; md != nil && md.Source != nil {
			prof.ID = md.Source.Id
		}
	}
	if len(p.Photos) > 0 && p.Photos[0] != nil {
		prof.Avatar = p.Photos[0].Url
	}
	if len(p.EmailAddresses) > 0 && p.EmailAddresses[0] != nil {
		prof.Email = p.EmailAddresses[0].Value
	}

	if prof.ID == "" || prof.Name == "" || prof.Avatar == "" || prof.Email == "" {
		return nil, ErrIncompleteProfile
	}
	return &prof, nil
}
