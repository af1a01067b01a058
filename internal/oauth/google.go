package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/ErlanBelekov/dashboard-api/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleScopes is the fixed scope set requested on every consent redirect.
var GoogleScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// GoogleProvider builds Google consent URLs. Code exchange happens in the
// sign-in service, not here.
type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(cfg config.GoogleOAuth) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       GoogleScopes,
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.RedirectURL != ""
}

func (p *GoogleProvider) ConsentURL(state string) string {
	return p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
