package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/2beens/healthstats/pkg"
)

const DefaultScope = "https://www.googleapis.com/auth/calendar"

var ErrClientConfigMissing = errors.New("GOOGLE_CLIENT_CONFIG_JSON not set")

// ClientConfig is the "web" section of an OAuth client JSON downloaded
// from the Google Cloud console.
type ClientConfig struct {
	ClientID          string   `json:"client_id"`
	ClientSecret      string   `json:"client_secret"`
	RedirectURIs      []string `json:"redirect_uris"`
	JavascriptOrigins []string `json:"javascript_origins"`
	AuthURI           string   `json:"auth_uri"`
	TokenURI          string   `json:"token_uri"`
}

// ParseClientConfig accepts the client JSON itself, optionally wrapped in
// quotes, or a path to a file holding it. redirectURI must be registered
// in the config.
func ParseClientConfig(raw, redirectURI string) (*ClientConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrClientConfigMissing
	}

	if pkg.FileExists(raw) {
		content, err := os.ReadFile(raw)
		if err != nil {
			return nil, fmt.Errorf("read client config file: %w", err)
		}
		raw = strings.TrimSpace(string(content))
	}

	if len(raw) >= 2 &&
		((raw[0] == '\'' && raw[len(raw)-1] == '\'') || (raw[0] == '"' && raw[len(raw)-1] == '"')) {
		raw = raw[1 : len(raw)-1]
	}

	var parsed struct {
		Web *ClientConfig `json:"web"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in client config: %w", err)
	}

	web := parsed.Web
	if web == nil {
		return nil, errors.New("missing 'web' section in client config")
	}
	switch {
	case web.ClientID == "":
		return nil, errors.New("missing 'client_id' in client config")
	case web.ClientSecret == "":
		return nil, errors.New("missing 'client_secret' in client config")
	case len(web.RedirectURIs) == 0:
		return nil, errors.New("missing 'redirect_uris' in client config")
	case web.JavascriptOrigins == nil:
		return nil, errors.New("missing 'javascript_origins' in client config")
	}

	if !slices.Contains(web.RedirectURIs, redirectURI) {
		return nil, fmt.Errorf("redirect URI %s not listed in client config", redirectURI)
	}

	return web, nil
}

func (c *ClientConfig) OAuth2Config(redirectURI string, scopes []string) *oauth2.Config {
	endpoint := google.Endpoint
	if c.AuthURI != "" {
		endpoint.AuthURL = c.AuthURI
	}
	if c.TokenURI != "" {
		endpoint.TokenURL = c.TokenURI
	}
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
	}
}
