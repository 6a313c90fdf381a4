// Package auth wraps the Google OAuth code flow used for login.
package auth

import (
	"context"
	"fmt"

	"github.com/mjkoder/Invoice-Application/internal/config"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleUser is the subset of the userinfo response we keep.
type GoogleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewOAuthConfig(cfg config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// FetchGoogleUser exchanges the bearer token for the user's profile.
func FetchGoogleUser(ctx context.Context, token *oauth2.Token) (*GoogleUser, error) {
	var user GoogleUser

	resp, err := resty.New().R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&user).
		Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching google userinfo: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected userinfo response: %s", resp.Status())
	}

	return &user, nil
}
