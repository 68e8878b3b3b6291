package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Profile is the identity the backend reports for a session.
type Profile struct {
	ID       string
	Username string
	Email    string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is a partial update; empty fields are not sent.
type ProfileUpdate struct {
	Username        string `json:"username,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}

type LoginResult struct {
	Token   string
	Profile Profile
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(data)

	token := root.Get("token").String()
	if token == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrInvalidPayload)
	}

	profile, err := parseProfile(root.Get("user"))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Profile: profile}, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, reg)
	return err
}

// Me fetches the profile of the session bound to ctx. It doubles as the
// verification call for a persisted token.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/profile/me", nil, nil)
	if err != nil {
		return nil, err
	}

	profile, err := parseProfile(gjson.ParseBytes(data))
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/profile/update", nil, update)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(data)

	// Some backends wrap the updated profile, others return it bare.
	if user := root.Get("user"); user.IsObject() {
		root = user
	}

	profile, err := parseProfile(root)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/profile/delete", nil, nil)
	return err
}
