package api

import (
	"context"
	"net/http"

	"github.com/babysteps/babysteps/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

// Login exchanges credentials for a signed token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &res)
	if err != nil {
		return "", err
	}
	return res.Token, nil
}

// Register creates an account and returns a signed token for the new user.
func (c *Client) Register(ctx context.Context, firstName, lastName, username, password string) (string, error) {
	var res tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Password:  password,
	}, &res)
	if err != nil {
		return "", err
	}
	return res.Token, nil
}

type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfile changes the user's name fields and returns the updated
// identity as the server sees it.
func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName string) (models.Identity, error) {
	var identity models.Identity
	err := c.do(ctx, http.MethodPut, "/users/me/profile", profileRequest{
		FirstName: firstName,
		LastName:  lastName,
	}, &identity)
	return identity, err
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword rotates the password and returns the server's confirmation
// message.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	var res msgResponse
	err := c.do(ctx, http.MethodPut, "/users/me/password", passwordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, &res)
	if err != nil {
		return "", err
	}
	return res.Msg, nil
}

// DeleteAccount permanently removes the account and all habits.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users/me", nil, nil)
}
