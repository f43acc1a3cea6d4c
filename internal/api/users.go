package api

import (
	"context"
	"net/http"

	"coursehub/internal/models"
)

// ProfileUpdate is the multipart payload of the profile update endpoint.
// Nil fields are not sent.
type ProfileUpdate struct {
	Nickname *string
	Bio      *string
	Avatar   *Upload
}

// Me returns the current session user.
func (c *Client) Me(ctx context.Context) (*models.Me, error) {
	out := &models.Me{}
	if err := c.do(ctx, request{op: "fetch profile", method: http.MethodGet, url: "/api/users/me/", out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers returns the public user listing.
func (c *Client) ListUsers(ctx context.Context) (*models.UserList, error) {
	out := &models.UserList{}
	if err := c.do(ctx, request{op: "list users", method: http.MethodGet, url: "/api/users/", out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile submits nickname, bio and avatar as multipart form data and
// returns the server's updated representation.
func (c *Client) UpdateProfile(ctx context.Context, u ProfileUpdate) (*models.Me, error) {
	fields := map[string]string{}
	if u.Nickname != nil {
		fields["nickname"] = *u.Nickname
	}
	if u.Bio != nil {
		fields["bio"] = *u.Bio
	}
	out := &models.Me{}
	err := c.do(ctx, request{
		op:        "update profile",
		method:    http.MethodPost,
		url:       "/api/users/me/update/",
		multipart: fields,
		file:      u.Avatar,
		out:       out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
