package api

import (
	"context"
	"net/http"

	"coursehub/internal/models"
)

// CommunityPosts returns the community highlight feed.
func (c *Client) CommunityPosts(ctx context.Context) (*models.CommunityFeed, error) {
	out := &models.CommunityFeed{}
	if err := c.do(ctx, request{op: "community feed", method: http.MethodGet, url: "/api/community/posts/", out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// Catalog returns the materials catalog from the resources API.
func (c *Client) Catalog(ctx context.Context) (*models.MaterialsCatalog, error) {
	out := &models.MaterialsCatalog{}
	if err := c.do(ctx, request{op: "materials catalog", method: http.MethodGet, url: c.resourcesAPI + "/catalog/", out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// HTMLPreview fetches the rendered html of an attachment.
func (c *Client) HTMLPreview(ctx context.Context, url string) (*models.HTMLPreview, error) {
	out := &models.HTMLPreview{}
	if err := c.do(ctx, request{op: "html preview", method: http.MethodGet, url: url, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}
