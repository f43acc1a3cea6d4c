package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"coursehub/internal/models"
)

// ListBlogs fetches one page of forum posts, optionally filtered server side by query.
func (c *Client) ListBlogs(ctx context.Context, page, pageSize int, query string) (*models.ForumPage, error) {
	params := map[string]string{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	}
	if q := strings.TrimSpace(query); q != "" {
		params["q"] = q
	}
	out := &models.ForumPage{}
	if err := c.do(ctx, request{op: "list posts", method: http.MethodGet, url: "/api/blogs/", query: params, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBlog creates a forum post.
func (c *Client) CreateBlog(ctx context.Context, title, content string) (*models.ForumPost, error) {
	out := &models.ForumPost{}
	body := models.NewPost{Title: title, Content: content}
	if err := c.do(ctx, request{op: "create post", method: http.MethodPost, url: "/api/blogs/", body: body, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBlog fetches a post with its comments and the session's like state.
func (c *Client) GetBlog(ctx context.Context, id int64) (*models.ForumDetail, error) {
	out := &models.ForumDetail{}
	if err := c.do(ctx, request{op: "post detail", method: http.MethodGet, url: fmt.Sprintf("/api/blogs/%d/", id), out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// ViewBlog increments the view counter of a post.
func (c *Client) ViewBlog(ctx context.Context, id int64) (*models.ViewCount, error) {
	out := &models.ViewCount{}
	if err := c.do(ctx, request{op: "view post", method: http.MethodPost, url: fmt.Sprintf("/api/blogs/%d/view/", id), out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment posts a comment on a post.
func (c *Client) AddComment(ctx context.Context, id int64, content string) (*models.ForumComment, error) {
	out := &models.ForumComment{}
	body := models.NewComment{Content: content}
	if err := c.do(ctx, request{op: "add comment", method: http.MethodPost, url: fmt.Sprintf("/api/blogs/%d/comments/", id), body: body, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleLike flips the session's like on a post.
func (c *Client) ToggleLike(ctx context.Context, id int64) (*models.LikeState, error) {
	out := &models.LikeState{}
	if err := c.do(ctx, request{op: "toggle like", method: http.MethodPost, url: fmt.Sprintf("/api/blogs/%d/like/", id), out: out}); err != nil {
		return nil, err
	}
	return out, nil
}
