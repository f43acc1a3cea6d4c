package models

import "time"

// ForumPost is a single entry of the forum listing.
type ForumPost struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    *string    `json:"content,omitempty"`
	Author     *string    `json:"author,omitempty"`
	AuthorID   *int64     `json:"author_id,omitempty"`
	LikesCount *int       `json:"likes_count,omitempty"`
	ViewsCount *int       `json:"views_count,omitempty"`
	IsPinned   *bool      `json:"is_pinned,omitempty"`
	IsFeatured *bool      `json:"is_featured,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Likes returns likes_count, treating an absent value as zero.
func (p ForumPost) Likes() int {
	if p.LikesCount == nil {
		return 0
	}
	return *p.LikesCount
}

// Views returns views_count, treating an absent value as zero.
func (p ForumPost) Views() int {
	if p.ViewsCount == nil {
		return 0
	}
	return *p.ViewsCount
}

// AuthorName returns the author or an empty string.
func (p ForumPost) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return *p.Author
}

// Body returns the content or an empty string.
func (p ForumPost) Body() string {
	if p.Content == nil {
		return ""
	}
	return *p.Content
}

// ForumComment is a comment attached to a post.
type ForumComment struct {
	ID        int64      `json:"id"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Author    *string    `json:"author,omitempty"`
	AuthorID  *int64     `json:"author_id,omitempty"`
}

// ForumDetail is a post with its comments and the session's like state.
type ForumDetail struct {
	ForumPost
	Comments []ForumComment `json:"comments"`
	Liked    bool           `json:"liked"`
}

// ForumPage is one page of the forum listing.
type ForumPage struct {
	Results  []ForumPost `json:"results"`
	Page     int         `json:"page,omitempty"`
	PageSize int         `json:"page_size,omitempty"`
	Total    int         `json:"total,omitempty"`
}

// NewPost is the body for creating a post.
type NewPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewComment is the body for creating a comment.
type NewComment struct {
	Content string `json:"content"`
}

// LikeState is the authoritative reply of the like toggle.
type LikeState struct {
	Success    *bool `json:"success,omitempty"`
	Liked      bool  `json:"liked"`
	LikesCount int   `json:"likes_count"`
}

// ViewCount is the reply of the view increment.
type ViewCount struct {
	ViewsCount *int `json:"views_count"`
}
