package forum

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"coursehub/internal/models"
)

// PageSize is the fixed forum page size.
const PageSize = 10

// Sort is a client side ordering of a page.
type Sort string

const (
	SortLatest Sort = "latest"
	SortViews  Sort = "views"
	SortLikes  Sort = "likes"
)

// ParseSort accepts latest, views or likes.
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortLatest, "":
		return SortLatest, nil
	case SortViews:
		return SortViews, nil
	case SortLikes:
		return SortLikes, nil
	}
	return "", fmt.Errorf("unknown sort %q, want latest, views or likes", s)
}

// PageCount is ceil(total/PageSize), at least 1.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// ClampPage limits page to [1, PageCount(total)].
func ClampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if n := PageCount(total); page > n {
		return n
	}
	return page
}

// filterPosts keeps posts whose title, content or author contain query, ignoring case.
func filterPosts(posts []models.ForumPost, query string) []models.ForumPost {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.ForumPost(nil), posts...)
	}
	out := make([]models.ForumPost, 0, len(posts))
	for _, p := range posts {
		target := strings.ToLower(p.Title + " " + p.Body() + " " + p.AuthorName())
		if strings.Contains(target, q) {
			out = append(out, p)
		}
	}
	return out
}

func createdAt(p models.ForumPost) time.Time {
	if p.CreatedAt == nil {
		return time.Time{}
	}
	return *p.CreatedAt
}

// sortPosts orders posts in place. The sort is stable: ties keep the order
// posts had on entry.
func sortPosts(posts []models.ForumPost, by Sort) {
	switch by {
	case SortViews:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Views() > posts[j].Views() })
	case SortLikes:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Likes() > posts[j].Likes() })
	default:
		sort.SliceStable(posts, func(i, j int) bool { return createdAt(posts[i]).After(createdAt(posts[j])) })
	}
}
