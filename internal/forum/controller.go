// Package forum is the forum screen: a paginated, searchable post list and the
// detail pane of the selected post.
package forum

import (
	"context"
	"strings"
	"sync"

	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/models"

	"go.uber.org/zap"
)

// Backend is the part of the API client the forum uses.
type Backend interface {
	ListBlogs(ctx context.Context, page, pageSize int, query string) (*models.ForumPage, error)
	GetBlog(ctx context.Context, id int64) (*models.ForumDetail, error)
	ViewBlog(ctx context.Context, id int64) (*models.ViewCount, error)
	CreateBlog(ctx context.Context, title, content string) (*models.ForumPost, error)
	AddComment(ctx context.Context, id int64, content string) (*models.ForumComment, error)
	ToggleLike(ctx context.Context, id int64) (*models.LikeState, error)
}

// Snapshot is a copy of the forum view state.
type Snapshot struct {
	Posts         []models.ForumPost
	Page          int
	PageCount     int
	Total         int
	Query         string
	Sort          Sort
	SelectedID    int64
	Selected      *models.ForumDetail
	LoadingList   bool
	LoadingDetail bool
	Creating      bool
	Commenting    bool
	Liking        bool
	CommentDraft  string
	Error         string
}

// Controller owns the forum view state. It is safe for concurrent use.
type Controller struct {
	backend Backend
	lang    string
	log     *zap.Logger

	mu          sync.Mutex
	posts       []models.ForumPost
	order       []int64
	page        int
	total       int
	query       string
	sort        Sort
	selectedID  int64
	selected    *models.ForumDetail
	listToken   uint64
	detailToken uint64

	loadingList   bool
	loadingDetail bool
	creating      bool
	commenting    bool
	liking        bool
	draft         string
	banner        string
}

// NewController creates an empty forum on page 1 sorted by latest.
func NewController(backend Backend, lang string, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{backend: backend, lang: lang, log: log, page: 1, sort: SortLatest}
}

func (c *Controller) text(key string) string {
	return i18n.Sprintf(c.lang, key)
}

// Snapshot returns a copy of the view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Posts:         append([]models.ForumPost(nil), c.posts...),
		Page:          c.page,
		PageCount:     PageCount(c.total),
		Total:         c.total,
		Query:         c.query,
		Sort:          c.sort,
		SelectedID:    c.selectedID,
		LoadingList:   c.loadingList,
		LoadingDetail: c.loadingDetail,
		Creating:      c.creating,
		Commenting:    c.commenting,
		Liking:        c.liking,
		CommentDraft:  c.draft,
		Error:         c.banner,
	}
	if c.selected != nil {
		d := *c.selected
		d.Comments = append([]models.ForumComment(nil), c.selected.Comments...)
		s.Selected = &d
	}
	return s
}

// Load fetches a page with the active query. preferred, when non-zero, is
// selected if it is on the page and its detail is always reloaded.
func (c *Controller) Load(ctx context.Context, page int, preferred int64) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.listToken++
	token := c.listToken
	query := c.query
	c.loadingList = true
	c.banner = ""
	c.mu.Unlock()

	resp, err := c.backend.ListBlogs(ctx, page, PageSize, query)

	c.mu.Lock()
	if token != c.listToken {
		c.mu.Unlock()
		return nil
	}
	c.loadingList = false
	if err != nil {
		c.banner = c.text(i18n.MsgForumListFailed)
		c.mu.Unlock()
		c.log.Warn("failed to load forum page", zap.Int("page", page), zap.Error(err))
		return err
	}

	posts := filterPosts(resp.Results, query)
	c.order = make([]int64, len(posts))
	for i, p := range posts {
		c.order[i] = p.ID
	}
	sortPosts(posts, c.sort)
	c.posts = posts
	c.page = page
	c.total = resp.Total
	if c.total <= 0 {
		c.total = len(posts)
	}

	desired := preferred
	if desired == 0 {
		desired = c.selectedID
	}
	var next int64
	for _, p := range posts {
		if p.ID == desired {
			next = p.ID
			break
		}
	}
	if next == 0 && len(posts) > 0 {
		next = posts[0].ID
	}
	if next == 0 {
		c.selectedID = 0
		c.selected = nil
		c.mu.Unlock()
		return nil
	}
	reload := preferred != 0 || next != c.selectedID || c.selected == nil || c.selected.ID != next
	c.selectedID = next
	c.mu.Unlock()

	if reload {
		return c.loadDetail(ctx, next)
	}
	return nil
}

// Search sets the query and loads page 1.
func (c *Controller) Search(ctx context.Context, query string) error {
	c.mu.Lock()
	c.query = strings.TrimSpace(query)
	c.mu.Unlock()
	return c.Load(ctx, 1, 0)
}

// GoToPage loads page clamped to [1, PageCount]. Nothing is fetched when the
// clamped page is the current one.
func (c *Controller) GoToPage(ctx context.Context, page int) error {
	c.mu.Lock()
	target := ClampPage(page, c.total)
	current := c.page
	c.mu.Unlock()
	if target == current {
		return nil
	}
	return c.Load(ctx, target, 0)
}

// NextPage moves one page forward, clamped to the last page.
func (c *Controller) NextPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.Snapshot().Page+1)
}

// PrevPage moves one page back, clamped to page 1.
func (c *Controller) PrevPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.Snapshot().Page-1)
}

// Refresh reloads the current page, keeping the selection.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	page, selected := c.page, c.selectedID
	c.mu.Unlock()
	return c.Load(ctx, page, selected)
}

// SetSort re-orders the loaded page without a request. Sorting starts from
// the server order, so ties never inherit the previous sort.
func (c *Controller) SetSort(by Sort) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = by
	byID := make(map[int64]models.ForumPost, len(c.posts))
	for _, p := range c.posts {
		byID[p.ID] = p
	}
	posts := make([]models.ForumPost, 0, len(c.order))
	for _, id := range c.order {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	sortPosts(posts, by)
	c.posts = posts
}

// SetDraft stores the comment being typed.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Select shows a post and counts a view. A reply for a post that is no
// longer selected is dropped.
func (c *Controller) Select(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.selectedID = id
	c.mu.Unlock()
	return c.loadDetail(ctx, id)
}

// Focus selects a post like Select without counting a view. It is used when
// the post is only opened to comment on or like it.
func (c *Controller) Focus(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.selectedID = id
	c.mu.Unlock()
	return c.fetchDetail(ctx, id, false)
}

func (c *Controller) loadDetail(ctx context.Context, id int64) error {
	return c.fetchDetail(ctx, id, true)
}

func (c *Controller) fetchDetail(ctx context.Context, id int64, countView bool) error {
	c.mu.Lock()
	c.detailToken++
	token := c.detailToken
	c.loadingDetail = true
	c.banner = ""
	c.mu.Unlock()

	detail, err := c.backend.GetBlog(ctx, id)

	c.mu.Lock()
	if token != c.detailToken || id != c.selectedID {
		c.mu.Unlock()
		c.log.Debug("dropped stale post detail", zap.Int64("post_id", id))
		return nil
	}
	c.loadingDetail = false
	if err != nil {
		c.banner = c.text(i18n.MsgForumDetailFailed)
		c.mu.Unlock()
		c.log.Warn("failed to load post detail", zap.Int64("post_id", id), zap.Error(err))
		return err
	}
	c.selected = detail
	c.draft = ""
	c.mu.Unlock()
	if !countView {
		return nil
	}

	view, err := c.backend.ViewBlog(ctx, id)
	if err != nil || view.ViewsCount == nil {
		c.log.Debug("view count not updated", zap.Int64("post_id", id), zap.Error(err))
		return nil
	}
	views := *view.ViewsCount

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected != nil && c.selected.ID == id {
		d := *c.selected
		d.ViewsCount = &views
		c.selected = &d
	}
	for i := range c.posts {
		if c.posts[i].ID == id {
			c.posts[i].ViewsCount = &views
		}
	}
	return nil
}

// CreatePost publishes a post, reloads page 1 and selects the new post.
func (c *Controller) CreatePost(ctx context.Context, title, content string) error {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)

	c.mu.Lock()
	if title == "" || content == "" {
		c.banner = c.text(i18n.MsgForumFieldsMissing)
		c.mu.Unlock()
		field := "title"
		if title != "" {
			field = "content"
		}
		return &errs.ValidationError{Field: field, Reason: "is required"}
	}
	if c.creating {
		c.mu.Unlock()
		return errs.ErrBusy
	}
	c.creating = true
	c.mu.Unlock()

	created, err := c.backend.CreateBlog(ctx, title, content)

	c.mu.Lock()
	c.creating = false
	if err != nil {
		c.banner = c.text(i18n.MsgForumCreateFailed)
		c.mu.Unlock()
		c.log.Warn("failed to create post", zap.Error(err))
		return err
	}
	c.page = 1
	c.selectedID = created.ID
	c.mu.Unlock()

	return c.Load(ctx, 1, created.ID)
}

// AddComment comments on the selected post and prepends the reply to its
// comments. Blank content or no selection is a no-op.
func (c *Controller) AddComment(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)

	c.mu.Lock()
	id := c.selectedID
	if id == 0 || content == "" {
		c.mu.Unlock()
		return nil
	}
	if c.commenting {
		c.mu.Unlock()
		return errs.ErrBusy
	}
	c.commenting = true
	c.mu.Unlock()

	comment, err := c.backend.AddComment(ctx, id, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.commenting = false
	if err != nil {
		c.banner = c.text(i18n.MsgForumCommentFailed)
		c.log.Warn("failed to add comment", zap.Int64("post_id", id), zap.Error(err))
		return err
	}
	if c.selected != nil && c.selected.ID == id {
		d := *c.selected
		d.Comments = append([]models.ForumComment{*comment}, c.selected.Comments...)
		c.selected = &d
	}
	c.draft = ""
	return nil
}

// ToggleLike flips the like on the selected post and applies the server's counts.
func (c *Controller) ToggleLike(ctx context.Context) error {
	c.mu.Lock()
	id := c.selectedID
	if id == 0 {
		c.mu.Unlock()
		return nil
	}
	if c.liking {
		c.mu.Unlock()
		return errs.ErrBusy
	}
	c.liking = true
	c.mu.Unlock()

	state, err := c.backend.ToggleLike(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.liking = false
	if err != nil {
		c.banner = c.text(i18n.MsgForumLikeFailed)
		c.log.Warn("failed to toggle like", zap.Int64("post_id", id), zap.Error(err))
		return err
	}
	likes := state.LikesCount
	if c.selected != nil && c.selected.ID == id {
		d := *c.selected
		d.Liked = state.Liked
		d.LikesCount = &likes
		c.selected = &d
	}
	for i := range c.posts {
		if c.posts[i].ID == id {
			c.posts[i].LikesCount = &likes
		}
	}
	return nil
}
