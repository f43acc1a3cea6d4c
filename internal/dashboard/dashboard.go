// Package dashboard loads the main screen: community highlights and the materials catalog.
package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"coursehub/internal/i18n"
	"coursehub/internal/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is the part of the API client used by the dashboard.
type Backend interface {
	CommunityPosts(ctx context.Context) (*models.CommunityFeed, error)
	Catalog(ctx context.Context) (*models.MaterialsCatalog, error)
	HTMLPreview(ctx context.Context, url string) (*models.HTMLPreview, error)
}

func ptr(s string) *string { return &s }

// FallbackPosts is shown until the community feed answers, and kept when it fails.
var FallbackPosts = []models.CommunityPost{
	{Title: "Minimalist logo design", Author: ptr("Alex Morgan"), CreatedAt: ptr("2 days ago")},
	{Title: "3D character concept", Author: ptr("Priya Sharma"), CreatedAt: ptr("1 week ago")},
	{Title: "UI dashboard redesign", Author: ptr("Thomas Wright"), CreatedAt: ptr("3 days ago")},
	{Title: "Product photography lighting", Author: ptr("Olivia Chen"), CreatedAt: ptr("5 days ago")},
}

var videoTypes = map[string]bool{"mp4": true, "mov": true, "avi": true, "wmv": true, "mkv": true}

// Snapshot is a copy of the dashboard view state.
type Snapshot struct {
	Community      []models.CommunityPost
	Catalog        *models.MaterialsCatalog
	CatalogLoading bool
	CatalogError   string
}

// Dashboard holds the main screen state.
type Dashboard struct {
	backend Backend
	lang    string
	log     *zap.Logger
	preview *expirable.LRU[string, string]

	mu             sync.Mutex
	community      []models.CommunityPost
	catalog        *models.MaterialsCatalog
	catalogLoading bool
	catalogError   string
}

// New creates a dashboard. HTML previews are cached for ttl, at most cacheSize entries.
func New(backend Backend, lang string, log *zap.Logger, cacheSize int, ttl time.Duration) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	if cacheSize <= 0 {
		cacheSize = 64
	}
	return &Dashboard{
		backend:   backend,
		lang:      lang,
		log:       log,
		preview:   expirable.NewLRU[string, string](cacheSize, nil, ttl),
		community: append([]models.CommunityPost(nil), FallbackPosts...),
	}
}

// Snapshot returns a copy of the view state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		Community:      append([]models.CommunityPost(nil), d.community...),
		Catalog:        d.catalog,
		CatalogLoading: d.catalogLoading,
		CatalogError:   d.catalogError,
	}
}

// Load fetches the community feed and the catalog concurrently. The two
// requests are independent: a catalog failure does not cancel the feed. Only a
// catalog failure is reported; the feed falls back silently.
func (d *Dashboard) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_ = d.LoadCommunity(ctx)
		return nil
	})
	g.Go(func() error {
		return d.LoadCatalog(ctx)
	})
	return g.Wait()
}

// LoadCommunity replaces the feed. On failure the previous posts are kept.
func (d *Dashboard) LoadCommunity(ctx context.Context) error {
	feed, err := d.backend.CommunityPosts(ctx)
	if err != nil {
		d.log.Debug("community feed unavailable, keeping fallback", zap.Error(err))
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(feed.Results) == 0 {
		d.community = append([]models.CommunityPost(nil), FallbackPosts...)
		return nil
	}
	d.community = feed.Results
	return nil
}

// LoadCatalog fetches the materials catalog. Calling it again is the retry.
func (d *Dashboard) LoadCatalog(ctx context.Context) error {
	d.mu.Lock()
	d.catalogLoading = true
	d.catalogError = ""
	d.mu.Unlock()

	catalog, err := d.backend.Catalog(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.catalogLoading = false
	if err != nil {
		d.catalogError = i18n.Sprintf(d.lang, i18n.MsgCatalogFailed)
		d.log.Warn("failed to load materials catalog", zap.Error(err))
		return err
	}
	d.catalog = catalog
	return nil
}

// Preview returns the html preview of an attachment. Attachments without an
// html preview url yield "". On failure the fallback html is returned with the error.
func (d *Dashboard) Preview(ctx context.Context, item models.CatalogAttachment) (string, error) {
	if item.HTMLPreviewURL == nil || *item.HTMLPreviewURL == "" {
		return "", nil
	}
	url := *item.HTMLPreviewURL
	if html, ok := d.preview.Get(url); ok {
		return html, nil
	}
	resp, err := d.backend.HTMLPreview(ctx, url)
	if err != nil {
		d.log.Warn("html preview failed", zap.String("attachment", item.ID), zap.Error(err))
		return i18n.Sprintf(d.lang, i18n.MsgPreviewFailed), err
	}
	html := resp.HTML
	if strings.TrimSpace(html) == "" {
		html = i18n.Sprintf(d.lang, i18n.MsgPreviewEmpty)
	}
	d.preview.Add(url, html)
	return html, nil
}

// PreviewSource is the url to embed for an attachment: preview_url, else media_url.
func PreviewSource(item models.CatalogAttachment) string {
	if item.PreviewURL != nil && *item.PreviewURL != "" {
		return *item.PreviewURL
	}
	if item.MediaURL != nil {
		return *item.MediaURL
	}
	return ""
}

// IsVideo reports whether the attachment plays in a video element.
func IsVideo(item models.CatalogAttachment) bool {
	return videoTypes[strings.ToLower(item.FileType)]
}

// FindAttachment looks an attachment up by id across experiments, videos and books.
func FindAttachment(c *models.MaterialsCatalog, id string) (models.CatalogAttachment, bool) {
	if c == nil {
		return models.CatalogAttachment{}, false
	}
	for _, bucket := range c.Experiments {
		for _, item := range bucket.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	for _, list := range [][]models.CatalogAttachment{c.Videos, c.Books} {
		for _, item := range list {
			if item.ID == id {
				return item, true
			}
		}
	}
	return models.CatalogAttachment{}, false
}
