package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"coursehub/internal/dashboard"
	"coursehub/internal/models"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func count(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func day(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

func printProfile(w io.Writer, me *models.Me) {
	if me == nil {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%d\n", me.ID)
	fmt.Fprintf(tw, "username\t%s\n", me.Username)
	fmt.Fprintf(tw, "nickname\t%s\n", deref(me.Nickname))
	fmt.Fprintf(tw, "email\t%s\n", deref(me.Email))
	fmt.Fprintf(tw, "bio\t%s\n", deref(me.Bio))
	fmt.Fprintf(tw, "avatar\t%s\n", deref(me.Avatar))
	tw.Flush()
}

func printPosts(w io.Writer, posts []models.ForumPost, selected int64) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tTITLE\tAUTHOR\tVIEWS\tLIKES\tCREATED")
	for _, p := range posts {
		mark := ""
		if p.ID == selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\t%s\n",
			mark, p.ID, p.Title, deref(p.Author), count(p.ViewsCount), count(p.LikesCount), day(p.CreatedAt))
	}
	tw.Flush()
}

func printDetail(w io.Writer, d *models.ForumDetail) {
	if d == nil {
		return
	}
	liked := ""
	if d.Liked {
		liked = ", liked"
	}
	fmt.Fprintf(w, "#%d %s\n", d.ID, d.Title)
	fmt.Fprintf(w, "by %s on %s, %d views, %d likes%s\n",
		deref(d.Author), day(d.CreatedAt), count(d.ViewsCount), count(d.LikesCount), liked)
	if c := deref(d.Content); c != "" {
		fmt.Fprintf(w, "\n%s\n", c)
	}
	if len(d.Comments) > 0 {
		fmt.Fprintf(w, "\ncomments (%d):\n", len(d.Comments))
	}
	for _, c := range d.Comments {
		fmt.Fprintf(w, "  %s (%s): %s\n", deref(c.Author), day(c.CreatedAt), c.Content)
	}
}

func printCommunity(w io.Writer, posts []models.CommunityPost) {
	for _, p := range posts {
		fmt.Fprintf(w, "- %s\n  %s\n", p.Title, p.Excerpt)
		if u := deref(p.URL); u != "" {
			fmt.Fprintf(w, "  %s\n", u)
		}
	}
}

func printAttachments(tw *tabwriter.Writer, heading string, items []models.CatalogAttachment) {
	for _, item := range items {
		kind := item.FileType
		if dashboard.IsVideo(item) {
			kind += " (video)"
		}
		name := item.Label
		if name == "" {
			name = item.Filename
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", heading, item.ID, name, kind, dashboard.PreviewSource(item))
	}
}

func printCatalog(w io.Writer, c *models.MaterialsCatalog) {
	if c == nil {
		return
	}
	if c.SyncedTo != nil && c.SyncedTo.Label != nil {
		fmt.Fprintf(w, "synced to %s\n", *c.SyncedTo.Label)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tID\tNAME\tTYPE\tSOURCE")
	for _, bucket := range c.Experiments {
		heading := bucket.CategoryDisplay
		if heading == "" {
			heading = bucket.Category
		}
		printAttachments(tw, strings.TrimSpace(heading), bucket.Items)
	}
	printAttachments(tw, "videos", c.Videos)
	printAttachments(tw, "books", c.Books)
	tw.Flush()
}
