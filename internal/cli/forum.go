package cli

import (
	"fmt"
	"strconv"
	"strings"

	"coursehub/internal/forum"

	"github.com/spf13/cobra"
)

func newForumCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forum",
		Short: "browse and post to the course forum",
	}
	cmd.AddCommand(
		newForumListCmd(rt),
		newForumShowCmd(rt),
		newForumPostCmd(rt),
		newForumCommentCmd(rt),
		newForumLikeCmd(rt),
	)
	return cmd
}

// forumController runs the onboarding gate before any forum request.
func (rt *runtime) forumController(cmd *cobra.Command) (*forum.Controller, error) {
	if _, err := rt.requireReady(cmd); err != nil {
		return nil, err
	}
	return forum.NewController(rt.backend(), rt.cfg.Lang, rt.log), nil
}

func postID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

func (rt *runtime) printForumError(c *forum.Controller) {
	if msg := c.Snapshot().Error; msg != "" {
		fmt.Fprintln(rt.out, "[error] "+msg)
	}
}

func newForumListCmd(rt *runtime) *cobra.Command {
	var (
		page       int
		query, srt string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list forum posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			by, err := forum.ParseSort(srt)
			if err != nil {
				return err
			}
			c, err := rt.forumController(cmd)
			if err != nil {
				return err
			}
			c.SetSort(by)
			if query != "" {
				err = c.Search(cmd.Context(), query)
			} else {
				err = c.Load(cmd.Context(), 1, 0)
			}
			if err == nil && page > 1 {
				err = c.GoToPage(cmd.Context(), page)
			}
			if err != nil {
				rt.printForumError(c)
				return err
			}

			snap := c.Snapshot()
			printPosts(rt.out, snap.Posts, snap.SelectedID)
			fmt.Fprintf(rt.out, "page %d/%d, %d posts\n", snap.Page, snap.PageCount, snap.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&page, "page", 1, "page number")
	f.StringVar(&query, "query", "", "search title, content and author")
	f.StringVar(&srt, "sort", string(forum.SortLatest), "latest, views or likes")
	return cmd
}

func newForumShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := postID(args[0])
			if err != nil {
				return err
			}
			c, err := rt.forumController(cmd)
			if err != nil {
				return err
			}
			if err := c.Select(cmd.Context(), id); err != nil {
				rt.printForumError(c)
				return err
			}
			printDetail(rt.out, c.Snapshot().Selected)
			return nil
		},
	}
}

func newForumPostCmd(rt *runtime) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "post",
		Short: "create a post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := rt.forumController(cmd)
			if err != nil {
				return err
			}
			if err := c.CreatePost(cmd.Context(), title, content); err != nil {
				rt.printForumError(c)
				return err
			}
			printDetail(rt.out, c.Snapshot().Selected)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post body")
	return cmd
}

func newForumCommentCmd(rt *runtime) *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "comment <id>",
		Short: "comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := postID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("--content is required")
			}
			c, err := rt.forumController(cmd)
			if err != nil {
				return err
			}
			if err := c.Focus(cmd.Context(), id); err != nil {
				rt.printForumError(c)
				return err
			}
			c.SetDraft(content)
			if err := c.AddComment(cmd.Context(), content); err != nil {
				rt.printForumError(c)
				return err
			}
			printDetail(rt.out, c.Snapshot().Selected)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "comment text")
	return cmd
}

func newForumLikeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "toggle your like on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := postID(args[0])
			if err != nil {
				return err
			}
			c, err := rt.forumController(cmd)
			if err != nil {
				return err
			}
			if err := c.Focus(cmd.Context(), id); err != nil {
				rt.printForumError(c)
				return err
			}
			if err := c.ToggleLike(cmd.Context()); err != nil {
				rt.printForumError(c)
				return err
			}
			d := c.Snapshot().Selected
			state := "unliked"
			if d.Liked {
				state = "liked"
			}
			fmt.Fprintf(rt.out, "%s #%d, %d likes\n", state, d.ID, count(d.LikesCount))
			return nil
		},
	}
}
