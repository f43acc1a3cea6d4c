package cli

import (
	"fmt"

	"coursehub/internal/dashboard"
	"coursehub/internal/forum"

	"github.com/spf13/cobra"
)

func (rt *runtime) dashboard() *dashboard.Dashboard {
	return dashboard.New(rt.backend(), rt.cfg.Lang, rt.log, rt.cfg.PreviewCacheSize, rt.cfg.PreviewCacheTTL)
}

func newDashboardCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "show the main screen: profile, community highlights, forum page 1 and catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := rt.requireReady(cmd)
			if err != nil {
				return err
			}
			printProfile(rt.out, m.Snapshot().Me)

			d := rt.dashboard()
			catalogErr := d.Load(cmd.Context())
			snap := d.Snapshot()
			fmt.Fprintln(rt.out, "\ncommunity:")
			printCommunity(rt.out, snap.Community)

			f := forum.NewController(rt.backend(), rt.cfg.Lang, rt.log)
			fmt.Fprintln(rt.out, "\nforum:")
			if err := f.Load(cmd.Context(), 1, 0); err != nil {
				rt.printForumError(f)
			} else {
				fs := f.Snapshot()
				printPosts(rt.out, fs.Posts, fs.SelectedID)
			}

			fmt.Fprintln(rt.out, "\nmaterials:")
			if catalogErr != nil {
				fmt.Fprintln(rt.out, "[error] "+snap.CatalogError)
				return nil
			}
			printCatalog(rt.out, snap.Catalog)
			return nil
		},
	}
}

func newCommunityCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "community",
		Short: "show community highlights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := rt.dashboard()
			_ = d.LoadCommunity(cmd.Context())
			printCommunity(rt.out, d.Snapshot().Community)
			return nil
		},
	}
}

func newCatalogCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "list course materials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := rt.dashboard()
			if err := d.LoadCatalog(cmd.Context()); err != nil {
				fmt.Fprintln(rt.out, "[error] "+d.Snapshot().CatalogError)
				return err
			}
			printCatalog(rt.out, d.Snapshot().Catalog)
			return nil
		},
	}
}

func newPreviewCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <attachment-id>",
		Short: "print the html preview of a catalog attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := rt.dashboard()
			if err := d.LoadCatalog(cmd.Context()); err != nil {
				fmt.Fprintln(rt.out, "[error] "+d.Snapshot().CatalogError)
				return err
			}
			item, ok := dashboard.FindAttachment(d.Snapshot().Catalog, args[0])
			if !ok {
				return fmt.Errorf("attachment %q not found", args[0])
			}
			html, err := d.Preview(cmd.Context(), item)
			if html == "" && err == nil {
				fmt.Fprintf(rt.out, "no html preview, open %s\n", dashboard.PreviewSource(item))
				return nil
			}
			fmt.Fprintln(rt.out, html)
			return err
		},
	}
}
