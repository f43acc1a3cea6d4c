package cli

import (
	"fmt"

	"coursehub/internal/api"
	"coursehub/internal/profile"

	"github.com/spf13/cobra"
)

func newProfileCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "show or edit the current user's profile",
	}
	cmd.AddCommand(newProfileShowCmd(rt), newProfileUpdateCmd(rt))
	return cmd
}

func (rt *runtime) editor() *profile.Editor {
	return profile.NewEditor(rt.backend(), rt.navigator(), rt.machine(), rt.cfg.Lang, rt.log)
}

func newProfileShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "print the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := rt.editor()
			if err := e.Fetch(cmd.Context()); err != nil {
				fmt.Fprintln(rt.out, e.Snapshot().Status)
				return err
			}
			printProfile(rt.out, e.Snapshot().Profile)
			return nil
		},
	}
}

func newProfileUpdateCmd(rt *runtime) *cobra.Command {
	var nickname, bio, avatar string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "change nickname, bio or avatar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := rt.editor()
			if err := e.Fetch(cmd.Context()); err != nil {
				fmt.Fprintln(rt.out, e.Snapshot().Status)
				return err
			}
			e.Edit()
			form := e.Snapshot().Form
			if cmd.Flags().Changed("nickname") {
				form.Nickname = nickname
			}
			if cmd.Flags().Changed("bio") {
				form.Bio = bio
			}

			var upload *api.Upload
			if avatar != "" {
				u, f, err := api.OpenUpload(avatar)
				if err != nil {
					return err
				}
				defer f.Close()
				upload = u
			}

			err := e.Update(cmd.Context(), form.Nickname, form.Bio, upload)
			snap := e.Snapshot()
			fmt.Fprintln(rt.out, snap.Status)
			if err != nil {
				return err
			}
			printProfile(rt.out, snap.Profile)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&nickname, "nickname", "", "new nickname")
	f.StringVar(&bio, "bio", "", "new bio")
	f.StringVar(&avatar, "avatar", "", "avatar image file")
	return cmd
}
