package cli

import (
	"fmt"

	"coursehub/internal/api"
	"coursehub/internal/auth"
	"coursehub/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(rt *runtime) *cobra.Command {
	var cred auth.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "sign in to the backend and check the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := rt.machine()
			c := auth.NewController(rt.backend(), m, rt.cfg.Lang, rt.log)
			err := c.Login(cmd.Context(), cred)
			fmt.Fprintln(rt.out, c.Snapshot().Status)
			if err != nil {
				return err
			}
			rt.persist()

			if snap := m.Snapshot(); snap.State == session.NicknameMissing {
				fmt.Fprintf(rt.out, "suggested nickname: %s\n", snap.Suggested)
				fmt.Fprintln(rt.out, "run: coursehub onboard --nickname <name> (or --accept-suggestion)")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cred.Email, "email", "", "account email")
	cmd.Flags().StringVar(&cred.Password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(rt *runtime) *cobra.Command {
	var reg auth.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "create a backend account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := auth.NewController(rt.backend(), rt.machine(), rt.cfg.Lang, rt.log)
			c.SetTab(auth.TabSignup)
			err := c.Register(cmd.Context(), reg)
			fmt.Fprintln(rt.out, c.Snapshot().Status)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&reg.Name, "name", "", "display name")
	f.StringVar(&reg.Email, "email", "", "account email")
	f.StringVar(&reg.Password, "password", "", "password, at least 6 characters")
	f.StringVar(&reg.ConfirmPassword, "confirm-password", "", "password again")
	f.StringVar(&reg.SecurityQuestion, "security-question", "", "security question")
	f.StringVar(&reg.SecurityAnswer, "security-answer", "", "security answer")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "end the backend session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := auth.NewController(rt.backend(), rt.machine(), rt.cfg.Lang, rt.log)
			err := c.Logout(cmd.Context())
			if clearErr := rt.backend().ClearSession(rt.cfg.SessionFile); clearErr != nil {
				return clearErr
			}
			fmt.Fprintln(rt.out, c.Snapshot().Status)
			return err
		},
	}
}

func newOnboardCmd(rt *runtime) *cobra.Command {
	var (
		nickname, bio, avatar string
		acceptSuggestion      bool
	)
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "set the nickname required before entering the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := rt.machine()
			if err := m.Begin(cmd.Context()); err != nil {
				fmt.Fprintln(rt.out, m.Snapshot().Status)
				return err
			}
			snap := m.Snapshot()
			if snap.State == session.Ready {
				fmt.Fprintln(rt.out, snap.Status)
				return nil
			}

			if nickname == "" && acceptSuggestion {
				nickname = snap.Suggested
			}
			if nickname == "" {
				return fmt.Errorf("%s: pass --nickname, or --accept-suggestion to use %q", snap.Status.Text, snap.Suggested)
			}
			if !cmd.Flags().Changed("bio") {
				bio = snap.Bio
			}
			form := session.NicknameForm{Nickname: nickname, Bio: bio}
			if avatar != "" {
				upload, f, err := api.OpenUpload(avatar)
				if err != nil {
					return err
				}
				defer f.Close()
				form.Avatar = upload
			}

			err := m.SaveNickname(cmd.Context(), form)
			fmt.Fprintln(rt.out, m.Snapshot().Status)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&nickname, "nickname", "", "nickname to save")
	f.BoolVar(&acceptSuggestion, "accept-suggestion", false, "save the suggested nickname")
	f.StringVar(&bio, "bio", "", "bio")
	f.StringVar(&avatar, "avatar", "", "avatar image file")
	return cmd
}
