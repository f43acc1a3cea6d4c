// Package cli is the terminal front end: every screen of the course community
// client is a cobra command driving the matching controller.
package cli

import (
	"fmt"
	"io"

	"coursehub/internal/api"
	"coursehub/internal/config"
	"coursehub/internal/logger"
	"coursehub/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// runtime is shared by all commands of one invocation.
type runtime struct {
	v      *viper.Viper
	cfg    *config.Config
	log    *zap.Logger
	out    io.Writer
	client *api.Client
}

// NewRootCmd builds the coursehub command tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{v: config.New()}
	cmd := &cobra.Command{
		Use:           "coursehub",
		Short:         "course community client and mock auth server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = rt.log.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("backend-url", "", "backend base url (BACKEND_URL)")
	flags.String("resources-api", "", "resources api base url (RESOURCES_API)")
	flags.String("lang", "", "message language, en or zh (LANG)")
	flags.String("log-level", "", "log level (LOG_LEVEL)")
	flags.String("session-file", "", "where backend session cookies are kept (SESSION_FILE)")
	flags.String("config", "", "config file, default ./coursehub.yaml or ~/.coursehub/coursehub.yaml")
	for key, name := range map[string]string{
		"BACKEND_URL":   "backend-url",
		"RESOURCES_API": "resources-api",
		"LANG":          "lang",
		"LOG_LEVEL":     "log-level",
		"SESSION_FILE":  "session-file",
	} {
		_ = rt.v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(
		newServeMockCmd(rt),
		newTailEventsCmd(rt),
		newLoginCmd(rt),
		newRegisterCmd(rt),
		newLogoutCmd(rt),
		newOnboardCmd(rt),
		newProfileCmd(rt),
		newForumCmd(rt),
		newCommunityCmd(rt),
		newCatalogCmd(rt),
		newPreviewCmd(rt),
		newDashboardCmd(rt),
	)
	return cmd
}

func (rt *runtime) init(cmd *cobra.Command) error {
	if file, _ := cmd.Flags().GetString("config"); file != "" {
		rt.v.SetConfigFile(file)
	}
	if err := config.ReadFile(rt.v); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	rt.cfg = config.Load(rt.v)
	rt.log = logger.Must(rt.cfg.AppEnv, rt.cfg.LogLevel)
	rt.out = cmd.OutOrStdout()
	return nil
}

// backend returns the API client with the saved session loaded.
func (rt *runtime) backend() *api.Client {
	if rt.client != nil {
		return rt.client
	}
	rt.client = api.New(api.Options{
		BaseURL:      rt.cfg.BackendURL,
		ResourcesAPI: rt.cfg.ResourcesAPI,
		Timeout:      rt.cfg.RequestTimeout,
		Logger:       rt.log,
	})
	if err := rt.client.LoadSession(rt.cfg.SessionFile); err != nil {
		rt.log.Warn("ignoring saved session", zap.Error(err))
	}
	return rt.client
}

// persist saves the session cookies for the next invocation.
func (rt *runtime) persist() {
	if rt.client == nil {
		return
	}
	if err := rt.client.SaveSession(rt.cfg.SessionFile); err != nil {
		rt.log.Warn("failed to save session", zap.Error(err))
	}
}

// navigator prints screen changes.
func (rt *runtime) navigator() session.Navigator {
	return session.NavigatorFunc(func(s session.Screen) {
		fmt.Fprintf(rt.out, "-> %s\n", s)
	})
}

func (rt *runtime) machine() *session.Machine {
	return session.New(rt.backend(), rt.navigator(), session.WithLang(rt.cfg.Lang), session.WithLogger(rt.log))
}

// requireReady runs the onboarding gate and fails unless the session is complete.
func (rt *runtime) requireReady(cmd *cobra.Command) (*session.Machine, error) {
	m := rt.machine()
	err := m.Begin(cmd.Context())
	snap := m.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", snap.Status.Text, err)
	}
	if snap.State != session.Ready {
		return nil, fmt.Errorf("%s (suggested: %s, run coursehub onboard)", snap.Status.Text, snap.Suggested)
	}
	return m, nil
}
