package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"peopleops.org/internal/api"
	"peopleops.org/internal/config"
	"peopleops.org/internal/obs"
	"peopleops.org/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "peopleops",
	Short: "PeopleOps CLI - HR administration against the remote API",
	Long: `PeopleOps talks to the remote HR API: employees, customers, vendors,
projects, invoices, timesheets, and attendance.

Sign in first; the session persists across invocations until you sign out
or the server rejects the token.

Examples:
  peopleops login --user alice --password secret
  peopleops vendors list
  peopleops vendors create --set name=Acme --set company="Acme Corp"
  peopleops attendance mark --employee e1 --status Present
  peopleops status`,
	SilenceUsage: true,
}

var (
	configPath string
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print records as JSON instead of a table")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(attendanceCmd)
	for _, cmd := range resourceCommands() {
		rootCmd.AddCommand(cmd)
	}
}

// runtime bundles everything a subcommand needs.
type runtime struct {
	cfg    config.Config
	store  session.Store
	client *api.Client
}

func newRuntime() (*runtime, error) {
	obs.Init()
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store, err := session.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	client := api.New(cfg, store, api.WithUnauthorizedHook(func() {
		_ = store.Clear()
		fmt.Fprintln(os.Stderr, "session expired; run `peopleops login` to sign in again")
	}))
	return &runtime{cfg: cfg, store: store, client: client}, nil
}

func (rt *runtime) session() session.Session {
	s, _ := rt.store.Get()
	return s
}
