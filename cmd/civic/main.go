// Command civic is the operator shell around the citizen-report core. It
// drives the same storage layout the mobile app uses, so a store produced by
// one is readable by the other.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jyambere.org/internal/account"
	"jyambere.org/internal/kvstore"
	"jyambere.org/internal/obs"
	"jyambere.org/internal/registry"
	"jyambere.org/internal/report"
	"jyambere.org/internal/session"
)

var version = "0.3.1"

// app holds the wired core services for one invocation.
type app struct {
	store    kvstore.Store
	sessions *session.Manager
	accounts *account.Service
	reports  *report.Repository
	registry *registry.Registry
}

func openApp() (*app, error) {
	var (
		store kvstore.Store
		err   error
	)
	if dsn := os.Getenv("JYAMBERE_PG_DSN"); dsn != "" {
		store, err = kvstore.OpenPostgres(dsn)
	} else {
		path := os.Getenv("JYAMBERE_STORE")
		if path == "" {
			path = "jyambere.db"
		}
		store, err = kvstore.OpenSQLite(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessions := session.NewManager(store)
	accounts := account.NewService(store, sessions)
	return &app{
		store:    store,
		sessions: sessions,
		accounts: accounts,
		reports:  report.NewRepository(store),
		registry: registry.New(store, accounts),
	}, nil
}

func (a *app) close() {
	_ = a.store.Close()
}

func main() {
	obs.Init()

	root := &cobra.Command{
		Use:           "civic",
		Short:         "Citizen complaint reporting over a local store",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newReportCmd(),
		newAdminCmd(),
		newVerifyCmd(),
		newServeDiagCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
