package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jyambere.org/internal/diag"
)

var errDivergence = errors.New("collections diverge")

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare every report copy across the four collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.reports.VerifyIntegrity(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range []string{"reports", "allReports", "assignedReports", "masterReports"} {
				cmd.Printf("%-16s %d\n", key, res.Counts[key])
			}
			cmd.Printf("withPhoto=%d withGPS=%d\n", res.WithPhoto, res.WithGPS)
			if len(res.Divergent) == 0 {
				cmd.Println("collections consistent")
				return nil
			}
			for _, id := range res.Divergent {
				cmd.Printf("divergent: %s\n", id)
			}
			cmd.SilenceUsage = true
			return errDivergence
		},
	}
}

func newServeDiagCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-diag",
		Short: "Serve the health, metrics and integrity endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           diag.New(a.reports).Handler(),
				ReadTimeout:       15 * time.Second,
				ReadHeaderTimeout: 15 * time.Second,
				WriteTimeout:      15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			log.Printf("Starting civic-diag %s on %s", version, srv.Addr)

			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("listen: %v", err)
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			<-stop
			log.Println("Shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8090", "listen address")
	return cmd
}
