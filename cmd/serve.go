package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/rcmn/internal/api"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveRate   float64
	serveBurst  int
	serveStrict bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve capacity calculations over HTTP",
	Long: `Start an HTTP server with the endpoints:

  POST /api/capacity   compute the capacity of one section (JSON)
  GET  /api/configs    list the supported configurations
  GET  /healthz        liveness check

Requests under /api are rate limited per client address. Settings come from
RCMN_ADDR, RCMN_RATE, RCMN_BURST and RCMN_STRICT unless given as flags.

Example:
  rcmn serve --addr :8080
  curl -d '{"config":"singly-1","width":12,"height":24,"fc":4000,"fy":60,"tension":[{"area":1.5}]}' localhost:8080/api/capacity`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 0, "Requests per second per client (default 5)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 0, "Burst size per client (default 10)")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "Reject results that do not converge")
}

func runServe(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr = serveAddr
	}
	if f.Changed("rate") {
		cfg.Rate = serveRate
	}
	if f.Changed("burst") {
		cfg.Burst = serveBurst
	}
	if f.Changed("strict") {
		cfg.Strict = serveStrict
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("starting server", "addr", cfg.Addr, "units", cfg.Units.String(), "rate", cfg.Rate, "burst", cfg.Burst)
	return api.New(cfg, slog.Default()).ListenAndServe(ctx)
}
