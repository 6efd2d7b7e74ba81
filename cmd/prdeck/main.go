package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jvaz/prdeck/internal/config"
	"github.com/jvaz/prdeck/internal/controller"
	"github.com/jvaz/prdeck/internal/github"
	"github.com/jvaz/prdeck/internal/logging"
	"github.com/jvaz/prdeck/internal/mcp"
	"github.com/jvaz/prdeck/internal/mcp/tools"
	"github.com/jvaz/prdeck/internal/pullreq"
)

var rootCmd = &cobra.Command{
	Use:          "prdeck",
	Short:        "Aggregate an organization's open pull requests with review status",
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List open pull requests, optionally filtered by title or repo",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		ctrl, err := newController()
		if err != nil {
			return err
		}
		items, err := ctrl.BuildItems(cmd.Context(), controller.PRTypeOpen, pullreq.MatchPredicate(pattern), true)
		if err != nil {
			render([]controller.DisplayItem{controller.ErrorItem(err)})
			return nil
		}
		render(items)
		return nil
	},
}

var approvedCmd = &cobra.Command{
	Use:   "approved",
	Short: "List open pull requests that already count as approved",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		items, err := ctrl.BuildItems(cmd.Context(), controller.PRTypeApproved, nil, false)
		if err != nil {
			render([]controller.DisplayItem{controller.ErrorItem(err)})
			return nil
		}
		render(items)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pull request views as MCP tools over HTTP",
	RunE:  runServe,
}

func newController() (*controller.Controller, error) {
	cfg, err := controller.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Default(cfg.LogLevel))

	client, err := github.NewClient(cfg.Hostname, cfg.AccessToken, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	fetcher := github.NewFetcher(client, cfg.Organization, cfg.MaxConcurrent, logger)
	return controller.New(fetcher, cfg.UserLogin, cfg.CacheTTL, logger), nil
}

func render(items []controller.DisplayItem) {
	for _, it := range items {
		subtitle := strings.ReplaceAll(it.Subtitle, "\n", "  ")
		fmt.Printf("[%s] %s\n    %s\n", it.Icon, it.Title, subtitle)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctrl, err := newController()
	if err != nil {
		return err
	}

	srv := mcp.New(mcp.Config{
		ToolAdapters: map[string]mcp.ToolAdapter{
			"list_open_prs":     &tools.ListOpenPRsHandler{Service: ctrl},
			"list_approved_prs": &tools.ListApprovedPRsHandler{Service: ctrl},
		},
	})

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	addr := host + ":" + strconv.Itoa(port)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP server listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

func main() {
	rootCmd.PersistentFlags().String(config.KeyHostname, "", "GitHub-compatible API hostname")
	rootCmd.PersistentFlags().String(config.KeyOrganization, "", "Organization whose repositories are aggregated")
	rootCmd.PersistentFlags().String(config.KeyAccessToken, "", "API access token")
	rootCmd.PersistentFlags().String(config.KeyUserLogin, "", "Login of the acting user")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "info", "Log level (info or debug)")
	rootCmd.PersistentFlags().String(config.KeyCacheTTL, "60s", "How long a fetched snapshot stays fresh")
	rootCmd.PersistentFlags().String(config.KeyRequestTimeout, "30s", "Per-request timeout on upstream calls")
	rootCmd.PersistentFlags().Int(config.KeyMaxConcurrent, 8, "In-flight request cap per fan-out level")

	serveCmd.Flags().String("host", "0.0.0.0", "HTTP host")
	serveCmd.Flags().Int("port", 8000, "HTTP port")

	config.Init(rootCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(approvedCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}
