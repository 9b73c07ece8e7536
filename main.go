// insights-tui - A terminal client for the Marketing Insights Bot.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/insightsbot/insights-tui/internal/api"
	"github.com/insightsbot/insights-tui/internal/config"
	"github.com/insightsbot/insights-tui/internal/logging"
	"github.com/insightsbot/insights-tui/internal/ui/chat"
	"github.com/insightsbot/insights-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flagServer  string
	flagCompany string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Terminal client for the Marketing Insights Bot",
	Long: `insights is a terminal client for the Marketing Insights Bot backend.

Run without arguments to open the interactive chat. The chat supports a
typewriter answer reveal, an editable company background panel, and a
server-side history reset.

  insights                        Open the interactive chat
  insights ask "..."              Ask a single question and print the answer
  insights status                 Show backend diagnostics
  insights config-init            Write a starter config file`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(args[0])
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "config-init",
	Short: "Write a starter config file to ~/.insights/config.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCompany, "company", "", "company ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a config file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configInitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration, initializes logging, and builds the API
// client shared by all commands.
func setup() (*config.Config, *api.Client, error) {
	var cfg *config.Config
	var err error

	if flagConfig != "" {
		cfg, err = config.LoadFromPath(flagConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		config.SetGlobal(cfg)
	} else {
		cfg = config.Global()
	}

	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if flagCompany != "" {
		cfg.Server.CompanyID = flagCompany
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
	}

	client := api.NewClient(cfg.Server.URL, cfg.Server.CompanyID).
		WithTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)

	return cfg, client, nil
}

// runTUI starts the interactive chat.
func runTUI() error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	logging.Infof("starting chat, server=%s company=%s", cfg.Server.URL, cfg.Server.CompanyID)

	// Reload config on file changes so speed and server tweaks apply
	// without a restart.
	watcher, err := config.NewWatcher(nil)
	if err == nil {
		if werr := watcher.Watch(); werr != nil {
			logging.Warnf("config watcher unavailable: %v", werr)
		}
		defer watcher.Close()
	}

	theme := styles.NewTheme()
	m := chat.New(theme, client)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat exited with error: %w", err)
	}
	return nil
}

// runAsk sends one question and prints the rendered answer.
func runAsk(question string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.TimeoutSecs)*time.Second)
	defer cancel()

	resp, err := client.Ask(ctx, question, "")
	if err != nil {
		return err
	}

	fmt.Println(renderMarkdown(resp.Insights))
	if resp.Warning != "" {
		fmt.Fprintln(os.Stderr, "Warning:", resp.Warning)
	}
	return nil
}

// runConfigInit writes a starter config file with the defaults, honoring
// the --server and --company flags.
func runConfigInit() error {
	cfg := config.Default()
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if flagCompany != "" {
		cfg.Server.CompanyID = flagCompany
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}

	path, err := config.ConfigPathTOML()
	if err == nil {
		fmt.Println("Wrote", path)
	}
	return nil
}

// runStatus prints backend diagnostics.
func runStatus() error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", cfg.Server.URL, err)
	}

	fmt.Printf("Server:     %s\n", cfg.Server.URL)
	fmt.Printf("Company:    %s", cfg.Server.CompanyID)
	if st.Company != "" {
		fmt.Printf(" (%s)", st.Company)
	}
	fmt.Println()
	fmt.Printf("Status:     %s\n", st.Status)
	fmt.Printf("Database:   connected=%t\n", st.DatabaseConnection)
	if st.ConnectionError != "" {
		fmt.Printf("DB error:   %s\n", st.ConnectionError)
	}
	if st.BackgroundPreview != "" {
		fmt.Printf("Background: %s (edited=%t)\n", st.BackgroundPreview, st.BackgroundIsEdited)
	}
	return nil
}

// renderMarkdown renders markdown for terminal output, falling back to
// the raw text when stdout is not a TTY or the renderer fails.
func renderMarkdown(markdown string) string {
	fi, err := os.Stdout.Stat()
	if err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return markdown
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
