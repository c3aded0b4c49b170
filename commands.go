package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/history"
	"github.com/NeverVane/pickline/internal/logger"
	"github.com/NeverVane/pickline/internal/menu"
	"github.com/NeverVane/pickline/internal/source"
	"github.com/NeverVane/pickline/internal/tui"
)

// filterCmd ranks standard input against a query without a terminal.
func (a *app) filterCmd() *cobra.Command {
	var (
		showTiers       bool
		limit           int
		histPath        string
		caseInsensitive bool
		single          bool
	)

	cmd := &cobra.Command{
		Use:   "filter [query...]",
		Short: "Print the ranked matches for a query",
		Long: `Rank standard input (and history, when configured) against a query and
print every match in order: exact matches, then prefix matches, then substring
matches. Multiple arguments are joined with spaces.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.GetLogger().WithComponent("filter")

			if cmd.Flags().Changed("hist") {
				a.cfg.History.Path = histPath
			}
			if caseInsensitive {
				a.cfg.Menu.CaseInsensitive = true
			}
			if single {
				a.cfg.Menu.Tokenize = false
			}

			pool, err := source.Load(cmd.Context(), stdinInput(), a.historyStore())
			if err != nil {
				return err
			}

			opts := tui.OptionsFromConfig(a.cfg).Menu
			state := menu.New(pool, opts, menu.VerticalBudget(1, false)).
				SetQuery(strings.Join(args, " "))

			chain := state.Chain()
			for i, e := range chain.Entries() {
				if limit > 0 && i >= limit {
					break
				}
				a.out.Item(pool.Text(e.Index), e.Tier, showTiers)
			}

			log.Debug().
				Int("items", pool.Len()).
				Int("hits", chain.Hits()).
				Msg("Filter finished")
			a.out.Verbose("%d of %d items matched", chain.Hits(), pool.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTiers, "tiers", false, "Prefix each match with its tier")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Print at most N matches")
	cmd.Flags().StringVar(&histPath, "hist", "", "History file of recent selections")
	cmd.Flags().BoolVarP(&caseInsensitive, "case-insensitive", "i", false, "Match case-insensitively")
	cmd.Flags().BoolVar(&single, "single", false, "Treat the query as one token")

	return cmd
}

// historyCmd manages the recent-selection log.
func (a *app) historyCmd() *cobra.Command {
	var histPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the history of recent selections",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if cmd.Flags().Changed("hist") {
				a.cfg.History.Path = histPath
			}
			if a.cfg.History.Path == "" {
				return fmt.Errorf("%w: set history.path in the config or pass --hist", history.ErrNoPath)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&histPath, "hist", "", "History file (default: history.path from the config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List remembered selections, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.historyStore()
			entries := store.Load()
			if len(entries) == 0 {
				a.out.Info("History is empty")
				return nil
			}
			for i, e := range entries {
				a.out.Numbered(i+1, e)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <text...>",
		Short: "Record a selection as if it had been picked",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.historyStore()
			store.Load()
			text := strings.Join(args, " ")
			if err := store.Record(text); err != nil {
				return err
			}
			a.out.Success("Recorded %q", text)
			return nil
		},
	})

	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every remembered selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.historyStore()
			if !force {
				n := len(store.Load())
				if n == 0 {
					a.out.Info("History is already empty")
					return nil
				}
				a.out.Warning("This removes %d entries from %s", n, store.Path())
				fmt.Fprint(os.Stderr, "Continue? [y/N]: ")
				var answer string
				fmt.Scanln(&answer)
				if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "y" && answer != "yes" {
					a.out.Info("Cancelled")
					return nil
				}
			}
			if err := store.Clear(); err != nil {
				return err
			}
			a.out.Done("History cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	cmd.AddCommand(clearCmd)

	return cmd
}

// configCmd writes and prints the configuration.
func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return errors.New("cannot determine the config path; pass --config")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; pass --force to overwrite", path)
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(path); err != nil {
				return err
			}
			if err := a.cfg.EnsureDirectories(); err != nil {
				return err
			}
			a.out.Success("Wrote %s", path)
			a.out.Tip("Set history.path to remember recent selections")
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := toml.NewEncoder(os.Stdout).Encode(a.cfg); err != nil {
				return fmt.Errorf("failed to encode config as TOML: %w", err)
			}
			return nil
		},
	})

	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.out.Header("pickline " + version)
			a.out.Line(fmt.Sprintf("Version:     %s", version))
			a.out.Line(fmt.Sprintf("Build Date:  %s", date))
			a.out.Line(fmt.Sprintf("Commit:      %s", commit))
			a.out.Line(fmt.Sprintf("OS/Arch:     %s/%s", runtime.GOOS, runtime.GOARCH))
			a.out.Line(fmt.Sprintf("Go Version:  %s", runtime.Version()))
			return nil
		},
	}
}
