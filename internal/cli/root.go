// Package cli provides the agl diagnostic command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	agl "github.com/agl-team/agl-go"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configPath string
	playerID   string
	verbose    bool

	// SDK client built in PersistentPreRunE
	cfg agl.Config
	sdk *agl.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "agl",
	Short: "Diagnostic CLI for the AGL companion services",
	Long: `agl drives the AGL Go SDK against live emotion, dialogue, and memory
services. It is meant for poking at a deployment from the shell: report a
game event, generate an NPC line, or inspect a player's stored memories.

Configuration comes from AGL_* environment variables, optionally layered
over a YAML config file (--config).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = agl.LoadConfigFile(configPath)
			if err != nil {
				return err
			}
		} else {
			cfg = agl.LoadConfig()
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, _ := agl.SetupLogger(cfg.LogFile, cfg.LogLevel)

		sdk = agl.New(cfg, logger)
		if !sdk.IsInitialized() {
			return fmt.Errorf("AGL_API_KEY is not set")
		}
		if playerID != "" {
			sdk.SetPlayerID(playerID)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&playerID, "player", "p", "", "player ID for memory-backed operations")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and per-call stats")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(dialogueCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the SDK version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agl %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// await blocks the CLI until the async completion fires. The transport
// timeout bounds the wait; the extra grace covers dispatch overhead.
func await(done <-chan struct{}) error {
	grace := time.Duration(cfg.TimeoutSeconds*float64(time.Second)) + 5*time.Second
	select {
	case <-done:
		return nil
	case <-time.After(grace):
		return fmt.Errorf("operation did not complete within %s", grace)
	}
}

// parseKV turns repeated key=value flags into a map.
func parseKV(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid key=value pair %q", p)
		}
		m[k] = v
	}
	return m, nil
}

// eventFromFlag accepts either the wire form ("player.victory") or the short
// form ("victory").
func eventFromFlag(s string) (agl.EventType, error) {
	if e, ok := agl.ParseEventType(s); ok {
		return e, nil
	}
	if e, ok := agl.ParseEventType("player." + strings.ToLower(s)); ok {
		return e, nil
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// printStats prints the per-invocation operation stats when --verbose is set.
func printStats() {
	if !verbose || sdk == nil {
		return
	}
	snap := sdk.Stats()
	for name, op := range snap.Operations {
		fmt.Println(hintStyle().Render(fmt.Sprintf(
			"%s: %d call(s), %d failed, avg %.0fms (min %dms, max %dms)",
			name, op.Count, op.Failures, op.AvgMs, op.MinMs, op.MaxMs)))
	}
}
