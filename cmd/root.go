// Package cmd implements the laserctl CLI with github.com/spf13/cobra,
// generalized from the teacher's Hue CLI: the same PersistentPreRun-driven
// shared-state init, --json/--quiet persistent flags, and printJSON/
// printMessage/printError output helpers (cmd/root.go in the teacher),
// rebuilt around a world.Store + supervisor.Supervisor instead of a Hue
// bridge client.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kungfusheep/laserctl/clock"
	"github.com/kungfusheep/laserctl/fx"
	"github.com/kungfusheep/laserctl/presets"
	"github.com/kungfusheep/laserctl/supervisor"
	"github.com/kungfusheep/laserctl/world"
)

var (
	// Global flags
	jsonOutput bool
	quiet      bool

	// Shared core state, built once in PersistentPreRun.
	store      *world.Store
	registry   *fx.Registry
	presetReg  *presets.Registry
	sup        *supervisor.Supervisor
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "laserctl",
	Short: "CLI for controlling a laser-show streaming core",
	Long: `laserctl drives the real-time output core of a laser-show control
system: it loads/holds a world snapshot (projectors, zones, cue chains),
and starts/stops per-projector Streaming Engines that emit IDN-Hello /
IDN-Stream UDP packets at a fixed frame rate.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "help" {
			return
		}
		initializeCore()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initializeCore builds the shared world.Store, effect registry, preset
// registry, and supervisor used by every subcommand.
func initializeCore() {
	if store != nil {
		return
	}
	store = world.NewStore()
	registry = fx.NewRegistry()
	presetReg = presets.NewRegistry()
	sup = supervisor.New(store, presetReg, registry, clock.System{}, clock.System{}.NowMs)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
}

func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		printError("failed to marshal JSON: %v", err)
		return
	}
	fmt.Println(string(jsonData))
}

func printMessage(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
