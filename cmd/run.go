package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kungfusheep/laserctl/world"
)

var runCue string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start every enabled projector's Streaming Engine and block until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		if runCue != "" {
			store.Mutate(func(snap *world.Snapshot) {
				cell := world.CellAddr{Col: 0, Row: 0}
				snap.CueChains[cell] = world.CueChain{
					Items: []world.CueItem{{PresetID: runCue, Enabled: true}},
				}
				snap.Playback.Playing = true
				snap.Playback.ActiveCell = &cell
			})
		}

		sup.StartAll()
		printMessage("engines started, press Ctrl+C to stop")

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		printMessage("stopping engines...")
		sup.StopAll()
	},
}

func init() {
	runCmd.Flags().StringVar(&runCue, "preset", "", "built-in preset to play on cell (0,0) immediately")
	rootCmd.AddCommand(runCmd)
}
