package cmd

import "github.com/spf13/cobra"

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report per-projector Streaming Engine stats",
	Run: func(cmd *cobra.Command, args []string) {
		stats := sup.Stats()
		if jsonOutput {
			printJSON(stats)
			return
		}
		if len(stats) == 0 {
			printMessage("no engines running")
			return
		}
		for id, s := range stats {
			printMessage("%s: frames_sent=%d actual_fps=%.1f degraded=%v last_error=%q",
				id, s.FramesSent, s.ActualFPS, s.Degraded, s.LastError)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
