package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kungfusheep/laserctl/idn"
	"github.com/kungfusheep/laserctl/world"
)

var projectorCmd = &cobra.Command{
	Use:   "projector",
	Short: "Manage registered projectors",
}

var (
	addHost string
	addPort int
	addZone string
)

var projectorAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Register a new projector (id is generated if omitted)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		if id == "" {
			id = uuid.NewString()
		}
		port := addPort
		if port <= 0 {
			port = idn.DefaultPort
		}
		var zones []string
		if addZone != "" {
			zones = []string{addZone}
		}
		store.Mutate(func(snap *world.Snapshot) {
			snap.Projectors[id] = world.Projector{
				ID:         id,
				Name:       id,
				Host:       addHost,
				Port:       port,
				Enabled:    true,
				Output:     world.OutputConfigRef{ColorBits: 8, XYBits: 16},
				ZoneGroups: zones,
			}
		})
		sup.Reconcile()
		printMessage("projector %s added at %s:%d", id, addHost, port)
	},
}

var projectorRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a registered projector",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		store.Mutate(func(snap *world.Snapshot) {
			delete(snap.Projectors, id)
		})
		sup.Reconcile()
		printMessage("projector %s removed", id)
	},
}

var projectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projectors",
	Run: func(cmd *cobra.Command, args []string) {
		snap := store.Load()
		if jsonOutput {
			printJSON(snap.Projectors)
			return
		}
		if len(snap.Projectors) == 0 {
			printMessage("no projectors registered")
			return
		}
		for id, p := range snap.Projectors {
			printMessage("%s: %s:%d enabled=%v zones=%v", id, p.Host, p.Port, p.Enabled, p.ZoneGroups)
		}
	},
}

func init() {
	projectorAddCmd.Flags().StringVar(&addHost, "host", "", "projector IP address or hostname")
	projectorAddCmd.Flags().IntVar(&addPort, "port", 0, "UDP port (default 7255)")
	projectorAddCmd.Flags().StringVar(&addZone, "zone", "", "zone group this projector belongs to")
	projectorAddCmd.MarkFlagRequired("host")

	projectorCmd.AddCommand(projectorAddCmd, projectorRemoveCmd, projectorListCmd)
	rootCmd.AddCommand(projectorCmd)
}
