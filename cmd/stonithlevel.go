package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YanChii/pcstopo/core/ensure"
	"github.com/YanChii/pcstopo/core/reconcile"
)

var (
	stonithState   string
	stonithLevel   int
	stonithNode    string
	stonithDevice  string
	stonithCIBFile string
)

var stonithLevelCmd = &cobra.Command{
	Use:   "stonith-level",
	Short: "Ensure a fencing level triple exists or not in the cluster fencing topology.",
	RunE: func(_ *cobra.Command, _ []string) error {
		t := ensure.StonithLevel{
			State:         reconcile.State(stonithState),
			Level:         stonithLevel,
			NodeName:      stonithNode,
			StonithDevice: stonithDevice,
			CIBFile:       stonithCIBFile,
			CheckMode:     checkFlag,
			Log:           &log,
		}
		res, err := t.Ensure()
		return report(res, err)
	},
}

func init() {
	flags := stonithLevelCmd.Flags()
	flags.StringVar(&stonithState, "state", "present", "present or absent")
	flags.IntVar(&stonithLevel, "level", 0, "fencing level, 1 to 9")
	flags.StringVar(&stonithNode, "node-name", "", "cluster node this level applies to")
	flags.StringVar(&stonithDevice, "stonith-device", "", "existing stonith device name")
	flags.StringVar(&stonithCIBFile, "cib-file", "", "apply to this CIB snapshot file instead of the running cluster")
	rootCmd.AddCommand(stonithLevelCmd)
}
