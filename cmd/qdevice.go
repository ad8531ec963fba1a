package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YanChii/pcstopo/core/ensure"
	"github.com/YanChii/pcstopo/core/reconcile"
)

var (
	qdeviceState          string
	qdeviceHost           string
	qdeviceAlgorithm      string
	qdeviceAllowedChanges string
)

var qdeviceCmd = &cobra.Command{
	Use:   "qdevice",
	Short: "Ensure the quorum device configuration matches the desired one.",
	RunE: func(_ *cobra.Command, _ []string) error {
		t := ensure.QDevice{
			State:                 reconcile.State(qdeviceState),
			Host:                  qdeviceHost,
			Algorithm:             qdeviceAlgorithm,
			AllowedQDeviceChanges: reconcile.QDevicePolicy(qdeviceAllowedChanges),
			CheckMode:             checkFlag,
			Log:                   &log,
		}
		res, err := t.Ensure()
		return report(res, err)
	},
}

func init() {
	flags := qdeviceCmd.Flags()
	flags.StringVar(&qdeviceState, "state", "present", "present or absent")
	flags.StringVar(&qdeviceHost, "qdevice", "", "quorum device host name or address")
	flags.StringVar(&qdeviceAlgorithm, "algorithm", "ffsplit", "ffsplit or lms")
	flags.StringVar(&qdeviceAllowedChanges, "allowed-qdevice-changes", "none", "none or update")
	rootCmd.AddCommand(qdeviceCmd)
}
