package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YanChii/pcstopo/core/ensure"
	"github.com/YanChii/pcstopo/core/reconcile"
)

var (
	clusterState            string
	clusterNodeList         string
	clusterName             string
	clusterToken            int
	clusterTransport        string
	clusterTransportOptions string
	clusterAllowedChanges   string
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Ensure the cluster membership matches the desired node list.",
	RunE: func(_ *cobra.Command, _ []string) error {
		t := ensure.Cluster{
			State:              reconcile.State(clusterState),
			NodeList:           clusterNodeList,
			ClusterName:        clusterName,
			Token:              clusterToken,
			Transport:          clusterTransport,
			TransportOptions:   clusterTransportOptions,
			AllowedNodeChanges: reconcile.NodePolicy(clusterAllowedChanges),
			CheckMode:          checkFlag,
			Log:                &log,
		}
		res, err := t.Ensure()
		return report(res, err)
	},
}

func init() {
	flags := clusterCmd.Flags()
	flags.StringVar(&clusterState, "state", "present", "present or absent")
	flags.StringVar(&clusterNodeList, "node-list", "", "space separated list of nodes, each node as name[,ring1_addr[,ring2_addr]...]")
	flags.StringVar(&clusterName, "cluster-name", "", "pacemaker cluster name")
	flags.IntVar(&clusterToken, "token", 0, "totem token timeout in milliseconds")
	flags.StringVar(&clusterTransport, "transport", "default", "default, udp, udpu or knet")
	flags.StringVar(&clusterTransportOptions, "transport-options", "", "additional transport and link options, pcs 0.10 only")
	flags.StringVar(&clusterAllowedChanges, "allowed-node-changes", "none", "none, add or remove")
	rootCmd.AddCommand(clusterCmd)
}
