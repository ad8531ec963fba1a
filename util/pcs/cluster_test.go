package pcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YanChii/pcstopo/core/topology"
)

func clusterOf(t *testing.T, tokens ...[]string) *topology.Cluster {
	t.Helper()
	c := topology.NewCluster()
	for _, token := range tokens {
		n, err := topology.NewNode(token[0], token[1:]...)
		require.NoError(t, err)
		c.Add(n)
	}
	return c
}

func TestSetupCommand09(t *testing.T) {
	t.Run("plain node names", func(t *testing.T) {
		cmd, err := SetupCommand(Dialect09, SetupRequest{
			ClusterName: "test-cluster",
			Cluster:     clusterOf(t, []string{"node1"}, []string{"node2"}),
		})
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster setup --name test-cluster node1 node2", cmd)
	})
	t.Run("redundant rings inline, token and transport flags", func(t *testing.T) {
		cmd, err := SetupCommand(Dialect09, SetupRequest{
			ClusterName: "test-cluster",
			Cluster:     clusterOf(t, []string{"node1", "192.168.1.11"}, []string{"node2", "192.168.1.12"}),
			Token:       5000,
			Transport:   "udpu",
		})
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster setup --name test-cluster node1,192.168.1.11 node2,192.168.1.12 --token 5000 --transport udpu", cmd)
	})
	t.Run("transport options are always rejected", func(t *testing.T) {
		_, err := SetupCommand(Dialect09, SetupRequest{
			ClusterName:      "test-cluster",
			Cluster:          clusterOf(t, []string{"node1"}),
			Transport:        "udp",
			TransportOptions: "link_mode=passive",
		})
		assert.ErrorIs(t, err, ErrTransportOptions09)
	})
}

func TestSetupCommand010(t *testing.T) {
	t.Run("plain node names", func(t *testing.T) {
		cmd, err := SetupCommand(Dialect010, SetupRequest{
			ClusterName: "test-cluster",
			Cluster:     clusterOf(t, []string{"node1"}, []string{"node2"}),
		})
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster setup test-cluster node1 node2", cmd)
	})
	t.Run("multi link rewrites every node to the addr form", func(t *testing.T) {
		cmd, err := SetupCommand(Dialect010, SetupRequest{
			ClusterName: "test-cluster",
			Cluster:     clusterOf(t, []string{"node1", "192.168.1.11"}, []string{"node2"}),
		})
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster setup test-cluster node1 addr=node1 addr=192.168.1.11 node2 addr=node2", cmd)
	})
	t.Run("token, transport and options clauses", func(t *testing.T) {
		cmd, err := SetupCommand(Dialect010, SetupRequest{
			ClusterName:      "test-cluster",
			Cluster:          clusterOf(t, []string{"node1"}),
			Token:            5000,
			Transport:        "knet",
			TransportOptions: "link_mode=passive",
		})
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster setup test-cluster node1 token 5000 transport knet link_mode=passive", cmd)
	})
	t.Run("options without a non default transport are rejected", func(t *testing.T) {
		for _, transport := range []string{"", TransportDefault} {
			_, err := SetupCommand(Dialect010, SetupRequest{
				ClusterName:      "test-cluster",
				Cluster:          clusterOf(t, []string{"node1"}),
				Transport:        transport,
				TransportOptions: "link_mode=passive",
			})
			assert.ErrorIs(t, err, ErrTransportOptionsWithoutTransport)
		}
	})
}

func TestSetupCommandUnknownDialect(t *testing.T) {
	_, err := SetupCommand(Dialect("0.11"), SetupRequest{
		ClusterName: "test-cluster",
		Cluster:     clusterOf(t, []string{"node1"}),
	})
	var uerr *UnsupportedVersionError
	assert.ErrorAs(t, err, &uerr)
}

func TestNodeAddCommand(t *testing.T) {
	t.Run("0.9 bare node", func(t *testing.T) {
		n, err := topology.NewNode("node3")
		require.NoError(t, err)
		cmd, err := NodeAddCommand(Dialect09, n)
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster node add node3", cmd)
	})
	t.Run("0.9 renders only the second ring", func(t *testing.T) {
		n, err := topology.NewNode("node3", "192.168.1.13", "192.168.2.13")
		require.NoError(t, err)
		cmd, err := NodeAddCommand(Dialect09, n)
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster node add node3,192.168.1.13", cmd)
	})
	t.Run("0.10 addr form when more than one ring", func(t *testing.T) {
		n, err := topology.NewNode("node3", "192.168.1.13")
		require.NoError(t, err)
		cmd, err := NodeAddCommand(Dialect010, n)
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster node add node3 addr=node3 addr=192.168.1.13", cmd)
	})
	t.Run("0.10 bare node", func(t *testing.T) {
		n, err := topology.NewNode("node3")
		require.NoError(t, err)
		cmd, err := NodeAddCommand(Dialect010, n)
		require.NoError(t, err)
		assert.Equal(t, "pcs cluster node add node3", cmd)
	})
}

func TestNodeRemoveCommand(t *testing.T) {
	assert.Equal(t, "pcs cluster node remove node2", NodeRemoveCommand("node2"))
}

func TestDestroyCommand(t *testing.T) {
	assert.Equal(t, "pcs cluster destroy", DestroyCommand())
}

func TestIsValidTransport(t *testing.T) {
	for _, s := range []string{"default", "udp", "udpu", "knet"} {
		assert.True(t, IsValidTransport(s))
	}
	assert.False(t, IsValidTransport("sctp"))
}
