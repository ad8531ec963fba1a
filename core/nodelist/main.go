// Package nodelist normalizes the caller supplied node list into a
// cluster topology. The input is a whitespace separated list of tokens,
// each token comma joined as primary[,ring1][,ring2]...
package nodelist

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/YanChii/pcstopo/core/topology"
)

// Parse returns the cluster topology described by s. The first comma
// field of each token is the node name and ring 0 address, the
// following fields are the ring 1..N addresses in order. Duplicate node
// names are deduplicated, last one wins. An empty input yields an empty
// topology, callers requiring a non empty desired state must validate
// upstream.
func Parse(s string) (*topology.Cluster, error) {
	cluster := topology.NewCluster()
	for _, token := range strings.Fields(s) {
		fields := strings.Split(token, ",")
		node, err := topology.NewNode(fields[0], fields[1:]...)
		if err != nil {
			return nil, errors.Wrapf(err, "node list token '%s'", token)
		}
		cluster.Add(node)
	}
	return cluster, nil
}

// HasRingAddrs returns true when any token of s carries an explicit
// ring address beyond the node name.
func HasRingAddrs(s string) bool {
	return strings.Contains(s, ",")
}
