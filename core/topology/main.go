// Package topology models the membership facet of a pacemaker/corosync
// cluster: nodes with their redundant ring addresses, and the quorum
// device record.
package topology

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/YanChii/pcstopo/util/stringslice"
	"github.com/YanChii/pcstopo/util/xmap"
)

// MaxRings is the number of communication rings corosync supports per
// node. Ring indexes are 0 to MaxRings-1.
const MaxRings = 8

type (
	// Node is one cluster member. The ring 0 address is the node
	// identity, so Ring(0) is always configured and equal to Name().
	// Rings 1 to 7 are each optional. Nodes are built fresh by each
	// parse and never mutated afterwards.
	Node struct {
		name  string
		rings [MaxRings]string
	}

	// Cluster is a set of nodes keyed by node name.
	Cluster struct {
		nodes map[string]Node
	}

	// QDevice is the quorum device configuration. An empty field means
	// the property is not configured.
	QDevice struct {
		Host      string
		Algorithm string
	}
)

var (
	ErrEmptyNodeName = errors.New("empty node name")
	ErrTooManyRings  = errors.Errorf("more than %d ring addresses", MaxRings)
)

// Algorithms are the quorum device algorithms corosync-qdevice accepts.
var Algorithms = []string{"ffsplit", "lms"}

// NewNode returns a node with its ring 0 address set to name and rings
// 1..N set from extra, in order.
func NewNode(name string, extra ...string) (Node, error) {
	if name == "" {
		return Node{}, ErrEmptyNodeName
	}
	if 1+len(extra) > MaxRings {
		return Node{}, errors.Wrap(ErrTooManyRings, name)
	}
	n := Node{name: name}
	n.rings[0] = name
	for i, addr := range extra {
		if addr == "" {
			return Node{}, errors.Errorf("%s: empty ring%d address", name, i+1)
		}
		n.rings[i+1] = addr
	}
	return n, nil
}

// NewNodeWithRings returns a node with ring 0 set to name and the other
// rings set from the index to address mapping. Indexes outside 1 to
// MaxRings-1 are rejected.
func NewNodeWithRings(name string, rings map[int]string) (Node, error) {
	if name == "" {
		return Node{}, ErrEmptyNodeName
	}
	n := Node{name: name}
	n.rings[0] = name
	for i, addr := range rings {
		if i < 1 || i >= MaxRings {
			return Node{}, errors.Errorf("%s: ring index %d out of range", name, i)
		}
		if addr == "" {
			return Node{}, errors.Errorf("%s: empty ring%d address", name, i)
		}
		n.rings[i] = addr
	}
	return n, nil
}

func (n Node) Name() string {
	return n.name
}

// Ring returns the address on ring i and true if the ring is configured.
func (n Node) Ring(i int) (string, bool) {
	if i < 0 || i >= MaxRings || n.rings[i] == "" {
		return "", false
	}
	return n.rings[i], true
}

// RingCount returns the number of configured rings.
func (n Node) RingCount() int {
	count := 0
	for _, addr := range n.rings {
		if addr != "" {
			count++
		}
	}
	return count
}

// Addrs returns the configured ring addresses in ring index order.
func (n Node) Addrs() []string {
	l := make([]string, 0, MaxRings)
	for _, addr := range n.rings {
		if addr != "" {
			l = append(l, addr)
		}
	}
	return l
}

func (n Node) Equal(o Node) bool {
	return n.rings == o.rings
}

func NewCluster() *Cluster {
	return &Cluster{nodes: make(map[string]Node)}
}

// Add inserts a node. A node with the same name is replaced, so
// duplicate names in the input are deduplicated.
func (c *Cluster) Add(n Node) {
	c.nodes[n.Name()] = n
}

func (c *Cluster) Has(name string) bool {
	_, ok := c.nodes[name]
	return ok
}

func (c *Cluster) Node(name string) (Node, bool) {
	n, ok := c.nodes[name]
	return n, ok
}

func (c *Cluster) Len() int {
	return len(c.nodes)
}

// Names returns the sorted node name set.
func (c *Cluster) Names() []string {
	l := xmap.Keys(c.nodes)
	sort.Strings(l)
	return l
}

// Equal reports whether both clusters have the same node name set. Ring
// addresses beyond ring 0 are not part of the membership identity.
func (c *Cluster) Equal(o *Cluster) bool {
	return stringslice.Equal(c.Names(), o.Names())
}

// Diff returns the sorted node names present in c and missing from o.
func (c *Cluster) Diff(o *Cluster) []string {
	l := make([]string, 0)
	for name := range c.nodes {
		if !o.Has(name) {
			l = append(l, name)
		}
	}
	sort.Strings(l)
	return l
}

// Equal reports whether host and algorithm both match.
func (q QDevice) Equal(o QDevice) bool {
	return q.Host == o.Host && q.Algorithm == o.Algorithm
}

// IsValidAlgorithm returns true if s is a supported quorum device
// algorithm.
func IsValidAlgorithm(s string) bool {
	return stringslice.Has(s, Algorithms)
}
