package pcs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/YanChii/pcstopo/core/topology"
	"github.com/YanChii/pcstopo/util/stringslice"
)

type (
	// SetupRequest carries the cluster bootstrap parameters.
	SetupRequest struct {
		ClusterName string
		Cluster     *topology.Cluster
		// Token is the totem token timeout in milliseconds, 0 leaves
		// the corosync default.
		Token int
		// Transport is default, udp, udpu or knet. The default value
		// lets the tool pick the distribution default.
		Transport string
		// TransportOptions is the raw transport and link option
		// clause, pcs 0.10 only, and only together with a non default
		// Transport.
		TransportOptions string
	}
)

const TransportDefault = "default"

// Transports are the values accepted for SetupRequest.Transport.
var Transports = []string{TransportDefault, "udp", "udpu", "knet"}

var (
	ErrTransportOptions09               = errors.New("using transport_options is not supported with pcs 0.9")
	ErrTransportOptionsWithoutTransport = errors.New("option transport_options must not be used without option transport")
)

// IsValidTransport returns true if s is an accepted transport value.
func IsValidTransport(s string) bool {
	return stringslice.Has(s, Transports)
}

// SetupCommand renders the cluster bootstrap command for the dialect.
func SetupCommand(d Dialect, req SetupRequest) (string, error) {
	switch d {
	case Dialect09:
		return setupCommand09(req)
	case Dialect010:
		return setupCommand010(req)
	default:
		return "", &UnsupportedVersionError{Version: string(d)}
	}
}

// setupCommand09 renders the pcs 0.9 combined creation command. Nodes
// are flat space joined, redundant rings inline as name,ring1. Per link
// addressing options do not exist in this dialect.
func setupCommand09(req SetupRequest) (string, error) {
	if req.TransportOptions != "" {
		return "", ErrTransportOptions09
	}
	args := []string{"pcs", "cluster", "setup", "--name", req.ClusterName}
	for _, name := range req.Cluster.Names() {
		node, _ := req.Cluster.Node(name)
		args = append(args, strings.Join(node.Addrs(), ","))
	}
	if req.Token > 0 {
		args = append(args, "--token", fmt.Sprint(req.Token))
	}
	if req.Transport != TransportDefault && req.Transport != "" {
		args = append(args, "--transport", req.Transport)
	}
	return strings.Join(args, " "), nil
}

// setupCommand010 renders the pcs 0.10 creation command. When any node
// carries more than one ring, every node is rendered in the repeated
// addr= form, ring 0 included.
func setupCommand010(req SetupRequest) (string, error) {
	if req.TransportOptions != "" && (req.Transport == TransportDefault || req.Transport == "") {
		return "", ErrTransportOptionsWithoutTransport
	}
	multiLink := false
	for _, name := range req.Cluster.Names() {
		node, _ := req.Cluster.Node(name)
		if node.RingCount() > 1 {
			multiLink = true
			break
		}
	}
	args := []string{"pcs", "cluster", "setup", req.ClusterName}
	for _, name := range req.Cluster.Names() {
		node, _ := req.Cluster.Node(name)
		args = append(args, name)
		if !multiLink {
			continue
		}
		for _, addr := range node.Addrs() {
			args = append(args, "addr="+addr)
		}
	}
	if req.Token > 0 {
		args = append(args, "token", fmt.Sprint(req.Token))
	}
	if req.Transport != TransportDefault && req.Transport != "" {
		args = append(args, "transport", req.Transport)
	}
	if req.TransportOptions != "" {
		args = append(args, req.TransportOptions)
	}
	return strings.Join(args, " "), nil
}

// NodeAddCommand renders the single node addition command. The 0.9
// dialect supports at most one redundant ring, rendered inline as
// name,ring1, further rings are a documented dialect limitation and are
// not rendered.
func NodeAddCommand(d Dialect, node topology.Node) (string, error) {
	switch d {
	case Dialect09:
		if ring1, ok := node.Ring(1); ok {
			return "pcs cluster node add " + node.Name() + "," + ring1, nil
		}
		return "pcs cluster node add " + node.Name(), nil
	case Dialect010:
		if node.RingCount() > 1 {
			args := []string{"pcs", "cluster", "node", "add", node.Name()}
			for _, addr := range node.Addrs() {
				args = append(args, "addr="+addr)
			}
			return strings.Join(args, " "), nil
		}
		return "pcs cluster node add " + node.Name(), nil
	default:
		return "", &UnsupportedVersionError{Version: string(d)}
	}
}

// NodeRemoveCommand renders the single node removal command.
func NodeRemoveCommand(name string) string {
	return "pcs cluster node remove " + name
}

// DestroyCommand renders the local cluster teardown command.
func DestroyCommand() string {
	return "pcs cluster destroy"
}

// ClusterCIBCommand renders the live configuration dump command.
func ClusterCIBCommand() string {
	return "pcs cluster cib"
}
