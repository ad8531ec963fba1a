// Package corosyncconf parses the corosync.conf block grammar:
//
//	section {
//	    key: value
//	    subsection {
//	        key: value
//	    }
//	}
//
// Parsing fails closed on unterminated blocks, stray closing braces and
// duplicate keys inside one section.
package corosyncconf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/YanChii/pcstopo/core/topology"
)

// DefaultPath is where corosync persists its configuration on EL 7+.
const DefaultPath = "/etc/corosync/corosync.conf"

type (
	// Section is a parsed configuration block. The parse root is an
	// unnamed section holding the top level blocks as children.
	Section struct {
		Name     string
		Keys     map[string]string
		Children []*Section
	}
)

var ErrParse = errors.New("corosync.conf parse error")

func parseError(line int, format string, a ...interface{}) error {
	return errors.Wrapf(ErrParse, "line %d: %s", line, fmt.Sprintf(format, a...))
}

// Parse reads the block grammar from r and returns the root section.
func Parse(r io.Reader) (*Section, error) {
	root := &Section{Keys: make(map[string]string)}
	stack := []*Section{root}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case line == "}":
			if len(stack) == 1 {
				return nil, parseError(lineno, "unbalanced '}'")
			}
			stack = stack[:len(stack)-1]
		case strings.HasSuffix(line, "{"):
			name := strings.TrimSpace(strings.TrimSuffix(line, "{"))
			if name == "" {
				return nil, parseError(lineno, "unnamed section")
			}
			child := &Section{Name: name, Keys: make(map[string]string)}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, child)
			stack = append(stack, child)
		case strings.Contains(line, ":"):
			k, v, _ := strings.Cut(line, ":")
			k = strings.TrimSpace(k)
			v = strings.TrimSpace(v)
			if k == "" {
				return nil, parseError(lineno, "empty key")
			}
			section := stack[len(stack)-1]
			if _, ok := section.Keys[k]; ok {
				return nil, parseError(lineno, "duplicate key '%s' in section '%s'", k, section.Name)
			}
			section.Keys[k] = v
		default:
			return nil, parseError(lineno, "unexpected token '%s'", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(stack) != 1 {
		return nil, parseError(lineno, "unterminated section '%s'", stack[len(stack)-1].Name)
	}
	return root, nil
}

// ParseFile parses the file at path.
func ParseFile(path string) (*Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Find returns all sections named name, walking the tree depth first.
func (s *Section) Find(name string) []*Section {
	l := make([]*Section, 0)
	for _, child := range s.Children {
		if child.Name == name {
			l = append(l, child)
		}
		l = append(l, child.Find(name)...)
	}
	return l
}

// Key returns the value of key in s or, depth first, in any descendant
// section of s.
func (s *Section) Key(key string) (string, bool) {
	if v, ok := s.Keys[key]; ok {
		return v, true
	}
	for _, child := range s.Children {
		if v, ok := child.Key(key); ok {
			return v, true
		}
	}
	return "", false
}

// Nodes extracts the cluster membership from the node sections. A node
// section without a ring0_addr key can not be identified and is
// skipped. Rings 1 to 7 are probed by index.
func Nodes(root *Section) (*topology.Cluster, error) {
	cluster := topology.NewCluster()
	for _, section := range root.Find("node") {
		ring0, ok := section.Keys["ring0_addr"]
		if !ok || ring0 == "" {
			continue
		}
		rings := make(map[int]string)
		for i := 1; i < topology.MaxRings; i++ {
			addr, ok := section.Keys[fmt.Sprintf("ring%d_addr", i)]
			if !ok || addr == "" {
				continue
			}
			rings[i] = addr
		}
		node, err := topology.NewNodeWithRings(ring0, rings)
		if err != nil {
			return nil, err
		}
		cluster.Add(node)
	}
	return cluster, nil
}

// QDevice extracts the quorum device record from the first device
// section, or nil when no quorum device is configured. The host and
// algorithm properties live in the net subsection on recent corosync
// releases, so key lookup descends into subsections.
func QDevice(root *Section) *topology.QDevice {
	devices := root.Find("device")
	if len(devices) == 0 {
		return nil
	}
	dev := devices[0]
	q := &topology.QDevice{}
	if v, ok := dev.Key("host"); ok {
		q.Host = v
	}
	if v, ok := dev.Key("algorithm"); ok {
		q.Algorithm = v
	}
	return q
}
