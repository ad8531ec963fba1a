// Package cib reads the pacemaker cluster information base and scans
// its fencing topology.
package cib

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// DefaultPath exists on clusters that were started at least once.
const DefaultPath = "/var/lib/pacemaker/cib/cib.xml"

type (
	// FencingLevel is one fencing-level record of the CIB fencing
	// topology. Index, Target and Devices are the record identity,
	// ID is the internal CIB identifier, kept for reporting only.
	FencingLevel struct {
		ID      string
		Index   string
		Target  string
		Devices string
	}
)

// Match reports whether the record identity is exactly the given level,
// target and devices triple.
func (f FencingLevel) Match(level int, target, devices string) bool {
	return f.Index == strconv.Itoa(level) && f.Target == target && f.Devices == devices
}

// Parse parses a CIB XML document.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	return xmlquery.Parse(r)
}

// ParseString parses a CIB XML document from a string, typically the
// output of a live configuration dump.
func ParseString(s string) (*xmlquery.Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the CIB XML document at path.
func ParseFile(path string) (*xmlquery.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// FencingLevels returns every fencing-level record found at the fixed
// configuration/fencing-topology/fencing-level path of the document.
func FencingLevels(doc *xmlquery.Node) ([]FencingLevel, error) {
	levels := make([]FencingLevel, 0)
	es, err := xmlquery.QueryAll(doc, "//configuration/fencing-topology/fencing-level")
	if err != nil {
		return nil, err
	}
	for _, e := range es {
		levels = append(levels, FencingLevel{
			ID:      e.SelectAttr("id"),
			Index:   e.SelectAttr("index"),
			Target:  e.SelectAttr("target"),
			Devices: e.SelectAttr("devices"),
		})
	}
	return levels, nil
}
