package cib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCIB = `<cib crm_feature_set="3.4.1" validate-with="pacemaker-3.4" epoch="10" num_updates="0">
  <configuration>
    <crm_config/>
    <nodes>
      <node id="1" uname="node-a"/>
      <node id="2" uname="node-b"/>
    </nodes>
    <resources/>
    <constraints/>
    <fencing-topology>
      <fencing-level devices="fence_kdump" id="fl-node-a-1" index="1" target="node-a"/>
      <fencing-level devices="fence_xvm" id="fl-node-a-2" index="2" target="node-a"/>
    </fencing-topology>
  </configuration>
  <status/>
</cib>
`

func TestFencingLevels(t *testing.T) {
	t.Run("records are read from the fixed path", func(t *testing.T) {
		doc, err := ParseString(sampleCIB)
		require.NoError(t, err)
		levels, err := FencingLevels(doc)
		require.NoError(t, err)
		require.Len(t, levels, 2)
		assert.Equal(t, FencingLevel{ID: "fl-node-a-1", Index: "1", Target: "node-a", Devices: "fence_kdump"}, levels[0])
		assert.Equal(t, FencingLevel{ID: "fl-node-a-2", Index: "2", Target: "node-a", Devices: "fence_xvm"}, levels[1])
	})
	t.Run("no fencing topology yields an empty list", func(t *testing.T) {
		doc, err := ParseString(`<cib><configuration/></cib>`)
		require.NoError(t, err)
		levels, err := FencingLevels(doc)
		require.NoError(t, err)
		assert.Empty(t, levels)
	})
}

func TestMatch(t *testing.T) {
	l := FencingLevel{ID: "x", Index: "1", Target: "node-a", Devices: "fence_xvm"}
	assert.True(t, l.Match(1, "node-a", "fence_xvm"))
	assert.False(t, l.Match(1, "node-a", "fence_kdump"))
	assert.False(t, l.Match(2, "node-a", "fence_xvm"))
	assert.False(t, l.Match(1, "node-b", "fence_xvm"))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cib.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCIB), 0o644))
	doc, err := ParseFile(path)
	require.NoError(t, err)
	levels, err := FencingLevels(doc)
	require.NoError(t, err)
	assert.Len(t, levels, 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}
