package corosyncconf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleConf = `
# Created by pcs
totem {
    version: 2
    cluster_name: test-cluster
    transport: knet
}

nodelist {
    node {
        ring0_addr: node1.example.com
        ring1_addr: 192.168.1.11
        name: node1.example.com
        nodeid: 1
    }

    node {
        ring0_addr: node2.example.com
        name: node2.example.com
        nodeid: 2
    }
}

quorum {
    provider: corosync_votequorum
    device {
        model: net
        votes: 1
        net {
            tls: on
            host: qnetd.example.com
            algorithm: ffsplit
        }
    }
}
`

func TestParse(t *testing.T) {
	t.Run("sections and keys", func(t *testing.T) {
		root, err := Parse(strings.NewReader(sampleConf))
		require.NoError(t, err)
		totems := root.Find("totem")
		require.Len(t, totems, 1)
		assert.Equal(t, "test-cluster", totems[0].Keys["cluster_name"])
		assert.Len(t, root.Find("node"), 2)
	})
	t.Run("no node blocks is not an error", func(t *testing.T) {
		root, err := Parse(strings.NewReader("totem {\n    version: 2\n}\n"))
		require.NoError(t, err)
		cluster, err := Nodes(root)
		require.NoError(t, err)
		assert.Equal(t, 0, cluster.Len())
	})
	t.Run("empty input", func(t *testing.T) {
		root, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Len(t, root.Children, 0)
	})
	t.Run("unterminated section fails closed", func(t *testing.T) {
		_, err := Parse(strings.NewReader("totem {\n    version: 2\n"))
		assert.ErrorIs(t, err, ErrParse)
	})
	t.Run("unbalanced closing brace fails closed", func(t *testing.T) {
		_, err := Parse(strings.NewReader("}\n"))
		assert.ErrorIs(t, err, ErrParse)
	})
	t.Run("duplicate key in one section fails closed", func(t *testing.T) {
		_, err := Parse(strings.NewReader("totem {\n    version: 2\n    version: 3\n}\n"))
		assert.ErrorIs(t, err, ErrParse)
	})
	t.Run("same key in different sections is fine", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a {\n    k: 1\n}\nb {\n    k: 2\n}\n"))
		assert.NoError(t, err)
	})
	t.Run("garbage line fails closed", func(t *testing.T) {
		_, err := Parse(strings.NewReader("totem {\n    what is this\n}\n"))
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestParseIdempotence(t *testing.T) {
	a, err := Parse(strings.NewReader(sampleConf))
	require.NoError(t, err)
	b, err := Parse(strings.NewReader(sampleConf))
	require.NoError(t, err)
	ca, err := Nodes(a)
	require.NoError(t, err)
	cb, err := Nodes(b)
	require.NoError(t, err)
	assert.True(t, ca.Equal(cb))
	for _, name := range ca.Names() {
		na, _ := ca.Node(name)
		nb, _ := cb.Node(name)
		assert.True(t, na.Equal(nb))
	}
}

func TestNodes(t *testing.T) {
	t.Run("ring addresses", func(t *testing.T) {
		root, err := Parse(strings.NewReader(sampleConf))
		require.NoError(t, err)
		cluster, err := Nodes(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"node1.example.com", "node2.example.com"}, cluster.Names())
		n1, ok := cluster.Node("node1.example.com")
		require.True(t, ok)
		addr, ok := n1.Ring(1)
		assert.True(t, ok)
		assert.Equal(t, "192.168.1.11", addr)
		n2, ok := cluster.Node("node2.example.com")
		require.True(t, ok)
		assert.Equal(t, 1, n2.RingCount())
	})
	t.Run("node without ring0_addr is skipped", func(t *testing.T) {
		conf := "nodelist {\n    node {\n        nodeid: 1\n    }\n    node {\n        ring0_addr: node2\n    }\n}\n"
		root, err := Parse(strings.NewReader(conf))
		require.NoError(t, err)
		cluster, err := Nodes(root)
		require.NoError(t, err)
		assert.Equal(t, []string{"node2"}, cluster.Names())
	})
}

func TestQDevice(t *testing.T) {
	t.Run("host and algorithm from the net subsection", func(t *testing.T) {
		root, err := Parse(strings.NewReader(sampleConf))
		require.NoError(t, err)
		q := QDevice(root)
		require.NotNil(t, q)
		assert.Equal(t, "qnetd.example.com", q.Host)
		assert.Equal(t, "ffsplit", q.Algorithm)
	})
	t.Run("flat device section", func(t *testing.T) {
		conf := "quorum {\n    device {\n        host: qd\n        algorithm: lms\n    }\n}\n"
		root, err := Parse(strings.NewReader(conf))
		require.NoError(t, err)
		q := QDevice(root)
		require.NotNil(t, q)
		assert.Equal(t, "qd", q.Host)
		assert.Equal(t, "lms", q.Algorithm)
	})
	t.Run("no device section", func(t *testing.T) {
		root, err := Parse(strings.NewReader(sampleConf[:strings.Index(sampleConf, "quorum")]))
		require.NoError(t, err)
		assert.Nil(t, QDevice(root))
	})
	t.Run("missing subfields stay undetected", func(t *testing.T) {
		conf := "quorum {\n    device {\n        model: net\n    }\n}\n"
		root, err := Parse(strings.NewReader(conf))
		require.NoError(t, err)
		q := QDevice(root)
		require.NotNil(t, q)
		assert.Equal(t, "", q.Host)
		assert.Equal(t, "", q.Algorithm)
	})
}
