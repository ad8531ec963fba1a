package pcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls    []string
	exitCode int
	stdout   string
	stderr   string
	err      error
}

func (r *fakeRunner) Run(cmdline string) (int, string, string, error) {
	r.calls = append(r.calls, cmdline)
	return r.exitCode, r.stdout, r.stderr, r.err
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("0.9")
	require.NoError(t, err)
	assert.Equal(t, Dialect09, d)
	d, err = ParseDialect("0.10")
	require.NoError(t, err)
	assert.Equal(t, Dialect010, d)
	_, err = ParseDialect("0.11")
	var uerr *UnsupportedVersionError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Error(), "0.11")
}

func TestDetectDialect(t *testing.T) {
	t.Run("0.10 release", func(t *testing.T) {
		r := &fakeRunner{stdout: "0.10.8\n"}
		d, err := DetectDialect(r)
		require.NoError(t, err)
		assert.Equal(t, Dialect010, d)
		assert.Equal(t, []string{"pcs --version"}, r.calls)
	})
	t.Run("0.9 release", func(t *testing.T) {
		r := &fakeRunner{stdout: "0.9.169"}
		d, err := DetectDialect(r)
		require.NoError(t, err)
		assert.Equal(t, Dialect09, d)
	})
	t.Run("unsupported release", func(t *testing.T) {
		r := &fakeRunner{stdout: "0.11.3"}
		_, err := DetectDialect(r)
		var uerr *UnsupportedVersionError
		assert.ErrorAs(t, err, &uerr)
	})
	t.Run("version query failure", func(t *testing.T) {
		r := &fakeRunner{exitCode: 127, stderr: "pcs: not found"}
		_, err := DetectDialect(r)
		assert.Error(t, err)
	})
	t.Run("garbage version output", func(t *testing.T) {
		r := &fakeRunner{stdout: "not a version"}
		_, err := DetectDialect(r)
		assert.Error(t, err)
	})
}

func TestQDeviceCommands(t *testing.T) {
	cmd, err := QDeviceAddCommand(Dialect010, "qnetd.example.com", "ffsplit")
	require.NoError(t, err)
	assert.Equal(t, "pcs quorum device add model net host=qnetd.example.com algorithm=ffsplit", cmd)

	cmd, err = QDeviceUpdateCommand(Dialect010, "qnetd.example.com", "lms")
	require.NoError(t, err)
	assert.Equal(t, "pcs quorum device update model host=qnetd.example.com algorithm=lms", cmd)

	cmd, err = QDeviceRemoveCommand(Dialect010)
	require.NoError(t, err)
	assert.Equal(t, "pcs quorum device remove", cmd)

	// the qdevice facet does not exist in the 0.9 dialect
	var uerr *UnsupportedVersionError
	_, err = QDeviceAddCommand(Dialect09, "qnetd", "ffsplit")
	assert.ErrorAs(t, err, &uerr)
	_, err = QDeviceUpdateCommand(Dialect09, "qnetd", "ffsplit")
	assert.ErrorAs(t, err, &uerr)
	_, err = QDeviceRemoveCommand(Dialect09)
	assert.ErrorAs(t, err, &uerr)
}

func TestStonithLevelCommands(t *testing.T) {
	assert.Equal(t,
		"pcs stonith level add 1 node-a fence_kdump",
		StonithLevelAddCommand(1, "node-a", "fence_kdump", ""),
	)
	assert.Equal(t,
		"pcs -f /tmp/cib.xml stonith level add 2 node-a fence_xvm",
		StonithLevelAddCommand(2, "node-a", "fence_xvm", "/tmp/cib.xml"),
	)
	assert.Equal(t,
		"pcs stonith level remove 2 node-b fence_xvm",
		StonithLevelRemoveCommand(2, "node-b", "fence_xvm", ""),
	)
}
