// Package pcs wraps the pacemaker/corosync management tool. It renders
// version dialect aware pcs command lines and runs them through a
// Runner.
package pcs

import (
	"fmt"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/YanChii/pcstopo/util/command"
	"github.com/YanChii/pcstopo/util/funcopt"
)

type (
	// Runner executes one command line and returns its exit code and
	// captured output. A non nil error means the command could not be
	// run at all.
	Runner interface {
		Run(cmdline string) (exitCode int, stdout, stderr string, err error)
	}

	// T is the Runner implementation forking the real commands.
	T struct {
		log *zerolog.Logger
	}

	// ExecError is returned when a dispatched command exits non zero.
	// The failing command line and its captured output are kept for
	// the failure report.
	ExecError struct {
		Cmd      string
		ExitCode int
		Stdout   string
		Stderr   string
	}
)

// ErrNotFound is returned when the pcs executable is not installed.
var ErrNotFound = errors.New("'pcs' executable not found. Install 'pcs'.")

func (e *ExecError) Error() string {
	return fmt.Sprintf("command '%s' exited with code %d: %s%s", e.Cmd, e.ExitCode, e.Stdout, e.Stderr)
}

func New(opts ...funcopt.O) *T {
	t := &T{}
	_ = funcopt.Apply(t, opts...)
	return t
}

func WithLogger(log *zerolog.Logger) funcopt.O {
	return funcopt.F(func(i interface{}) error {
		t := i.(*T)
		t.log = log
		return nil
	})
}

func (t *T) SetLog(log *zerolog.Logger) {
	t.log = log
}

// IsCapable returns true if the pcs executable is installed.
func IsCapable() bool {
	if _, err := exec.LookPath("pcs"); err == nil {
		return true
	}
	return false
}

// Run splits cmdline into argv, forks it and returns the exit code with
// the captured stdout and stderr text.
func (t *T) Run(cmdline string) (int, string, string, error) {
	argv, err := command.CmdArgsFromString(cmdline)
	if err != nil {
		return -1, "", "", err
	}
	cmd := command.New(
		command.WithName(argv[0]),
		command.WithArgs(argv[1:]),
		command.WithLogger(t.log),
		command.WithBufferedStdout(),
		command.WithBufferedStderr(),
		command.WithCommandLogLevel(zerolog.InfoLevel),
		command.WithStdoutLogLevel(zerolog.DebugLevel),
		command.WithStderrLogLevel(zerolog.DebugLevel),
		command.WithOkExitCodes(),
	)
	if err := cmd.Run(); err != nil {
		return -1, "", "", err
	}
	return cmd.ExitCode(), string(cmd.Stdout()), string(cmd.Stderr()), nil
}
