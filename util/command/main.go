package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/anmitsu/go-shlex"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/YanChii/pcstopo/util/funcopt"
)

type (
	T struct {
		name            string
		args            []string
		log             *zerolog.Logger
		logLevel        zerolog.Level
		commandLogLevel zerolog.Level
		stdoutLogLevel  zerolog.Level
		stderrLogLevel  zerolog.Level
		bufferStdout    bool
		bufferStderr    bool
		timeout         time.Duration
		okExitCodes     []int

		cmd           *exec.Cmd
		cancel        func()
		commandString string
		stdout        []byte
		stderr        []byte
		wg            sync.WaitGroup
		started       bool
		waited        bool
	}

	ErrExitCode struct {
		exitCode     int
		successCodes []int
	}
)

var (
	ErrAlreadyStarted = errors.New("command: already started")
	ErrAlreadyWaited  = errors.New("command: already waited")
)

func New(opts ...funcopt.O) *T {
	t := &T{
		stdoutLogLevel:  zerolog.Disabled,
		stderrLogLevel:  zerolog.Disabled,
		logLevel:        zerolog.DebugLevel,
		commandLogLevel: zerolog.DebugLevel,
		okExitCodes:     []int{0},
	}
	_ = funcopt.Apply(t, opts...)
	return t
}

func (t *T) String() string {
	if len(t.commandString) != 0 {
		return t.commandString
	}
	t.commandString = t.toString()
	return t.commandString
}

func (t *T) Run() error {
	if err := t.Start(); err != nil {
		return err
	}
	return t.Wait()
}

// Stdout returns the captured standard output. Meaningful after Wait()
// or Run() on a command created with WithBufferedStdout().
func (t *T) Stdout() []byte {
	return t.stdout
}

// Stderr returns the captured standard error. Meaningful after Wait()
// or Run() on a command created with WithBufferedStderr().
func (t *T) Stderr() []byte {
	return t.stderr
}

// Start prepares the command, wires the stdout and stderr watchers, then
// calls the underlying cmd.Start().
func (t *T) Start() error {
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true
	ctx := context.Background()
	if t.timeout > 0 {
		ctx, t.cancel = context.WithTimeout(ctx, t.timeout)
	}
	cmd := exec.CommandContext(ctx, t.name, t.args...)
	t.cmd = cmd
	t.commandString = t.toString()
	if t.stdoutLogLevel != zerolog.Disabled || t.bufferStdout {
		r, err := cmd.StdoutPipe()
		if err != nil {
			return err
		}
		t.watch(r, t.stdoutLogLevel, "out", &t.stdout, t.bufferStdout)
	}
	if t.stderrLogLevel != zerolog.Disabled || t.bufferStderr {
		r, err := cmd.StderrPipe()
		if err != nil {
			return err
		}
		t.watch(r, t.stderrLogLevel, "err", &t.stderr, t.bufferStderr)
	}
	if t.log != nil && t.commandLogLevel != zerolog.Disabled {
		t.log.WithLevel(t.commandLogLevel).Str("cmd", cmd.String()).Msg("running")
	}
	if err := cmd.Start(); err != nil {
		if t.log != nil {
			t.log.WithLevel(t.logLevel).Err(err).Str("cmd", cmd.String()).Msg("start")
		}
		return err
	}
	return nil
}

func (t *T) watch(r io.ReadCloser, level zerolog.Level, field string, buf *[]byte, buffered bool) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		s := bufio.NewScanner(r)
		for s.Scan() {
			if t.log != nil && level != zerolog.Disabled {
				t.log.WithLevel(level).Str(field, s.Text()).Send()
			}
			if buffered {
				if len(*buf) > 0 {
					*buf = append(*buf, '\n')
				}
				*buf = append(*buf, s.Bytes()...)
			}
		}
	}()
}

func (t *T) Cmd() *exec.Cmd {
	return t.cmd
}

func (t *T) ExitCode() int {
	return t.cmd.ProcessState.ExitCode()
}

func (t *T) Wait() error {
	if t.waited {
		return ErrAlreadyWaited
	}
	t.waited = true
	if t.cancel != nil {
		defer t.cancel()
	}
	t.wg.Wait()
	if err := t.cmd.Wait(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return t.checkExitCode(exitError.ExitCode())
		}
		if t.log != nil {
			t.log.WithLevel(t.logLevel).Err(err).Str("cmd", t.cmd.String()).Msg("wait")
		}
		return err
	}
	return t.checkExitCode(t.ExitCode())
}

// checkExitCode maps the exit code to an error. An empty okExitCodes
// list accepts any exit code.
func (t *T) checkExitCode(exitCode int) error {
	if len(t.okExitCodes) == 0 {
		return nil
	}
	for _, validCode := range t.okExitCodes {
		if exitCode == validCode {
			return nil
		}
	}
	err := &ErrExitCode{exitCode: exitCode, successCodes: t.okExitCodes}
	if t.log != nil {
		t.log.WithLevel(t.logLevel).Err(err).Str("cmd", t.cmd.String()).Int("exitCode", exitCode).Send()
	}
	return err
}

func (e *ErrExitCode) Error() string {
	return fmt.Sprintf("command exit code %v not in success codes: %v", e.exitCode, e.successCodes)
}

// CmdArgsFromString returns args for exec.Command from a string command 's'.
// When 's' contains shell control operators,
//
//	exec.Command("/bin/sh", "-c", s)
//
// else
//
//	exec.Command from shlex.Split(s)
func CmdArgsFromString(s string) ([]string, error) {
	if len(s) == 0 {
		return nil, errors.New("can not create command from empty string")
	}
	switch {
	case strings.Contains(s, "|"), strings.Contains(s, "&&"), strings.Contains(s, ";"):
		return []string{"/bin/sh", "-c", s}, nil
	}
	sSplit, err := shlex.Split(s, true)
	if err != nil {
		return nil, err
	}
	if len(sSplit) == 0 {
		return nil, errors.New("unexpected empty command args from string")
	}
	return sSplit, nil
}

func (t *T) toString() string {
	if len(t.args) == 0 {
		return t.name
	}
	args := make([]string, 0, len(t.args))
	for _, arg := range t.args {
		args = append(args, fmt.Sprintf("%q", arg))
	}
	return fmt.Sprintf("%v %s", t.name, strings.Join(args, " "))
}
