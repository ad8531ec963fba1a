package pcs

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
)

// Dialect is the pcs command syntax generation, from the first two
// dot separated components of the tool version.
type Dialect string

const (
	// Dialect09 is the EL 6/7 era syntax (pcs 0.9).
	Dialect09 Dialect = "0.9"

	// Dialect010 is the EL 8 era syntax (pcs 0.10).
	Dialect010 Dialect = "0.10"
)

// UnsupportedVersionError is returned when the detected tool version is
// neither 0.9 nor 0.10.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version of pcs (%s). Only versions 0.9 and 0.10 are supported.", e.Version)
}

// ParseDialect maps a major.minor string to a dialect.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Dialect09:
		return Dialect09, nil
	case Dialect010:
		return Dialect010, nil
	default:
		return "", &UnsupportedVersionError{Version: s}
	}
}

// DetectDialect queries the tool version through the runner and maps
// its first two components to a dialect.
func DetectDialect(r Runner) (Dialect, error) {
	cmdline := "pcs --version"
	exitCode, stdout, stderr, err := r.Run(cmdline)
	if err != nil {
		return "", err
	}
	if exitCode != 0 {
		return "", errors.Errorf("pcs --version exited with non-zero exit code (%d): %s%s", exitCode, stdout, stderr)
	}
	v, err := version.NewVersion(strings.TrimSpace(stdout))
	if err != nil {
		return "", errors.Wrap(err, "parse pcs version")
	}
	segments := v.Segments()
	if len(segments) < 2 {
		return "", &UnsupportedVersionError{Version: v.String()}
	}
	return ParseDialect(fmt.Sprintf("%d.%d", segments[0], segments[1]))
}
