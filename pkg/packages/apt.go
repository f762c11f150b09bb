package packages

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var defaultAptCommand = []string{"apt", "list", "--installed"}

// AptLister reads the installed set from `apt list --installed`
type AptLister struct {
	Command []string
}

func NewAptLister() *AptLister {
	return &AptLister{Command: defaultAptCommand}
}

func (a *AptLister) Name() string {
	return "apt"
}

func (a *AptLister) List(ctx context.Context) ([]*Package, error) {
	output, err := runCommand(ctx, a.Command)
	if err != nil {
		return nil, err
	}

	packs, errs := ParseListing(bytes.NewReader(output))
	for _, e := range errs {
		log.Debugf("skip apt line: %v", e)
	}

	if len(errs) > 0 {
		log.Warnf("%d apt lines could not be parsed", len(errs))
	}

	return packs, nil
}

// runCommand executes a package manager command and returns its stdout
func runCommand(ctx context.Context, command []string) ([]byte, error) {
	if len(command) < 1 {
		return nil, xerrors.New("empty package manager command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	log.Debugf("Running: %s", cmd.String())

	output, err := cmd.Output()
	if err != nil {
		var stderr []byte
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = exitErr.Stderr
		}
		return nil, xerrors.Errorf("failed to run %q: %w: %s",
			strings.Join(command, " "), err, strings.TrimSpace(string(stderr)))
	}

	return output, nil
}
