package packages

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	rpmversion "github.com/knqyf263/go-rpm-version"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var defaultRpmCommand = []string{"rpm", "-qa", "--queryformat",
	`%{NAME}\t%{EPOCHNUM}:%{VERSION}-%{RELEASE}\t%{ARCH}\n`}

// RpmLister reads the installed set from the rpm database through `rpm -qa`
type RpmLister struct {
	Command []string
}

func NewRpmLister() *RpmLister {
	return &RpmLister{Command: defaultRpmCommand}
}

func (r *RpmLister) Name() string {
	return "rpm"
}

func (r *RpmLister) List(ctx context.Context) ([]*Package, error) {
	output, err := runCommand(ctx, r.Command)
	if err != nil {
		return nil, err
	}

	packs := []*Package{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		p, err := parseRpmLine(scanner.Text())
		if err != nil {
			log.Debugf("skip rpm line: %v", err)
			continue
		}
		if p == nil {
			continue
		}

		packs = append(packs, p)
	}

	return packs, scanner.Err()
}

func parseRpmLine(line string) (*Package, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 2 || fields[0] == "" {
		return nil, xerrors.Errorf("%q: %w", line, ErrMalformed)
	}

	p := &Package{
		Name:    NormalizeName(fields[0]),
		Version: canonicalRpmVersion(fields[1]),
	}
	if len(fields) > 2 {
		p.Architecture = fields[2]
	}

	return p, nil
}

// canonicalRpmVersion renders version-release with the epoch dropped
func canonicalRpmVersion(evr string) string {
	evr = strings.TrimPrefix(strings.TrimSpace(evr), "(none):")
	if evr == "" {
		return ""
	}

	return NormalizeVersion(rpmversion.NewVersion(evr).String())
}
