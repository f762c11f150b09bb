package packages

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

var defaultPacmanCommand = []string{"pacman", "-Q"}

// PacmanLister reads the installed set from `pacman -Q`, one
// "<name> <version>" pair per line
type PacmanLister struct {
	Command []string
}

func NewPacmanLister() *PacmanLister {
	return &PacmanLister{Command: defaultPacmanCommand}
}

func (p *PacmanLister) Name() string {
	return "pacman"
}

func (p *PacmanLister) List(ctx context.Context) ([]*Package, error) {
	output, err := runCommand(ctx, p.Command)
	if err != nil {
		return nil, err
	}

	packs := []*Package{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		values := strings.Fields(scanner.Text())
		if len(values) < 2 {
			if len(values) > 0 {
				log.Debugf("skip pacman line: %q", scanner.Text())
			}
			continue
		}

		packs = append(packs, &Package{
			Name:    NormalizeName(values[0]),
			Version: NormalizeVersion(values[1]),
		})
	}

	return packs, scanner.Err()
}
