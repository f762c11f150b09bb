package packages

import (
	"context"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

const DefaultStatusFile = "/var/lib/dpkg/status"

// DpkgStatusLister reads installed packages from a dpkg status database,
// useful when apt itself is unavailable (minimal images, mounted roots)
type DpkgStatusLister struct {
	Fs   afero.Fs
	Path string
}

func NewDpkgStatusLister(fs afero.Fs, path string) *DpkgStatusLister {
	if path == "" {
		path = DefaultStatusFile
	}
	return &DpkgStatusLister{Fs: fs, Path: path}
}

func (d *DpkgStatusLister) Name() string {
	return "dpkg"
}

func (d *DpkgStatusLister) List(ctx context.Context) ([]*Package, error) {
	data, err := afero.ReadFile(d.Fs, d.Path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read dpkg status %s: %w", d.Path, err)
	}

	return parseDpkgStatus(string(data)), nil
}

// parseDpkgStatus walks the blank-line separated stanzas of a status file
func parseDpkgStatus(dpkg string) []*Package {
	packs := []*Package{}

	dpkg = strings.ReplaceAll(dpkg, "\r\n", "\n")
	for _, pe := range strings.Split(dpkg, "\n\n") {
		if len(strings.TrimSpace(pe)) < 1 {
			continue
		}

		p := &Package{}
		installed := true

		for _, l := range strings.Split(pe, "\n") {
			// continuation lines of multi-line fields
			if strings.HasPrefix(l, " ") || strings.HasPrefix(l, "\t") {
				continue
			}

			index := strings.Index(l, ":")
			if index < 0 {
				continue
			}

			key, value := l[:index], strings.TrimSpace(l[index+1:])
			switch key {
			case "Package":
				p.Name = NormalizeName(value)
			case "Version":
				p.Version = NormalizeVersion(value)
			case "Architecture":
				p.Architecture = value
			case "Status":
				installed = strings.HasSuffix(value, " installed")
			default:
				// ignore
			}
		}

		if p.Name == "" || !installed {
			continue
		}

		packs = append(packs, p)
	}

	return packs
}
