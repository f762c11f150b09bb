package packages

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/kvesta/keplerscan/pkg/osrelease"
)

const (
	SourceAuto   = "auto"
	SourceApt    = "apt"
	SourceDpkg   = "dpkg"
	SourceRpm    = "rpm"
	SourcePacman = "pacman"
)

// NewLister picks the package source. "auto" inspects os-release and
// falls back to apt.
func NewLister(fs afero.Fs, source, statusFile string) (Lister, error) {
	switch source {
	case SourceApt, "":
		return NewAptLister(), nil
	case SourceDpkg:
		return NewDpkgStatusLister(fs, statusFile), nil
	case SourceRpm:
		return NewRpmLister(), nil
	case SourcePacman:
		return NewPacmanLister(), nil
	case SourceAuto:
		osv, err := osrelease.DetectOs(fs)
		if err != nil {
			return nil, err
		}

		log.Debugf("Detected os: %s (%s)", osv.NAME, osv.OID)

		switch {
		case osv.IsRpmFamily():
			return NewRpmLister(), nil
		case osv.IsArchFamily():
			return NewPacmanLister(), nil
		default:
			return NewAptLister(), nil
		}
	default:
		return nil, xerrors.Errorf("unknown package source: %s", source)
	}
}
