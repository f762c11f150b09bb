package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/kvesta/keplerscan/config"
	"github.com/kvesta/keplerscan/internal/vulnscan"
)

// ScanToJson saves the findings of a scan to filename
func ScanToJson(fs afero.Fs, filename string, r *vulnscan.Scanner) error {
	if folder := filepath.Dir(filename); folder != "" {
		if err := fs.MkdirAll(folder, os.FileMode(0755)); err != nil {
			return xerrors.Errorf("failed to create %s: %w", folder, err)
		}
	}

	findings := r.Vulns
	if findings == nil {
		findings = []*vulnscan.Finding{}
	}

	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return err
	}

	if err = afero.WriteFile(fs, filename, data, 0644); err != nil {
		return xerrors.Errorf("failed to write %s: %w", filename, err)
	}

	log.Infof("Output file is saved in: %s", config.Yellow(filename))

	return nil
}
