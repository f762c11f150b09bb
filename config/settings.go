package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	defaultServiceURL = "http://localhost:8000"
	defaultTimeout    = 30 * time.Second

	envServiceURL = "KEPLER_URL"
	envTimeout    = "KEPLER_TIMEOUT"
)

// Settings are layered: defaults, config file, environment, then flags
type Settings struct {
	ServiceURL string        `yaml:"serviceURL"`
	Timeout    time.Duration `yaml:"timeout"`
	Vendors    []string      `yaml:"vendors"`
	Source     string        `yaml:"source"`
	StatusFile string        `yaml:"statusFile"`
}

func DefaultSettings() *Settings {
	return &Settings{
		ServiceURL: defaultServiceURL,
		Timeout:    defaultTimeout,
		Vendors:    append([]string{}, DefaultVendors...),
		Source:     "apt",
	}
}

// DefaultConfigFile is $XDG_CONFIG_HOME/keplerscan/config.yaml
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "keplerscan", "config.yaml")
}

// Load reads the optional config file and applies environment overrides.
// A missing file is only an error when it was named explicitly.
func Load(fs afero.Fs, path string, explicit bool) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, xerrors.Errorf("failed to parse config %s: %w", path, err)
			}
			log.Debugf("Loaded config from %s", path)
		case explicit:
			return nil, xerrors.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := s.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envServiceURL); ok && strings.TrimSpace(v) != "" {
		s.ServiceURL = strings.TrimSpace(v)
	}

	if v, ok := lookup(envTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return xerrors.Errorf("invalid %s: %w", envTimeout, err)
		}
		s.Timeout = d
	}

	return nil
}
