package osrelease

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Reference https://manpages.ubuntu.com/manpages/bionic/man5/os-release.5.html
var paths = []string{"/etc/os-release", "/usr/lib/os-release", "/etc/centos-release"}

var (
	rpmFamily  = []string{"centos", "rhel", "ol", "fedora", "rocky", "almalinux", "amzn", "opensuse", "sles", "mariner"}
	archFamily = []string{"arch", "manjaro", "endeavouros"}

	versionRegex = regexp.MustCompile(`(\d+\.)?(\d+\.)?(\*|\d+)`)
)

// DetectOs get os version of the host
func DetectOs(fs afero.Fs) (*OsVersion, error) {
	osv := &OsVersion{
		NAME: "Linux",
		OID:  "linux",
	}

	for _, n := range paths {
		data, err := afero.ReadFile(fs, n)
		if err != nil {
			log.Debugf("detect os: %v", err)
			continue
		}

		if config := string(data); strings.TrimSpace(config) != "" {
			osv = getOs(config, n)
			break
		}
	}

	return osv, nil
}

func parse(config, path string) map[string]string {
	m := make(map[string]string)
	for _, line := range strings.Split(config, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		switch path {
		case "/etc/centos-release":
			m["NAME"] = "CentOS Linux"
			m["ID"] = "centos"
			m["VERSION_ID"] = versionRegex.FindString(line)

		default:
			index := strings.Index(line, "=")
			if index > -1 {
				m[line[:index]] = strings.Trim(line[index+1:], `"'`)
			}
		}
	}

	return m
}

func getOs(config, path string) *OsVersion {
	os := &OsVersion{
		NAME: "Linux",
		OID:  "linux",
	}

	for k, v := range parse(config, path) {
		switch k {
		case "NAME":
			os.NAME = v
		case "ID":
			os.OID = strings.ToLower(v)
		case "ID_LIKE":
			os.ID_LIKE = strings.ToLower(v)
		case "VERSION":
			os.VERSION = v
		case "VERSION_ID":
			os.VERSION_ID = v
		}
	}

	return os
}

func (o *OsVersion) inFamily(family []string) bool {
	ids := append([]string{o.OID}, strings.Fields(o.ID_LIKE)...)
	for _, id := range ids {
		for _, f := range family {
			if id == f {
				return true
			}
		}
	}

	return false
}

// IsRpmFamily reports whether the distribution ships rpm as its package manager
func (o *OsVersion) IsRpmFamily() bool {
	return o.inFamily(rpmFamily)
}

func (o *OsVersion) IsArchFamily() bool {
	return o.inFamily(archFamily)
}
