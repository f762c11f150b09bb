package vulnscan

import (
	"context"

	"github.com/kvesta/keplerscan/pkg/packages"
	"github.com/kvesta/keplerscan/pkg/vulnlib"
)

const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// Searcher is the lookup side of the vulnerability service
type Searcher interface {
	Search(ctx context.Context, q vulnlib.Query) ([]*vulnlib.Vulnerability, error)
}

type Scanner struct {
	VulnDB  Searcher
	Vendors []string

	// Dedup drops records repeated across vendor hypotheses
	Dedup bool

	Packages int
	Failed   int
	Vulns    []*Finding
}

// Finding is a vulnerable package with every record matched for it
type Finding struct {
	Package *packages.Package        `json:"package"`
	Records []*vulnlib.Vulnerability `json:"records"`
}
