package vulnscan

import (
	"context"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/kvesta/keplerscan/config"
	"github.com/kvesta/keplerscan/pkg/packages"
	"github.com/kvesta/keplerscan/pkg/vulnlib"
)

// hypotheses lists the vendor identities tried for a package, the
// product itself always comes last
func (ps *Scanner) hypotheses(p *packages.Package) []string {
	vendors := ps.Vendors
	if vendors == nil {
		vendors = config.DefaultVendors
	}

	return append(append([]string{}, vendors...), p.Name)
}

// Scan queries every package sequentially. A lookup failure drops that
// package from the report and the scan goes on.
func (ps *Scanner) Scan(ctx context.Context, packs []*packages.Package) error {
	log.Info(config.Green("Begin to scan ", len(packs), " packages"))

	for _, p := range packs {
		ps.Packages += 1

		records, err := ps.checkPackage(ctx, p)
		if err != nil {
			ps.Failed += 1
			log.Warnf("failed to check %s %s: %v", p.Name, p.Version, err)
			continue
		}

		if len(records) < 1 {
			continue
		}

		ps.Vulns = append(ps.Vulns, &Finding{Package: p, Records: records})
	}

	return nil
}

func (ps *Scanner) checkPackage(ctx context.Context, p *packages.Package) ([]*vulnlib.Vulnerability, error) {
	records := []*vulnlib.Vulnerability{}

	for _, vendor := range ps.hypotheses(p) {
		q := vulnlib.Query{
			Vendor:  vendor,
			Product: p.Name,
			Version: p.Version,
		}

		rows, err := ps.VulnDB.Search(ctx, q)
		if err != nil {
			return nil, err
		}

		records = append(records, rows...)
	}

	if ps.Dedup {
		records = lo.UniqBy(records, func(v *vulnlib.Vulnerability) string {
			return v.CVE
		})
	}

	return records, nil
}

// Vulnerabilities is the number of records over all findings
func (ps *Scanner) Vulnerabilities() int {
	return lo.SumBy(ps.Vulns, func(f *Finding) int {
		return len(f.Records)
	})
}
