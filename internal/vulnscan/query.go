package vulnscan

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/kvesta/keplerscan/pkg/vulnlib"
)

// PageSize is how many records the single query report lists
const PageSize = 50

// Page splits a ranked result set into the listed records and a tally
// of the remaining ones
type Page struct {
	Total int
	Shown []*vulnlib.Vulnerability
	Rest  []*vulnlib.Vulnerability

	High   int
	Medium int
	Low    int
}

// Lookup issues a single query without vendor and ranks the result by
// identifier, most recent first
func Lookup(ctx context.Context, db Searcher, product, version string) ([]*vulnlib.Vulnerability, error) {
	rows, err := db.Search(ctx, vulnlib.Query{Product: product, Version: version})
	if err != nil {
		return nil, err
	}

	SortByID(rows)

	return rows, nil
}

func SortByID(rows []*vulnlib.Vulnerability) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CVE > rows[j].CVE
	})
}

func Paginate(rows []*vulnlib.Vulnerability, size int) *Page {
	p := &Page{Total: len(rows), Shown: rows}
	if len(rows) <= size {
		return p
	}

	p.Shown, p.Rest = rows[:size], rows[size:]
	p.High = countSeverity(p.Rest, SeverityHigh)
	p.Medium = countSeverity(p.Rest, SeverityMedium)
	p.Low = countSeverity(p.Rest, SeverityLow)

	return p
}

func countSeverity(rows []*vulnlib.Vulnerability, severity string) int {
	return lo.CountBy(rows, func(v *vulnlib.Vulnerability) bool {
		return v.Severity == severity
	})
}
