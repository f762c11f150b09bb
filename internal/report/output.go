package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kvesta/keplerscan/internal/vulnscan"
	"github.com/kvesta/keplerscan/pkg/vulnlib"
)

const (
	identityWidth = 25
	idWidth       = 16
	severityWidth = 6
	scoreWidth    = 5
	vectorWidth   = 10

	MaxSummary = 140

	separator = "---              -----  ----- ------     -------"
)

// Truncate limits s to max characters, marking the cut with " ..."
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + " ..."
	}

	return s
}

// CleanVector drops the ADJACENT_ token, "ADJACENT_NETWORK" is shown as "NETWORK"
func CleanVector(vector string) string {
	return strings.ReplaceAll(vector, "ADJACENT_", "")
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// SummaryLine renders one vulnerable package on a single line. Items are
// ordered by their rendered text, descending.
func SummaryLine(p Painter, f *vulnscan.Finding) string {
	identity := fmt.Sprintf("%s v%s", f.Package.Name, f.Package.Version)

	names := []string{}
	for _, v := range f.Records {
		names = append(names, fmt.Sprintf("%s %s (%s)", v.CVE, p.Severity(v.Severity), v.Vector))
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	return fmt.Sprintf("%s : %s", p.Paint(StyleBold, pad(identity, identityWidth)), strings.Join(names, ", "))
}

// ResolveScanData prints one line per vulnerable package
func ResolveScanData(w io.Writer, p Painter, r *vulnscan.Scanner) error {
	for _, f := range r.Vulns {
		if _, err := fmt.Fprintln(w, SummaryLine(p, f)); err != nil {
			return err
		}
	}

	return nil
}

func tableHeader() string {
	return fmt.Sprintf("%s %s %s %s %s\n%s",
		pad("CVE", idWidth), pad("IMPACT", severityWidth), "SCORE",
		pad("VECTOR", vectorWidth), "SUMMARY", separator)
}

func tableRow(p Painter, v *vulnlib.Vulnerability) string {
	return fmt.Sprintf("%s %s %s %s %s",
		pad(v.CVE, idWidth),
		p.Paint(SeverityStyle(v.Severity), pad(v.Severity, severityWidth)),
		pad(fmt.Sprintf("%.1f", v.Score), scoreWidth),
		pad(CleanVector(v.Vector), vectorWidth),
		p.Paint(StyleDim, Truncate(v.Summary, MaxSummary)))
}

// ResolveQueryData prints the ranked table of a single query. rows must
// already be sorted by identifier.
func ResolveQueryData(w io.Writer, p Painter, product, version string, rows []*vulnlib.Vulnerability) error {
	page := vulnscan.Paginate(rows, vulnscan.PageSize)

	b := &strings.Builder{}
	fmt.Fprintln(b)

	if len(page.Rest) > 0 {
		fmt.Fprintf(b, "%d most recent CVEs (%d total) for '%s %s'\n\n",
			vulnscan.PageSize, page.Total, product, version)
	} else {
		fmt.Fprintf(b, "%d results for '%s %s'\n\n", page.Total, product, version)
	}

	fmt.Fprintln(b, tableHeader())
	for _, v := range page.Shown {
		fmt.Fprintln(b, tableRow(p, v))
	}

	if len(page.Rest) > 0 {
		fmt.Fprintf(b, "\n%d more CVEs, %d high, %d medium and %d low impact.\n",
			len(page.Rest), page.High, page.Medium, page.Low)
	}

	fmt.Fprintln(b)

	_, err := io.WriteString(w, b.String())
	return err
}
