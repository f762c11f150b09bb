package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/kvesta/keplerscan/config"
	"github.com/kvesta/keplerscan/internal/vulnscan"
)

// ResolveStats prints totals of a scan as a table
func ResolveStats(w io.Writer, r *vulnscan.Scanner) error {
	high, medium, low := 0, 0, 0

	for _, f := range r.Vulns {
		for _, v := range f.Records {
			switch v.Severity {
			case vulnscan.SeverityHigh:
				high += 1
			case vulnscan.SeverityMedium:
				medium += 1
			case vulnscan.SeverityLow:
				low += 1
			default:
				// ignore
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nDetected %s vulnerabilities in %s packages | "+
		"High: %s Medium: %s Low: %s\n\n",
		config.Yellow(r.Vulnerabilities()),
		config.Yellow(len(r.Vulns)),
		config.Red(high),
		config.Yellow(medium),
		config.Green(low)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scanned", "Vulnerable", "Failed", "Vulnerabilities", "High", "Medium", "Low"})
	table.Append([]string{
		strconv.Itoa(r.Packages),
		strconv.Itoa(len(r.Vulns)),
		strconv.Itoa(r.Failed),
		strconv.Itoa(r.Vulnerabilities()),
		strconv.Itoa(high),
		strconv.Itoa(medium),
		strconv.Itoa(low),
	})
	table.Render()

	return nil
}
