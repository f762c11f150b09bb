package packages

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"golang.org/x/xerrors"
)

const listingHeader = "Listing..."

var epochRegex = regexp.MustCompile(`^\d+:`)

// tokenize splits a listing line into its named fields.
// Expected shape: <name>/<channel> <version> [<arch> [<rest>...]]
func tokenize(line string) (*Entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, xerrors.Errorf("%q: %w", line, ErrMalformed)
	}

	index := strings.Index(fields[0], "/")
	if index < 1 || index == len(fields[0])-1 {
		return nil, xerrors.Errorf("%q: %w", line, ErrMalformed)
	}

	e := &Entry{
		Name:       fields[0][:index],
		Channel:    fields[0][index+1:],
		RawVersion: fields[1],
	}

	if len(fields) > 2 {
		e.Arch = fields[2]
		e.Rest = fields[3:]
	}

	return e, nil
}

// NormalizeName drops a trailing "-dev" marker and anything after the
// first colon (architecture or source qualifier)
func NormalizeName(name string) string {
	if index := strings.Index(name, ":"); index > -1 {
		name = name[:index]
	}

	if trimmed := strings.TrimSuffix(name, "-dev"); trimmed != "" {
		name = trimmed
	}

	return name
}

// NormalizeVersion strips a leading "<epoch>:" prefix
func NormalizeVersion(raw string) string {
	raw = strings.TrimSpace(raw)
	if loc := epochRegex.FindStringIndex(raw); loc != nil {
		return raw[loc[1]:]
	}

	return raw
}

// ParseListingLine parses one line of `apt list --installed` output.
// Blank lines and the listing header return a nil package and no error.
func ParseListingLine(line string) (*Package, error) {
	line = strings.TrimSpace(line)
	if line == "" || line == listingHeader {
		return nil, nil
	}

	e, err := tokenize(line)
	if err != nil {
		return nil, err
	}

	name := NormalizeName(e.Name)
	if name == "" {
		return nil, xerrors.Errorf("%q: empty package name: %w", line, ErrMalformed)
	}

	return &Package{
		Name:         name,
		Version:      NormalizeVersion(e.RawVersion),
		Architecture: e.Arch,
	}, nil
}

// ParseListing parses a full listing, skipping malformed lines.
// Errors for the skipped lines are returned alongside the packages.
func ParseListing(r io.Reader) ([]*Package, []error) {
	packs := []*Package{}
	errs := []error{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		p, err := ParseListingLine(scanner.Text())
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if p == nil {
			continue
		}

		packs = append(packs, p)
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, xerrors.Errorf("failed to read listing: %w", err))
	}

	return packs, errs
}
