package packages

import (
	"context"
	"errors"
)

// ErrMalformed is returned for a listing line that does not have the
// `<name>/<channel> <version> ...` shape
var ErrMalformed = errors.New("malformed package line")

// Entry is one tokenized line of a package listing
type Entry struct {
	Name       string
	Channel    string
	RawVersion string
	Arch       string
	Rest       []string
}

// Package is the canonical identity used for querying
type Package struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Architecture string `json:"architecture,omitempty"`
}

// Lister produces the installed package set of the host
type Lister interface {
	Name() string
	List(ctx context.Context) ([]*Package, error)
}
