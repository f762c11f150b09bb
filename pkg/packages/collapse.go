package packages

import (
	version2 "github.com/hashicorp/go-version"
	rpmversion "github.com/knqyf263/go-rpm-version"
)

// Collapse keeps one package per name, the one with the highest version.
// Multiarch installs (foo:amd64, foo:i386) normalize to the same name.
// Order of first appearance is preserved.
func Collapse(packs []*Package) []*Package {
	index := map[string]int{}
	result := []*Package{}

	for _, p := range packs {
		i, ok := index[p.Name]
		if !ok {
			index[p.Name] = len(result)
			result = append(result, p)
			continue
		}

		if compareVersion(p.Version, result[i].Version) > 0 {
			result[i] = p
		}
	}

	return result
}

// compareVersion compares semver-like versions with go-version and
// distribution versions (with release or revision parts) rpm style
func compareVersion(a, b string) int {
	va, errA := version2.NewVersion(a)
	vb, errB := version2.NewVersion(b)
	if errA == nil && errB == nil && va.Prerelease() == "" && vb.Prerelease() == "" {
		return va.Compare(vb)
	}

	return rpmversion.NewVersion(a).Compare(rpmversion.NewVersion(b))
}
