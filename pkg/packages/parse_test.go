package packages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListingLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Package
		wantErr bool
	}{
		{
			name: "epoch and dev suffix",
			line: "foo-dev/jammy 1:2.3.4-1ubuntu1 amd64 [installed]",
			want: &Package{Name: "foo", Version: "2.3.4-1ubuntu1", Architecture: "amd64"},
		},
		{
			name: "no epoch",
			line: "bar/jammy 5.6-2 amd64",
			want: &Package{Name: "bar", Version: "5.6-2", Architecture: "amd64"},
		},
		{
			name: "architecture qualifier",
			line: "libc6-dev:i386/jammy-updates,now 2.35-0ubuntu3.1 i386 [installed,automatic]",
			want: &Package{Name: "libc6", Version: "2.35-0ubuntu3.1", Architecture: "i386"},
		},
		{
			name: "suffix tags kept",
			line: "zlib1g/jammy,now 1:1.2.11.dfsg-2ubuntu9+esm1 amd64 [installed]",
			want: &Package{Name: "zlib1g", Version: "1.2.11.dfsg-2ubuntu9+esm1", Architecture: "amd64"},
		},
		{
			name: "surrounding whitespace",
			line: "   bash/jammy 5.1-6ubuntu1 amd64 [installed]\t",
			want: &Package{Name: "bash", Version: "5.1-6ubuntu1", Architecture: "amd64"},
		},
		{
			name: "listing header",
			line: "Listing...",
		},
		{
			name: "blank",
			line: "   ",
		},
		{
			name:    "missing slash",
			line:    "foo 1.0 amd64",
			wantErr: true,
		},
		{
			name:    "missing version",
			line:    "foo/jammy",
			wantErr: true,
		},
		{
			name:    "empty channel",
			line:    "foo/ 1.0 amd64",
			wantErr: true,
		},
		{
			name:    "empty name",
			line:    ":amd64/jammy 1.0 amd64",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseListingLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformed))
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "1:2.3.4-1ubuntu1", want: "2.3.4-1ubuntu1"},
		{raw: "12:1.0", want: "1.0"},
		{raw: "5.6-2", want: "5.6-2"},
		{raw: "2.0~rc1:3", want: "2.0~rc1:3"},
		{raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVersion(tt.raw))
		})
	}
}

func TestParseListing(t *testing.T) {
	listing := strings.Join([]string{
		"Listing...",
		"foo-dev/jammy 1:2.3.4-1ubuntu1 amd64 [installed]",
		"garbage line",
		"",
		"bar/jammy 5.6-2 amd64",
	}, "\n")

	packs, errs := ParseListing(strings.NewReader(listing))

	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrMalformed))
	assert.Equal(t, []*Package{
		{Name: "foo", Version: "2.3.4-1ubuntu1", Architecture: "amd64"},
		{Name: "bar", Version: "5.6-2", Architecture: "amd64"},
	}, packs)
}

func TestAptLister(t *testing.T) {
	a := &AptLister{Command: []string{"printf", "%s\n%s\n%s\n",
		"Listing...",
		"openssl/jammy-security 3.0.2-0ubuntu1.15 amd64 [installed]",
		"broken"}}

	packs, err := a.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*Package{
		{Name: "openssl", Version: "3.0.2-0ubuntu1.15", Architecture: "amd64"},
	}, packs)
}

func TestAptListerCommandFailure(t *testing.T) {
	a := &AptLister{Command: []string{"keplerscan-no-such-binary"}}

	_, err := a.List(context.Background())
	require.Error(t, err)
}

func TestDpkgStatusLister(t *testing.T) {
	status := `Package: libssl3
Status: install ok installed
Architecture: amd64
Version: 3.0.2-0ubuntu1.15
Description: Secure Sockets Layer toolkit
 This package is part of the OpenSSL project.

Package: old-thing
Status: deinstall ok config-files
Version: 1.0

Package: zlib1g-dev
Status: install ok installed
Architecture: amd64
Version: 1:1.2.11.dfsg-2ubuntu9
`
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultStatusFile, []byte(status), 0644))

	packs, err := NewDpkgStatusLister(fs, "").List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*Package{
		{Name: "libssl3", Version: "3.0.2-0ubuntu1.15", Architecture: "amd64"},
		{Name: "zlib1g", Version: "1.2.11.dfsg-2ubuntu9", Architecture: "amd64"},
	}, packs)

	_, err = NewDpkgStatusLister(fs, "/nope").List(context.Background())
	require.Error(t, err)
}

func TestParseRpmLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Package
		wantErr bool
	}{
		{
			name: "zero epoch",
			line: "bash\t0:5.1.8-6.el9\tx86_64",
			want: &Package{Name: "bash", Version: "5.1.8-6.el9", Architecture: "x86_64"},
		},
		{
			name: "epoch dropped",
			line: "openssl\t1:3.0.7-27.el9\tx86_64",
			want: &Package{Name: "openssl", Version: "3.0.7-27.el9", Architecture: "x86_64"},
		},
		{
			name: "blank",
			line: "",
		},
		{
			name:    "no version",
			line:    "bash",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRpmLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollapse(t *testing.T) {
	packs := []*Package{
		{Name: "libc6", Version: "2.35-0ubuntu3", Architecture: "amd64"},
		{Name: "zlib1g", Version: "1.2.9"},
		{Name: "libc6", Version: "2.35-0ubuntu3.1", Architecture: "i386"},
		{Name: "zlib1g", Version: "1.2.10"},
		{Name: "bash", Version: "5.1"},
	}

	assert.Equal(t, []*Package{
		{Name: "libc6", Version: "2.35-0ubuntu3.1", Architecture: "i386"},
		{Name: "zlib1g", Version: "1.2.10"},
		{Name: "bash", Version: "5.1"},
	}, Collapse(packs))
}

func TestNewLister(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		osRelease string
		want      string
		wantErr   bool
	}{
		{name: "explicit apt", source: SourceApt, want: "apt"},
		{name: "explicit dpkg", source: SourceDpkg, want: "dpkg"},
		{name: "auto ubuntu", source: SourceAuto, osRelease: "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n", want: "apt"},
		{name: "auto rocky", source: SourceAuto, osRelease: "NAME=\"Rocky Linux\"\nID=\"rocky\"\nID_LIKE=\"rhel centos fedora\"\n", want: "rpm"},
		{name: "auto arch", source: SourceAuto, osRelease: "NAME=\"Arch Linux\"\nID=arch\n", want: "pacman"},
		{name: "auto without os-release", source: SourceAuto, want: "apt"},
		{name: "unknown", source: "brew", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.osRelease != "" {
				require.NoError(t, afero.WriteFile(fs, "/etc/os-release", []byte(tt.osRelease), 0644))
			}

			l, err := NewLister(fs, tt.source, "")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Name())
		})
	}
}
