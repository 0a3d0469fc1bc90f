package provision_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain/provision"
)

func newRelease(tb testing.TB) toolchain.Release {
	tb.Helper()

	r, err := toolchain.NewRelease("r29", toolchain.Posix, tb.TempDir())
	require.NoError(tb, err)
	return r
}

func TestProvisioner_AlreadyInstalled(t *testing.T) {
	release := newRelease(t)
	require.NoError(t, os.Mkdir(release.InstallDir(), 0o755))
	before := listDir(t, release.Root)

	fetcher := &fakeFetcher{}
	extractor := &fakeExtractor{}
	resolver := &fakeResolver{}
	var progress bytes.Buffer

	p := &provision.Provisioner{
		Release:   release,
		Mirrors:   []string{"https://a.example", "https://b.example"},
		Fetcher:   fetcher,
		Extractor: extractor,
		Resolver:  resolver,
		Progress:  &progress,
		Logger:    arbor.NewLogger(),
	}

	for i := 0; i < 2; i++ {
		dir, err := p.EnsureToolchain(context.Background())
		require.NoError(t, err)
		require.Equal(t, release.InstallDir(), dir)
	}

	require.Empty(t, fetcher.urls, "Expected no download")
	require.Zero(t, extractor.calls, "Expected no extraction")
	require.Zero(t, resolver.calls, "Expected no mirror probing")
	require.Zero(t, progress.Len())
	require.Equal(t, before, listDir(t, release.Root))
}

func TestProvisioner_Install(t *testing.T) {
	release := newRelease(t)
	fetcher := &fakeFetcher{content: ndkZip(t)}
	extractor := &fakeExtractor{next: provision.ZipExtractor{}}
	var progress bytes.Buffer

	p := &provision.Provisioner{
		Release:   release,
		Fetcher:   fetcher,
		Extractor: extractor,
		Progress:  &progress,
		Logger:    arbor.NewLogger(),
	}

	dir, err := p.EnsureToolchain(context.Background())
	require.NoError(t, err)
	require.Equal(t, release.InstallDir(), dir)

	require.Equal(t, []string{release.URL(toolchain.DefaultMirror)}, fetcher.urls)
	require.Equal(t, 1, extractor.calls)

	require.DirExists(t, release.InstallDir())
	require.FileExists(t, release.ToolchainFile())
	require.NoFileExists(t, release.ArchivePath())
	require.Equal(t, []string{"android-ndk-r29"}, listDir(t, release.Root))

	require.Contains(t, progress.String(), "\rDownloading... 100%")

	// Second run is a no-op.
	_, err = p.EnsureToolchain(context.Background())
	require.NoError(t, err)
	require.Len(t, fetcher.urls, 1)
	require.Equal(t, 1, extractor.calls)
}

func TestProvisioner_Failure(t *testing.T) {
	type test struct {
		name       string
		fetchErr   error
		extractErr error
	}

	tests := []test{
		{
			name:     "Fetch",
			fetchErr: errors.New("connection refused"),
		},
		{
			name:       "Extract",
			extractErr: errors.New("zip: not a valid zip file"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := newRelease(t)
			fetcher := &fakeFetcher{content: []byte("not a zip"), err: tt.fetchErr}
			extractor := &fakeExtractor{err: tt.extractErr}

			p := &provision.Provisioner{
				Release:   release,
				Mirrors:   []string{"https://mirror.example/ndk"},
				Fetcher:   fetcher,
				Extractor: extractor,
				Logger:    arbor.NewLogger(),
			}

			_, err := p.EnsureToolchain(context.Background())
			require.Error(t, err)

			var perr *provision.Error
			require.ErrorAs(t, err, &perr)

			cause := tt.fetchErr
			if cause == nil {
				cause = tt.extractErr
			}
			require.ErrorIs(t, err, cause)

			url := "https://mirror.example/ndk/android-ndk-r29-linux.zip"
			require.Equal(t, url, perr.URL)
			require.Equal(t, release.Root, perr.Root)
			require.Equal(t, release.InstallDir(), perr.TargetDir)
			require.Equal(t, "android-ndk-r29", perr.DirName)

			hint := perr.RecoveryHint()
			require.Contains(t, hint, cause.Error())
			require.Contains(t, hint, url)
			require.Contains(t, hint, "Extract it to: "+release.Root)
			require.Contains(t, hint, "Ensure the folder is named: android-ndk-r29")

			require.NoDirExists(t, release.InstallDir())
		})
	}
}

func TestProvisioner_Mirrors(t *testing.T) {
	type test struct {
		name          string
		mirrors       []string
		resolver      *fakeResolver
		expectURL     string
		expectResolve int
	}

	tests := []test{
		{
			name:          "Single",
			mirrors:       []string{"https://a.example"},
			resolver:      &fakeResolver{url: "https://unused.example/x.zip"},
			expectURL:     "https://a.example/android-ndk-r29-linux.zip",
			expectResolve: 0,
		},
		{
			name:          "Resolved",
			mirrors:       []string{"https://a.example", "https://b.example"},
			resolver:      &fakeResolver{url: "https://b.example/android-ndk-r29-linux.zip"},
			expectURL:     "https://b.example/android-ndk-r29-linux.zip",
			expectResolve: 1,
		},
		{
			name:          "Unreachable",
			mirrors:       []string{"https://a.example", "https://b.example"},
			resolver:      &fakeResolver{err: errors.New("no mirror")},
			expectURL:     "https://a.example/android-ndk-r29-linux.zip",
			expectResolve: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := newRelease(t)
			fetcher := &fakeFetcher{content: []byte("archive")}

			extractor := extractFunc(func(dir string) error {
				return os.Mkdir(filepath.Join(dir, release.DirName()), 0o755)
			})

			p := &provision.Provisioner{
				Release:   release,
				Mirrors:   tt.mirrors,
				Fetcher:   fetcher,
				Extractor: extractor,
				Resolver:  tt.resolver,
				Logger:    arbor.NewLogger(),
			}

			_, err := p.EnsureToolchain(context.Background())
			require.NoError(t, err)
			require.Equal(t, []string{tt.expectURL}, fetcher.urls)
			require.Equal(t, tt.expectResolve, tt.resolver.calls)
		})
	}
}

type extractFunc func(dir string) error

func (f extractFunc) Extract(_ context.Context, _, dir string) error {
	return f(dir)
}
