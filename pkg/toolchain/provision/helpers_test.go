package provision_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmaxmax/ndkbuild/pkg/toolchain/provision"
)

type zipEntry struct {
	name    string
	content string
	mode    os.FileMode
}

func makeZip(tb testing.TB, entries ...zipEntry) []byte {
	tb.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, e := range entries {
		h := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		mode := e.mode
		if mode == 0 {
			mode = 0o644
		}
		if e.name[len(e.name)-1] == '/' {
			mode |= os.ModeDir
		}
		h.SetMode(mode)

		fw, err := w.CreateHeader(h)
		require.NoError(tb, err)
		if e.content != "" {
			_, err = fw.Write([]byte(e.content))
			require.NoError(tb, err)
		}
	}

	require.NoError(tb, w.Close())
	return buf.Bytes()
}

func ndkZip(tb testing.TB) []byte {
	tb.Helper()

	return makeZip(tb,
		zipEntry{name: "android-ndk-r29/"},
		zipEntry{name: "android-ndk-r29/build/cmake/android.toolchain.cmake", content: "# toolchain"},
		zipEntry{name: "android-ndk-r29/toolchains/llvm/prebuilt/linux-x86_64/bin/llvm-strip", content: "#!/bin/sh\n", mode: 0o755},
	)
}

type fakeFetcher struct {
	content []byte
	chunk   int
	err     error
	urls    []string
}

var _ provision.Fetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) Fetch(_ context.Context, url, dst string, progress provision.ProgressFunc) error {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return f.err
	}

	total := int64(len(f.content))
	chunk := f.chunk
	if chunk <= 0 {
		chunk = 64
	}

	if progress != nil {
		for n := 0; n < len(f.content); n += chunk {
			progress(int64(n), total)
		}
		progress(total, total)
	}

	return os.WriteFile(dst, f.content, 0o644)
}

type fakeExtractor struct {
	next  provision.Extractor
	err   error
	calls int
}

var _ provision.Extractor = (*fakeExtractor)(nil)

func (f *fakeExtractor) Extract(ctx context.Context, path, dir string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.next == nil {
		return nil
	}
	return f.next.Extract(ctx, path, dir)
}

type fakeResolver struct {
	url   string
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, urls []string) (string, error) {
	f.calls++
	return f.url, f.err
}

func listDir(tb testing.TB, dir string) []string {
	tb.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(tb, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
