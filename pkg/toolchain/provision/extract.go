package provision

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// An Extractor unpacks an archive into a directory.
type Extractor interface {
	// Extract unpacks every entry of the archive at path into dir, keeping
	// the entries' relative paths.
	Extract(ctx context.Context, path, dir string) error
}

// ZipExtractor is an Extractor for zip archives. Directories are created
// first, then file entries are written by up to Workers goroutines.
// Entries that would be written outside of the destination, and symlinks
// pointing outside of it, are rejected. When names repeat, the last entry wins.
type ZipExtractor struct {
	// Workers is the maximum number of entries written at once.
	// Defaults to runtime.NumCPU.
	Workers int
}

var _ Extractor = ZipExtractor{}

func (z ZipExtractor) Extract(ctx context.Context, path, dir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("extract: failed to open %s: %w", path, err)
	}
	defer r.Close()

	dir, err = filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("extract: failed to resolve %s: %w", dir, err)
	}

	var files []entry
	seen := make(map[string]int)

	for _, f := range r.File {
		target, err := entryPath(dir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			continue
		}

		e := entry{file: f, target: target}
		if f.Mode()&os.ModeSymlink != 0 {
			if e.link, err = linkTarget(dir, f, target); err != nil {
				return err
			}
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("extract: %w", err)
		}

		// A later entry with the same name replaces the earlier one.
		if i, ok := seen[target]; ok {
			files[i] = e
			continue
		}
		seen[target] = len(files)
		files = append(files, e)
	}

	workers := z.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, e := range files {
		e := e

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return e.write()
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("extract: failed to extract %s: %w", path, err)
	}

	return nil
}

type entry struct {
	file   *zip.File
	target string
	// link is the target of a symlink entry.
	link string
}

func entryPath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if !within(dir, target) {
		return "", fmt.Errorf("extract: entry %q escapes destination directory", name)
	}
	return target, nil
}

func within(dir, path string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}

// linkTarget reads the target of the symlink entry f, which is extracted to
// path. Absolute targets and targets resolving outside of dir are rejected.
func linkTarget(dir string, f *zip.File, path string) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("extract: open entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("extract: read entry %q: %w", f.Name, err)
	}

	link := filepath.FromSlash(string(data))
	if link == "" || filepath.IsAbs(link) || filepath.VolumeName(link) != "" || strings.HasPrefix(link, string(os.PathSeparator)) ||
		!within(dir, filepath.Join(filepath.Dir(path), link)) {
		return "", fmt.Errorf("extract: symlink %q points outside destination directory: %q", f.Name, data)
	}

	return link, nil
}

func (e entry) write() error {
	if e.file.Mode()&os.ModeSymlink != 0 {
		return os.Symlink(e.link, e.target)
	}

	rc, err := e.file.Open()
	if err != nil {
		return fmt.Errorf("open entry %q: %w", e.file.Name, err)
	}
	defer rc.Close()

	mode := e.file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(e.target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write entry %q: %w", e.file.Name, err)
	}

	return nil
}
