package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/tmaxmax/ndkbuild/pkg/toolchain"
)

// A Resolver picks the URL to download from out of several candidates.
type Resolver interface {
	Resolve(ctx context.Context, urls []string) (string, error)
}

// Provisioner installs an NDK release if it is not already present.
type Provisioner struct {
	Release toolchain.Release
	// Mirrors are the base URLs the release's archive can be downloaded from,
	// in order of preference. Defaults to toolchain.DefaultMirror.
	Mirrors []string
	// Fetcher defaults to an HTTPFetcher.
	Fetcher Fetcher
	// Extractor defaults to a ZipExtractor.
	Extractor Extractor
	// Resolver is consulted only if there is more than one mirror.
	Resolver Resolver
	// Progress receives the download progress line. Progress is not printed if nil.
	Progress io.Writer
	Logger   arbor.ILogger
}

// EnsureToolchain returns the release's installation directory, downloading and
// extracting the NDK first if that directory does not exist. If the directory
// exists nothing else is done: no network access and no writes.
//
// Download and extraction failures are returned as an *Error. The archive is
// removed after a successful extraction; a partially extracted directory is
// left in place.
func (p *Provisioner) EnsureToolchain(ctx context.Context) (string, error) {
	installDir := p.Release.InstallDir()

	if _, err := os.Stat(installDir); err == nil {
		return installDir, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("provision: failed to inspect %s: %w", installDir, err)
	}

	url := p.resolveURL(ctx)
	archive := p.Release.ArchivePath()

	p.logger().Info().Str("url", url).Msg("Downloading Android NDK")
	p.logger().Info().Msg("This may take several minutes...")

	if err := p.install(ctx, url, archive); err != nil {
		return "", &Error{
			Cause:     err,
			URL:       url,
			Root:      p.Release.Root,
			TargetDir: installDir,
			DirName:   p.Release.DirName(),
		}
	}

	p.logger().Info().Str("path", installDir).Msg("NDK successfully installed")

	return installDir, nil
}

func (p *Provisioner) install(ctx context.Context, url, archive string) error {
	var progress ProgressFunc
	var printer *ProgressPrinter

	if p.Progress != nil {
		printer = NewProgressPrinter(p.Progress)
		progress = printer.Update
	}

	err := p.fetcher().Fetch(ctx, url, archive, progress)
	if printer != nil {
		printer.Done()
	}
	if err != nil {
		return err
	}

	p.logger().Info().Msg("Download completed, extracting NDK")

	if err := p.extractor().Extract(ctx, archive, p.Release.Root); err != nil {
		return err
	}

	if err := os.Remove(archive); err != nil {
		return fmt.Errorf("failed to remove archive %s: %w", archive, err)
	}

	return nil
}

func (p *Provisioner) resolveURL(ctx context.Context) string {
	mirrors := p.Mirrors
	if len(mirrors) == 0 {
		mirrors = []string{toolchain.DefaultMirror}
	}

	urls := make([]string, len(mirrors))
	for i, m := range mirrors {
		urls[i] = p.Release.URL(m)
	}

	if len(urls) == 1 || p.Resolver == nil {
		return urls[0]
	}

	url, err := p.Resolver.Resolve(ctx, urls)
	if err != nil {
		p.logger().Warn().Err(err).Str("url", urls[0]).Msg("No mirror answered, using the first one")
		return urls[0]
	}

	return url
}

func (p *Provisioner) fetcher() Fetcher {
	if p.Fetcher == nil {
		return &HTTPFetcher{}
	}
	return p.Fetcher
}

func (p *Provisioner) extractor() Extractor {
	if p.Extractor == nil {
		return ZipExtractor{}
	}
	return p.Extractor
}

func (p *Provisioner) logger() arbor.ILogger {
	if p.Logger == nil {
		p.Logger = arbor.NewLogger()
	}
	return p.Logger
}
