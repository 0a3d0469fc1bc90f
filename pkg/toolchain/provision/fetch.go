package provision

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
)

// A Fetcher downloads the resource at url to the file at dst.
type Fetcher interface {
	// Fetch downloads url to dst, calling progress, if non-nil, synchronously
	// every time more data was written.
	Fetch(ctx context.Context, url, dst string, progress ProgressFunc) error
}

// HTTPFetcher is a Fetcher that issues a single GET request and streams the
// response body to disk. No timeout is applied unless the RoundTripper or
// the context impose one.
type HTTPFetcher struct {
	// RoundTripper is, if defined, the transport used for the request.
	RoundTripper http.RoundTripper

	client     *http.Client
	clientInit sync.Once
}

var _ Fetcher = (*HTTPFetcher)(nil)

func (f *HTTPFetcher) getClient() *http.Client {
	f.clientInit.Do(func() {
		f.client = &http.Client{Transport: f.RoundTripper}
	})

	return f.client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url, dst string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("fetch: invalid request for %s: %w", url, err)
	}

	res, err := f.getClient().Do(req)
	if err != nil {
		return fmt.Errorf("fetch: request failed for %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("fetch: request failed for %s: %s", url, res.Status)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("fetch: failed to create %s: %w", dst, err)
	}

	pw := &progressWriter{w: out, total: res.ContentLength, progress: progress}
	pw.report()

	_, err = io.Copy(pw, res.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("fetch: failed to download %s: %w", url, err)
	}

	return nil
}

type progressWriter struct {
	w           io.Writer
	transferred int64
	total       int64
	progress    ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.transferred += int64(n)
	p.report()
	return n, err
}

func (p *progressWriter) report() {
	if p.progress != nil {
		p.progress(p.transferred, p.total)
	}
}
