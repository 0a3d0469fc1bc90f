/*
Package mirror picks a reachable download mirror out of a list of candidates.
*/
package mirror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/debug"
)

// ErrNoMirror is returned by Resolve when none of the candidates answered.
var ErrNoMirror = errors.New("mirror: no reachable mirror")

// The Prober checks candidate URLs with HEAD requests, made through a Colly collector.
type Prober struct {
	// Debugger is an optional debugger implementation used by the collector.
	Debugger debug.Debugger
	// RoundTripper is, if defined, a custom roundtripper used by the collector.
	RoundTripper http.RoundTripper
	// Timeout is the timeout of each probe. Defaults to no timeout.
	Timeout time.Duration

	collector     *colly.Collector
	collectorInit sync.Once
}

func (p *Prober) getCollector(ctx context.Context) *colly.Collector {
	p.collectorInit.Do(func() {
		col := colly.NewCollector()
		col.AllowURLRevisit = true
		if p.Debugger != nil {
			col.SetDebugger(p.Debugger)
		}
		if p.RoundTripper != nil {
			col.WithTransport(p.RoundTripper)
		}
		col.SetRequestTimeout(p.Timeout)

		p.collector = col
	})

	col := p.collector.Clone()
	col.Context = ctx
	return col
}

// Reachable reports whether url answers a HEAD request with a successful status.
func (p *Prober) Reachable(ctx context.Context, url string) error {
	if err := p.getCollector(ctx).Head(url); err != nil {
		return fmt.Errorf("mirror: %s is not reachable: %w", url, err)
	}
	return nil
}

// Resolve returns the first of the given URLs that is reachable, probing them in order.
func (p *Prober) Resolve(ctx context.Context, urls []string) (string, error) {
	var errs []error

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		err := p.Reachable(ctx, url)
		if err == nil {
			return url, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return "", ErrNoMirror
	}

	return "", fmt.Errorf("%w: %w", ErrNoMirror, errors.Join(errs...))
}
