package provision

import (
	"fmt"
	"io"

	"github.com/docker/go-units"
)

// ProgressFunc is called synchronously while an archive is downloaded.
// total is zero or negative if the size of the archive is not known.
type ProgressFunc func(transferred, total int64)

// ProgressPrinter renders download progress as a single line that is
// rewritten in place. The percentage it prints never decreases and stays
// within [0, 100]. If the total size is unknown only the transferred
// byte count is printed.
type ProgressPrinter struct {
	w       io.Writer
	percent int
	started bool
}

// NewProgressPrinter creates a printer that writes to w.
func NewProgressPrinter(w io.Writer) *ProgressPrinter {
	return &ProgressPrinter{w: w, percent: -1}
}

// Update is a ProgressFunc.
func (p *ProgressPrinter) Update(transferred, total int64) {
	if total <= 0 {
		p.started = true
		fmt.Fprintf(p.w, "\rDownloading... %s", units.HumanSize(float64(transferred)))
		return
	}

	percent := Percent(transferred, total)
	if percent <= p.percent {
		return
	}

	p.percent = percent
	p.started = true
	fmt.Fprintf(p.w, "\rDownloading... %d%% (%s / %s)", percent, units.HumanSize(float64(transferred)), units.HumanSize(float64(total)))
}

// Done terminates the progress line.
func (p *ProgressPrinter) Done() {
	if p.started {
		fmt.Fprintln(p.w)
	}
}

// Percent returns transferred/total as a whole percentage, rounded down and
// clamped to [0, 100]. It returns 0 if total is not positive.
func Percent(transferred, total int64) int {
	if total <= 0 || transferred <= 0 {
		return 0
	}
	if transferred >= total {
		return 100
	}
	return int(transferred * 100 / total)
}
