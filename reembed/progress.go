package reembed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker prints a single self-overwriting progress line.
type ProgressTracker struct {
	mu sync.Mutex

	writer  io.Writer
	total   int
	every   int
	done    int
	resumed int
	printed int
	start   time.Time
	running bool
}

// NewProgressTracker creates a tracker for total records that prints
// after every `every` records. A nil writer discards output.
func NewProgressTracker(writer io.Writer, total, every int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	if every <= 0 {
		every = 1
	}
	return &ProgressTracker{writer: writer, total: total, every: every}
}

// Start begins tracking. resumed counts records finished by an earlier
// run; they count towards the total but not towards the rate.
func (p *ProgressTracker) Start(resumed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()
	p.running = true
	p.resumed = min(resumed, p.total)
	p.done = p.resumed
	p.printed = p.resumed
}

// Add records n more finished records.
func (p *ProgressTracker) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+n, p.total)
	if p.done-p.printed >= p.every {
		p.print()
		p.printed = p.done
	}
}

// Done returns the number of finished records, resumed ones included.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish prints the final line and stops tracking.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.print()
	fmt.Fprintln(p.writer)
	p.running = false
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// Rate returns records per second processed by this run.
func (p *ProgressTracker) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate()
}

func (p *ProgressTracker) rate() float64 {
	secs := time.Since(p.start).Seconds()
	if p.start.IsZero() || secs <= 0 {
		return 0
	}
	return float64(p.done-p.resumed) / secs
}

// print must be called with the lock held.
func (p *ProgressTracker) print() {
	pct := 100.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}
	fmt.Fprintf(p.writer, "\rre-embedded %d/%d records (%.1f%%), %.1f records/s", p.done, p.total, pct, p.rate())
}
