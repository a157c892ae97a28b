package scoring

import (
	"time"

	"github.com/poiesic/hemeroteca/core"
)

// Monitor provides hooks to observe a scoring batch.
// UnitFinished is called concurrently from pool workers.
type Monitor interface {
	BatchStarted(size int)
	UnitFinished(item *core.Item, elapsed time.Duration, err error)
	BatchFinished(scored, failed int, elapsed time.Duration)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) BatchStarted(_ int)                                {}
func (n *noopMonitor) UnitFinished(_ *core.Item, _ time.Duration, _ error) {}
func (n *noopMonitor) BatchFinished(_, _ int, _ time.Duration)            {}
