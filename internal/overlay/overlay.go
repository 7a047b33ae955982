// Package overlay manages the transient per-monitor desktop-number
// indicators shown after a switch.
package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/deskhop/deskhop/internal/platform"
)

const (
	// DefaultDuration is how long a batch of indicators stays on screen.
	DefaultDuration = 1500 * time.Millisecond
	// DefaultInset is the distance from each monitor's top-left corner.
	DefaultInset = 20
)

// Indicator is a single on-screen indicator window.
type Indicator interface {
	Destroy()
}

// Surface creates indicator windows and enumerates monitors. Implemented
// by the X11 layer; faked in tests.
type Surface interface {
	Monitors() ([]platform.Monitor, error)
	CreateIndicator(label string, x, y int) (Indicator, error)
}

// Label returns the indicator text for a desktop number: "0" for desktop
// 10, the decimal digits otherwise.
func Label(desktopNumber int) string {
	if desktopNumber == 10 {
		return "0"
	}
	return strconv.Itoa(desktopNumber)
}

// Manager owns every active indicator batch. Batch expiry timers fire on
// their own goroutines; the manager's mutex is the serialization boundary
// for the active-batch set.
type Manager struct {
	surface  Surface
	duration time.Duration
	inset    int

	mu      sync.Mutex
	batches map[*Batch]struct{}
}

// NewManager creates an overlay manager. Non-positive duration/inset fall
// back to the defaults.
func NewManager(surface Surface, duration time.Duration, inset int) *Manager {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if inset <= 0 {
		inset = DefaultInset
	}
	return &Manager{
		surface:  surface,
		duration: duration,
		inset:    inset,
		batches:  make(map[*Batch]struct{}),
	}
}

// Display creates one indicator per monitor showing desktopNumber, anchored
// near each monitor's top-left corner, and schedules a single expiry timer
// for the whole batch. A failure on one monitor does not prevent creation
// on the rest; partial failures are reported alongside the (still valid)
// batch handle so the caller can log them.
//
// Batches from overlapping Display calls coexist; an earlier batch is never
// cancelled by a later one.
func (m *Manager) Display(desktopNumber int) (*Batch, error) {
	batch := &Batch{manager: m}

	monitors, err := m.surface.Monitors()
	if err != nil {
		return batch, fmt.Errorf("failed to enumerate monitors: %w", err)
	}

	label := Label(desktopNumber)
	var errs []error
	for _, mon := range monitors {
		ind, err := m.surface.CreateIndicator(label, mon.X+m.inset, mon.Y+m.inset)
		if err != nil {
			errs = append(errs, fmt.Errorf("monitor %d (%s): %w", mon.Index, mon.Name, err))
			continue
		}
		batch.indicators = append(batch.indicators, ind)
	}

	if len(batch.indicators) > 0 {
		m.mu.Lock()
		m.batches[batch] = struct{}{}
		m.mu.Unlock()
		batch.timer = time.AfterFunc(m.duration, batch.expire)
	}

	return batch, errors.Join(errs...)
}

// CancelAll destroys every active batch immediately. Used on shutdown.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	active := make([]*Batch, 0, len(m.batches))
	for b := range m.batches {
		active = append(active, b)
	}
	m.mu.Unlock()

	for _, b := range active {
		b.Cancel()
	}
}

// ActiveBatches returns how many batches are currently on screen.
func (m *Manager) ActiveBatches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batches)
}

func (m *Manager) remove(b *Batch) {
	m.mu.Lock()
	delete(m.batches, b)
	m.mu.Unlock()
}

// Batch is one switch event's worth of indicators, destroyed together by
// a single one-shot timer or an explicit Cancel.
type Batch struct {
	manager    *Manager
	indicators []Indicator
	timer      *time.Timer
	done       sync.Once
}

// Indicators returns how many indicators the batch created.
func (b *Batch) Indicators() int {
	return len(b.indicators)
}

// Cancel destroys the batch's indicators early. Idempotent: cancelling an
// already-expired or already-cancelled batch is a no-op.
func (b *Batch) Cancel() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.expire()
}

// expire destroys every indicator in the batch, best-effort, and removes
// it from the manager's active set.
func (b *Batch) expire() {
	b.done.Do(func() {
		for _, ind := range b.indicators {
			ind.Destroy()
		}
		b.indicators = nil
		if b.manager != nil {
			b.manager.remove(b)
		}
	})
}
