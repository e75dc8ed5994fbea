package eventloop

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Manual is deterministic dispatcher driven by the caller. Time is virtual
// and only moves with Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	queue  []func()
	timers []*manualTimer
}

func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	m    *Manual
	at   time.Duration
	seq  uint64
	f    func()
	done bool
}

func (mt *manualTimer) Stop() bool {
	mt.m.mu.Lock()
	defer mt.m.mu.Unlock()
	if mt.done {
		return false
	}
	mt.done = true
	return true
}

func (m *Manual) Post(f func()) bool {
	m.mu.Lock()
	m.queue = append(m.queue, f)
	m.mu.Unlock()
	return true
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	mt := &manualTimer{m: m, at: m.now + max(d, 0), seq: m.seq, f: f}
	m.timers = append(m.timers, mt)
	return mt
}

// Now returns virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Drain runs posted callbacks, including ones posted while draining, and
// returns number of callbacks executed.
func (m *Manual) Drain() int {
	n := 0
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return n
		}
		f := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		f()
		n++
	}
}

// Advance moves virtual clock forward firing due timers in deadline order,
// draining posted work after each one.
func (m *Manual) Advance(d time.Duration) {
	m.Drain()

	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		m.timers = slices.DeleteFunc(m.timers, func(mt *manualTimer) bool { return mt.done })
		slices.SortFunc(m.timers, func(a, b *manualTimer) int {
			if c := cmp.Compare(a.at, b.at); c != 0 {
				return c
			}
			return cmp.Compare(a.seq, b.seq)
		})
		if len(m.timers) == 0 || m.timers[0].at > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		mt := m.timers[0]
		m.timers = m.timers[1:]
		mt.done = true
		m.now = mt.at
		m.mu.Unlock()

		mt.f()
		m.Drain()
	}
}

// Pending returns number of timers which are neither fired nor stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, mt := range m.timers {
		if !mt.done {
			n++
		}
	}
	return n
}
