package service

import (
	"sync"
	"time"
)

// attentionScheduler arms a one-shot timer per table when it first receives
// orders. The timer fires once after the configured delay unless the table
// empties first; emptying disarms it and makes it re-armable.
type attentionScheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[int]*time.Timer
	fired  map[int]bool
	notify func(tableID int)
}

func newAttentionScheduler(delay time.Duration, notify func(tableID int)) *attentionScheduler {
	return &attentionScheduler{
		delay:  delay,
		timers: make(map[int]*time.Timer),
		fired:  make(map[int]bool),
		notify: notify,
	}
}

// arm starts the table's timer unless it is already pending or has already
// fired for the current occupation. Idempotent.
func (s *attentionScheduler) arm(tableID int) {
	if s.delay <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fired[tableID] || s.timers[tableID] != nil {
		return
	}
	s.timers[tableID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.timers, tableID)
		s.fired[tableID] = true
		s.mu.Unlock()
		s.notify(tableID)
	})
}

// reset cancels any pending timer and clears the fired flag so the next
// occupation arms again.
func (s *attentionScheduler) reset(tableID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.timers[tableID]; t != nil {
		t.Stop()
		delete(s.timers, tableID)
	}
	s.fired[tableID] = false
}
