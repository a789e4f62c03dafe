// Package store holds the authoritative ordered block sequence for one open
// page and funnels every mutation through a single place so order indices
// stay dense. Persistence happens after each mutation through a per-page
// write queue: one save in flight at a time, newer snapshots coalescing to
// the latest state while a save is running.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

// Snapshot is the full page state handed to the saver after a mutation.
type Snapshot struct {
	Blocks []blocks.Block
	Theme  blocks.Theme
}

// Saver persists a page snapshot. Failures are reported, never retried, and
// never roll back the in-memory state.
type Saver interface {
	SavePage(ctx context.Context, snap Snapshot) error
}

// Update carries a partial block edit. Nil fields are left untouched.
type Update struct {
	Text        *string
	Testimonial *blocks.Testimonial
	Features    *blocks.FeatureList
	Styles      *blocks.Styles
}

// Store owns the ordered block sequence and theme of exactly one page.
// Mutations are synchronous in memory; persistence is asynchronous and
// serialized through the write queue.
type Store struct {
	mu     sync.Mutex
	blocks []blocks.Block
	theme  blocks.Theme
	saver  Saver

	cond    *sync.Cond
	pending *Snapshot
	saving  bool
}

// New returns an empty store. saver may be nil, in which case mutations are
// in-memory only.
func New(saver Saver) *Store {
	s := &Store{saver: saver}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Load seeds the store from persisted state without triggering a save.
func (s *Store) Load(list []blocks.Block, theme blocks.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append([]blocks.Block(nil), list...)
	s.theme = theme
}

// SetTheme replaces the page theme and persists.
func (s *Store) SetTheme(theme blocks.Theme) {
	s.mu.Lock()
	s.theme = theme
	s.scheduleSaveLocked()
	s.mu.Unlock()
}

// Blocks returns a copy of the current ordered sequence.
func (s *Store) Blocks() []blocks.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]blocks.Block(nil), s.blocks...)
}

// Theme returns the current page theme.
func (s *Store) Theme() blocks.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Len returns the number of blocks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks)
}

// InsertAt inserts a block at index, clamped to [0, len]. Later blocks shift
// right, so positions stay dense. A block arriving without an id is minted
// one; parse-time ids are kept as-is.
func (s *Store) InsertAt(b blocks.Block, index int) blocks.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	index = clamp(index, 0, len(s.blocks))
	s.blocks = append(s.blocks, blocks.Block{})
	copy(s.blocks[index+1:], s.blocks[index:])
	s.blocks[index] = b
	s.scheduleSaveLocked()
	return b
}

// DeleteAt removes the block at index. Out-of-range indices are a silent
// no-op; removal compacts the remaining positions.
func (s *Store) DeleteAt(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.blocks) {
		return
	}
	s.blocks = append(s.blocks[:index], s.blocks[index+1:]...)
	s.scheduleSaveLocked()
}

// DeleteByID removes the block with the given id, if present.
func (s *Store) DeleteByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		return
	}
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	s.scheduleSaveLocked()
}

// MoveTo removes the identified block and reinserts it at the clamped target
// index. This realizes interactive drag-reorder. Unknown ids and moves that
// resolve to the current position are no-ops.
func (s *Store) MoveTo(id string, target int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		return
	}
	target = clamp(target, 0, len(s.blocks)-1)
	if target == i {
		return
	}
	b := s.blocks[i]
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	s.blocks = append(s.blocks, blocks.Block{})
	copy(s.blocks[target+1:], s.blocks[target:])
	s.blocks[target] = b
	s.scheduleSaveLocked()
}

// ReplaceContent merges an update into the identified block without changing
// its position. Unknown ids are a silent no-op.
func (s *Store) ReplaceContent(id string, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		return
	}
	b := &s.blocks[i]
	if u.Text != nil {
		b.Text = *u.Text
	}
	if u.Testimonial != nil {
		t := *u.Testimonial
		b.Testimonial = &t
	}
	if u.Features != nil {
		f := blocks.FeatureList{Features: append([]string(nil), u.Features.Features...)}
		b.Features = &f
	}
	if u.Styles != nil {
		st := *u.Styles
		b.Styles = &st
	}
	s.scheduleSaveLocked()
}

// Flush blocks until the write queue is empty. Intended for shutdown and
// tests; editing never waits on it.
func (s *Store) Flush() {
	s.mu.Lock()
	for s.saving || s.pending != nil {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

func (s *Store) indexOfLocked(id string) int {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// scheduleSaveLocked records the latest snapshot and starts the drain
// goroutine unless one is already running. Called with s.mu held.
func (s *Store) scheduleSaveLocked() {
	if s.saver == nil {
		return
	}
	snap := Snapshot{
		Blocks: append([]blocks.Block(nil), s.blocks...),
		Theme:  s.theme,
	}
	s.pending = &snap
	if s.saving {
		return
	}
	s.saving = true
	go s.drain()
}

func (s *Store) drain() {
	for {
		s.mu.Lock()
		snap := s.pending
		s.pending = nil
		if snap == nil {
			s.saving = false
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		if err := s.saver.SavePage(context.Background(), *snap); err != nil {
			// In-memory state stays as mutated; the user sees a failure
			// notification and the next successful save reconverges.
			log.Warn().Err(err).Int("blocks", len(snap.Blocks)).Msg("page save failed")
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
