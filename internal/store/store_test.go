package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/FarhadAbbasi/Onboarding-App-sub001/internal/blocks"
)

func seeded(saver Saver) *Store {
	s := New(saver)
	s.Load([]blocks.Block{
		{ID: "a", Type: blocks.TypeHeadline, Text: "A"},
		{ID: "b", Type: blocks.TypeParagraph, Text: "B"},
		{ID: "c", Type: blocks.TypeFooter, Text: "C"},
	}, blocks.Theme{HTML: "<body><main></main></body>"})
	return s
}

func ids(s *Store) []string {
	list := s.Blocks()
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.ID
	}
	return out
}

func wantOrder(t *testing.T, s *Store, want ...string) {
	t.Helper()
	got := ids(s)
	if len(got) != len(want) {
		t.Fatalf("length: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestMoveTo_ToFront(t *testing.T) {
	s := seeded(nil)
	s.MoveTo("c", 0)
	wantOrder(t, s, "c", "a", "b")
}

func TestMoveTo_SamePositionNoOp(t *testing.T) {
	calls := 0
	s := seeded(saverFunc(func(context.Context, Snapshot) error { calls++; return nil }))
	s.MoveTo("b", 1)
	s.Flush()
	wantOrder(t, s, "a", "b", "c")
	if calls != 0 {
		t.Fatalf("same-position move must not persist, got %d saves", calls)
	}
}

func TestMoveTo_TargetClamped(t *testing.T) {
	s := seeded(nil)
	s.MoveTo("a", 99)
	wantOrder(t, s, "b", "c", "a")
	s.MoveTo("a", -5)
	wantOrder(t, s, "a", "b", "c")
}

func TestMoveTo_UnknownIDNoOp(t *testing.T) {
	s := seeded(nil)
	s.MoveTo("zz", 0)
	wantOrder(t, s, "a", "b", "c")
}

func TestInsertAt_ClampsAndShifts(t *testing.T) {
	s := seeded(nil)
	s.InsertAt(blocks.Block{ID: "x", Type: blocks.TypeLink, Text: "X"}, 1)
	wantOrder(t, s, "a", "x", "b", "c")
	s.InsertAt(blocks.Block{ID: "y", Type: blocks.TypeLink}, 99)
	wantOrder(t, s, "a", "x", "b", "c", "y")
	s.InsertAt(blocks.Block{ID: "z", Type: blocks.TypeLink}, -1)
	wantOrder(t, s, "z", "a", "x", "b", "c", "y")
}

func TestInsertAt_MintsIDWhenMissing(t *testing.T) {
	s := New(nil)
	b := s.InsertAt(blocks.Block{Type: blocks.TypeParagraph, Text: "hi"}, 0)
	if b.ID == "" {
		t.Fatalf("expected a minted id")
	}
	c := s.InsertAt(blocks.Block{Type: blocks.TypeParagraph}, 1)
	if c.ID == b.ID {
		t.Fatalf("ids must be unique, got %q twice", b.ID)
	}
}

func TestDelete_SilentNoOpOnMiss(t *testing.T) {
	s := seeded(nil)
	s.DeleteAt(10)
	s.DeleteAt(-1)
	s.DeleteByID("zz")
	wantOrder(t, s, "a", "b", "c")
}

func TestDelete_CompactsOrder(t *testing.T) {
	s := seeded(nil)
	s.DeleteByID("b")
	wantOrder(t, s, "a", "c")
	s.DeleteAt(0)
	wantOrder(t, s, "c")
}

func TestReplaceContent_MergesWithoutMoving(t *testing.T) {
	s := seeded(nil)
	text := "B edited"
	s.ReplaceContent("b", Update{Text: &text, Styles: &blocks.Styles{Color: "red"}})
	wantOrder(t, s, "a", "b", "c")
	b := s.Blocks()[1]
	if b.Text != "B edited" {
		t.Fatalf("text: got %q", b.Text)
	}
	if b.Styles == nil || b.Styles.Color != "red" {
		t.Fatalf("styles: got %+v", b.Styles)
	}
	if b.Type != blocks.TypeParagraph {
		t.Fatalf("untouched fields must survive, got %+v", b)
	}
}

func TestOrderDensity_AfterMixedMutations(t *testing.T) {
	s := seeded(nil)
	s.InsertAt(blocks.Block{ID: "d", Type: blocks.TypeLink}, 2)
	s.MoveTo("a", 3)
	s.DeleteByID("b")
	s.MoveTo("d", 0)
	s.InsertAt(blocks.Block{ID: "e", Type: blocks.TypeLink}, 1)

	list := s.Blocks()
	seen := map[string]bool{}
	for _, b := range list {
		if seen[b.ID] {
			t.Fatalf("duplicate id %q in %v", b.ID, ids(s))
		}
		seen[b.ID] = true
	}
	// Positions are the slice indices; the sequence itself must hold every
	// surviving block exactly once, in the order the mutations produced.
	want := []string{"d", "e", "c", "a"}
	if len(list) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %v", len(want), len(list), ids(s))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("position %d: expected %q, got %v", i, id, ids(s))
		}
	}
}

type saverFunc func(context.Context, Snapshot) error

func (f saverFunc) SavePage(ctx context.Context, snap Snapshot) error { return f(ctx, snap) }

func TestSaver_CalledWithFullSnapshot(t *testing.T) {
	var mu sync.Mutex
	var last Snapshot
	s := seeded(saverFunc(func(_ context.Context, snap Snapshot) error {
		mu.Lock()
		last = snap
		mu.Unlock()
		return nil
	}))
	s.DeleteByID("b")
	s.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(last.Blocks) != 2 || last.Blocks[0].ID != "a" || last.Blocks[1].ID != "c" {
		t.Fatalf("snapshot: got %+v", last.Blocks)
	}
	if last.Theme.HTML == "" {
		t.Fatalf("snapshot must carry the theme")
	}
}

func TestSaver_CoalescesRapidMutations(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	var last Snapshot
	slow := saverFunc(func(_ context.Context, snap Snapshot) error {
		mu.Lock()
		calls++
		last = snap
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		return nil
	})
	s := seeded(slow)

	const n = 25
	for i := 0; i < n; i++ {
		s.MoveTo("c", i%3)
	}
	text := "final"
	s.ReplaceContent("a", Update{Text: &text})
	s.Flush()

	mu.Lock()
	defer mu.Unlock()
	if calls >= n {
		t.Fatalf("expected coalescing, got %d saves for %d mutations", calls, n+1)
	}
	// The final persisted snapshot reflects the final in-memory state.
	want := s.Blocks()
	if len(last.Blocks) != len(want) {
		t.Fatalf("final snapshot length %d, want %d", len(last.Blocks), len(want))
	}
	for i := range want {
		if last.Blocks[i].ID != want[i].ID || last.Blocks[i].Text != want[i].Text {
			t.Fatalf("final snapshot diverges at %d: %+v vs %+v", i, last.Blocks[i], want[i])
		}
	}
}

func TestSaver_FailureKeepsMemoryState(t *testing.T) {
	s := seeded(saverFunc(func(context.Context, Snapshot) error {
		return context.DeadlineExceeded
	}))
	s.MoveTo("c", 0)
	s.Flush()
	wantOrder(t, s, "c", "a", "b")
}
