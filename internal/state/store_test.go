package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/atomicstack/tabstrip/internal/content"
)

func mustOpen(t *testing.T, s *Store, kind content.Kind) Tab {
	t.Helper()
	tab, err := s.Open(kind)
	if err != nil {
		t.Fatalf("open %s: %v", kind, err)
	}
	return tab
}

func tabIDs(snap Snapshot) []int {
	ids := make([]int, len(snap.Tabs))
	for i, tab := range snap.Tabs {
		ids[i] = tab.ID
	}
	return ids
}

func assertIDs(t *testing.T, snap Snapshot, want ...int) {
	t.Helper()
	got := tabIDs(snap)
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

func assertInvariants(t *testing.T, snap Snapshot, allowDangling bool) {
	t.Helper()
	if len(snap.Tabs) == 0 {
		t.Fatalf("tab sequence is empty")
	}
	if snap.Tabs[0].Kind != content.Home {
		t.Fatalf("expected home at index 0, got %s", snap.Tabs[0].Kind)
	}
	seen := make(map[int]struct{}, len(snap.Tabs))
	for i, tab := range snap.Tabs {
		if i > 0 && tab.Kind == content.Home {
			t.Fatalf("unexpected second home tab at %d", i)
		}
		if _, dup := seen[tab.ID]; dup {
			t.Fatalf("duplicate id %d in %v", tab.ID, tabIDs(snap))
		}
		seen[tab.ID] = struct{}{}
	}
	if _, ok := seen[snap.ActiveTabID]; !ok && !allowDangling {
		t.Fatalf("active id %d not present in %v", snap.ActiveTabID, tabIDs(snap))
	}
}

func TestNewStoreStartsWithHomeActive(t *testing.T) {
	s := NewStore(PolicyStrict)
	snap := s.Snapshot()
	assertIDs(t, snap, HomeTabID)
	if snap.ActiveTabID != HomeTabID {
		t.Fatalf("expected home active, got %d", snap.ActiveTabID)
	}
	if snap.Tabs[0].HasName {
		t.Fatalf("expected home tab without a name")
	}
	if snap.ScrollOffset != 0 {
		t.Fatalf("expected zero offset, got %d", snap.ScrollOffset)
	}
	if len(snap.ContentKinds) != 4 || snap.ContentKinds[0] != content.Home {
		t.Fatalf("expected static content kinds, got %v", snap.ContentKinds)
	}
}

func TestOpenInsertsRightOfHome(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	b := mustOpen(t, s, content.TypeB)
	snap := s.Snapshot()
	assertIDs(t, snap, HomeTabID, b.ID, a.ID)
	if snap.ActiveTabID != b.ID {
		t.Fatalf("expected newest tab active, got %d", snap.ActiveTabID)
	}
	if a.Name != "Type A" || !a.HasName {
		t.Fatalf("expected tab named after kind title, got %#v", a)
	}
	assertInvariants(t, snap, false)
}

func TestOpenSameKindTwiceYieldsDistinctTabs(t *testing.T) {
	s := NewStore(PolicyStrict)
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })
	first := mustOpen(t, s, content.TypeC)
	second := mustOpen(t, s, content.TypeC)
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %d twice", first.ID)
	}
	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
}

func TestOpenRejectsHomeAndUnknownKinds(t *testing.T) {
	s := NewStore(PolicyStrict)
	if _, err := s.Open(content.Home); !errors.Is(err, ErrHomeKind) {
		t.Fatalf("expected ErrHomeKind, got %v", err)
	}
	if _, err := s.Open(content.Kind(99)); !errors.Is(err, content.ErrUnknownContentKind) {
		t.Fatalf("expected ErrUnknownContentKind, got %v", err)
	}
	assertIDs(t, s.Snapshot(), HomeTabID)
	next := mustOpen(t, s, content.TypeA)
	if next.ID != 2 {
		t.Fatalf("rejected opens must not consume ids, got %d", next.ID)
	}
}

func TestCloseThenOpenNeverReusesID(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	if err := s.Close(a.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	b := mustOpen(t, s, content.TypeA)
	if b.ID == a.ID {
		t.Fatalf("id %d reused after close", a.ID)
	}
}

func TestCloseOnlyTabLeavesHomeActive(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	if err := s.Close(a.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	snap := s.Snapshot()
	assertIDs(t, snap, HomeTabID)
	if snap.ActiveTabID != HomeTabID {
		t.Fatalf("expected home active, got %d", snap.ActiveTabID)
	}
}

func TestCloseMiddleActivatesTabNowAtIndex(t *testing.T) {
	s := NewStore(PolicyStrict)
	c := mustOpen(t, s, content.TypeC)
	b := mustOpen(t, s, content.TypeB)
	a := mustOpen(t, s, content.TypeA)
	assertIDs(t, s.Snapshot(), HomeTabID, a.ID, b.ID, c.ID)

	if err := s.Close(b.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	snap := s.Snapshot()
	assertIDs(t, snap, HomeTabID, a.ID, c.ID)
	if snap.ActiveTabID != c.ID {
		t.Fatalf("expected %d active, got %d", c.ID, snap.ActiveTabID)
	}
}

func TestCloseRightmostActivatesLastTab(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	b := mustOpen(t, s, content.TypeB)
	if err := s.Activate(a.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := s.Close(a.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	snap := s.Snapshot()
	assertIDs(t, snap, HomeTabID, b.ID)
	if snap.ActiveTabID != b.ID {
		t.Fatalf("expected %d active, got %d", b.ID, snap.ActiveTabID)
	}
}

func TestCloseHomeIsRejected(t *testing.T) {
	for _, policy := range []Policy{PolicyStrict, PolicyLenient} {
		s := NewStore(policy)
		mustOpen(t, s, content.TypeA)
		before := s.Snapshot()
		if err := s.Close(HomeTabID); !errors.Is(err, ErrHomeTab) {
			t.Fatalf("%s: expected ErrHomeTab, got %v", policy, err)
		}
		if !s.Snapshot().Equal(before) {
			t.Fatalf("%s: state changed after rejected close", policy)
		}
	}
}

func TestStrictPolicyRejectsUnknownIDs(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })

	if err := s.Activate(99); !errors.Is(err, ErrTabNotFound) {
		t.Fatalf("activate: expected ErrTabNotFound, got %v", err)
	}
	if err := s.Close(99); !errors.Is(err, ErrTabNotFound) {
		t.Fatalf("close: expected ErrTabNotFound, got %v", err)
	}
	snap := s.Snapshot()
	if snap.ActiveTabID != a.ID {
		t.Fatalf("expected active %d unchanged, got %d", a.ID, snap.ActiveTabID)
	}
	if calls != 0 {
		t.Fatalf("expected no notifications, got %d", calls)
	}
	assertInvariants(t, snap, false)
}

func TestLenientPolicyKeepsOriginalBehaviour(t *testing.T) {
	s := NewStore(PolicyLenient)
	a := mustOpen(t, s, content.TypeA)
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })

	if err := s.Close(99); err != nil {
		t.Fatalf("close unknown: expected nil, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected silent no-op close, got %d notifications", calls)
	}
	assertIDs(t, s.Snapshot(), HomeTabID, a.ID)

	if err := s.Activate(99); err != nil {
		t.Fatalf("activate unknown: expected nil, got %v", err)
	}
	snap := s.Snapshot()
	if snap.ActiveTabID != 99 {
		t.Fatalf("expected dangling active id 99, got %d", snap.ActiveTabID)
	}
	if _, ok := snap.ActiveTab(); ok {
		t.Fatalf("expected no active tab for dangling id")
	}
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
	assertInvariants(t, snap, true)
}

func TestScrollAccumulatesWithoutClamping(t *testing.T) {
	s := NewStore(PolicyStrict)
	s.Scroll(DirectionLeft, 10)
	s.Scroll(DirectionRight, 4)
	if got := s.Snapshot().ScrollOffset; got != -6 {
		t.Fatalf("expected offset -6, got %d", got)
	}
	s.Scroll(Direction("up"), 100)
	if got := s.Snapshot().ScrollOffset; got != 94 {
		t.Fatalf("expected non-left directions to add, got %d", got)
	}
}

func TestReactivatingActiveTabDoesNotNotify(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })
	if err := s.Activate(a.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	s.Scroll(DirectionRight, 0)
	if calls != 0 {
		t.Fatalf("expected no notifications, got %d", calls)
	}
	if err := s.Activate(HomeTabID); err != nil {
		t.Fatalf("activate home: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}
}

func TestObserversRunInOrderAndUnsubscribe(t *testing.T) {
	s := NewStore(PolicyStrict)
	var order []string
	unsubFirst := s.Subscribe(func(Snapshot) { order = append(order, "first") })
	s.Subscribe(func(snap Snapshot) {
		order = append(order, "second")
		if got := s.Snapshot(); !got.Equal(snap) {
			t.Fatalf("observer snapshot differs from pull snapshot")
		}
	})
	mustOpen(t, s, content.TypeA)
	unsubFirst()
	mustOpen(t, s, content.TypeB)
	want := []string{"first", "second", "second"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestConcurrentOpensDeliverInCommitOrder(t *testing.T) {
	const workers, opens = 8, 50
	for round := 0; round < 5; round++ {
		s := NewStore(PolicyStrict)
		var (
			last       int
			regressed  int
			deliveries int
		)
		s.Subscribe(func(snap Snapshot) {
			deliveries++
			if len(snap.Tabs) < last {
				regressed++
			}
			last = len(snap.Tabs)
		})
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < opens; i++ {
					if _, err := s.Open(content.TypeA); err != nil {
						t.Errorf("open: %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()
		if regressed != 0 {
			t.Fatalf("round %d: %d deliveries older than a previous one", round, regressed)
		}
		if deliveries == 0 {
			t.Fatalf("round %d: expected deliveries", round)
		}
		want := 1 + workers*opens
		if last != want {
			t.Fatalf("round %d: expected final delivery with %d tabs, got %d", round, want, last)
		}
		assertInvariants(t, s.Snapshot(), false)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore(PolicyStrict)
	mustOpen(t, s, content.TypeA)
	snap := s.Snapshot()
	snap.Tabs[1].Name = "mutated"
	snap.ContentKinds[0] = content.TypeC
	again := s.Snapshot()
	if again.Tabs[1].Name != "Type A" || again.ContentKinds[0] != content.Home {
		t.Fatalf("snapshot mutation leaked into store: %#v", again)
	}
}

func TestOpenOpenCloseScenario(t *testing.T) {
	s := NewStore(PolicyStrict)
	a := mustOpen(t, s, content.TypeA)
	b := mustOpen(t, s, content.TypeB)
	snap := s.Snapshot()
	assertIDs(t, snap, HomeTabID, b.ID, a.ID)
	if snap.Tabs[1].Kind != content.TypeB || snap.Tabs[2].Kind != content.TypeA {
		t.Fatalf("unexpected kinds %v", snap.Tabs)
	}
	if err := s.Close(a.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	snap = s.Snapshot()
	assertIDs(t, snap, HomeTabID, b.ID)
	if snap.ActiveTabID != b.ID {
		t.Fatalf("expected %d to stay active, got %d", b.ID, snap.ActiveTabID)
	}
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	kinds := []content.Kind{content.TypeA, content.TypeB, content.TypeC}
	s := NewStore(PolicyStrict)
	for step := 0; step < 200; step++ {
		snap := s.Snapshot()
		switch step % 5 {
		case 0, 1:
			mustOpen(t, s, kinds[step%len(kinds)])
		case 2:
			target := snap.Tabs[step%len(snap.Tabs)]
			if target.IsHome() {
				continue
			}
			if err := s.Close(target.ID); err != nil {
				t.Fatalf("step %d close: %v", step, err)
			}
		case 3:
			target := snap.Tabs[(step*7)%len(snap.Tabs)]
			if err := s.Activate(target.ID); err != nil {
				t.Fatalf("step %d activate: %v", step, err)
			}
		case 4:
			s.Scroll(DirectionLeft, step)
		}
		assertInvariants(t, s.Snapshot(), false)
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("LENIENT"); err != nil || p != PolicyLenient {
		t.Fatalf("expected lenient, got %v %v", p, err)
	}
	if p, err := ParsePolicy(""); err != nil || p != PolicyStrict {
		t.Fatalf("expected strict default, got %v %v", p, err)
	}
	if _, err := ParsePolicy("loose"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
