package pool

import (
	"math/rand"
	"testing"
)

type item struct {
	idx   int
	gen   int
	reset int
}

func (it *item) PoolIndex() int     { return it.idx }
func (it *item) SetPoolIndex(i int) { it.idx = i }
func (it *item) Reset()             { it.gen = 0; it.reset++ }

func newItem() *item { return &item{idx: 7} }

func newPool(initial, ceiling int) *Pool[*item] {
	return New(newItem, initial, ceiling)
}

func checkInvariant(t *testing.T, p *Pool[*item]) {
	t.Helper()
	st := p.Stats()
	if st.Live+st.Free != st.Total {
		t.Fatalf("live %d + free %d != total %d", st.Live, st.Free, st.Total)
	}
	seen := make(map[*item]bool, st.Total)
	for i, it := range p.live {
		if it.idx != i {
			t.Fatalf("live[%d] carries index %d", i, it.idx)
		}
		seen[it] = true
	}
	for _, it := range p.free {
		if seen[it] {
			t.Fatalf("instance is both live and free")
		}
		if it.idx != -1 {
			t.Fatalf("free instance carries index %d", it.idx)
		}
		seen[it] = true
	}
}

func TestPoolInvariantRandomSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := newPool(120, 0)
	var held []*item
	for step := 0; step < 5000; step++ {
		switch {
		case rng.Intn(10) == 0:
			p.Warm(WarmBatch)
		case len(held) == 0 || rng.Intn(2) == 0:
			it, ok := p.Acquire()
			if !ok {
				t.Fatal("unbounded pool refused Acquire")
			}
			held = append(held, it)
		default:
			i := rng.Intn(len(held))
			if !p.Release(held[i]) {
				t.Fatalf("step %d: release of live instance failed", step)
			}
			held[i] = held[len(held)-1]
			held = held[:len(held)-1]
		}
		checkInvariant(t, p)
	}
}

func TestPoolIncrementalWarm(t *testing.T) {
	p := newPool(130, 0)
	if got := p.Stats().Total; got != WarmBatch {
		t.Fatalf("constructed %d at New, want %d", got, WarmBatch)
	}
	if !p.Warming() {
		t.Fatal("expected pool to be warming")
	}
	p.Warm(WarmBatch)
	p.Warm(WarmBatch)
	if got := p.Stats().Total; got != 130 {
		t.Fatalf("total after warm = %d, want 130", got)
	}
	if p.Warm(WarmBatch) != 0 || p.Warming() {
		t.Fatal("warm must stop at initial capacity")
	}
}

func TestPoolGrowsOnDemand(t *testing.T) {
	p := newPool(2, 0)
	for i := 0; i < 10; i++ {
		if _, ok := p.Acquire(); !ok {
			t.Fatal("acquire failed")
		}
	}
	if st := p.Stats(); st.Total != 10 || st.Live != 10 || st.Free != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestPoolReleaseSwapsWithLast(t *testing.T) {
	p := newPool(0, 0)
	a, _ := p.Acquire()
	b, _ := p.Acquire()
	c, _ := p.Acquire()
	if !p.Release(a) {
		t.Fatal("release failed")
	}
	if p.live[0] != c || c.idx != 0 {
		t.Fatalf("last instance was not moved into the freed slot")
	}
	if p.live[1] != b || b.idx != 1 {
		t.Fatalf("untouched instance moved")
	}
	if a.reset != 1 || a.idx != -1 {
		t.Fatalf("released instance not reset: %+v", a)
	}
}

func TestPoolDoubleReleaseIsNoop(t *testing.T) {
	p := newPool(0, 0)
	a, _ := p.Acquire()
	b, _ := p.Acquire()
	p.Release(a)
	if p.Release(a) {
		t.Fatal("second release reported success")
	}
	if p.Len() != 1 || p.live[0] != b {
		t.Fatal("double release corrupted live")
	}
	stranger := &item{idx: 0}
	if p.Release(stranger) {
		t.Fatal("foreign instance released")
	}
	checkInvariant(t, p)
}

func TestPoolReuseResetsState(t *testing.T) {
	p := newPool(0, 0)
	a, _ := p.Acquire()
	a.gen = 3
	p.Release(a)
	again, _ := p.Acquire()
	if again != a {
		t.Fatal("free instance not reused")
	}
	if again.gen != 0 {
		t.Fatalf("generation leaked across reuse: %d", again.gen)
	}
}

func TestPoolCeiling(t *testing.T) {
	p := newPool(10, 3)
	for i := 0; i < 3; i++ {
		if _, ok := p.Acquire(); !ok {
			t.Fatalf("acquire %d refused under ceiling", i)
		}
	}
	if _, ok := p.Acquire(); ok {
		t.Fatal("acquire succeeded past ceiling")
	}
	p.Release(p.Live()[0])
	if _, ok := p.Acquire(); !ok {
		t.Fatal("acquire refused after release")
	}
	checkInvariant(t, p)
}

func TestPoolReleaseAll(t *testing.T) {
	p := newPool(0, 0)
	for i := 0; i < 25; i++ {
		p.Acquire()
	}
	p.ReleaseAll()
	if st := p.Stats(); st.Live != 0 || st.Free != 25 {
		t.Fatalf("unexpected stats after ReleaseAll %+v", st)
	}
	checkInvariant(t, p)
}

func TestSetCeilingStopsGrowth(t *testing.T) {
	p := New(newItem, 0, 0)
	for i := 0; i < 5; i++ {
		p.Acquire()
	}
	p.SetCeiling(3)
	if _, ok := p.Acquire(); ok {
		t.Fatal("pool grew past a lowered ceiling")
	}
	if p.Stats().Total != 5 {
		t.Fatalf("existing objects dropped: %+v", p.Stats())
	}
}
