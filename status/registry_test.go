package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapGetIsStable(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("x")
	b := m.Get("x")
	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Count())

	_, ok := m.Lookup("y")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1600), m.Get("shared").Load())
}

func TestRangeSorted(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	m.Get("b")
	m.Get("a")
	m.Get("c")
	var keys []string
	m.Range(func(key string, _ *atomic.Int64) { keys = append(keys, key) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 4.0, f.Smooth(4, 0.5))
	assert.Equal(t, 6.0, f.Smooth(8, 0.5))
	f.Set(1.5)
	assert.Equal(t, 1.5, f.Get())
}

func TestSummary(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(EngineFrames).Store(12345)
	r.Ints.Get(LogicActors).Store(3)
	r.Ints.Get(GfxViews).Store(3)
	r.Ints.Get(GfxReady).Store(2)
	r.Floats.Get(EngineLogicMs).Set(1.25)

	s := r.Summary()
	assert.Contains(t, s, "frame 12,345")
	assert.Contains(t, s, "logic 1.25ms")
	assert.Contains(t, s, "actors 3 views 3 ready 2")
	assert.NotContains(t, s, "stalls")

	r.Ints.Get(EngineStalls).Store(2)
	assert.Contains(t, r.Summary(), "stalls 2")
}

func TestDump(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b.count").Store(2)
	r.Floats.Get("a.ms").Set(0.5)
	got := r.Dump()
	require.Len(t, got, 2)
	assert.Equal(t, "b.count=2", got[0])
	assert.Equal(t, "a.ms=0.500", got[1])
}
