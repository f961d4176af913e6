package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) fire(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_OnlyLastValueOfBurstFires(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	rec := &recorder{}
	d := New(clock, 300*time.Millisecond, rec.fire)

	d.Call("m")
	clock.Advance(100 * time.Millisecond)
	d.Call("mu")
	clock.Advance(299 * time.Millisecond)
	d.Call("mum")
	assert.Empty(t, rec.got())

	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, rec.got())

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"mum"}, rec.got())
	assert.Equal(t, 0, clock.Pending())
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	rec := &recorder{}
	d := New(clock, 300*time.Millisecond, rec.fire)

	d.Call("a")
	clock.Advance(300 * time.Millisecond)
	d.Call("b")
	clock.Advance(time.Second)

	assert.Equal(t, []string{"a", "b"}, rec.got())
}

func TestDebouncer_Stop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	rec := &recorder{}
	d := New(clock, 300*time.Millisecond, rec.fire)

	assert.False(t, d.Stop())

	d.Call("a")
	assert.True(t, d.Stop())
	clock.Advance(time.Second)
	assert.Empty(t, rec.got())
	assert.Equal(t, 0, clock.Pending())
}

func TestDebouncer_RealClock(t *testing.T) {
	fired := make(chan string, 1)
	d := New(nil, 20*time.Millisecond, func(v string) { fired <- v })

	d.Call("x")
	d.Call("y")

	select {
	case v := <-fired:
		assert.Equal(t, "y", v)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never fired")
	}
}

func TestManualClock_OrdersCallbacks(t *testing.T) {
	start := time.Unix(100, 0)
	clock := NewManualClock(start)

	var order []string
	var firedAt []time.Time
	clock.AfterFunc(2*time.Second, func() {
		order = append(order, "late")
		firedAt = append(firedAt, clock.Now())
	})
	clock.AfterFunc(time.Second, func() {
		order = append(order, "early")
		firedAt = append(firedAt, clock.Now())
		clock.AfterFunc(500*time.Millisecond, func() { order = append(order, "nested") })
	})
	stopped := clock.AfterFunc(time.Second, func() { order = append(order, "stopped") })
	require.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	clock.Advance(3 * time.Second)

	assert.Equal(t, []string{"early", "nested", "late"}, order)
	assert.Equal(t, []time.Time{start.Add(time.Second), start.Add(2 * time.Second)}, firedAt)
	assert.Equal(t, start.Add(3*time.Second), clock.Now())
}
