package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStore_GetSet(t *testing.T) {
	s := New("a")
	require.Equal(t, "a", s.Get())

	s.Set("b")
	require.Equal(t, "b", s.Get())

	s.Update(func(v string) string { return v + "c" })
	require.Equal(t, "bc", s.Get())
}

func TestStore_SubscribersInOrder(t *testing.T) {
	s := New(0)
	var got []string

	s.Subscribe(func(v int) { got = append(got, "first") })
	s.Subscribe(func(v int) { got = append(got, "second") })

	s.Set(1)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := New(0)
	var a, b []int

	unsubA := s.Subscribe(func(v int) { a = append(a, v) })
	s.Subscribe(func(v int) { b = append(b, v) })

	s.Set(1)
	unsubA()
	unsubA()
	s.Set(2)

	assert.Equal(t, []int{1}, a)
	assert.Equal(t, []int{1, 2}, b)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	s := New(0)
	var seen int
	s.Subscribe(func(int) { seen = s.Get() })

	s.Set(7)
	assert.Equal(t, 7, seen)
}

func TestStore_Concurrent(t *testing.T) {
	s := New(0)
	var (
		mu    sync.Mutex
		calls int
	)
	s.Subscribe(func(int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Get())
	assert.Equal(t, 50, calls)
}
