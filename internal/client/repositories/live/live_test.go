package live

import (
	"context"
	"errors"
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

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestNotifier_CoalescesSignals(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe()
	defer cancel()

	n.Notify()
	n.Notify()
	n.Notify()

	recv(t, ch)
	select {
	case <-ch:
		t.Fatal("signals must be coalesced")
	default:
	}
}

func TestNotifier_CancelUnsubscribes(t *testing.T) {
	var n Notifier
	_, cancel := n.Subscribe()
	require.Equal(t, 1, n.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, n.Subscribers())
	n.Notify()
}

func TestWatch_EmitsInitialAndOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	data := []int{1}
	n := NewNotifier()

	ch := Watch(ctx, n, func(context.Context) ([]int, error) {
		mu.Lock()
		defer mu.Unlock()
		return append([]int(nil), data...), nil
	}, nil)

	assert.Equal(t, []int{1}, recv(t, ch))

	mu.Lock()
	data = append(data, 2)
	mu.Unlock()
	n.Notify()

	assert.Equal(t, []int{1, 2}, recv(t, ch))
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := NewNotifier()

	ch := Watch(ctx, n, func(context.Context) ([]string, error) { return nil, nil }, nil)
	recv(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
	require.Eventually(t, func() bool { return n.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWatch_QueryErrorGoesToHook(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	boom := errors.New("disk I/O error")
	errs := make(chan error, 1)
	fail := true
	var mu sync.Mutex
	n := NewNotifier()

	ch := Watch(ctx, n, func(context.Context) ([]int, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, boom
		}
		return []int{42}, nil
	}, func(err error) { errs <- err })

	assert.ErrorIs(t, recv(t, errs), boom)

	mu.Lock()
	fail = false
	mu.Unlock()
	n.Notify()

	assert.Equal(t, []int{42}, recv(t, ch))
}
