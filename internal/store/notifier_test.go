package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier(t *testing.T) {
	t.Run("Callbacks Fire In Registration Order", func(t *testing.T) {
		n := NewNotifier()
		var calls []string
		n.Subscribe(func() { calls = append(calls, "first") })
		n.Subscribe(func() { calls = append(calls, "second") })
		n.Subscribe(func() { calls = append(calls, "third") })

		n.Notify()
		assert.Equal(t, []string{"first", "second", "third"}, calls)
	})

	t.Run("Unsubscribe Stops Delivery", func(t *testing.T) {
		n := NewNotifier()
		count := 0
		unsubscribe := n.Subscribe(func() { count++ })

		n.Notify()
		unsubscribe()
		n.Notify()

		assert.Equal(t, 1, count)
	})

	t.Run("Unsubscribe Is Idempotent", func(t *testing.T) {
		n := NewNotifier()
		first := 0
		second := 0
		unsubscribe := n.Subscribe(func() { first++ })
		n.Subscribe(func() { second++ })

		unsubscribe()
		unsubscribe()
		n.Notify()

		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second, "double unsubscribe must not evict other subscribers")
	})

	t.Run("Subscribing During Notify Does Not Deadlock", func(t *testing.T) {
		n := NewNotifier()
		nested := false
		n.Subscribe(func() {
			n.Subscribe(func() { nested = true })
		})

		n.Notify()
		n.Notify()
		assert.True(t, nested)
	})
}
