package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublish_FanOut(t *testing.T) {
	h := NewHub()

	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelA()
	defer cancelB()

	h.Publish(Approval{RequestID: "r1", UserID: "u1"})

	require.Equal(t, Approval{RequestID: "r1", UserID: "u1"}, <-a)
	require.Equal(t, Approval{RequestID: "r1", UserID: "u1"}, <-b)
}

func TestPublish_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()

	_, cancel := h.Subscribe()
	defer cancel()

	// More events than the subscriber buffer holds; Publish must not
	// block even though nobody is draining.
	for i := 0; i < 100; i++ {
		h.Publish(Approval{RequestID: "r", UserID: "u"})
	}
}

func TestCancel_RemovesSubscriber(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe()
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	h.Publish(Approval{RequestID: "r2", UserID: "u2"})
}

func TestCancel_Idempotent(t *testing.T) {
	h := NewHub()
	_, cancel := h.Subscribe()
	cancel()
	cancel()
}
