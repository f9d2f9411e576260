package store_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

func TestBrokerDeliversToUserSubscribers(t *testing.T) {
	b := store.NewBroker()
	userID := uuid.New()

	ch1, cancel1 := b.Subscribe(userID)
	defer cancel1()
	ch2, cancel2 := b.Subscribe(userID)
	defer cancel2()

	b.Publish(store.PlanEvent{UserID: userID, Day: "monday", Slot: "lunch",
		Ref: &types.RecipeRef{RecipeID: "1"}})

	for _, ch := range []<-chan store.PlanEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "monday", ev.Day)
			require.NotNil(t, ev.Ref)
			assert.Equal(t, "1", ev.Ref.RecipeID)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestBrokerIsolatesUsers(t *testing.T) {
	b := store.NewBroker()
	alice, bob := uuid.New(), uuid.New()

	aliceCh, cancelA := b.Subscribe(alice)
	defer cancelA()
	_, cancelB := b.Subscribe(bob)
	defer cancelB()

	b.Publish(store.PlanEvent{UserID: bob, Day: "monday", Slot: "lunch"})

	select {
	case ev := <-aliceCh:
		t.Fatalf("alice received bob's event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerCancelClosesChannel(t *testing.T) {
	b := store.NewBroker()
	userID := uuid.New()

	ch, cancel := b.Subscribe(userID)
	cancel()
	// Cancel is idempotent.
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	b.Publish(store.PlanEvent{UserID: userID, Day: "monday", Slot: "lunch"})
}

func TestBrokerDropsForSlowConsumers(t *testing.T) {
	b := store.NewBroker()
	userID := uuid.New()

	ch, cancel := b.Subscribe(userID)
	defer cancel()

	// Overfill the buffer; extra events are dropped, not blocking.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			b.Publish(store.PlanEvent{UserID: userID, Day: "monday", Slot: "lunch"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
	assert.Len(t, ch, 16)
}
