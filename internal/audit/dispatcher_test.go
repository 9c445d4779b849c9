package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (w *memWriter) Write(_ context.Context, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("db down")
	}
	w.events = append(w.events, ev)
	return nil
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	w := &memWriter{}
	d := NewDispatcher(w)

	provider := uuid.New()
	for _, action := range []string{"appointment_created", "appointment_status_changed"} {
		d.Dispatch(Event{ProviderID: provider, Action: action, Entity: "appointment"})
	}
	d.Close()

	require.Len(t, w.events, 2)
	require.Equal(t, "appointment_created", w.events[0].Action)
	require.Equal(t, provider, w.events[1].ProviderID)
}

func TestDispatcher_WriteErrorsAreSwallowed(t *testing.T) {
	w := &memWriter{fail: true}
	d := NewDispatcher(w)

	d.Dispatch(Event{Action: "provider_created"})
	d.Close()
	d.Close()

	require.Empty(t, w.events)
}
