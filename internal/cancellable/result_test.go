package cancellable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

func TestResult(t *testing.T) {
	tests := []struct {
		name      string
		r         cancellable.Result[string]
		kind      cancellable.Kind
		cancelled bool
		value     string
		ok        bool
		str       string
	}{
		{"item", cancellable.Item("a"), cancellable.KindItem, false, "a", true, "Item(a)"},
		{"empty item", cancellable.Item(""), cancellable.KindItem, false, "", true, "Item()"},
		{"cancelled", cancellable.Cancelled[string](), cancellable.KindCancelled, true, "", false, "Cancelled"},
		{"zero", cancellable.Result[string]{}, cancellable.KindCancelled, true, "", false, "Cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.r.Kind())
			assert.Equal(t, tt.cancelled, tt.r.IsCancelled())
			v, ok := tt.r.Value()
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.str, tt.r.String())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Cancelled", cancellable.KindCancelled.String())
	assert.Equal(t, "Item", cancellable.KindItem.String())
	assert.Equal(t, "Kind(9)", cancellable.Kind(9).String())
}

func TestCanTransition(t *testing.T) {
	states := []cancellable.State{
		cancellable.StatePending,
		cancellable.StateRunning,
		cancellable.StateCancelled,
		cancellable.StateFailed,
	}
	allowed := map[[2]cancellable.State]bool{
		{cancellable.StatePending, cancellable.StateRunning}:   true,
		{cancellable.StateRunning, cancellable.StateRunning}:   true,
		{cancellable.StateRunning, cancellable.StateCancelled}: true,
		{cancellable.StateRunning, cancellable.StateFailed}:    true,
	}

	for _, from := range states {
		for _, to := range states {
			want := allowed[[2]cancellable.State{from, to}]
			assert.Equal(t, want, cancellable.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestState(t *testing.T) {
	assert.False(t, cancellable.StatePending.Terminal())
	assert.False(t, cancellable.StateRunning.Terminal())
	assert.True(t, cancellable.StateCancelled.Terminal())
	assert.True(t, cancellable.StateFailed.Terminal())

	assert.Equal(t, "running", cancellable.StateRunning.String())
	assert.Equal(t, "State(7)", cancellable.State(7).String())
}
