package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStep is a Step whose behavior is supplied by the test
type fakeStep struct {
	BaseStage
	run func(ctx context.Context, state *OperationState) error
}

func newFakeStep(id string, deps ...string) *fakeStep {
	return &fakeStep{BaseStage: NewBaseStage(id, "Step "+id, deps)}
}

func (s *fakeStep) Execute(ctx context.Context, state *OperationState) error {
	if s.run == nil {
		return nil
	}
	return s.run(ctx, state)
}

func ids(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.ID()
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(newFakeStep("a")))
	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(newFakeStep("")))
	assert.Error(t, r.Register(newFakeStep("a")), "duplicate IDs are rejected")

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []string{"a"}, r.ListIDs())

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID())

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestRegistry_ListIDsKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Register(newFakeStep(id)))
	}
	assert.Equal(t, []string{"c", "a", "b"}, r.ListIDs())
	assert.Equal(t, 3, r.Count())
}

func TestRegistry_GetDependencyOrder(t *testing.T) {
	tests := []struct {
		name    string
		steps   []*fakeStep
		want    []string
		wantErr string
	}{
		{
			name:  "independent steps keep registration order",
			steps: []*fakeStep{newFakeStep("x"), newFakeStep("y"), newFakeStep("z")},
			want:  []string{"x", "y", "z"},
		},
		{
			name: "dependencies run first",
			steps: []*fakeStep{
				newFakeStep("compose", "c1", "c2"),
				newFakeStep("c2", "derive"),
				newFakeStep("c1", "derive"),
				newFakeStep("derive", "load"),
				newFakeStep("load"),
			},
			want: []string{"load", "derive", "c2", "c1", "compose"},
		},
		{
			name:    "missing dependency",
			steps:   []*fakeStep{newFakeStep("a", "ghost")},
			wantErr: "non-existent",
		},
		{
			name:    "cycle",
			steps:   []*fakeStep{newFakeStep("a", "b"), newFakeStep("b", "a"), newFakeStep("c")},
			wantErr: "cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for _, s := range tt.steps {
				require.NoError(t, r.Register(s))
			}

			ordered, err := r.GetDependencyOrder()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Error(t, r.ValidateDependencies())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(ordered))
			assert.NoError(t, r.ValidateDependencies())
		})
	}
}
