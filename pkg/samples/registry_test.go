package samples

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSample struct {
	name string
}

func (s *stubSample) Name() string                        { return s.name }
func (s *stubSample) Description() string                 { return "stub" }
func (s *stubSample) Run(context.Context, []string) error { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSample{name: "demo"}))

	s, err := r.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Name())

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSample{name: "demo"}))
	assert.Error(t, r.Register(&stubSample{name: "demo"}))
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSample{name: "zeta"}))
	require.NoError(t, r.Register(&stubSample{name: "alpha"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name())
	assert.Equal(t, "zeta", list[1].Name())
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubSample{name: "demo"}))
	r.Unregister("demo")
	_, err := r.Get("demo")
	assert.Error(t, err)
}
