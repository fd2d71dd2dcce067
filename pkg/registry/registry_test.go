package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFactory is a simple type for testing
type testFactory struct {
	Extension string
}

func TestNew(t *testing.T) {
	reg := New[testFactory]()

	require.NotNil(t, reg)
	assert.Equal(t, 0, reg.Count())
	assert.Empty(t, reg.List())
}

func TestRegister(t *testing.T) {
	reg := New[testFactory]()

	t.Run("register valid item", func(t *testing.T) {
		err := reg.Register("graphviz", testFactory{Extension: ".gv"})

		require.NoError(t, err)
		assert.Equal(t, 1, reg.Count())
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", testFactory{})

		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("graphviz", testFactory{Extension: ".dot"})

		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), "got %v", err)

		got, getErr := reg.Get("graphviz")
		require.NoError(t, getErr)
		assert.Equal(t, ".gv", got.Extension, "duplicate must not replace the original")
	})
}

func TestGet(t *testing.T) {
	reg := New[testFactory]()
	require.NoError(t, reg.Register("nuxmv", testFactory{Extension: ".smv"}))

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("nuxmv")

		require.NoError(t, err)
		assert.Equal(t, ".smv", got.Extension)
	})

	t.Run("get non-existing item", func(t *testing.T) {
		_, err := reg.Get("svg")

		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "got %v", err)
	})
}

func TestList_KeepsRegistrationOrder(t *testing.T) {
	reg := New[testFactory]()

	names := []string{"graphviz", "nuxmv", "graphml"}
	for _, name := range names {
		require.NoError(t, reg.Register(name, testFactory{}))
	}

	assert.Equal(t, names, reg.List())

	// The returned slice is a copy
	list := reg.List()
	list[0] = "mutated"
	assert.Equal(t, "graphviz", reg.List()[0])
}

func TestHas(t *testing.T) {
	reg := New[testFactory]()
	require.NoError(t, reg.Register("graphviz", testFactory{}))

	tests := []struct {
		name     string
		itemName string
		want     bool
	}{
		{"existing item", "graphviz", true},
		{"non-existing item", "graphml", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Has(tt.itemName))
		})
	}
}

func TestConcurrency(t *testing.T) {
	reg := New[testFactory]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = reg.Register(fmt.Sprintf("format%d", i), testFactory{})
			_ = reg.List()
			_ = reg.Has("format0")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, reg.Count())
	assert.Len(t, reg.List(), 50)
}
