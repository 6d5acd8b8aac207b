package registry

import (
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
)

func atoiTransform(raw string) (any, error) {
	return strconv.Atoi(raw)
}

func TestTransformRegistry_ApplyValue(t *testing.T) {
	t.Run("matching rule replaces the raw value", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterValue(`^\d+$`, atoiTransform))

		v, ok, err := reg.ApplyValue("23")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 23, v)
	})

	t.Run("no matching rule passes through", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterValue(`^\d+$`, atoiTransform))

		v, ok, err := reg.ApplyValue("not a number")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("conflicting rules fail fast", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterValue(`^\d+$`, atoiTransform))
		require.NoError(t, reg.RegisterValue(`^2\d$`, atoiTransform))

		_, _, err := reg.ApplyValue("23")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, gherkiterrors.ErrTransformConflict))
		assert.Contains(t, err.Error(), `^\d+$`)
		assert.Contains(t, err.Error(), `^2\d$`)
	})

	t.Run("transform failure propagates", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterValue(`^.*$`, func(string) (any, error) {
			return nil, stderrors.New("boom")
		}))

		_, _, err := reg.ApplyValue("anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("duplicate value pattern fails", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterValue(`^\d+$`, atoiTransform))

		err := reg.RegisterValue(`^\d+$`, atoiTransform)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, gherkiterrors.ErrDuplicatePattern))
	})
}

func TestTransformRegistry_ApplyTable(t *testing.T) {
	userTable := &domain.Table{Rows: [][]string{
		{"name", "age"},
		{"alice", "30"},
		{"bob", "25"},
	}}

	t.Run("matching signature replaces the table", func(t *testing.T) {
		reg := NewTransformRegistry()
		err := reg.RegisterTable("name,age", func(tbl *domain.Table) (any, error) {
			return len(tbl.Body()), nil
		})
		require.NoError(t, err)

		v, ok, err := reg.ApplyTable(userTable)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("registration prefix is stripped", func(t *testing.T) {
		reg := NewTransformRegistry()
		err := reg.RegisterTable("table:name,age", func(*domain.Table) (any, error) {
			return "converted", nil
		})
		require.NoError(t, err)

		_, ok, err := reg.ApplyTable(userTable)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown signature passes through", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterTable("id,email", func(*domain.Table) (any, error) {
			return nil, nil
		}))

		_, ok, err := reg.ApplyTable(userTable)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("signature match requires exact column order", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterTable("age,name", func(*domain.Table) (any, error) {
			return nil, nil
		}))

		_, ok, err := reg.ApplyTable(userTable)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate signature fails", func(t *testing.T) {
		reg := NewTransformRegistry()
		require.NoError(t, reg.RegisterTable("name,age", func(*domain.Table) (any, error) { return nil, nil }))

		err := reg.RegisterTable("name,age", func(*domain.Table) (any, error) { return nil, nil })
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, gherkiterrors.ErrDuplicatePattern))
	})

	t.Run("nil table passes through", func(t *testing.T) {
		reg := NewTransformRegistry()
		_, ok, err := reg.ApplyTable(nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
