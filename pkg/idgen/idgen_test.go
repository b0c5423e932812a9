package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSonyflakeGeneratorOrdering(t *testing.T) {
	gen, err := NewSonyflakeGenerator(1)
	assert.NoError(t, err)

	first, err := gen.NextInt64()
	assert.NoError(t, err)
	assert.Greater(t, first, int64(0))

	second, err := gen.NextInt64()
	assert.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestSonyflakeGeneratorStringForm(t *testing.T) {
	gen, err := NewSonyflakeGenerator(1)
	assert.NoError(t, err)

	id, err := gen.NextID()
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()

	a, err := gen.NextID()
	assert.NoError(t, err)
	b, err := gen.NextID()
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
	_, err = uuid.Parse(a)
	assert.NoError(t, err)
}

func TestNextNumericID(t *testing.T) {
	id, err := NextNumericID()
	assert.NoError(t, err)
	assert.Greater(t, id, int64(0))
}
