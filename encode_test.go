package re2

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAllocator records every allocation.
type countingAllocator struct {
	calls int
	bytes int
	fail  int // fail on this call number, 0 never
}

func (a *countingAllocator) Alloc(n int) ([]byte, error) {
	a.calls++
	if a.fail > 0 && a.calls == a.fail {
		return nil, errors.New("out of memory")
	}
	a.bytes += n

	return make([]byte, n), nil
}

func TestEncodeIndex(t *testing.T) {
	subject := []byte("xxaaabbbyy")
	slots := []int{2, 8, 2, 5, 5, 8, -1, -1, 4, 4}

	alloc := &countingAllocator{}
	values, err := encode(subject, slots, []int{0, 1, 2, 3, 4, -1}, TypeIndex, alloc)
	require.NoError(t, err)

	assert.Equal(t, []CaptureValue{
		IndexPair{2, 6}, IndexPair{2, 3}, IndexPair{5, 3},
		IndexPair{-1, 0}, IndexPair{4, 0}, IndexPair{-1, 0},
	}, values)
	assert.Zero(t, alloc.calls)
}

func TestEncodeBinary(t *testing.T) {
	subject := []byte("xxaaabbbyy")
	slots := []int{2, 8, 2, 5, 5, 8, -1, -1}

	alloc := &countingAllocator{}
	values, err := encode(subject, slots, []int{0, 1, 2, 3}, TypeBinary, alloc)
	require.NoError(t, err)

	assert.Equal(t, []CaptureValue{Bytes("aaabbb"), Bytes("aaa"), Bytes("bbb"), Bytes{}}, values)
	assert.Equal(t, 3, alloc.calls)
	assert.Equal(t, 12, alloc.bytes)

	subject[2] = 'Z'
	assert.Equal(t, Bytes("aaabbb"), values[0])
}

func TestEncodeBinaryAllOrNothing(t *testing.T) {
	subject := []byte("xxaaabbbyy")
	slots := []int{2, 8, 2, 5, 5, 8}

	values, err := encode(subject, slots, []int{0, 1, 2}, TypeBinary, newBudget(&countingAllocator{fail: 2}, 0))
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.Nil(t, values)
}

func TestEncodeSignalOnly(t *testing.T) {
	alloc := &countingAllocator{}
	values, err := encode([]byte("a"), nil, nil, TypeBinary, alloc)
	require.NoError(t, err)
	assert.Nil(t, values)
	assert.Zero(t, alloc.calls)
}

func TestBudget(t *testing.T) {
	b := newBudget(HeapAllocator{}, 5)

	buf, err := b.Alloc(3)
	require.NoError(t, err)
	assert.Len(t, buf, 3)

	_, err = b.Alloc(3)
	assert.ErrorIs(t, err, ErrAllocationFailure)

	_, err = b.Alloc(2)
	assert.NoError(t, err)
}

func TestBudgetShortAllocator(t *testing.T) {
	short := AllocatorFunc(func(n int) ([]byte, error) { return make([]byte, n/2), nil })

	_, err := newBudget(short, 0).Alloc(4)
	assert.ErrorIs(t, err, ErrAllocationFailure)
}
