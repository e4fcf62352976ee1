package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	err := New(NotFound, "order %d not found", 7)
	assert.Equal(t, NotFound, KindOf(err))
	assert.True(t, IsKind(err, NotFound))
	assert.False(t, IsKind(err, Conflict))
	assert.Contains(t, err.Error(), "order 7 not found")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(Storage, cause, "failed to create order")

	assert.True(t, IsKind(err, Storage))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Storage, KindOf(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), Validation))
}

func TestKindFoundThroughWrapping(t *testing.T) {
	inner := New(Conflict, "insufficient stock")
	outer := fmt.Errorf("checkout: %w", inner)

	assert.True(t, IsKind(outer, Conflict))
	assert.Equal(t, Conflict, KindOf(outer))
}
