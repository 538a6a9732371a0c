package services

import (
	"testing"

	"delivery-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveStop(t *testing.T) {
	current := []int{4, 8, 15}

	next, err := RemoveStop(current, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 15}, next)
	assert.Equal(t, []int{4, 8, 15}, current)
}

func TestRemoveStopRejectsLastStop(t *testing.T) {
	current := []int{42}

	next, err := RemoveStop(current, 42)
	assert.ErrorIs(t, err, domain.ErrLastStop)
	assert.Nil(t, next)
	assert.Equal(t, []int{42}, current)
}

func TestRemoveStopUnknownOrder(t *testing.T) {
	_, err := RemoveStop([]int{1, 2}, 3)
	assert.ErrorIs(t, err, domain.ErrStopNotInRoute)
}
