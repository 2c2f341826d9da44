package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateProgress(t *testing.T) {
	assert.Equal(t, 0, AggregateProgress(0, 0)) // course with no lessons
	assert.Equal(t, 0, AggregateProgress(10, 0))
	assert.Equal(t, 100, AggregateProgress(10, 10))
	assert.Equal(t, 50, AggregateProgress(10, 5))
	assert.Equal(t, 33, AggregateProgress(3, 1))
	assert.Equal(t, 67, AggregateProgress(3, 2))
}
