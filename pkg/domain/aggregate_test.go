package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateRootRecordsInOrder(t *testing.T) {
	var root AggregateRoot

	root.Record(NewEvent("first", "agg-1", nil))
	root.Record(NewEvent("second", "agg-1", nil))
	root.Record(NewEvent("third", "agg-1", nil))

	require.True(t, root.HasEvents())

	events := root.PullEvents()
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Name)
	assert.Equal(t, "second", events[1].Name)
	assert.Equal(t, "third", events[2].Name)
}

func TestAggregateRootPullClearsQueue(t *testing.T) {
	var root AggregateRoot
	root.Record(NewEvent("once", "agg-1", nil))

	first := root.PullEvents()
	require.Len(t, first, 1)

	assert.False(t, root.HasEvents())
	assert.Empty(t, root.PullEvents())
}

func TestAggregateRootRecordAfterPull(t *testing.T) {
	var root AggregateRoot
	root.Record(NewEvent("one", "agg-1", nil))
	root.PullEvents()

	root.Record(NewEvent("two", "agg-1", nil))

	events := root.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "two", events[0].Name)
}

func TestAggregateRootStartsEmpty(t *testing.T) {
	var root AggregateRoot

	assert.False(t, root.HasEvents())
	assert.Empty(t, root.PullEvents())
}
