package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupQuery struct {
	Key string
}

func (q lookupQuery) Validate() error {
	if q.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

type countingMetrics struct {
	outcomes map[string]int
}

func (m *countingMetrics) RecordQuery(name string, err error) {
	if err != nil {
		name += ":error"
	}
	m.outcomes[name]++
}

func TestQueryBus_Ask(t *testing.T) {
	metrics := &countingMetrics{outcomes: map[string]int{}}
	b := NewQueryBus().WithMetrics(metrics)

	_, err := b.Ask(context.Background(), lookupQuery{Key: "a"})
	assert.Error(t, err)

	require.NoError(t, b.Register(lookupQuery{}, QueryHandlerFunc(func(_ context.Context, q Query) (interface{}, error) {
		return "value of " + q.(lookupQuery).Key, nil
	})))
	assert.Error(t, b.Register(lookupQuery{}, QueryHandlerFunc(nil)))

	result, err := b.Ask(context.Background(), lookupQuery{Key: "a"})
	require.NoError(t, err)
	assert.Equal(t, "value of a", result)

	_, err = b.Ask(context.Background(), lookupQuery{})
	assert.EqualError(t, err, "key is required")

	assert.Equal(t, 1, metrics.outcomes["lookupQuery"])
	assert.Equal(t, 2, metrics.outcomes["lookupQuery:error"])
}
