package logbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"archibridge/domain/events"
)

func TestPublisher_LogsAndDispatches(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewPublisher(zap.New(core))

	var seen []string
	p.Subscribe("image.added", func(_ context.Context, e events.DomainEvent) error {
		seen = append(seen, "typed:"+e.GetEventType())
		return nil
	})
	p.Subscribe(AllEvents, func(_ context.Context, e events.DomainEvent) error {
		seen = append(seen, "all:"+e.GetEventType())
		return nil
	})

	now := time.Now()
	err := p.Publish(context.Background(),
		events.NewImageAdded("m1", "images/a.png", 10, now),
		events.NewModelSaved("m1", "/tmp/m.archimate", 0, now),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"typed:image.added", "all:image.added", "all:model.saved"}, seen)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "m1", logs.All()[0].ContextMap()["model_id"])
}

func TestPublisher_JoinsHandlerErrors(t *testing.T) {
	p := NewPublisher(nil)
	calls := 0
	p.Subscribe(AllEvents, func(context.Context, events.DomainEvent) error {
		calls++
		return errors.New("boom")
	})
	p.Subscribe(AllEvents, func(context.Context, events.DomainEvent) error {
		calls++
		return nil
	})

	err := p.Publish(context.Background(), events.NewEditReverted("m1", "Import CSV", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 2, calls)
}
