package bus

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct {
	Input  string
	Output string
}

func (c *echoCommand) Validate() error {
	if c.Input == "" {
		return errors.New("input required")
	}
	return nil
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.messages = append(l.messages, msg) }

type recordingMetrics struct {
	names []string
	errs  []error
}

func (m *recordingMetrics) RecordCommand(name string, _ time.Duration, err error) {
	m.names = append(m.names, name)
	m.errs = append(m.errs, err)
}

func TestCommandBus_Send(t *testing.T) {
	logger := &recordingLogger{}
	metrics := &recordingMetrics{}
	b := NewCommandBus(LoggingMiddleware(logger), MetricsMiddleware(metrics))

	require.NoError(t, b.Register(&echoCommand{}, CommandHandlerFunc(func(_ context.Context, cmd Command) error {
		c := cmd.(*echoCommand)
		if c.Input == "fail" {
			return fmt.Errorf("boom")
		}
		c.Output = c.Input + "!"
		return nil
	})))

	cmd := &echoCommand{Input: "hi"}
	require.NoError(t, b.Send(context.Background(), cmd))
	assert.Equal(t, "hi!", cmd.Output)

	err := b.Send(context.Background(), &echoCommand{Input: "fail"})
	assert.EqualError(t, err, "boom")

	assert.Equal(t, []string{"Executing command", "Command succeeded", "Executing command", "Command failed"}, logger.messages)
	assert.Equal(t, []string{"echoCommand", "echoCommand"}, metrics.names)
	assert.Nil(t, metrics.errs[0])
	assert.Error(t, metrics.errs[1])
}

func TestCommandBus_ValidationAndRegistration(t *testing.T) {
	b := NewCommandBus()

	err := b.Send(context.Background(), &echoCommand{Input: "x"})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	handler := CommandHandlerFunc(func(context.Context, Command) error { return nil })
	require.NoError(t, b.Register(&echoCommand{}, handler))
	assert.Error(t, b.Register(&echoCommand{}, handler))

	err = b.Send(context.Background(), &echoCommand{})
	assert.EqualError(t, err, "input required")
}
