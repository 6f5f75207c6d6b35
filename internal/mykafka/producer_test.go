package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestPublishEvent(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w)

	event := map[string]any{"type": "order_created", "orderID": "o-1"}
	require.NoError(t, p.PublishEvent(context.Background(), TopicOrderEvents, "o-1", event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, TopicOrderEvents, msg.Topic)
	assert.Equal(t, "o-1", string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order_created", got["type"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishEvent_WriteError(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{err: errors.New("broker down")})

	err := p.PublishEvent(context.Background(), TopicArtworkEvents, "a-1", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestPublishEvent_MarshalError(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{})
	err := p.PublishEvent(context.Background(), TopicOrderEvents, "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}
