package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	sdk "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []sdk.Message
	failures int
	release  chan struct{}
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...sdk.Message) error {
	if w.release != nil {
		<-w.release
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failures > 0 {
		w.failures--
		return errors.New("broker down")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []sdk.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]sdk.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, 8)

	event := New(FollowCreated, 1, 2)
	event.Attributes = map[string]string{"author": "leo"}
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())

	messages := w.written()
	require.Len(t, messages, 1)
	assert.Equal(t, []byte(FollowCreated), messages[0].Key)

	var decoded Event
	require.NoError(t, json.Unmarshal(messages[0].Value, &decoded))
	assert.Equal(t, FollowCreated, decoded.Type)
	assert.EqualValues(t, 1, decoded.ActorID)
	assert.EqualValues(t, 2, decoded.SubjectID)
	assert.Equal(t, "leo", decoded.Attributes["author"])
	assert.True(t, w.closed)
}

func TestEmitDoesNotWaitForTheBroker(t *testing.T) {
	w := &fakeWriter{release: make(chan struct{})}
	p := newKafkaPublisher(w, 8)

	done := make(chan struct{})
	go func() {
		Emit(context.Background(), p, New(PostCreated, 1, 1))
		Emit(context.Background(), p, New(CommentCreated, 1, 1))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a stalled writer")
	}

	close(w.release)
	require.NoError(t, p.Close())
	assert.Len(t, w.written(), 2)
}

func TestKafkaPublisherDropsWhenQueueIsFull(t *testing.T) {
	w := &fakeWriter{release: make(chan struct{})}
	p := newKafkaPublisher(w, 1)

	// The producer may already hold the first message, so fill past capacity.
	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = p.Publish(context.Background(), New(PostCreated, 1, uint(i)))
	}
	assert.ErrorIs(t, err, ErrQueueFull)

	close(w.release)
	require.NoError(t, p.Close())
}

func TestKafkaPublisherKeepsGoingAfterWriteErrors(t *testing.T) {
	w := &fakeWriter{failures: 1}
	p := newKafkaPublisher(w, 8)

	require.NoError(t, p.Publish(context.Background(), New(PostCreated, 1, 1)))
	require.NoError(t, p.Publish(context.Background(), New(PostDeleted, 1, 1)))
	require.NoError(t, p.Close())

	messages := w.written()
	require.Len(t, messages, 1)
	assert.Equal(t, []byte(PostDeleted), messages[0].Key)
}

func TestKafkaPublisherRejectsAfterClose(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{}, 8)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), New(PostCreated, 1, 1))
	assert.ErrorIs(t, err, ErrPublisherClosed)
	assert.NotPanics(t, func() { Emit(context.Background(), p, New(PostCreated, 1, 1)) })
}

func TestRecorderAndFromConfig(t *testing.T) {
	r := &Recorder{}
	Emit(context.Background(), r, New(PostCreated, 1, 10))
	Emit(context.Background(), r, New(CommentCreated, 1, 10))
	assert.Equal(t, []string{PostCreated, CommentCreated}, r.Types())

	assert.IsType(t, Nop{}, FromConfig(nil, "topic"))
	p := FromConfig([]string{"localhost:9092"}, "topic")
	require.IsType(t, &KafkaPublisher{}, p)
	require.NoError(t, p.(*KafkaPublisher).Close())
}
