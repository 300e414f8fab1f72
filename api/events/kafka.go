package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	sdk "github.com/segmentio/kafka-go"
)

const (
	queueSize    = 256
	writeTimeout = 10 * time.Second
)

var (
	ErrPublisherClosed = errors.New("events: publisher closed")
	ErrQueueFull       = errors.New("events: queue full")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...sdk.Message) error
	Close() error
}

// KafkaPublisher writes each event as a JSON message keyed by its type.
// Publish only enqueues; a single producer goroutine does the writes.
type KafkaPublisher struct {
	writer messageWriter
	bucket chan sdk.Message
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newKafkaPublisher(&sdk.Writer{
		Addr:                   sdk.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &sdk.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
	}, queueSize)
}

func newKafkaPublisher(writer messageWriter, size int) *KafkaPublisher {
	k := &KafkaPublisher{writer: writer, bucket: make(chan sdk.Message, size)}
	k.wg.Add(1)
	go k.produce()
	return k
}

func (k *KafkaPublisher) produce() {
	defer k.wg.Done()
	for msg := range k.bucket {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := k.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			slog.Warn("events: kafka write failed", "type", string(msg.Key), "error", err)
		}
	}
}

func (k *KafkaPublisher) Publish(_ context.Context, event Event) error {
	serialized, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: encode %s: %w", event.Type, err)
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return ErrPublisherClosed
	}
	select {
	case k.bucket <- sdk.Message{Key: []byte(event.Type), Value: serialized}:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s", ErrQueueFull, event.Type)
	}
}

// Close flushes queued events and closes the writer.
func (k *KafkaPublisher) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	close(k.bucket)
	k.mu.Unlock()

	k.wg.Wait()
	return k.writer.Close()
}

// FromConfig picks the Kafka publisher when brokers are configured.
func FromConfig(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		slog.Info("events: no kafka brokers configured, events are dropped")
		return Nop{}
	}
	slog.Info("events: publishing to kafka", "brokers", brokers, "topic", topic)
	return NewKafkaPublisher(brokers, topic)
}
