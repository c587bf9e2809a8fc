package appender

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/lumber/logger"
)

// A Publisher publishes a message on a channel; *redis.Client is one.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// A Subscriber subscribes to channels; *redis.Client is one.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// A Message is a payload queued for publication on a topic.
type Message struct {
	Topic   string
	Payload string
}

// A Topic publishes messages on a pub/sub topic.
//
// Append only queues a message; Flush publishes the queue in order.
// A Topic can also watch a level topic and set its Hub's Level from integer payloads published there.
type Topic struct {
	logger.Base

	pub Publisher

	mu         sync.Mutex
	topic      string
	levelTopic string
	queue      []Message
}

// NewTopic constructs a *Topic publishing on topic with pub and attaches it to hub.
func NewTopic(hub *logger.Hub, pub Publisher, topic string) *Topic {
	t := &Topic{pub: pub, topic: topic}
	t.SetFormat(logger.DefaultFormat)
	t.Attach(hub, t)
	return t
}

// Append queues text for the current topic.
func (t *Topic) Append(_ logger.Level, text string) {
	t.mu.Lock()
	t.queue = append(t.queue, Message{Topic: t.topic, Payload: text})
	t.mu.Unlock()
}

// Flush publishes all queued messages in the order they were queued.
//
// If publishing fails, the message that failed and every one after it stay queued.
func (t *Topic) Flush(ctx context.Context) error {
	t.mu.Lock()
	queue := t.queue
	t.queue = nil
	t.mu.Unlock()

	for i, m := range queue {
		if err := t.pub.Publish(ctx, m.Topic, m.Payload).Err(); err != nil {
			t.mu.Lock()
			t.queue = append(queue[i:len(queue):len(queue)], t.queue...)
			t.mu.Unlock()
			return fmt.Errorf("topic %s: failed publishing: %w", m.Topic, err)
		}
	}

	return nil
}

// Close unregisters the Topic and flushes what remains queued.
func (t *Topic) Close(ctx context.Context) error {
	t.Unregister()
	return t.Flush(ctx)
}

// Queue returns a copy of the messages waiting to be published.
func (t *Topic) Queue() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.queue) == 0 {
		return nil
	}

	return append([]Message(nil), t.queue...)
}

// Topic returns the topic new messages are queued for.
func (t *Topic) Topic() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.topic
}

// SetTopic changes the topic new messages are queued for.
// Messages already queued keep their topic.
func (t *Topic) SetTopic(topic string) {
	t.mu.Lock()
	t.topic = topic
	t.mu.Unlock()
}

// LevelTopic returns the topic level changes are read from.
func (t *Topic) LevelTopic() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.levelTopic
}

// SetLevelTopic changes the topic level changes are read from.
// An empty topic disables level changes.
func (t *Topic) SetLevelTopic(topic string) {
	t.mu.Lock()
	t.levelTopic = topic
	t.mu.Unlock()
}

// HandleMessage sets the Hub's Level when channel is the level topic
// and payload is the integer rank of a Level.
// It reports whether the Level changed.
//
// Messages on any other channel and malformed payloads are ignored.
func (t *Topic) HandleMessage(channel, payload string) bool {
	lt := t.LevelTopic()
	if lt == "" || channel != lt {
		return false
	}

	i, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return false
	}

	level, err := logger.NewLevel(i)
	if err != nil {
		return false
	}

	hub := t.Hub()
	if hub == nil {
		return false
	}

	return hub.SetLevel(level) == nil
}

// WatchLevel subscribes to channel with sub and hands every message received to HandleMessage.
// WatchLevel blocks until ctx is done or the subscription closes.
func (t *Topic) WatchLevel(ctx context.Context, sub Subscriber, channel string) error {
	t.SetLevelTopic(channel)

	ps := sub.Subscribe(ctx, channel)
	defer ps.Close()

	// NOTE: Receive waits for the subscription to be confirmed.
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("topic %s: failed subscribing: %w", channel, err)
	}

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			t.HandleMessage(msg.Channel, msg.Payload)
		}
	}
}
