package events

import (
	"context"
	"encoding/json"
	"fmt"

	"runway/models"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher publishes events as JSON on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.RunwayEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal runway event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.channel, err)
	}
	return nil
}

// Subscribe decodes events from the channel until ctx is done. Malformed
// messages are skipped.
func (p *RedisPublisher) Subscribe(ctx context.Context) <-chan models.RunwayEvent {
	out := make(chan models.RunwayEvent)
	sub := p.client.Subscribe(ctx, p.channel)

	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				ev, err := DecodeEvent(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// DecodeEvent parses one published payload.
func DecodeEvent(payload string) (models.RunwayEvent, error) {
	var ev models.RunwayEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return models.RunwayEvent{}, err
	}
	return ev, nil
}
