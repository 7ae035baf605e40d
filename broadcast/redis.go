package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var _ Broadcaster = (*Redis)(nil)

// Redis broadcasts over a Redis pub/sub channel, the cross-process analogue
// of a browser storage event. All clients of one installation subscribe to
// the same channel name.
type Redis struct {
	client   *redis.Client
	pubsub   *redis.PubSub
	channel  string
	origin   string
	log      zerolog.Logger
	handlers map[int]Handler
	nextID   int
	lock     sync.Mutex
}

type RedisOption func(*Redis)

func WithLogger(log zerolog.Logger) RedisOption {
	return func(r *Redis) {
		r.log = log
	}
}

// NewRedis subscribes to the channel and starts dispatching incoming
// messages. Call Close to stop the subscription.
func NewRedis(client *redis.Client, channel string, options ...RedisOption) (*Redis, error) {
	if client == nil {
		return nil, errors.New("[broadcast.NewRedis] client is required")
	}
	if channel == "" {
		return nil, errors.New("[broadcast.NewRedis] channel is required")
	}

	r := &Redis{
		client:  client,
		channel: channel,
		origin:  uuid.New().String(),
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}

	r.pubsub = client.Subscribe(context.Background(), channel)
	go r.listen()
	return r, nil
}

func (r *Redis) Publish(ctx context.Context, event string) error {
	payload, err := json.Marshal(Message{Origin: r.origin, Event: event})
	if err != nil {
		return errors.Wrap(err, "[Redis.Publish] Marshal")
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return errors.Wrap(err, "[Redis.Publish] Publish")
	}
	return nil
}

func (r *Redis) Subscribe(handler Handler) func() {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.handlers == nil {
		r.handlers = make(map[int]Handler)
	}
	id := r.nextID
	r.nextID++
	r.handlers[id] = handler

	return func() {
		r.lock.Lock()
		defer r.lock.Unlock()
		delete(r.handlers, id)
	}
}

func (r *Redis) Close() error {
	return r.pubsub.Close()
}

func (r *Redis) listen() {
	for raw := range r.pubsub.Channel() {
		var msg Message
		if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
			r.log.Warn().Err(err).Msg("broadcast: dropping malformed message")
			continue
		}
		if msg.Origin == r.origin {
			continue
		}

		r.lock.Lock()
		handlers := make([]Handler, 0, len(r.handlers))
		for _, h := range r.handlers {
			handlers = append(handlers, h)
		}
		r.lock.Unlock()

		for _, h := range handlers {
			h(msg.Event)
		}
	}
}
