package livefeed

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SnapshotSource resolves a topic to its current result set for a given
// viewer. Implemented by the service layer so viewer side effects (read
// receipts) ride along with thread snapshots.
type SnapshotSource interface {
	Fetch(ctx context.Context, viewerID uuid.UUID, topic string) (interface{}, error)
}

type binding struct {
	client Client
	topic  string
}

// Hub owns all live connections and their topic bindings. All state is
// confined to the Run goroutine; other goroutines talk to it via channels.
type Hub struct {
	RegisterCh    chan Client
	UnregisterCh  chan Client
	SubscribeCh   chan binding
	UnsubscribeCh chan binding
	InvalidateCh  chan string

	source SnapshotSource
	rdb    *redis.Client

	clients map[Client]map[string]struct{}
	topics  map[string]map[Client]struct{}
}

func NewHub(source SnapshotSource, rdb *redis.Client) *Hub {
	return &Hub{
		RegisterCh:    make(chan Client),
		UnregisterCh:  make(chan Client),
		SubscribeCh:   make(chan binding),
		UnsubscribeCh: make(chan binding),
		InvalidateCh:  make(chan string, 64),
		source:        source,
		rdb:           rdb,
		clients:       make(map[Client]map[string]struct{}),
		topics:        make(map[string]map[Client]struct{}),
	}
}

// Subscribe binds a client to a topic. Rebinding an already-bound topic is
// idempotent: there is never more than one live binding per (client, topic).
func (h *Hub) Subscribe(c Client, topic string) {
	h.SubscribeCh <- binding{client: c, topic: topic}
}

func (h *Hub) Unsubscribe(c Client, topic string) {
	h.UnsubscribeCh <- binding{client: c, topic: topic}
}

func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case c := <-h.RegisterCh:
			h.clients[c] = make(map[string]struct{})

		case c := <-h.UnregisterCh:
			h.removeClient(c)

		case b := <-h.SubscribeCh:
			h.handleSubscribe(b)

		case b := <-h.UnsubscribeCh:
			h.handleUnsubscribe(b)

		case topic := <-h.InvalidateCh:
			h.handleInvalidate(topic)
		}
	}
}

// startPubSubListener feeds Redis invalidations into the hub loop so writes
// on any process reach every connected client.
func (h *Hub) startPubSubListener() {
	if h.rdb == nil {
		return
	}

	go func() {
		ctx := context.Background()
		pubsub := h.rdb.Subscribe(ctx, invalidateChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			h.InvalidateCh <- msg.Payload
		}
	}()
}

func (h *Hub) handleSubscribe(b binding) {
	topics, ok := h.clients[b.client]
	if !ok {
		// Subscribe raced an unregister; drop the binding.
		return
	}

	topics[b.topic] = struct{}{}
	if h.topics[b.topic] == nil {
		h.topics[b.topic] = make(map[Client]struct{})
	}
	h.topics[b.topic][b.client] = struct{}{}

	// Initial snapshot so the client does not wait for the next write.
	h.push(b.client, b.topic)
}

func (h *Hub) handleUnsubscribe(b binding) {
	if topics, ok := h.clients[b.client]; ok {
		delete(topics, b.topic)
	}
	if clients, ok := h.topics[b.topic]; ok {
		delete(clients, b.client)
		if len(clients) == 0 {
			delete(h.topics, b.topic)
		}
	}
}

func (h *Hub) handleInvalidate(topic string) {
	for c := range h.topics[topic] {
		h.push(c, topic)
	}
}

// push fetches the topic for the client's viewer and delivers it. Fetch
// errors become an error snapshot; the client keeps its last good data.
func (h *Hub) push(c Client, topic string) {
	snap := Snapshot{Topic: topic}

	data, err := h.source.Fetch(context.Background(), c.GetUserID(), topic)
	if err != nil {
		log.Printf("ERROR: snapshot fetch for %s failed: %v", topic, err)
		snap.Error = "failed to load"
	} else {
		snap.Data = data
	}

	select {
	case c.GetSendChannel() <- snap:
	default:
		// Slow consumer; drop the connection rather than block the hub.
		h.removeClient(c)
		c.Close()
	}
}

func (h *Hub) removeClient(c Client) {
	topics, ok := h.clients[c]
	if !ok {
		return
	}
	for topic := range topics {
		if clients, ok := h.topics[topic]; ok {
			delete(clients, c)
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	delete(h.clients, c)
}
