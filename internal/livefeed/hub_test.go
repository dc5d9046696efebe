package livefeed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubSource resolves every topic to a canned value and records viewers.
type stubSource struct {
	mu      sync.Mutex
	viewers []uuid.UUID
	err     error
}

func (s *stubSource) Fetch(ctx context.Context, viewerID uuid.UUID, topic string) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.viewers = append(s.viewers, viewerID)
	return "snapshot:" + topic, nil
}

type mockClient struct {
	connID string
	userID uuid.UUID
	role   string
	send   chan Snapshot

	mu     sync.Mutex
	closed bool
}

func newMockClient(buffer int) *mockClient {
	return &mockClient{
		connID: uuid.NewString(),
		userID: uuid.New(),
		role:   db_models.RoleConsumer,
		send:   make(chan Snapshot, buffer),
	}
}

func (c *mockClient) GetConnID() string               { return c.connID }
func (c *mockClient) GetUserID() uuid.UUID            { return c.userID }
func (c *mockClient) GetRole() string                 { return c.role }
func (c *mockClient) GetSendChannel() chan<- Snapshot { return c.send }
func (c *mockClient) Run()                            {}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *mockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *mockClient) receive(t *testing.T) Snapshot {
	t.Helper()
	select {
	case snap := <-c.send:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func (c *mockClient) expectSilence(t *testing.T) {
	t.Helper()
	select {
	case snap := <-c.send:
		t.Fatalf("unexpected snapshot for %s", snap.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func startHub(source SnapshotSource) *Hub {
	hub := NewHub(source, nil)
	go hub.Run()
	return hub
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	hub := startHub(&stubSource{})
	client := newMockClient(4)
	topic := ThreadTopic(uuid.New())

	hub.RegisterCh <- client
	hub.Subscribe(client, topic)

	snap := client.receive(t)
	assert.Equal(t, topic, snap.Topic)
	assert.Equal(t, "snapshot:"+topic, snap.Data)
	assert.Empty(t, snap.Error)
}

func TestInvalidatePushesToSubscribers(t *testing.T) {
	hub := startHub(&stubSource{})
	subscribed := newMockClient(4)
	bystander := newMockClient(4)
	topic := NotificationsTopic(uuid.New())

	hub.RegisterCh <- subscribed
	hub.RegisterCh <- bystander
	hub.Subscribe(subscribed, topic)
	subscribed.receive(t) // initial snapshot

	hub.InvalidateCh <- topic

	snap := subscribed.receive(t)
	assert.Equal(t, topic, snap.Topic)
	bystander.expectSilence(t)
}

func TestResubscribeIsIdempotent(t *testing.T) {
	hub := startHub(&stubSource{})
	client := newMockClient(8)
	topic := ManufacturersTopic()

	hub.RegisterCh <- client
	hub.Subscribe(client, topic)
	client.receive(t)
	hub.Subscribe(client, topic)
	client.receive(t)

	// One binding, so one invalidation yields exactly one snapshot.
	hub.InvalidateCh <- topic
	client.receive(t)
	client.expectSilence(t)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := startHub(&stubSource{})
	client := newMockClient(4)
	topic := FeedbackItemTopic(uuid.New())

	hub.RegisterCh <- client
	hub.Subscribe(client, topic)
	client.receive(t)

	hub.Unsubscribe(client, topic)
	hub.InvalidateCh <- topic

	client.expectSilence(t)
}

func TestFetchErrorBecomesErrorSnapshot(t *testing.T) {
	hub := startHub(&stubSource{err: errors.New("db down")})
	client := newMockClient(4)

	hub.RegisterCh <- client
	hub.Subscribe(client, ManufacturersTopic())

	snap := client.receive(t)
	assert.NotEmpty(t, snap.Error)
	assert.Nil(t, snap.Data)
}

func TestSlowConsumerIsDropped(t *testing.T) {
	hub := startHub(&stubSource{})
	client := newMockClient(1)
	topic := ThreadTopic(uuid.New())

	hub.RegisterCh <- client
	hub.Subscribe(client, topic)
	// The initial snapshot fills the buffer; the next push cannot be
	// delivered and must drop the client instead of blocking the hub.
	hub.InvalidateCh <- topic

	assert.Eventually(t, client.isClosed, time.Second, 10*time.Millisecond)
}

func TestSnapshotsAreFetchedPerViewer(t *testing.T) {
	source := &stubSource{}
	hub := startHub(source)
	a := newMockClient(4)
	b := newMockClient(4)
	topic := ThreadTopic(uuid.New())

	hub.RegisterCh <- a
	hub.RegisterCh <- b
	hub.Subscribe(a, topic)
	hub.Subscribe(b, topic)
	a.receive(t)
	b.receive(t)

	source.mu.Lock()
	viewers := append([]uuid.UUID(nil), source.viewers...)
	source.mu.Unlock()

	assert.Contains(t, viewers, a.userID)
	assert.Contains(t, viewers, b.userID)
}

func TestUnregisterCleansBindings(t *testing.T) {
	hub := startHub(&stubSource{})
	client := newMockClient(4)
	topic := ThreadTopic(uuid.New())

	hub.RegisterCh <- client
	hub.Subscribe(client, topic)
	client.receive(t)

	hub.UnregisterCh <- client
	hub.InvalidateCh <- topic

	client.expectSilence(t)
}
