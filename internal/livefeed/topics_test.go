package livefeed

import (
	"testing"

	"fablink/internal/models/db_models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseTopicRoundTrip(t *testing.T) {
	id := uuid.New()

	cases := []struct {
		topic string
		kind  string
	}{
		{ConsumerFeedbackTopic(id), KindConsumerFeedback},
		{ManufacturerFeedbackTopic(id), KindManufacturerFeedback},
		{FeedbackItemTopic(id), KindFeedbackItem},
		{ThreadTopic(id), KindThread},
		{NotificationsTopic(id), KindNotifications},
	}

	for _, c := range cases {
		kind, parsed, err := ParseTopic(c.topic)
		assert.NoError(t, err, c.topic)
		assert.Equal(t, c.kind, kind)
		assert.Equal(t, id, parsed)
	}

	kind, parsed, err := ParseTopic(ManufacturersTopic())
	assert.NoError(t, err)
	assert.Equal(t, KindManufacturers, kind)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestParseTopicRejectsGarbage(t *testing.T) {
	for _, topic := range []string{"", "thread", "thread:not-a-uuid", "unknown:" + uuid.NewString()} {
		_, _, err := ParseTopic(topic)
		assert.Error(t, err, topic)
	}
}

func TestAuthorizedOwnerOnlyTopics(t *testing.T) {
	me := uuid.New()
	other := uuid.New()

	assert.True(t, Authorized(me, db_models.RoleConsumer, ConsumerFeedbackTopic(me)))
	assert.False(t, Authorized(me, db_models.RoleConsumer, ConsumerFeedbackTopic(other)))
	assert.False(t, Authorized(me, db_models.RoleManufacturer, ConsumerFeedbackTopic(me)))

	assert.True(t, Authorized(me, db_models.RoleManufacturer, ManufacturerFeedbackTopic(me)))
	assert.False(t, Authorized(me, db_models.RoleManufacturer, ManufacturerFeedbackTopic(other)))

	assert.True(t, Authorized(me, db_models.RoleConsumer, NotificationsTopic(me)))
	assert.False(t, Authorized(me, db_models.RoleConsumer, NotificationsTopic(other)))
}

func TestAuthorizedSharedTopics(t *testing.T) {
	me := uuid.New()

	assert.True(t, Authorized(me, db_models.RoleConsumer, ThreadTopic(uuid.New())))
	assert.True(t, Authorized(me, db_models.RoleManufacturer, FeedbackItemTopic(uuid.New())))
	assert.True(t, Authorized(me, db_models.RoleConsumer, ManufacturersTopic()))
	assert.False(t, Authorized(me, db_models.RoleConsumer, "bogus"))
}
