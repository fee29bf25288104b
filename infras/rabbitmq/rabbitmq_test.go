package rabbitmq_test

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/rabbitmq"
)

func TestToPublishing(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.FixedZone("BST", 3600))
	msg := rabbitmq.Message{Key: "msg-1", Value: map[string]int{"seats": 2}}

	pub, err := msg.ToPublishing(now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", pub.ContentType)
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.Equal(t, "msg-1", pub.MessageId)
	assert.Equal(t, now.UTC(), pub.Timestamp)
	assert.JSONEq(t, `{"seats":2}`, string(pub.Body))
}
