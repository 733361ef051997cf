package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type placementPayload struct {
	JobID     uint32
	MachineID uint32
	Score     float64
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond // Speed up for testing
	queue := NewQueue[placementPayload](config)

	ctx := context.Background()
	payload := placementPayload{JobID: 7, MachineID: 2, Score: 42.5}

	// Publish a message
	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	// Consume the message
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	// Verify the message content
	msgData := message.T()
	assert.Equal(t, payload.JobID, msgData.JobID)
	assert.Equal(t, payload.MachineID, msgData.MachineID)
	assert.Equal(t, payload.Score, msgData.Score)

	// Test acknowledgment
	err = message.Ack()
	assert.NoError(t, err)

	// Test double ack (should error)
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[placementPayload](config)

	ctx := context.Background()
	payload := placementPayload{JobID: 1, MachineID: 1, Score: 1}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	// First attempt fails
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	err = message.Nack(fmt.Errorf("downstream unavailable"))
	assert.NoError(t, err)

	// Wait for retry delay, message is requeued once
	time.Sleep(30 * time.Millisecond)
	message, err = queue.Consume(ctx)
	assert.NoError(t, err)

	// Final failure moves the message to the dead letter queue
	err = message.Nack(fmt.Errorf("still unavailable"))
	assert.NoError(t, err)
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[placementPayload](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := placementPayload{JobID: 9}
	err := queue.Publish(ctx, &payload)
	assert.Error(t, err)

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancelTimeout()

	// Consume returns with an error when context is done
	_, err = queue.Consume(ctxWithTimeout)
	assert.Error(t, err)

	// Queue is still usable afterwards
	emptyCtx := context.Background()
	err = queue.Publish(emptyCtx, &payload)
	assert.NoError(t, err)

	message, err := queue.Consume(emptyCtx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
}
