// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks from the request path.
type Client struct {
	client *asynq.Client
}

// NewClient builds a task client on the given redis connection.
func NewClient(redisOpt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpt)}
}

// EnqueueMail queues one outbound notification mail with retries.
func (c *Client) EnqueueMail(ctx context.Context, to, subject, body string) error {
	task, err := NewMailTask(to, subject, body)
	if err != nil {
		return err
	}

	if _, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue mail task: %w", err)
	}

	return nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}
