// Package consumer processes encoder completion messages: when the encoding
// pipeline finishes a video file it publishes the encoded output path, and
// this consumer records it on the aggregate.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/internal/video"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
)

const dedupeScope = "video-encoded"

// dedupeTTL bounds how long processed message IDs are remembered. Pub/Sub
// redelivers within its ack deadline window, so a day is plenty.
const dedupeTTL = 24 * time.Hour

// EncodedMessage is the payload published by the encoding pipeline.
type EncodedMessage struct {
	VideoID     uuid.UUID `json:"video_id"`
	EncodedPath string    `json:"encoded_path"`
}

type encodedPathUpdater interface {
	UpdateEncodedPath(ctx context.Context, id uuid.UUID, encodedPath string) (*video.VideoDTO, error)
}

type processedMarker interface {
	MarkProcessed(ctx context.Context, scope, id string, ttl time.Duration) (bool, error)
}

type subscriber interface {
	Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error
}

// outcome tells the pubsub callback what to do with the message.
type outcome int

const (
	outcomeAck outcome = iota
	outcomeNack
)

// Consumer pulls encoder completion messages and applies them.
type Consumer struct {
	videos encodedPathUpdater
	dedupe processedMarker
	sub    subscriber
	logg   *logger.Logger
}

// Params lists the consumer collaborators.
type Params struct {
	Videos       encodedPathUpdater
	Dedupe       processedMarker
	Subscription subscriber
	Logger       *logger.Logger
}

// New wires the consumer.
func New(params Params) (*Consumer, error) {
	if params.Videos == nil {
		return nil, errors.New("video service is required")
	}
	if params.Subscription == nil {
		return nil, errors.New("subscription is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{
		videos: params.Videos,
		dedupe: params.Dedupe,
		sub:    params.Subscription,
		logg:   params.Logger,
	}, nil
}

// Run blocks pulling messages until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		switch c.process(ctx, msg.ID, msg.Data) {
		case outcomeNack:
			msg.Nack()
		default:
			msg.Ack()
		}
	})
}

func (c *Consumer) process(ctx context.Context, messageID string, data []byte) outcome {
	var payload EncodedMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logg.Error(ctx, "dropping malformed encoded message", err)
		return outcomeAck
	}
	if payload.VideoID == uuid.Nil || payload.EncodedPath == "" {
		c.logg.Warn(ctx, "dropping incomplete encoded message")
		return outcomeAck
	}

	ctx = c.logg.WithVideoID(ctx, payload.VideoID.String())

	if c.dedupe != nil && messageID != "" {
		fresh, err := c.dedupe.MarkProcessed(ctx, dedupeScope, messageID, dedupeTTL)
		if err != nil {
			// Dedupe is best effort; the update itself is idempotent.
			c.logg.Warn(ctx, "dedupe check failed, processing anyway")
		} else if !fresh {
			return outcomeAck
		}
	}

	if _, err := c.videos.UpdateEncodedPath(ctx, payload.VideoID, payload.EncodedPath); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			c.logg.Warn(ctx, "encoded message for unknown video or slot, dropping")
			return outcomeAck
		}
		c.logg.Error(ctx, "failed to record encoded path", err)
		return outcomeNack
	}

	c.logg.Info(ctx, "encoded path recorded from message")
	return outcomeAck
}
