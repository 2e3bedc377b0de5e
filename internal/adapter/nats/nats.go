// Package nats implements the lifecycle event port using NATS JetStream.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/arriendo/arriendo/internal/logger"
	"github.com/arriendo/arriendo/internal/port/events"
	"github.com/arriendo/arriendo/internal/resilience"
)

const (
	streamName      = "ARRIENDO"
	headerRequestID = "X-Request-ID"
)

// Publisher implements events.Publisher over NATS JetStream. A circuit
// breaker shields the request path: when the broker misbehaves, publishes
// fail fast instead of stalling tenant provisioning.
type Publisher struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	breaker *resilience.Breaker
}

// Connect establishes a connection to NATS and ensures the lifecycle stream
// exists.
func Connect(ctx context.Context, url string) (*Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"tenants.>"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("nats connected", "url", url, "stream", streamName)
	return &Publisher{
		nc:      nc,
		js:      js,
		breaker: resilience.NewBreaker(5, 30*time.Second),
	}, nil
}

// Publish sends a lifecycle event on the given subject. The request ID is
// carried as a header so consumers can correlate with the API logs.
func (p *Publisher) Publish(ctx context.Context, subject string, event events.TenantEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{Subject: subject, Data: data, Header: nats.Header{}}
	if id := logger.RequestID(ctx); id != "" {
		msg.Header.Set(headerRequestID, id)
	}

	return p.breaker.Execute(func() error {
		if _, err := p.js.PublishMsg(ctx, msg); err != nil {
			return fmt.Errorf("nats publish %s: %w", subject, err)
		}
		return nil
	})
}

// Subscribe registers a handler for events on the given subject. Used by
// sibling services and by tests; the API itself only publishes.
func (p *Publisher) Subscribe(ctx context.Context, subject string, handler func(subject string, event events.TenantEvent) error) (func(), error) {
	consumer, err := p.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("nats consumer create: %w", err)
	}

	cons, err := consumer.Consume(func(msg jetstream.Msg) {
		var event events.TenantEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			slog.Error("malformed lifecycle event", "subject", msg.Subject(), "error", err)
			_ = msg.Ack() // unparseable; redelivery cannot help
			return
		}
		if err := handler(msg.Subject(), event); err != nil {
			slog.Error("event handler failed", "subject", msg.Subject(), "error", err)
			if nakErr := msg.Nak(); nakErr != nil {
				slog.Error("nats nak failed", "error", nakErr)
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			slog.Error("nats ack failed", "error", ackErr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats consume: %w", err)
	}

	return cons.Stop, nil
}

// IsConnected reports whether the underlying connection is alive.
func (p *Publisher) IsConnected() bool {
	return p.nc.IsConnected()
}

// Close shuts down the NATS connection.
func (p *Publisher) Close() error {
	p.nc.Close()
	return nil
}
