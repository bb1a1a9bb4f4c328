// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	maxReconnects = 10
	reconnectWait = time.Second
	flushTimeout  = 2 * time.Second
)

// connect opens a NATS connection that logs its lifecycle.
func connect(address, name string, logger *slog.Logger) (*nats.Conn, error) {
	connection, err := nats.Connect(address,
		nats.Name(name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats_disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(connection *nats.Conn) {
			logger.Info("nats_reconnected", slog.String("url", connection.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("nats_connection_closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to %s: %w", address, err)
	}
	return connection, nil
}

// # Publisher

// NATSPublisher publishes catalog events to NATS.
type NATSPublisher struct {
	connection *nats.Conn
	logger     *slog.Logger
}

// NewNATSPublisher connects to the broker as a publisher.
func NewNATSPublisher(address string, logger *slog.Logger) (*NATSPublisher, error) {
	connection, err := connect(address, "komik-publisher", logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("nats_publisher_connected", slog.String("address", address))
	return &NATSPublisher{connection: connection, logger: logger}, nil
}

// Publish sends one event and flushes so the admin views see it promptly.
func (publisher *NATSPublisher) Publish(context context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", event.Type, err)
	}

	if err := publisher.connection.Publish(event.Subject(), payload); err != nil {
		return fmt.Errorf("events: publish %s: %w", event.Subject(), err)
	}
	if err := publisher.connection.FlushTimeout(flushTimeout); err != nil {
		return fmt.Errorf("events: flush: %w", err)
	}

	publisher.logger.DebugContext(context, "catalog_event_published", slog.String("subject", event.Subject()))
	return nil
}

// Ping reports whether the connection is currently up.
func (publisher *NATSPublisher) Ping(context.Context) error {
	if !publisher.connection.IsConnected() {
		return errors.New("events: nats not connected")
	}
	return nil
}

// Close closes the connection.
func (publisher *NATSPublisher) Close() {
	publisher.connection.Close()
}

// # Subscriber

// Handler receives decoded events from the subscriber.
type Handler func(ctx context.Context, event Event)

// NATSSubscriber listens on catalog.> and hands every event to a [Handler].
type NATSSubscriber struct {
	connection   *nats.Conn
	subscription *nats.Subscription
	logger       *slog.Logger
}

// NewNATSSubscriber connects and subscribes to every catalog subject.
func NewNATSSubscriber(address string, handler Handler, logger *slog.Logger) (*NATSSubscriber, error) {
	connection, err := connect(address, "komik-subscriber", logger)
	if err != nil {
		return nil, err
	}

	subject := SubjectPrefix + ".>"
	subscription, err := connection.Subscribe(subject, func(message *nats.Msg) {
		var event Event
		if err := json.Unmarshal(message.Data, &event); err != nil {
			logger.Warn("catalog_event_malformed",
				slog.String("subject", message.Subject),
				slog.String("error", err.Error()),
			)
			return
		}
		handler(context.Background(), event)
	})
	if err != nil {
		connection.Close()
		return nil, fmt.Errorf("events: failed to subscribe on %s: %w", subject, err)
	}

	logger.Debug("nats_subscriber_connected", slog.String("address", address), slog.String("subject", subject))
	return &NATSSubscriber{connection: connection, subscription: subscription, logger: logger}, nil
}

// Close unsubscribes and closes the connection.
func (subscriber *NATSSubscriber) Close() {
	if err := subscriber.subscription.Unsubscribe(); err != nil {
		subscriber.logger.Warn("nats_unsubscribe_failed", slog.String("error", err.Error()))
	}
	subscriber.connection.Close()
}
