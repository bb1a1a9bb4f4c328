// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Heartbeat settings for admin sockets.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

/*
Hub fans catalog events out to connected admin WebSocket clients.

A single goroutine ([Hub.Run]) owns the client set; everything else talks to
it through channels. A client whose buffer is full is dropped rather than
allowed to stall the broadcast.
*/
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	clients    map[*client]struct{}
	count      atomic.Int64
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHub creates a hub; call [Hub.Run] before serving sockets.
func NewHub(checkOrigin func(*http.Request) bool, logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Run owns the client set until the context is cancelled.
func (hub *Hub) Run(context context.Context) {
	defer func() {
		for connected := range hub.clients {
			hub.drop(connected)
		}
		close(hub.done)
	}()

	for {
		select {
		case connected := <-hub.register:
			hub.clients[connected] = struct{}{}
			hub.count.Add(1)

		case leaving := <-hub.unregister:
			if _, ok := hub.clients[leaving]; ok {
				hub.drop(leaving)
			}

		case message := <-hub.broadcast:
			for connected := range hub.clients {
				select {
				case connected.send <- message:
				default:
					hub.logger.Warn("ws_client_dropped_slow")
					hub.drop(connected)
				}
			}

		case <-context.Done():
			return
		}
	}
}

// Done is closed once [Hub.Run] has returned and every client was released.
func (hub *Hub) Done() <-chan struct{} {
	return hub.done
}

// Clients returns the number of connected admin sockets.
func (hub *Hub) Clients() int {
	return int(hub.count.Load())
}

// Publish implements [Publisher] for single-instance deployments.
func (hub *Hub) Publish(context context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", event.Type, err)
	}

	select {
	case hub.broadcast <- payload:
		return nil
	case <-hub.done:
		return fmt.Errorf("events: hub stopped")
	case <-context.Done():
		return context.Err()
	}
}

// Deliver is the [Handler] that forwards NATS events to local sockets.
func (hub *Hub) Deliver(context context.Context, event Event) {
	if err := hub.Publish(context, event); err != nil {
		hub.logger.Warn("catalog_event_deliver_failed", slog.String("error", err.Error()))
	}
}

// ServeHTTP upgrades the request and attaches the socket to the hub.
func (hub *Hub) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	connection, err := hub.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		hub.logger.Warn("ws_upgrade_failed", slog.String("error", err.Error()))
		return
	}

	connected := &client{hub: hub, connection: connection, send: make(chan []byte, sendBuffer)}

	select {
	case hub.register <- connected:
	case <-hub.done:
		_ = connection.Close()
		return
	}

	go connected.writePump()
	go connected.readPump()
}

func (hub *Hub) drop(leaving *client) {
	delete(hub.clients, leaving)
	close(leaving.send)
	hub.count.Add(-1)
}

// # Client

type client struct {
	hub        *Hub
	connection *websocket.Conn
	send       chan []byte
}

// readPump discards inbound frames; it exists to process pongs and detect closes.
func (connected *client) readPump() {
	defer func() {
		select {
		case connected.hub.unregister <- connected:
		case <-connected.hub.done:
		}
		_ = connected.connection.Close()
	}()

	connected.connection.SetReadLimit(maxMessageSize)
	_ = connected.connection.SetReadDeadline(time.Now().Add(pongWait))
	connected.connection.SetPongHandler(func(string) error {
		return connected.connection.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := connected.connection.ReadMessage(); err != nil {
			return
		}
	}
}

func (connected *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = connected.connection.Close()
	}()

	for {
		select {
		case message, ok := <-connected.send:
			_ = connected.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = connected.connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := connected.connection.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = connected.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := connected.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
