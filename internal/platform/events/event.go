// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package events carries catalog change notifications from admin mutations to
the admin clients that need to refetch.

Two transports are supported:

  - NATS: services publish to catalog.<entity>.<action>; every API instance
    subscribes and fans the event out to its WebSocket clients.
  - In-process: the [Hub] itself is the publisher (single instance, no broker).

Publishing is best effort. A failed publish is logged and never fails the
mutation that triggered it.
*/
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/komik/internal/platform/ctxutil"
)

// SubjectPrefix is the NATS subject namespace for catalog events.
const SubjectPrefix = "catalog"

// Entities
const (
	EntityComic   = "comic"
	EntityChapter = "chapter"
	EntityPage    = "page"
	EntityGenre   = "genre"
	EntityUser    = "user"
)

// Actions
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionFeatured = "featured"
)

// Event is the JSON body sent over NATS and WebSocket.
type Event struct {
	Type    string    `json:"type"`
	Entity  string    `json:"entity"`
	ID      string    `json:"id"`
	ComicID string    `json:"comic_id,omitempty"`
	At      time.Time `json:"at"`
}

// New builds an event stamped with the current time.
func New(entity, action, id, comicID string) Event {
	return Event{
		Type:    entity + "." + action,
		Entity:  entity,
		ID:      id,
		ComicID: comicID,
		At:      time.Now().UTC(),
	}
}

// Subject returns the NATS subject, e.g. catalog.comic.created.
func (event Event) Subject() string {
	return SubjectPrefix + "." + event.Type
}

// Publisher sends catalog events to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Emit publishes and logs failures instead of returning them.
func Emit(context context.Context, publisher Publisher, event Event) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(context, event); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "catalog_event_publish_failed",
			slog.String("type", event.Type),
			slog.String("id", event.ID),
			slog.String("error", err.Error()),
		)
	}
}
