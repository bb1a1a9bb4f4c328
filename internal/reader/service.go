// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"context"
	"log/slog"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/pkg/uuid"
)

// SessionView is a session id together with the position it renders.
type SessionView struct {
	SessionID  string     `json:"session_id"`
	View       *View      `json:"view"`
	Transition Transition `json:"transition,omitempty"`
}

// Service opens chapters for reading and keeps server-side reading sessions.
type Service struct {
	loader   Loader
	sessions SessionStore
	logger   *slog.Logger
}

// NewService constructs a reader [Service].
func NewService(loader Loader, sessions SessionStore, logger *slog.Logger) *Service {
	return &Service{loader: loader, sessions: sessions, logger: logger}
}

/*
Open renders the first page of a chapter without creating a session.

Returns:
  - *View: The ready view at page 0
  - error: NotFound for an unknown comic, chapter or empty chapter; Remote otherwise
*/
func (service *Service) Open(context context.Context, slug string, chapterNumber int) (*View, error) {
	navigator := NewNavigator(service.loader)
	if err := navigator.Open(context, slug, chapterNumber); err != nil {
		return nil, err
	}
	return navigator.View(), nil
}

/*
StartSession opens a chapter and stores the position under a new session id.

A load error still creates the session so the client can retry through
[Service.Reload]; NotFound does not.
*/
func (service *Service) StartSession(context context.Context, slug string, chapterNumber int) (*SessionView, error) {
	navigator := NewNavigator(service.loader)
	if err := navigator.Open(context, slug, chapterNumber); err != nil && navigator.Status() != StatusLoadError {
		return nil, err
	}

	position := navigator.Position()
	position.SessionID = uuid.New()
	position.Generation = 1

	if err := service.sessions.Create(context, position); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "reader_session_opened",
		slog.String("session_id", position.SessionID),
		slog.String("slug", slug),
		slog.Int("chapter", chapterNumber),
		slog.String("status", string(navigator.Status())),
	)
	return &SessionView{SessionID: position.SessionID, View: navigator.View()}, nil
}

// Session renders the stored position of a session.
func (service *Service) Session(context context.Context, id string) (*SessionView, error) {
	_, navigator, err := service.restore(context, id)
	if err != nil {
		return nil, err
	}
	return &SessionView{SessionID: id, View: navigator.View()}, nil
}

// Advance moves a session one page forward and saves the result.
func (service *Service) Advance(context context.Context, id string) (*SessionView, error) {
	return service.move(context, id, (*Navigator).Advance)
}

// Retreat moves a session one page back and saves the result.
func (service *Service) Retreat(context context.Context, id string) (*SessionView, error) {
	return service.move(context, id, (*Navigator).Retreat)
}

// Reload re-initializes a session on its chapter at page 0.
func (service *Service) Reload(context context.Context, id string) (*SessionView, error) {
	position, err := service.sessions.Get(context, id)
	if err != nil {
		return nil, err
	}

	navigator := NewNavigator(service.loader)
	if err := navigator.Open(context, position.Slug, position.ChapterNumber); err != nil && navigator.Status() != StatusLoadError {
		return nil, err
	}

	if err := service.save(context, position, navigator); err != nil {
		return nil, err
	}
	return &SessionView{SessionID: id, View: navigator.View()}, nil
}

// EndSession discards a session; deleting an unknown session succeeds.
func (service *Service) EndSession(context context.Context, id string) error {
	if err := service.sessions.Delete(context, id); err != nil {
		return err
	}
	service.logger.InfoContext(context, "reader_session_closed", slog.String("session_id", id))
	return nil
}

// # Internal Helpers

func (service *Service) move(context context.Context, id string, step func(*Navigator, context.Context) (Transition, error)) (*SessionView, error) {
	position, navigator, err := service.restore(context, id)
	if err != nil {
		return nil, err
	}

	if navigator.Status() != StatusReady {
		return &SessionView{SessionID: id, View: navigator.View(), Transition: TransitionNone}, nil
	}

	transition, stepErr := step(navigator, context)

	// The neighbour is missing or has no pages; the session stays where it was.
	if stepErr != nil && navigator.Status() == StatusNotFound {
		service.logger.WarnContext(context, "reader_chapter_unavailable",
			slog.String("session_id", id),
			slog.Int("from", position.ChapterNumber),
			slog.String("error", stepErr.Error()),
		)
		return &SessionView{SessionID: id, View: navigator.View(), Transition: TransitionNone}, nil
	}

	if stepErr != nil && navigator.Status() != StatusLoadError {
		return nil, stepErr
	}

	// A failed chapter load is saved too, so Reload retries the chapter the reader asked for.
	if transition != TransitionNone || stepErr != nil {
		if err := service.save(context, position, navigator); err != nil {
			return nil, err
		}
	}

	if transition == TransitionChapter {
		service.logger.InfoContext(context, "reader_chapter_changed",
			slog.String("session_id", id),
			slog.Int("from", position.ChapterNumber),
			slog.Int("to", navigator.Position().ChapterNumber),
		)
	}
	return &SessionView{SessionID: id, View: navigator.View(), Transition: transition}, nil
}

// restore rebuilds a navigator at the stored position. Load errors come back as a load_error view.
func (service *Service) restore(context context.Context, id string) (*Position, *Navigator, error) {
	position, err := service.sessions.Get(context, id)
	if err != nil {
		return nil, nil, err
	}

	navigator := NewNavigator(service.loader)
	if err := navigator.Open(context, position.Slug, position.ChapterNumber); err != nil {
		if navigator.Status() != StatusLoadError {
			return nil, nil, err
		}
		return position, navigator, nil
	}

	navigator.Seek(position.PageIndex)
	return position, navigator, nil
}

func (service *Service) save(context context.Context, previous *Position, navigator *Navigator) error {
	next := navigator.Position()
	next.SessionID = previous.SessionID
	next.Generation = previous.Generation + 1

	if err := service.sessions.Save(context, next, previous.Generation); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			service.logger.WarnContext(context, "reader_session_stale_write",
				slog.String("session_id", previous.SessionID),
				slog.Uint64("generation", previous.Generation),
			)
		}
		return err
	}
	return nil
}
