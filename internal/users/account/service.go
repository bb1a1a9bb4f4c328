// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/sec"
	"github.com/taibuivan/komik/internal/users/auth"
)

// Service implements the admin user-role use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// List returns all profiles, newest first.
func (service *Service) List(context context.Context) ([]*auth.Profile, error) {
	return service.repository.List(context)
}

/*
SetAdmin grants or revokes the admin role of targetID.

Description: actorID is the admin performing the change. Revoking one's own
admin role is refused.

Returns:
  - *auth.Profile: The target profile after the change
  - error: Forbidden on self-revoke, NotFound for an unknown user
*/
func (service *Service) SetAdmin(context context.Context, actorID, targetID string, admin bool) (*auth.Profile, error) {
	if !admin && actorID == targetID {
		return nil, apperr.Forbidden("You cannot revoke your own admin role")
	}

	if _, err := service.repository.FindByID(context, targetID); err != nil {
		return nil, err
	}

	var err error
	if admin {
		err = service.repository.GrantRole(context, targetID, sec.RoleAdmin)
	} else {
		err = service.repository.RevokeRole(context, targetID, sec.RoleAdmin)
	}
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_role_changed",
		slog.String("actor_id", actorID),
		slog.String("user_id", targetID),
		slog.Bool("admin", admin),
	)

	return service.repository.FindByID(context, targetID)
}
