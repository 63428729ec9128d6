// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package users

import (
	"context"
	"log/slog"

	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/sec"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// # Service Layer

// Service orchestrates user administration and profile management.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new users [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ListResult bundles one page of users with its pagination envelope.
type ListResult struct {
	Users      []auth.User
	Pagination pagination.Envelope
}

/*
List returns one page of users for the admin listing.

Description: Runs a single count plus a single fetch; the pagination
envelope is always consistent with the reported count.
*/
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	v := &validate.Validator{}
	if filter.Role != "" {
		v.OneOf("role", filter.Role, "all", string(auth.RoleUser), string(auth.RoleAdmin))
	}
	if filter.MemberLevel != "" {
		v.OneOf("level", filter.MemberLevel, "all", string(auth.LevelBasic), string(auth.LevelPremium))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	total, err := service.repository.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := service.repository.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Users:      rows,
		Pagination: pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

// Get retrieves a single user by id.
func (service *Service) Get(ctx context.Context, id int) (*auth.User, error) {
	user, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("User", "id", id)
		}
		return nil, err
	}
	return user, nil
}

// UpdateInput defines the mutable subset of user profile fields.
type UpdateInput struct {
	FullName    *string
	Password    *string
	MemberLevel *string
	PhoneNumber *string
	PictureURL  *string
}

/*
Update applies a partial set of changes to a user.

Description: Fetches the existing state, overlays provided fields, and
persists the result. A new password is re-hashed with bcrypt.
*/
func (service *Service) Update(ctx context.Context, id int, input UpdateInput) (*auth.User, error) {
	v := &validate.Validator{}
	if input.FullName != nil {
		v.Required("fullName", *input.FullName).MaxLen("fullName", *input.FullName, 100)
	}
	if input.Password != nil {
		v.MinLen("password", *input.Password, 8)
	}
	if input.MemberLevel != nil {
		v.OneOf("memberLevel", *input.MemberLevel, string(auth.LevelBasic), string(auth.LevelPremium))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		hash, hashErr := sec.HashPassword(*input.Password)
		if hashErr != nil {
			return nil, apperr.Internal(hashErr)
		}
		user.PasswordHash = hash
	}
	if input.MemberLevel != nil {
		user.MemberLevel = auth.MemberLevel(*input.MemberLevel)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = input.PhoneNumber
	}
	if input.PictureURL != nil {
		user.PictureURL = input.PictureURL
	}

	if err := service.repository.Update(ctx, user); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("User", "id", id)
		}
		return nil, err
	}

	service.logger.Info("user_updated", slog.Int("user_id", id))

	return user, nil
}

// Delete removes a user account permanently.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("User", "id", id)
		}
		return err
	}

	service.logger.Warn("user_deleted", slog.Int("user_id", id))

	return nil
}
