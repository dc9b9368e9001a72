package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
)

type UserService interface {
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
}

// UpdateProfileInput leaves a field unchanged when it is empty.
type UpdateProfileInput struct {
	Rank        models.Rank `json:"rank"`
	NewPassword string      `json:"new_password"`
}

type userService struct {
	store       *Store
	credentials CredentialPolicy
	logger      *slog.Logger
}

func NewUserService(store *Store, credentials CredentialPolicy, logger *slog.Logger) UserService {
	return &userService{
		store:       store,
		credentials: credentials,
		logger:      logger,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	var user models.User
	err := s.store.View(func(st *State) error {
		u := st.FindUser(userID)
		if u == nil {
			return ErrUserNotFound
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	if input.Rank != "" && !input.Rank.IsValid() {
		return nil, ErrInvalidRank
	}
	var stored string
	if input.NewPassword != "" {
		if err := validatePassword(input.NewPassword); err != nil {
			return nil, err
		}
		hashed, err := s.credentials.Hash(input.NewPassword)
		if err != nil {
			return nil, err
		}
		stored = hashed
	}

	var updated models.User
	err := s.store.Update(ctx, func(st *State) error {
		u := st.FindUser(userID)
		if u == nil {
			return ErrUserNotFound
		}
		if input.Rank != "" && input.Rank != u.Rank {
			u.Rank = input.Rank
			st.syncRanking(u)
			st.MarkDirty(repositories.CollectionUsers)
		}
		if stored != "" {
			u.Password = stored
			st.MarkDirty(repositories.CollectionUsers)
		}
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", slog.Int("user_id", userID))
	return &updated, nil
}
