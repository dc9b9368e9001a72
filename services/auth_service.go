package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
)

// AuthService checks credentials. Login and Logout also maintain the persisted
// currentUser record: one process-wide "last signed-in user" kept for stored
// data that expects the key. It is not a session. Any login overwrites it and
// any logout clears it; HTTP requests are identified by their JWT only.
type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	Logout(ctx context.Context) error
	// CurrentUser returns the last signed-in user recorded by Login, or nil.
	CurrentUser(ctx context.Context) (*models.User, error)
}

type RegisterInput struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Rank     models.Rank `json:"rank"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authService struct {
	store       *Store
	credentials CredentialPolicy
	logger      *slog.Logger
}

func NewAuthService(store *Store, credentials CredentialPolicy, logger *slog.Logger) AuthService {
	return &authService{
		store:       store,
		credentials: credentials,
		logger:      logger,
	}
}

func (s *authService) RegisterUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if !input.Rank.IsValid() {
		return nil, ErrInvalidRank
	}

	stored, err := s.credentials.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credentials: %w", err)
	}

	var created models.User
	err = s.store.Update(ctx, func(st *State) error {
		if st.FindUserByUsername(username) != nil {
			return ErrUsernameTaken
		}
		created = models.User{
			ID:        st.nextUserID(),
			Username:  username,
			Password:  stored,
			Rank:      input.Rank,
			CreatedAt: time.Now().UTC(),
		}
		st.Users = append(st.Users, created)
		st.Rankings = append(st.Rankings, models.NewRankingEntry(created))
		st.MarkDirty(repositories.CollectionUsers, repositories.CollectionRankings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.Int("user_id", created.ID), slog.String("username", created.Username))
	return &created, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	var user models.User
	err := s.store.Update(ctx, func(st *State) error {
		found := st.FindUserByUsername(input.Username)
		if found == nil {
			return ErrInvalidCredentials
		}
		ok, err := s.credentials.Verify(found.Password, input.Password)
		if err != nil {
			s.logger.Warn("credential check failed", slog.Int("user_id", found.ID), slog.String("error", err.Error()))
			return ErrInvalidCredentials
		}
		if !ok {
			return ErrInvalidCredentials
		}
		// Mirror only; the caller's identity travels in the issued token.
		st.CurrentUserID = found.ID
		st.MarkDirty(repositories.CollectionCurrentUser)
		user = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.store.Update(ctx, func(st *State) error {
		if st.CurrentUserID == 0 {
			return nil
		}
		st.CurrentUserID = 0
		st.MarkDirty(repositories.CollectionCurrentUser)
		return nil
	})
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	var user *models.User
	err := s.store.View(func(st *State) error {
		if u := st.CurrentUser(); u != nil {
			c := *u
			user = &c
		}
		return nil
	})
	return user, err
}
