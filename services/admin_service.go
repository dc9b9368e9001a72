package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/repositories"
	"github.com/gosimple/slug"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserView, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	SetStarPlayer(ctx context.Context, userID int, star bool) (*models.User, error)
	SetAdmin(ctx context.Context, userID int, admin bool) (*models.User, error)
	// DeleteUser removes the user with its ranking entry and event registrations.
	DeleteUser(ctx context.Context, userID int) error
	CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID int) error
	// AddPoints adjusts points by a non-zero amount. The total never drops below zero.
	AddPoints(ctx context.Context, userID, amount int, reason string) (*models.User, error)
	SetPoints(ctx context.Context, userID, points int) (*models.User, error)
	// ResetRanking zeroes points and matches for everyone and resets tiers.
	ResetRanking(ctx context.Context) error
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
}

type CreateUserInput struct {
	Username      string      `json:"username"`
	Password      string      `json:"password"`
	Rank          models.Rank `json:"rank"`
	Points        int         `json:"points"`
	MatchesPlayed int         `json:"matches_played"`
	StarPlayer    bool        `json:"star_player"`
	IsAdmin       bool        `json:"is_admin"`
}

type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	MaxPlayers  int       `json:"max_players"`
}

type adminService struct {
	store         *Store
	credentials   CredentialPolicy
	notifications NotificationService
	logger        *slog.Logger
}

func NewAdminService(
	store *Store,
	credentials CredentialPolicy,
	notifications NotificationService,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		store:         store,
		credentials:   credentials,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.UserView, error) {
	var views []models.UserView
	err := s.store.View(func(st *State) error {
		views = usersToViews(st.Users)
		return nil
	})
	return views, err
}

func (s *adminService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
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
	if input.Points < 0 || input.MatchesPlayed < 0 {
		return nil, ErrInvalidPoints
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
			ID:            st.nextUserID(),
			Username:      username,
			Password:      stored,
			Rank:          input.Rank,
			Points:        input.Points,
			MatchesPlayed: input.MatchesPlayed,
			StarPlayer:    input.StarPlayer,
			IsAdmin:       input.IsAdmin,
			CreatedAt:     time.Now().UTC(),
		}
		st.Users = append(st.Users, created)
		st.Rankings = append(st.Rankings, models.NewRankingEntry(created))
		st.MarkDirty(repositories.CollectionUsers, repositories.CollectionRankings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created by admin", slog.Int("user_id", created.ID), slog.Bool("is_admin", created.IsAdmin))
	return &created, nil
}

// updateUser applies fn to one user and keeps its ranking entry in sync.
func (s *adminService) updateUser(ctx context.Context, userID int, fn func(u *models.User) error) (*models.User, error) {
	var updated models.User
	err := s.store.Update(ctx, func(st *State) error {
		u := st.FindUser(userID)
		if u == nil {
			return ErrUserNotFound
		}
		if err := fn(u); err != nil {
			return err
		}
		st.syncRanking(u)
		st.MarkDirty(repositories.CollectionUsers)
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *adminService) SetStarPlayer(ctx context.Context, userID int, star bool) (*models.User, error) {
	u, err := s.updateUser(ctx, userID, func(u *models.User) error {
		u.StarPlayer = star
		return nil
	})
	if err == nil {
		s.logger.Info("star player flag changed", slog.Int("user_id", userID), slog.Bool("star_player", star))
	}
	return u, err
}

func (s *adminService) SetAdmin(ctx context.Context, userID int, admin bool) (*models.User, error) {
	u, err := s.updateUser(ctx, userID, func(u *models.User) error {
		u.IsAdmin = admin
		return nil
	})
	if err == nil {
		s.logger.Info("admin flag changed", slog.Int("user_id", userID), slog.Bool("is_admin", admin))
	}
	return u, err
}

func (s *adminService) DeleteUser(ctx context.Context, userID int) error {
	err := s.store.Update(ctx, func(st *State) error {
		idx := -1
		for i := range st.Users {
			if st.Users[i].ID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrUserNotFound
		}

		for i := range st.Events {
			if st.Events[i].IsRegistered(userID) {
				st.Events[i].RegisteredPlayers = removeInt(st.Events[i].RegisteredPlayers, userID)
			}
		}
		rankings := st.Rankings[:0]
		for _, r := range st.Rankings {
			if r.UserID != userID {
				rankings = append(rankings, r)
			}
		}
		st.Rankings = rankings
		st.Users = append(st.Users[:idx], st.Users[idx+1:]...)

		if st.CurrentUserID == userID {
			st.CurrentUserID = 0
		}
		st.MarkDirty(
			repositories.CollectionUsers,
			repositories.CollectionEvents,
			repositories.CollectionRankings,
			repositories.CollectionCurrentUser,
		)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Int("user_id", userID))
	return nil
}

func (s *adminService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidationFailed)
	}
	if input.MaxPlayers <= 0 {
		return nil, fmt.Errorf("%w: max players must be positive", ErrValidationFailed)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidationFailed)
	}

	var created models.Event
	err := s.store.Update(ctx, func(st *State) error {
		id := st.nextEventID()
		eventSlug := slug.Make(title)
		for _, e := range st.Events {
			if e.Slug == eventSlug {
				eventSlug = fmt.Sprintf("%s-%d", eventSlug, id)
				break
			}
		}
		created = models.Event{
			ID:                id,
			Title:             title,
			Slug:              eventSlug,
			Description:       strings.TrimSpace(input.Description),
			Date:              input.Date.UTC(),
			MaxPlayers:        input.MaxPlayers,
			RegisteredPlayers: []int{},
			Status:            models.EventStatusOpen,
			Matches:           []models.Match{},
		}
		st.Events = append(st.Events, created)
		st.MarkDirty(repositories.CollectionEvents)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created", slog.Int("event_id", created.ID), slog.String("slug", created.Slug))
	s.notifications.EventChanged(created)
	return &created, nil
}

func (s *adminService) DeleteEvent(ctx context.Context, eventID int) error {
	err := s.store.Update(ctx, func(st *State) error {
		for i := range st.Events {
			if st.Events[i].ID == eventID {
				st.Events = append(st.Events[:i], st.Events[i+1:]...)
				st.MarkDirty(repositories.CollectionEvents)
				return nil
			}
		}
		return ErrEventNotFound
	})
	if err != nil {
		return err
	}
	s.logger.Info("event deleted", slog.Int("event_id", eventID))
	return nil
}

func (s *adminService) AddPoints(ctx context.Context, userID, amount int, reason string) (*models.User, error) {
	if amount == 0 {
		return nil, ErrInvalidPoints
	}
	u, err := s.updateUser(ctx, userID, func(u *models.User) error {
		u.Points = max(0, u.Points+amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("points adjusted",
		slog.Int("user_id", userID),
		slog.Int("amount", amount),
		slog.String("reason", reason),
		slog.Int("points", u.Points),
	)
	msg := fmt.Sprintf("%+d points (%s)", amount, reason)
	if strings.TrimSpace(reason) == "" {
		msg = fmt.Sprintf("%+d points", amount)
	}
	s.notifications.Notify(userID, 0, models.NotificationPointsAwarded, msg)
	return u, nil
}

func (s *adminService) SetPoints(ctx context.Context, userID, points int) (*models.User, error) {
	if points < 0 {
		return nil, ErrInvalidPoints
	}
	u, err := s.updateUser(ctx, userID, func(u *models.User) error {
		u.Points = points
		return nil
	})
	if err == nil {
		s.logger.Info("points set", slog.Int("user_id", userID), slog.Int("points", points))
	}
	return u, err
}

func (s *adminService) ResetRanking(ctx context.Context) error {
	err := s.store.Update(ctx, func(st *State) error {
		for i := range st.Users {
			st.Users[i].Points = 0
			st.Users[i].MatchesPlayed = 0
		}
		for i := range st.Rankings {
			st.Rankings[i].Points = 0
			st.Rankings[i].MatchesPlayed = 0
			st.Rankings[i].Tier = models.TierRandom
		}
		st.MarkDirty(repositories.CollectionUsers, repositories.CollectionRankings)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Warn("ranking reset")
	return nil
}

func (s *adminService) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.store.View(func(st *State) error {
		settings = st.Settings
		return nil
	})
	return settings, err
}

func (s *adminService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if settings.PointsPerWin <= 0 || settings.StarPlayerBonus <= 0 || settings.CloseRegistrationMinutes <= 0 {
		return models.Settings{}, ErrInvalidSettings
	}
	err := s.store.Update(ctx, func(st *State) error {
		st.Settings = settings
		st.MarkDirty(repositories.CollectionSettings)
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	s.logger.Info("settings updated",
		slog.Int("points_per_win", settings.PointsPerWin),
		slog.Int("star_player_bonus", settings.StarPlayerBonus),
		slog.Int("close_registration_minutes", settings.CloseRegistrationMinutes),
	)
	return settings, nil
}
