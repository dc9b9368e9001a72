package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/gaming-portal/models"
	"golang.org/x/text/cases"
)

const (
	minUsernameLength = 3
	minPasswordLength = 3
)

func isValidStatusTransition(current, next models.EventStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.EventStatus][]models.EventStatus{
		models.EventStatusOpen:       {models.EventStatusClosed},
		models.EventStatusClosed:     {models.EventStatusInProgress},
		models.EventStatusInProgress: {models.EventStatusFinished},
		models.EventStatusFinished:   {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

// foldUsername is the comparison key for usernames: trimmed and Unicode case-folded.
func foldUsername(username string) string {
	return cases.Fold().String(strings.TrimSpace(username))
}

func validateUsername(username string) error {
	if utf8.RuneCountInString(strings.TrimSpace(username)) < minUsernameLength {
		return ErrUsernameTooShort
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// sortRankingEntries orders by points descending, then username, then user id.
func sortRankingEntries(entries []models.RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		fa, fb := foldUsername(a.Username), foldUsername(b.Username)
		if fa != fb {
			return fa < fb
		}
		return a.UserID < b.UserID
	})
}

func removeInt(slice []int, value int) []int {
	out := slice[:0]
	for _, v := range slice {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func usersToViews(users []models.User) []models.UserView {
	views := make([]models.UserView, len(users))
	for i, u := range users {
		views[i] = u.View()
	}
	return views
}
