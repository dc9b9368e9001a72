package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/gaming-portal/middleware"
	"github.com/Dosada05/gaming-portal/services"
)

type UserHandler struct {
	userService         services.UserService
	eventService        services.EventService
	notificationService services.NotificationService
}

func NewUserHandler(
	userService services.UserService,
	eventService services.EventService,
	notificationService services.NotificationService,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		eventService:        eventService,
		notificationService: notificationService,
	}
}

// GetMe godoc
// @Summary      Current player's profile
// @Tags         me
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]models.UserView
// @Router       /me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMe godoc
// @Summary      Change rank or password
// @Tags         me
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input body services.UpdateProfileInput true "Fields to change"
// @Success      200 {object} map[string]models.UserView
// @Router       /me [put]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.UpdateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Rank == "" && input.NewPassword == "" {
		badRequestResponse(w, r, errors.New("nothing to update"))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	events, err := h.eventService.ListUserEvents(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	response := jsonResponse{
		"notifications": h.notificationService.ListForUser(userID),
		"general":       h.notificationService.ListGeneral(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
