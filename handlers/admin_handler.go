package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/gaming-portal/models"
	"github.com/Dosada05/gaming-portal/services"
)

type AdminHandler struct {
	adminService   services.AdminService
	rankingService services.RankingService
	eventService   services.EventService
}

func NewAdminHandler(
	adminService services.AdminService,
	rankingService services.RankingService,
	eventService services.EventService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		rankingService: rankingService,
		eventService:   eventService,
	}
}

// ListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string][]models.UserView
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"users": users}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.adminService.CreateUser(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) SetStarPlayer(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		StarPlayer bool `json:"star_player"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.adminService.SetStarPlayer(r.Context(), userID, input.StarPlayer)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetAdmin godoc
// @Summary      Grant or revoke admin rights
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Param        userID path int true "User ID"
// @Success      200 {object} map[string]models.UserView
// @Failure      404 {object} map[string]string
// @Router       /admin/users/{userID}/admin [put]
func (h *AdminHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.adminService.SetAdmin(r.Context(), userID, input.IsAdmin)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetPoints godoc
// @Summary      Overwrite a player's points
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Param        userID path int true "User ID"
// @Success      200 {object} map[string]models.UserView
// @Router       /admin/users/{userID}/points [put]
func (h *AdminHandler) SetPoints(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Points *int `json:"points"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Points == nil {
		badRequestResponse(w, r, errors.New("points is required"))
		return
	}

	user, err := h.adminService.SetPoints(r.Context(), userID, *input.Points)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddPoints godoc
// @Summary      Add or remove points with a reason
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Param        userID path int true "User ID"
// @Success      200 {object} map[string]models.UserView
// @Router       /admin/users/{userID}/points [post]
func (h *AdminHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Amount int    `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.adminService.AddPoints(r.Context(), userID, input.Amount, input.Reason)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user.View()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateEvent godoc
// @Summary      Schedule a new event
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        input body services.CreateEventInput true "Event data"
// @Success      201 {object} map[string]models.Event
// @Failure      422 {object} map[string]string
// @Router       /admin/events [post]
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.adminService.CreateEvent(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.adminService.DeleteEvent(r.Context(), eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) UpdateAllTiers(w http.ResponseWriter, r *http.Request) {
	standings, err := h.rankingService.UpdateAllTiers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ResetRanking(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.ResetRanking(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.adminService.GetSettings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"settings": settings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input models.Settings
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	settings, err := h.adminService.UpdateSettings(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"settings": settings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Tick godoc
// @Summary      Run the event lifecycle check now
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string][]services.Transition
// @Router       /admin/tick [post]
func (h *AdminHandler) Tick(w http.ResponseWriter, r *http.Request) {
	transitions, err := h.eventService.Tick(r.Context(), time.Now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if transitions == nil {
		transitions = []services.Transition{}
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"transitions": transitions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
