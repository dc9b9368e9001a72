package handlers

import (
	"net/http"

	"github.com/Dosada05/gaming-portal/middleware"
	"github.com/Dosada05/gaming-portal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents godoc
// @Summary      List events by start date
// @Tags         events
// @Produce      json
// @Success      200 {object} map[string][]models.Event
// @Router       /events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListEvents(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEvent godoc
// @Summary      Get one event
// @Tags         events
// @Produce      json
// @Param        eventID path int true "Event ID"
// @Success      200 {object} map[string]models.Event
// @Failure      404 {object} map[string]string
// @Router       /events/{eventID} [get]
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEventMatches godoc
// @Summary      Matches of an event with player names
// @Tags         events
// @Produce      json
// @Param        eventID path int true "Event ID"
// @Success      200 {object} map[string][]models.MatchView
// @Router       /events/{eventID}/matches [get]
func (h *EventHandler) GetEventMatches(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.eventService.GetEventMatches(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterForEvent godoc
// @Summary      Sign up for an open event
// @Tags         events
// @Security     BearerAuth
// @Param        eventID path int true "Event ID"
// @Success      204
// @Failure      409 {object} map[string]string
// @Router       /events/{eventID}/register [post]
func (h *EventHandler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.eventService.RegisterForEvent(r.Context(), eventID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnregisterFromEvent godoc
// @Summary      Withdraw from an open event
// @Tags         events
// @Security     BearerAuth
// @Param        eventID path int true "Event ID"
// @Success      204
// @Router       /events/{eventID}/register [delete]
func (h *EventHandler) UnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.eventService.UnregisterFromEvent(r.Context(), eventID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
