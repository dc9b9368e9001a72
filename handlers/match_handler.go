package handlers

import (
	"net/http"

	"github.com/Dosada05/gaming-portal/middleware"
	"github.com/Dosada05/gaming-portal/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type recordResultInput struct {
	WinningTeam int `json:"winning_team"`
}

// RecordResult godoc
// @Summary      Report the winner of a match
// @Description  Only players of the match may report. The first accepted report is final.
// @Tags         matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        eventID path int true "Event ID"
// @Param        matchID path int true "Match ID"
// @Param        input body recordResultInput true "Winning team, 1 or 2"
// @Success      200 {object} map[string]models.Match
// @Success      202 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /events/{eventID}/matches/{matchID}/result [post]
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input recordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordMatchResult(r.Context(), eventID, matchID, input.WinningTeam, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
