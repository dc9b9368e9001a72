package handlers

import (
	"net/http"

	"github.com/Dosada05/gaming-portal/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// GetStandings godoc
// @Summary      Current standings with tiers
// @Tags         rankings
// @Produce      json
// @Success      200 {object} map[string][]models.Standing
// @Router       /rankings [get]
func (h *RankingHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.rankingService.GetStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
