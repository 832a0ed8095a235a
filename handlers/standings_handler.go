package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	scoreboard, err := h.standingsService.GetScoreboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"scoreboard": scoreboard}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	var status *models.EventStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := models.EventStatus(v)
		if !s.Valid() {
			badRequestResponse(w, r, fmt.Errorf("unknown event status %q", v))
			return
		}
		status = &s
	}

	events, err := h.standingsService.GetSchedule(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"events": events}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetRecentResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.standingsService.GetRecentResults(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"results": results}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.standingsService.GetRecords(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"records": records}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) SearchParticipants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		badRequestResponse(w, r, errors.New("query parameter q is required"))
		return
	}

	participants, err := h.standingsService.SearchParticipants(r.Context(), query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"participants": participants}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
