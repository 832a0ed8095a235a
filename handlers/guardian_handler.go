package handlers

import (
	"net/http"

	"github.com/Dosada05/sports-day-system/middleware"
	"github.com/Dosada05/sports-day-system/services"
)

type GuardianHandler struct {
	guardianService services.GuardianService
}

func NewGuardianHandler(guardianService services.GuardianService) *GuardianHandler {
	return &GuardianHandler{guardianService: guardianService}
}

func (h *GuardianHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	guardianID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	children, err := h.guardianService.ListChildren(r.Context(), guardianID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"children": children}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GuardianHandler) GetChildDetails(w http.ResponseWriter, r *http.Request) {
	guardianID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	details, err := h.guardianService.GetChildDetails(r.Context(), guardianID, participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"child": details}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GuardianHandler) GetChildEvents(w http.ResponseWriter, r *http.Request) {
	guardianID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	events, err := h.guardianService.GetChildEvents(r.Context(), guardianID, participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"events": events}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GuardianHandler) GetChildResults(w http.ResponseWriter, r *http.Request) {
	guardianID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.guardianService.GetChildResults(r.Context(), guardianID, participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"results": results}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
