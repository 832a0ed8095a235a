package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/sports-day-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithURLParam(method, key, value string) *http.Request {
	req := httptest.NewRequest(method, "/", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetIDFromURL(t *testing.T) {
	id, err := getIDFromURL(requestWithURLParam(http.MethodGet, "eventID", "42"), "eventID")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := getIDFromURL(requestWithURLParam(http.MethodGet, "eventID", bad), "eventID")
		assert.Error(t, err, "value %q", bad)
	}
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	cases := map[string]string{
		"bad syntax":      `{"name":`,
		"empty body":      ``,
		"unknown field":   `{"name":"x","extra":1}`,
		"wrong type":      `{"name":7}`,
		"trailing values": `{"name":"x"}{"name":"y"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			var dst payload
			err := readJSON(httptest.NewRecorder(), req, &dst)
			assert.Error(t, err)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	var dst payload
	require.NoError(t, readJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "ok", dst.Name)
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrEventNotFound, http.StatusNotFound},
		{services.ErrHouseNotFound, http.StatusNotFound},
		{services.ErrHouseNameConflict, http.StatusConflict},
		{services.ErrSportInUse, http.StatusConflict},
		{services.ErrEnrollmentConflict, http.StatusConflict},
		{services.ErrHouseQuotaExceeded, http.StatusBadRequest},
		{services.ErrEventNotOpen, http.StatusBadRequest},
		{services.ErrNoPositionsAssigned, http.StatusBadRequest},
		{services.ErrParticipantNotOnRoster, http.StatusBadRequest},
		{services.ErrInvalidStatusChange, http.StatusBadRequest},
		{services.ErrPasswordTooShort, http.StatusBadRequest},
		{services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mapServiceErrorToHTTP(rec, req, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
