package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/sports-day-system/live"
	"github.com/Dosada05/sports-day-system/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	eventService services.EventService
}

func NewWebSocketHandler(hub *live.Hub, eventService services.EventService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		eventService: eventService,
	}
}

// ServeScoreboard subscribes the client to day-wide standings updates.
func (h *WebSocketHandler) ServeScoreboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, live.ScoreboardRoom)
}

// ServeEvent subscribes the client to live updates for a single event.
// Clients connect to /ws/events/{eventID}.
func (h *WebSocketHandler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.eventService.GetEventByID(r.Context(), eventID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			notFoundResponse(w, r)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	h.serve(w, r, live.EventRoom(eventID))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		slog.Warn("websocket upgrade failed",
			slog.String("room", roomID),
			slog.Any("error", err),
		)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
