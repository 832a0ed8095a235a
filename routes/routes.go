package routes

import (
	"github.com/Dosada05/sports-day-system/handlers"
	"github.com/Dosada05/sports-day-system/middleware"
	"github.com/Dosada05/sports-day-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	House       *handlers.HouseHandler
	Sport       *handlers.SportHandler
	Event       *handlers.EventHandler
	Participant *handlers.ParticipantHandler
	Enrollment  *handlers.EnrollmentHandler
	Scoring     *handlers.ScoringHandler
	Standings   *handlers.StandingsHandler
	Guardian    *handlers.GuardianHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	// Public read-only views: anyone at the sports day can follow along.
	router.Route("/public", func(r chi.Router) {
		r.Get("/scoreboard", h.Standings.GetScoreboard)
		r.Get("/schedule", h.Standings.GetSchedule)
		r.Get("/results", h.Standings.GetRecentResults)
		r.Get("/records", h.Standings.GetRecords)
		r.Get("/search", h.Standings.SearchParticipants)
	})

	router.Route("/houses", func(r chi.Router) {
		r.Get("/", h.House.GetAllHouses)
		r.Get("/{houseID}", h.House.GetHouseByID)
	})

	router.Route("/sports", func(r chi.Router) {
		r.Get("/", h.Sport.GetAllSports)
		r.Get("/{sportID}", h.Sport.GetSportByID)
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", h.Event.ListEvents)
		r.Get("/{eventID}", h.Event.GetEventByID)
		r.Get("/{eventID}/roster", h.Enrollment.GetRoster)
		r.Get("/{eventID}/results", h.Scoring.GetEventResults)
	})

	router.Route("/ws", func(r chi.Router) {
		r.Get("/scoreboard", h.WebSocket.ServeScoreboard)
		r.Get("/events/{eventID}", h.WebSocket.ServeEvent)
	})

	// Guardian views of their own children.
	router.Route("/guardian/children", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleParent))

		r.Get("/", h.Guardian.ListChildren)
		r.Get("/{participantID}", h.Guardian.GetChildDetails)
		r.Get("/{participantID}/events", h.Guardian.GetChildEvents)
		r.Get("/{participantID}/results", h.Guardian.GetChildResults)
	})

	// Administration: full CRUD plus the scoring workflow.
	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Get("/dashboard", h.Dashboard.GetStats)

		r.Route("/houses", func(r chi.Router) {
			r.Post("/", h.House.CreateHouse)
			r.Put("/{houseID}", h.House.UpdateHouse)
			r.Delete("/{houseID}", h.House.DeleteHouse)
			r.Post("/{houseID}/logo", h.House.UploadHouseLogo)
		})

		r.Route("/sports", func(r chi.Router) {
			r.Post("/", h.Sport.CreateSport)
			r.Put("/{sportID}", h.Sport.UpdateSport)
			r.Delete("/{sportID}", h.Sport.DeleteSport)
		})

		r.Route("/participants", func(r chi.Router) {
			r.Get("/", h.Participant.ListParticipants)
			r.Post("/", h.Participant.CreateParticipant)
			r.Get("/{participantID}", h.Participant.GetParticipantByID)
			r.Put("/{participantID}", h.Participant.UpdateParticipant)
			r.Post("/{participantID}/deactivate", h.Participant.DeactivateParticipant)
			r.Delete("/{participantID}", h.Participant.DeleteParticipant)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", h.Event.CreateEvent)
			r.Put("/{eventID}", h.Event.UpdateEvent)
			r.Patch("/{eventID}/status", h.Event.UpdateEventStatus)
			r.Delete("/{eventID}", h.Event.DeleteEvent)
			r.Put("/{eventID}/roster", h.Enrollment.ReplaceRoster)
			r.Post("/{eventID}/results", h.Scoring.RecordResults)
		})
	})

	return router
}
