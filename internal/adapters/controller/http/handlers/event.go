package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/internal/domain/service"
)

// EventHandler exposes the event lifecycle and everything scoped to a
// single event: admission, check-in, reviews, certificates and exports.
type EventHandler struct {
	events        *service.EventService
	registrations *service.RegistrationService
	checkIns      *service.CheckInService
	reviews       *service.ReviewService
	certificates  *service.CertificateService
	exports       *service.ExportService
}

func NewEventHandler(
	events *service.EventService,
	registrations *service.RegistrationService,
	checkIns *service.CheckInService,
	reviews *service.ReviewService,
	certificates *service.CertificateService,
	exports *service.ExportService,
) *EventHandler {
	return &EventHandler{
		events:        events,
		registrations: registrations,
		checkIns:      checkIns,
		reviews:       reviews,
		certificates:  certificates,
		exports:       exports,
	}
}

type createEventRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	LocationAddress  string     `json:"location_address"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	MaxEnrollments   *int       `json:"max_enrollments"`
	RequiresApproval bool       `json:"requires_approval"`
	EventType        string     `json:"event_type"`
	Price            float64    `json:"price"`
	WorkloadHours    int        `json:"workload_hours"`
	AllowedCheckins  int        `json:"allowed_checkins"`
	Tags             []string   `json:"tags"`
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.StartDate.IsZero() {
		writeError(w, http.StatusBadRequest, "start_date is required")
		return
	}

	event, err := h.events.Create(r.Context(), CurrentUser(r.Context()), &entity.Event{
		Title:            req.Title,
		Description:      req.Description,
		LocationAddress:  req.LocationAddress,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		MaxEnrollments:   req.MaxEnrollments,
		RequiresApproval: req.RequiresApproval,
		EventType:        entity.EventType(req.EventType),
		Price:            req.Price,
		WorkloadHours:    req.WorkloadHours,
		AllowedCheckins:  req.AllowedCheckins,
		Tags:             pq.StringArray(req.Tags),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	events, err := h.events.GetWithPagination(r.Context(), limit, offset, "start_date asc")
	if err != nil {
		respondError(w, err)
		return
	}
	total, err := h.events.Count(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if events == nil {
		events = []entity.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  total,
	})
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actor *entity.User, eventID string) (*entity.Event, error)) {
	event, err := fn(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Publish handles POST /api/events/{id}/publish.
func (h *EventHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.events.Publish)
}

// Start handles POST /api/events/{id}/start.
func (h *EventHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.events.Start)
}

// Finish handles POST /api/events/{id}/finish.
func (h *EventHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.events.Finish)
}

// Cancel handles POST /api/events/{id}/cancel.
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.events.Cancel)
}

// ToggleInscriptions handles POST /api/events/{id}/inscriptions.
func (h *EventHandler) ToggleInscriptions(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.events.ToggleInscriptions)
}

// Register handles POST /api/events/{id}/register.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	registration, err := h.registrations.Register(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registration)
}

// ListRegistrations handles GET /api/events/{id}/registrations.
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	event, err := h.events.Get(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	if event.OrganizerID != CurrentUser(r.Context()).ID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	registrations, err := h.registrations.GetByEventID(r.Context(), eventID)
	if err != nil {
		respondError(w, err)
		return
	}
	if registrations == nil {
		registrations = []entity.Registration{}
	}
	writeJSON(w, http.StatusOK, registrations)
}

type checkInRequest struct {
	Token string `json:"token"`
}

// CheckIn handles POST /api/events/{id}/checkin. The organizer submits
// the token scanned from a participant's pass.
func (h *EventHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	checkIn, err := h.checkIns.CheckIn(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"), req.Token)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkIn)
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview handles POST /api/events/{id}/reviews.
func (h *EventHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	review, err := h.reviews.Create(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"), req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/events/{id}/reviews.
func (h *EventHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.GetByEventID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// IssueCertificate handles POST /api/events/{id}/certificate.
func (h *EventHandler) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	certificate, err := h.certificates.Issue(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, certificate)
}

// Export handles GET /api/events/{id}/export, returning the attendee
// spreadsheet.
func (h *EventHandler) Export(w http.ResponseWriter, r *http.Request) {
	buf, err := h.exports.RegistrationsXLSX(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

// Calendar handles GET /api/events/{id}/calendar.ics.
func (h *EventHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	ics, err := h.exports.EventICS(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="event.ics"`)
	_, _ = w.Write(ics)
}
