package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
	"github.com/thalyssonDEV/EventSync/internal/domain/service"
)

// RegistrationHandler exposes the per-registration operations: the
// organizer's decisions, the participant's cancel and the check-in pass.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	checkIns      *service.CheckInService
}

func NewRegistrationHandler(registrations *service.RegistrationService, checkIns *service.CheckInService) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		checkIns:      checkIns,
	}
}

func (h *RegistrationHandler) update(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actor *entity.User, registrationID string) (*entity.Registration, error)) {
	registration, err := fn(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registration)
}

// ConfirmPayment handles POST /api/registrations/{id}/confirm-payment.
func (h *RegistrationHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.registrations.ConfirmPayment)
}

// Approve handles POST /api/registrations/{id}/approve.
func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.registrations.Approve)
}

// Reject handles POST /api/registrations/{id}/reject.
func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.registrations.Reject)
}

// Cancel handles POST /api/registrations/{id}/cancel.
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.registrations.Cancel)
}

// QR handles GET /api/registrations/{id}/qr, returning the participant's
// check-in pass as a PNG.
func (h *RegistrationHandler) QR(w http.ResponseWriter, r *http.Request) {
	_, png, err := h.checkIns.IssuePass(r.Context(), CurrentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
