package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thalyssonDEV/EventSync/internal/domain/service"
)

// CertificateHandler exposes the public certificate validation lookup.
type CertificateHandler struct {
	certificates *service.CertificateService
}

func NewCertificateHandler(certificates *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificates: certificates}
}

// Validate handles GET /api/certificates/validate/{code}. It is
// unauthenticated: anyone holding a code may verify it.
func (h *CertificateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	summary, err := h.certificates.ValidateByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
