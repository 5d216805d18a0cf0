package dto

import (
	"time"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

// CertificateSummary is the public payload returned by validation lookups.
type CertificateSummary struct {
	ValidationCode  string    `json:"validation_code"`
	ParticipantName string    `json:"participant_name"`
	EventTitle      string    `json:"event_title"`
	WorkloadHours   int       `json:"workload_hours"`
	IssuedAt        time.Time `json:"issued_at"`
}

func NewCertificateSummaryFromEntity(certificate *entity.Certificate) CertificateSummary {
	summary := CertificateSummary{
		ValidationCode:  certificate.Code(),
		ParticipantName: certificate.User.FullName(),
		EventTitle:      certificate.Event.Title,
		WorkloadHours:   certificate.Event.WorkloadHours,
	}
	if certificate.IssuedAt != nil {
		summary.IssuedAt = *certificate.IssuedAt
	}
	return summary
}
