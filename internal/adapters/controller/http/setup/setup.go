// Package setup wires storages, services and handlers into the HTTP
// router.
package setup

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/viper"

	"github.com/thalyssonDEV/EventSync/cmd/api"
	"github.com/thalyssonDEV/EventSync/internal/adapters/controller/http/handlers"
	"github.com/thalyssonDEV/EventSync/internal/adapters/database/postgres"
	"github.com/thalyssonDEV/EventSync/internal/domain/service"
	certrender "github.com/thalyssonDEV/EventSync/pkg/certificate"
	qr "github.com/thalyssonDEV/EventSync/pkg/qrcode"
	"github.com/thalyssonDEV/EventSync/pkg/smtp"
)

// Setup builds the full dependency graph and returns the router.
func Setup(app *api.App) http.Handler {
	userStorage := postgres.NewUserStorage(app.DB)
	eventStorage := postgres.NewEventStorage(app.DB)
	registrationStorage := postgres.NewRegistrationStorage(app.DB)
	checkInStorage := postgres.NewCheckInStorage(app.DB)
	reviewStorage := postgres.NewReviewStorage(app.DB)
	certificateStorage := postgres.NewCertificateStorage(app.DB)
	notificationStorage := postgres.NewNotificationStorage(app.DB)

	var smtpClient *smtp.Client
	if app.SMTPDialer != nil {
		smtpClient = smtp.NewClient(
			app.SMTPDialer,
			app.Logger,
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.domain"),
		)
	}

	notifyService := newNotifyService(app, notificationStorage, userStorage, smtpClient)
	scoringService := service.NewScoringService(app.Logger, userStorage)
	eventService := service.NewEventService(app.Logger, eventStorage, scoringService)
	registrationService := service.NewRegistrationService(app.Logger, registrationStorage, notifyService)
	checkInService := service.NewCheckInService(
		app.Logger,
		checkInStorage,
		registrationStorage,
		app.Redis.Tokens,
		qr.CheckInPass,
		viper.GetDuration("settings.checkin-token-ttl"),
	)
	reviewService := service.NewReviewService(
		app.Logger,
		reviewStorage,
		eventStorage,
		registrationStorage,
		scoringService,
		notifyService,
	)
	renderer := certrender.NewRenderer(
		viper.GetString("settings.certificates-dir"),
		viper.GetString("service.api.validation-base-url"),
		viper.GetString("settings.certificate-font"),
		viper.GetString("settings.certificate-logo"),
	)
	certificateService := service.NewCertificateService(
		app.Logger,
		certificateStorage,
		eventStorage,
		registrationStorage,
		renderer,
	)
	exportService := service.NewExportService(app.Logger, eventStorage, registrationStorage)

	eventHandler := handlers.NewEventHandler(
		eventService,
		registrationService,
		checkInService,
		reviewService,
		certificateService,
		exportService,
	)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, checkInService)
	certificateHandler := handlers.NewCertificateHandler(certificateService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)

	auth := handlers.NewAuth(app.Logger, viper.GetString("service.api.jwt-secret"), userStorage)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Get("/certificates/validate/{code}", certificateHandler.Validate)
		r.Get("/events/{id}/calendar.ics", eventHandler.Calendar)

		// Everything else requires a caller.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.Create)
				r.Get("/", eventHandler.List)
				r.Get("/{id}", eventHandler.Get)
				r.Post("/{id}/publish", eventHandler.Publish)
				r.Post("/{id}/start", eventHandler.Start)
				r.Post("/{id}/finish", eventHandler.Finish)
				r.Post("/{id}/cancel", eventHandler.Cancel)
				r.Post("/{id}/inscriptions", eventHandler.ToggleInscriptions)
				r.Post("/{id}/register", eventHandler.Register)
				r.Get("/{id}/registrations", eventHandler.ListRegistrations)
				r.Post("/{id}/checkin", eventHandler.CheckIn)
				r.Post("/{id}/reviews", eventHandler.CreateReview)
				r.Get("/{id}/reviews", eventHandler.ListReviews)
				r.Post("/{id}/certificate", eventHandler.IssueCertificate)
				r.Get("/{id}/export", eventHandler.Export)
			})

			r.Route("/registrations", func(r chi.Router) {
				r.Post("/{id}/confirm-payment", registrationHandler.ConfirmPayment)
				r.Post("/{id}/approve", registrationHandler.Approve)
				r.Post("/{id}/reject", registrationHandler.Reject)
				r.Post("/{id}/cancel", registrationHandler.Cancel)
				r.Get("/{id}/qr", registrationHandler.QR)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/read", notificationHandler.MarkRead)
			})
		})
	})

	return r
}

func newNotifyService(app *api.App, notifications *postgres.NotificationStorage, users *postgres.UserStorage, smtpClient *smtp.Client) *service.NotifyService {
	if smtpClient == nil {
		return service.NewNotifyService(app.Logger, notifications, users, nil)
	}
	return service.NewNotifyService(app.Logger, notifications, users, smtpClient)
}
