// Package app wires repositories, services and handlers over a set of backing stores.
package app

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/handler"
	"github.com/noah-isme/exam-portal/internal/identity"
	"github.com/noah-isme/exam-portal/internal/repository"
	"github.com/noah-isme/exam-portal/internal/router"
	"github.com/noah-isme/exam-portal/internal/service"
	"github.com/noah-isme/exam-portal/internal/session"
	"github.com/noah-isme/exam-portal/internal/web"
	"github.com/noah-isme/exam-portal/pkg/docstore"
	"github.com/noah-isme/exam-portal/pkg/storage"
)

// Infra holds the backing stores chosen at startup.
type Infra struct {
	Docs       docstore.Store
	Sessions   session.Store
	Identities identity.Provider
	Blobs      *storage.LocalBlobStore
	Renderer   service.HallTicketRenderer
	Metrics    *service.MetricsService
	Logger     *zap.Logger
	Readiness  map[string]handler.ReadinessCheck
}

// Settings carries the non-store configuration.
type Settings struct {
	SessionSecret   string
	SessionTTL      time.Duration
	CookieName      string
	CookieSecure    bool
	AllowedOrigins  []string
	Location        *time.Location
	MaxEvidenceSize int64
	EnableDocs      bool
}

// Services exposes the domain services for callers that need them directly.
type Services struct {
	Auth        *service.AuthService
	Exams       *service.ExamService
	Classrooms  *service.ClassroomService
	Attendance  *service.AttendanceService
	HallTickets *service.HallTicketService
	Malpractice *service.MalpracticeService
	Evaluation  *service.EvaluationService
	Invigilator *service.InvigilatorService
	Dashboard   *service.DashboardService
}

// App is the assembled portal.
type App struct {
	Services Services
	Engine   *gin.Engine
}

// New builds every layer on top of infra.
func New(infra Infra, settings Settings) (*App, error) {
	log := infra.Logger
	if log == nil {
		log = zap.NewNop()
	}
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}
	validate := validator.New()

	users := repository.NewUserRepository(infra.Docs)
	students := repository.NewStudentRepository(infra.Docs)
	exams := repository.NewExamRepository(infra.Docs)
	classrooms := repository.NewClassroomRepository(infra.Docs)
	tickets := repository.NewHallTicketRepository(infra.Docs)
	attendance := repository.NewAttendanceRepository(infra.Docs)
	reports := repository.NewMalpracticeRepository(infra.Docs)
	evaluation := repository.NewEvaluationRepository(infra.Docs)
	invigilators := repository.NewInvigilatorRepository(infra.Docs)

	svc := Services{}
	svc.Auth = service.NewAuthService(infra.Identities, users, students, infra.Sessions, validate, log.Named("auth"), service.AuthConfig{
		Secret: settings.SessionSecret,
	})
	svc.Exams = service.NewExamService(exams, validate, log.Named("exam"))
	svc.Attendance = service.NewAttendanceService(attendance, infra.Metrics, validate, log.Named("attendance"), loc)
	svc.Classrooms = service.NewClassroomService(classrooms, svc.Attendance, validate, log.Named("classroom"), loc)
	svc.HallTickets = service.NewHallTicketService(service.HallTicketServiceParams{
		Tickets:    tickets,
		Exams:      exams,
		Classrooms: classrooms,
		Students:   students,
		Renderer:   infra.Renderer,
		Metrics:    infra.Metrics,
		Validator:  validate,
		Logger:     log.Named("hall_ticket"),
	})
	svc.Malpractice = service.NewMalpracticeService(reports, infra.Blobs, infra.Metrics, validate, log.Named("malpractice"), settings.MaxEvidenceSize)
	svc.Evaluation = service.NewEvaluationService(evaluation)
	svc.Invigilator = service.NewInvigilatorService(invigilators, users, classrooms, log.Named("invigilator"))
	svc.Dashboard = service.NewDashboardService(service.DashboardServiceParams{
		Students:     students,
		Exams:        svc.Exams,
		HallTickets:  svc.HallTickets,
		Malpractice:  svc.Malpractice,
		Classrooms:   svc.Classrooms,
		Invigilators: svc.Invigilator,
		Evaluation:   svc.Evaluation,
		Logger:       log.Named("dashboard"),
	})

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(svc.Auth, log),
		Student: handler.NewStudentHandler(svc.Dashboard, svc.HallTickets),
		ExamHead: handler.NewExamHeadHandler(handler.ExamHeadDeps{
			Dashboard:    svc.Dashboard,
			Exams:        svc.Exams,
			Classrooms:   svc.Classrooms,
			HallTickets:  svc.HallTickets,
			Invigilators: svc.Invigilator,
			Malpractice:  svc.Malpractice,
		}),
		Invigilator: handler.NewInvigilatorHandler(svc.Dashboard, svc.Attendance, svc.Malpractice),
		Valuator:    handler.NewValuatorHandler(svc.Dashboard),
		Files:       handler.NewFileHandler(infra.Blobs, log),
		Metrics:     handler.NewMetricsHandler(infra.Metrics, infra.Readiness),
	}

	engine := router.New(router.Options{
		Logger:         log,
		Templates:      tmpl,
		SessionStore:   cookieStore(settings),
		CookieName:     settings.CookieName,
		AllowedOrigins: settings.AllowedOrigins,
		Resolver:       svc.Auth,
		Observer:       infra.Metrics,
		EnableDocs:     settings.EnableDocs,
	}, handlers)

	return &App{Services: svc, Engine: engine}, nil
}

func cookieStore(settings Settings) cookie.Store {
	store := cookie.NewStore([]byte(settings.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(settings.SessionTTL.Seconds()),
		Secure:   settings.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
