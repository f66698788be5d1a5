// Package router assembles the gin engine: global middleware, sessions and the route table.
package router

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/handler"
	"github.com/noah-isme/exam-portal/internal/middleware"
	"github.com/noah-isme/exam-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-portal/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Student     *handler.StudentHandler
	ExamHead    *handler.ExamHeadHandler
	Invigilator *handler.InvigilatorHandler
	Valuator    *handler.ValuatorHandler
	Files       *handler.FileHandler
	Metrics     *handler.MetricsHandler
}

// Options configures the engine.
type Options struct {
	Logger         *zap.Logger
	Templates      *template.Template
	SessionStore   sessions.Store
	CookieName     string
	AllowedOrigins []string
	Resolver       middleware.SessionResolver
	Observer       middleware.RequestObserver
	EnableDocs     bool
}

// New builds the engine with the full route table.
func New(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.Observer != nil {
		r.Use(middleware.Metrics(opts.Observer))
	}
	if opts.Templates != nil {
		r.SetHTMLTemplate(opts.Templates)
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	r.GET("/files/:token", h.Files.Download)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	web := r.Group("/")
	web.Use(sessions.Sessions(opts.CookieName, opts.SessionStore))
	web.Use(middleware.Authenticate(opts.Resolver, log))

	web.GET("", h.Auth.Index)
	web.GET("login", h.Auth.LoginPage)
	web.POST("login", h.Auth.Login)
	web.GET("register", h.Auth.RegisterPage)
	web.POST("register", h.Auth.Register)
	web.GET("logout", middleware.RequireSession(), h.Auth.Logout)
	web.GET("dashboard", middleware.RequireSession(), h.Auth.Dashboard)

	student := web.Group("/student")
	student.GET("/dashboard", middleware.Authorize(authz.OpStudentDashboard), h.Student.Dashboard)
	student.GET("/hall-ticket/:examId", middleware.Authorize(authz.OpDownloadHallTicket), h.Student.DownloadHallTicket)

	examHead := web.Group("/exam-head")
	examHead.GET("/dashboard", middleware.Authorize(authz.OpExamHeadDashboard), h.ExamHead.Dashboard)
	examHead.GET("/create-exam", middleware.Authorize(authz.OpCreateExam), h.ExamHead.CreateExamPage)
	examHead.POST("/create-exam", middleware.Authorize(authz.OpCreateExam), h.ExamHead.CreateExam)
	examHead.POST("/exams/:id/status", middleware.Authorize(authz.OpUpdateExamStatus), h.ExamHead.UpdateExamStatus)
	examHead.GET("/classroom-builder", middleware.Authorize(authz.OpClassroomBuilder), h.ExamHead.ClassroomBuilder)
	examHead.POST("/classrooms", middleware.Authorize(authz.OpManageClassroom), h.ExamHead.CreateClassroom)
	examHead.PUT("/classrooms/:id", middleware.Authorize(authz.OpManageClassroom), h.ExamHead.UpdateClassroom)
	examHead.GET("/live-monitoring", middleware.Authorize(authz.OpLiveMonitoring), h.ExamHead.LiveMonitoring)
	examHead.POST("/hall-tickets", middleware.Authorize(authz.OpIssueHallTicket), h.ExamHead.IssueHallTicket)
	examHead.PUT("/invigilators/:id/assignment", middleware.Authorize(authz.OpAssignInvigilator), h.ExamHead.AssignInvigilator)
	examHead.POST("/malpractice/:id/resolve", middleware.Authorize(authz.OpResolveMalpractice), h.ExamHead.ResolveMalpractice)
	examHead.GET("/malpractice/:id/evidence", middleware.Authorize(authz.OpViewEvidence), h.ExamHead.MalpracticeEvidence)

	invigilator := web.Group("/invigilator")
	invigilator.GET("/dashboard", middleware.Authorize(authz.OpInvigilatorDashboard), h.Invigilator.Dashboard)
	invigilator.POST("/mark-attendance", middleware.Authorize(authz.OpMarkAttendance), h.Invigilator.MarkAttendance)
	invigilator.POST("/report-malpractice", middleware.Authorize(authz.OpReportMalpractice), h.Invigilator.ReportMalpractice)

	valuator := web.Group("/valuator")
	valuator.GET("/dashboard", middleware.Authorize(authz.OpValuatorDashboard), h.Valuator.Dashboard)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	return r
}
