package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/noah-isme/exam-portal/api/swagger"
	"github.com/noah-isme/exam-portal/internal/app"
	"github.com/noah-isme/exam-portal/internal/handler"
	"github.com/noah-isme/exam-portal/internal/identity"
	"github.com/noah-isme/exam-portal/internal/service"
	"github.com/noah-isme/exam-portal/internal/session"
	"github.com/noah-isme/exam-portal/pkg/config"
	"github.com/noah-isme/exam-portal/pkg/database"
	"github.com/noah-isme/exam-portal/pkg/docstore"
	"github.com/noah-isme/exam-portal/pkg/export"
	"github.com/noah-isme/exam-portal/pkg/logger"
	"github.com/noah-isme/exam-portal/pkg/storage"
)

// @title Exam Portal API
// @version 1.0.0
// @description Exam administration portal: exams, classrooms, hall tickets, attendance and malpractice reporting
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	metrics := service.NewMetricsService()
	readiness := map[string]handler.ReadinessCheck{}

	docs, closeDocs, err := openDocstore(ctx, cfg, metrics, readiness)
	if err != nil {
		logr.Fatal("failed to open document store", zap.String("driver", cfg.Docstore.Driver), zap.Error(err))
	}
	defer closeDocs()

	sessions, closeSessions, err := openSessions(cfg, readiness)
	if err != nil {
		logr.Fatal("failed to open session store", zap.String("driver", cfg.Session.Driver), zap.Error(err))
	}
	defer closeSessions()

	blobs, err := storage.NewLocalBlobStore(cfg.Blob.StorageDir, "/files/", storage.NewSignedURLSigner(cfg.Blob.SignedURLSecret, cfg.Blob.SignedURLTTL))
	if err != nil {
		logr.Fatal("failed to prepare blob storage", zap.Error(err))
	}

	portal, err := app.New(app.Infra{
		Docs:       docs,
		Sessions:   sessions,
		Identities: identity.NewLocalProvider(docs, bcrypt.DefaultCost),
		Blobs:      blobs,
		Renderer:   export.NewHallTicketPDF(cfg.HallTicket.EmbedQR),
		Metrics:    metrics,
		Logger:     logr,
		Readiness:  readiness,
	}, app.Settings{
		SessionSecret:   cfg.Session.Secret,
		SessionTTL:      cfg.Session.TTL,
		CookieName:      cfg.Session.CookieName,
		CookieSecure:    cfg.Session.CookieSecure,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		Location:        cfg.Location(),
		MaxEvidenceSize: cfg.Blob.MaxFileSizeBytes,
		EnableDocs:      cfg.Env != config.EnvProduction,
	})
	if err != nil {
		logr.Fatal("failed to assemble portal", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           portal.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env,
			"docstore", cfg.Docstore.Driver, "sessions", cfg.Session.Driver)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	case sig := <-shutdown:
		logr.Info("shutdown requested", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logr.Error("graceful shutdown failed", zap.Error(err))
			_ = server.Close()
		}
	}
}

func openDocstore(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, readiness map[string]handler.ReadinessCheck) (docstore.Store, func(), error) {
	switch cfg.Docstore.Driver {
	case config.DocstorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := docstore.NewPostgres(db, metrics)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		readiness["postgres"] = db.PingContext
		return store, func() { _ = db.Close() }, nil
	case config.DocstoreFirestore:
		store, err := docstore.NewFirestore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return docstore.NewMemory(), func() {}, nil
	}
}

func openSessions(cfg *config.Config, readiness map[string]handler.ReadinessCheck) (session.Store, func(), error) {
	if cfg.Session.Driver != config.SessionRedis {
		return session.NewMemoryStore(cfg.Session.TTL), func() {}, nil
	}
	client, err := session.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return session.NewRedisStore(client, cfg.Session.TTL), func() { _ = client.Close() }, nil
}
