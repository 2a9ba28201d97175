//	@title			Filedrop API
//	@version		1.0
//	@description	Browser file uploads into S3-compatible object storage, with a newest-first listing and per-student filtering.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/filedrop/service/internal/config"
	"github.com/filedrop/service/internal/files"
	appMiddleware "github.com/filedrop/service/internal/middleware"
	"github.com/filedrop/service/internal/storage"
	"github.com/filedrop/service/internal/webui"

	_ "github.com/filedrop/service/docs/swagger"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load(log)

	// Missing or broken credentials do not stop the server: the storage
	// endpoints answer with a configuration error instead.
	var store storage.Store
	if cfg.HasCredentials() {
		minioStore, err := storage.NewMinioStore(
			cfg.Credentials.Endpoint,
			cfg.Credentials.AccessKey,
			cfg.Credentials.SecretKey,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.Credentials.UseSSL,
			log,
		)
		if err != nil {
			log.WithError(err).Fatal("object storage init failed")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := minioStore.EnsureBucket(ctx); err != nil {
			log.WithError(err).Warn("bucket preparation failed, continuing; requests will surface backend errors")
		}
		cancel()

		store = minioStore
	} else {
		log.WithError(cfg.CredentialsErr).Error("storage credentials not resolved")
	}

	// Wire dependencies: storage → service → handlers
	svc := files.NewService(store)
	fileHandler := files.NewHandler(svc, cfg, log)

	pages, err := webui.NewHandler(log)
	if err != nil {
		log.WithError(err).Fatal("template parsing failed")
	}

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// JSON API
	r.Get("/files-listing", fileHandler.Listing)
	r.Post("/upload", fileHandler.Upload)
	r.Get("/upload", fileHandler.Readiness)
	r.Get("/test-env", fileHandler.TestEnv)

	// Pages
	r.Get("/upload-page", pages.UploadPage)
	r.Get("/student/{id}", pages.StudentPage)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-quit
	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}

	log.Info("server stopped")
}
