package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biblo/backend/config"
	"github.com/biblo/backend/handlers"
	"github.com/biblo/backend/logger"
	"github.com/biblo/backend/middleware"
	"github.com/biblo/backend/service"
	"github.com/biblo/backend/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		zl.Fatal("mongodb", zap.Error(err))
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			zl.Warn("mongodb disconnect", zap.Error(err))
		}
	}()
	zl.Info("connected to mongodb", zap.String("database", cfg.DBName))

	var s3Service *service.S3Service
	if cfg.S3Bucket != "" {
		s3Service, err = service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			zl.Fatal("s3", zap.Error(err))
		}
	} else {
		zl.Warn("AWS_S3_BUCKET not set; image uploads disabled")
	}

	authHandler := &handlers.AuthHandler{Store: db, JWTSecret: cfg.JWTSecret, Log: zl}
	usersHandler := &handlers.UsersHandler{Store: db, JWTSecret: cfg.JWTSecret, Log: zl}
	genresHandler := &handlers.GenresHandler{Store: db, Log: zl}
	authorsHandler := &handlers.AuthorsHandler{Store: db, Log: zl}
	publishersHandler := &handlers.PublishersHandler{Store: db, Log: zl}
	booksHandler := &handlers.BooksHandler{Store: db, Log: zl}
	uploadHandler := &handlers.UploadHandler{
		S3:       s3Service,
		MaxBytes: cfg.MaxUploadMB * 1024 * 1024,
		Log:      zl,
	}

	auth := middleware.Auth(cfg.JWTSecret)
	idParam := middleware.RequireObjectID("id")

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.Recoverer(zl))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", usersHandler.Register)
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/me", usersHandler.Me)
				r.Put("/me", usersHandler.UpdateMe)
				r.Delete("/me", usersHandler.DeleteMe)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.Admin)
				r.Get("/", usersHandler.List)
				r.With(idParam).Get("/{id}", usersHandler.Get)
				r.With(idParam).Put("/{id}", usersHandler.Update)
				r.With(idParam).Delete("/{id}", usersHandler.Delete)
			})
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genresHandler.List)
			r.With(idParam).Get("/{id}", genresHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.Admin)
				r.Post("/", genresHandler.Create)
				r.With(idParam).Put("/{id}", genresHandler.Update)
				r.With(idParam).Delete("/{id}", genresHandler.Delete)
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", authorsHandler.List)
			r.With(idParam).Get("/{id}", authorsHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.Admin)
				r.Post("/", authorsHandler.Create)
				r.With(idParam).Put("/{id}", authorsHandler.Update)
				r.With(idParam).Delete("/{id}", authorsHandler.Delete)
			})
		})

		r.Route("/publishers", func(r chi.Router) {
			r.Get("/", publishersHandler.List)
			r.With(idParam).Get("/{id}", publishersHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.Admin)
				r.Post("/", publishersHandler.Create)
				r.With(idParam).Put("/{id}", publishersHandler.Update)
				r.With(idParam).Delete("/{id}", publishersHandler.Delete)
			})
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", booksHandler.List)
			r.With(idParam).Get("/{id}", booksHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(auth, middleware.Admin)
				r.Post("/", booksHandler.Create)
				r.With(idParam).Put("/{id}", booksHandler.Update)
				r.With(idParam).Delete("/{id}", booksHandler.Delete)
			})
		})

		r.With(auth, middleware.Admin).Post("/upload", uploadHandler.Upload)
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zl.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("shutdown", zap.Error(err))
	}
}
