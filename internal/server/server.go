package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	r := gin.Default()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	mailer := service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	authService := service.NewAuthService(userRepo)
	boardService := service.NewBoardService(boardRepo, columnRepo, taskRepo, userRepo, notificationRepo, mailer)
	notificationService := service.NewNotificationService(notificationRepo)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiryHours)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, tokens)
	boardHandler := handler.NewBoardHandler(boardService)
	columnHandler := handler.NewColumnHandler(boardService)
	taskHandler := handler.NewTaskHandler(boardService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Auth routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// Board routes
	r.GET("/boards", boardHandler.List)
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:id", boardHandler.GetByID)
	r.PUT("/boards/:id", boardHandler.Update)
	r.DELETE("/boards/:id", boardHandler.Delete)
	r.POST("/boards/:id/members", boardHandler.AddMember)
	r.DELETE("/boards/:id/members", boardHandler.RemoveMember)

	// Column routes
	r.POST("/columns", columnHandler.Create)
	r.PUT("/columns/:id", columnHandler.Update)
	r.DELETE("/columns/:id", columnHandler.Delete)

	// Task routes
	r.POST("/tasks", taskHandler.Create)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.PUT("/tasks/:id/move", taskHandler.Move)

	// Notification routes
	r.GET("/notifications", notificationHandler.List)
	r.PUT("/notifications/mark-all-read", notificationHandler.MarkAllRead)
	r.PUT("/notifications/:id", notificationHandler.Update)
	r.DELETE("/notifications/:id", notificationHandler.Delete)

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s", err)
	}

	log.Println("Server exited properly")
}
