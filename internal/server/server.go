package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/awsclient"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/config"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/handler"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/notifier"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/repository"
	"github.com/Yatharthnagpal/BoutiqueHotelBookingandManagementSystem/internal/service"
)

type Server struct {
	httpServer *http.Server
	dispatcher *notifier.Dispatcher
	cfg        *config.Config
	log        *zap.Logger
}

// New wires the AWS-backed stores and senders into the HTTP server.
func New(cfg *config.Config, clients *awsclient.Clients, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	bookingRepo := repository.NewBookingRepository(clients.DynamoDB, &cfg.DynamoDB, log)
	s3Repo := repository.NewS3Repository(manager.NewUploader(clients.S3), &cfg.S3, log)

	email := notifier.NewSESEmailSender(clients.SES, &cfg.Notify, log)
	sms := notifier.NewSNSSMSSender(clients.SNS, log)
	dispatcher := notifier.NewDispatcher(cfg.Notify.Timeout, log)

	bookingService := service.NewBookingService(bookingRepo, email, sms, dispatcher, log)
	imageService := service.NewImageService(s3Repo, &cfg.S3, log)

	return newServer(cfg, handler.NewHandler(bookingService, imageService, log), dispatcher, log)
}

func newServer(cfg *config.Config, h *handler.Handler, dispatcher *notifier.Dispatcher, log *zap.Logger) *Server {
	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        NewRouter(cfg, h, log),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server
}

func NewRouter(cfg *config.Config, h *handler.Handler, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.App.MaxMultipartMemory
	router.Use(gin.Recovery(), RequestID(), AccessLog(log), CORS(cfg.Server.CORSAllowOrigins))

	router.GET("/health", h.HealthCheck)
	router.POST("/book-room", h.BookRoom)
	router.POST("/upload-room-image", h.UploadRoomImage)

	router.StaticFile("/", filepath.Join(cfg.App.StaticDir, "index.html"))

	return router
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then waits for in-flight notifications.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	if err := s.dispatcher.Wait(ctx); err != nil {
		s.log.Warn("Pending notifications abandoned", zap.Error(err))
		return err
	}
	return nil
}
