package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/gateway"
	"github.com/alumnet/reunion/internal/handler"
	"github.com/alumnet/reunion/internal/mailer"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/internal/router"
	"github.com/alumnet/reunion/internal/service"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/mbeoliero/kit/log"
)

func main() {
	ctx := context.TODO()

	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.CtxError(ctx, "failed to load config: %v", err)
		panic(err)
	}

	log.CtxInfo(ctx, "config loaded: mode=%s", cfg.Server.Mode)

	// Initialize Redis key prefix
	constant.InitRedisKeyPrefix(cfg.Redis.KeyPrefix)
	log.CtxInfo(ctx, "redis key prefix: %s", constant.GetRedisKeyPrefix())

	// Initialize repositories
	repos, err := repository.NewRepositories(cfg)
	if err != nil {
		log.CtxError(ctx, "failed to initialize repositories: %v", err)
		panic(err)
	}
	defer repos.Close()

	if err := repos.CheckConnection(ctx); err != nil {
		log.CtxError(ctx, "database connection check failed: %v", err)
		panic(err)
	}
	log.CtxInfo(ctx, "database connection established")

	if err := repos.Migrate(); err != nil {
		log.CtxError(ctx, "schema migration failed: %v", err)
		panic(err)
	}
	log.CtxInfo(ctx, "schema migrated")

	// Initialize services
	authService := service.NewAuthService(repos, cfg)
	profileService := service.NewProfileService(repos)
	presenceService := service.NewPresenceService(repos)
	convService := service.NewConversationService(repos)
	msgService := service.NewMessageService(repos)
	mediaService := service.NewMediaService(cfg)
	contentService := service.NewContentService(repos)
	submissionService := service.NewSubmissionService(repos)
	adminService := service.NewAdminService(repos)
	emailService := service.NewEmailService(cfg, mailer.NewResendProvider(cfg.Email.APIURL, cfg.Email.APIKey))

	// Initialize WebSocket server, wire it as the message pusher and
	// as the session kicker for logout-everywhere
	wsServer := gateway.NewWsServer(cfg, repos.Redis, msgService, convService, presenceService, authService)
	msgService.SetPusher(wsServer)
	authService.SetKicker(wsServer)

	wsServer.Run(ctx)
	log.CtxInfo(ctx, "websocket server started")

	// Optional standalone websocket listener when ws_port differs from
	// the main HTTP port; otherwise the hertz /ws route serves upgrades.
	if cfg.Server.WSPort != cfg.Server.HTTPPort {
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			wsServer.HandleConnection(r.Context(), w, r)
		})
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Server.WSPort)
			log.CtxInfo(ctx, "websocket listener on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.CtxError(ctx, "websocket listener error: %v", err)
			}
		}()
	}

	// Initialize handlers
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Profile:      handler.NewProfileHandler(profileService),
		Presence:     handler.NewPresenceHandler(presenceService),
		Conversation: handler.NewConversationHandler(convService),
		Message:      handler.NewMessageHandler(msgService),
		Media:        handler.NewMediaHandler(mediaService),
		Content:      handler.NewContentHandler(contentService, submissionService),
		Admin:        handler.NewAdminHandler(contentService, submissionService, adminService, emailService),
	}

	// Create Hertz server
	h := server.Default(
		server.WithHostPorts(fmt.Sprintf(":%d", cfg.Server.HTTPPort)),
	)

	router.SetupRouter(h, handlers, wsServer, authService)

	log.CtxInfo(ctx, "server starting on port %d", cfg.Server.HTTPPort)

	go func() {
		h.Spin()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.CtxInfo(ctx, "shutting down server...")

	if err := h.Shutdown(ctx); err != nil {
		log.CtxError(ctx, "server shutdown error: %v", err)
	}

	log.CtxInfo(ctx, "server stopped")
}
