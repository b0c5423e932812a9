package router

import (
	"context"
	"strings"

	"github.com/alumnet/reunion/internal/config"
	"github.com/alumnet/reunion/internal/gateway"
	"github.com/alumnet/reunion/internal/handler"
	"github.com/alumnet/reunion/internal/middleware"
	"github.com/alumnet/reunion/internal/service"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Presence     *handler.PresenceHandler
	Conversation *handler.ConversationHandler
	Message      *handler.MessageHandler
	Media        *handler.MediaHandler
	Content      *handler.ContentHandler
	Admin        *handler.AdminHandler
}

// SetupRouter sets up all routes
func SetupRouter(h *server.Hertz, handlers *Handlers, wsServer *gateway.WsServer, authService *service.AuthService) {
	cfg := config.GlobalConfig

	h.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Health check
	h.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
	})

	auth := middleware.JWTAuth(authService)

	// Auth routes
	authGroup := h.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/logout", auth, handlers.Auth.Logout)
		authGroup.POST("/logout_all", auth, handlers.Auth.LogoutAll)
	}

	// Profile routes (auth required)
	profileGroup := h.Group("/profile", auth)
	{
		profileGroup.GET("/me", handlers.Profile.GetMe)
		profileGroup.PUT("/me", handlers.Profile.UpdateMe)
		profileGroup.GET("/list", handlers.Profile.ListProfiles)
		profileGroup.GET("/:user_id", handlers.Profile.GetProfile)
	}

	// Presence routes (auth required)
	presenceGroup := h.Group("/presence", auth)
	{
		presenceGroup.POST("/heartbeat", handlers.Presence.Heartbeat)
		presenceGroup.POST("/offline", handlers.Presence.Offline)
		presenceGroup.POST("/batch", handlers.Presence.GetPresences)
		presenceGroup.GET("/:user_id", handlers.Presence.GetPresence)
	}

	// Conversation routes (auth required)
	convGroup := h.Group("/conversation", auth)
	{
		convGroup.POST("/direct", handlers.Conversation.CreateDirect)
		convGroup.POST("/group", handlers.Conversation.CreateGroup)
		convGroup.GET("/list", handlers.Conversation.ListConversations)
		convGroup.GET("/:conversation_id", handlers.Conversation.GetConversation)
		convGroup.POST("/:conversation_id/read", handlers.Conversation.MarkRead)
	}

	// Message routes (auth required)
	msgGroup := h.Group("/msg", auth)
	{
		msgGroup.POST("/send", handlers.Message.SendMessage)
		msgGroup.GET("/list", handlers.Message.ListMessages)
		msgGroup.GET("/unread_total", handlers.Message.UnreadTotal)
	}

	// Media upload (auth required)
	mediaGroup := h.Group("/media", auth)
	{
		mediaGroup.POST("/upload", handlers.Media.Upload)
	}

	// Public site content, no auth
	publicGroup := h.Group("/public")
	{
		publicGroup.GET("/teachers", handlers.Content.ListTeachers)
		publicGroup.GET("/students", handlers.Content.ListStudents)
		publicGroup.GET("/groups", handlers.Content.ListGroups)
		publicGroup.GET("/gallery", handlers.Content.ListGallery)
		publicGroup.GET("/videos", handlers.Content.ListVideos)
		publicGroup.POST("/videos/:video_id/view", handlers.Content.RecordVideoView)
		publicGroup.GET("/reviews", handlers.Content.ListReviews)
		publicGroup.POST("/reviews", handlers.Content.SubmitReview)
		publicGroup.GET("/reunion", handlers.Content.GetReunionInfo)
	}

	// Logged-in submissions
	submitGroup := h.Group("/submit", auth)
	{
		submitGroup.POST("/gallery", handlers.Content.SubmitGallery)
		submitGroup.POST("/video", handlers.Content.SubmitVideo)
	}

	// Teacher console: content management without moderation powers
	teacherGroup := h.Group("/manage", auth, middleware.RequireRole(constant.RoleTeacher))
	{
		teacherGroup.POST("/teachers", handlers.Admin.CreateTeacher)
		teacherGroup.PUT("/teachers/:id", handlers.Admin.UpdateTeacher)
		teacherGroup.POST("/students", handlers.Admin.CreateStudent)
		teacherGroup.PUT("/students/:id", handlers.Admin.UpdateStudent)
		teacherGroup.POST("/groups", handlers.Admin.CreateGroup)
		teacherGroup.PUT("/groups/:id", handlers.Admin.UpdateGroup)
	}

	// Admin console
	adminGroup := h.Group("/admin", auth, middleware.RequireRole(constant.RoleAdmin))
	{
		adminGroup.GET("/dashboard", handlers.Admin.Dashboard)

		adminGroup.DELETE("/teachers/:id", handlers.Admin.DeleteTeacher)
		adminGroup.DELETE("/students/:id", handlers.Admin.DeleteStudent)
		adminGroup.DELETE("/groups/:id", handlers.Admin.DeleteGroup)

		adminGroup.GET("/gallery", handlers.Admin.ListGallery)
		adminGroup.POST("/gallery/:id/moderate", handlers.Admin.ModerateGallery)
		adminGroup.DELETE("/gallery/:id", handlers.Admin.DeleteGallery)

		adminGroup.GET("/videos", handlers.Admin.ListVideos)
		adminGroup.POST("/videos/:id/moderate", handlers.Admin.ModerateVideo)
		adminGroup.DELETE("/videos/:id", handlers.Admin.DeleteVideo)

		adminGroup.GET("/reviews", handlers.Admin.ListReviews)
		adminGroup.POST("/reviews/:id/moderate", handlers.Admin.ModerateReview)
		adminGroup.DELETE("/reviews/:id", handlers.Admin.DeleteReview)

		adminGroup.PUT("/reunion", handlers.Admin.SaveReunionInfo)

		adminGroup.POST("/roles/grant", handlers.Admin.GrantRole)
		adminGroup.POST("/roles/revoke", handlers.Admin.RevokeRole)

		adminGroup.POST("/email/send", handlers.Admin.SendEmail)
	}

	// WebSocket route with origin validation
	allowedOrigins := cfg.Server.AllowedOrigins
	upgrader := &websocket.HertzUpgrader{
		CheckOrigin: func(ctx *app.RequestContext) bool {
			return checkOrigin(ctx, allowedOrigins)
		},
	}

	h.GET("/ws", func(ctx context.Context, c *app.RequestContext) {
		wsServer.HandleHertzConnection(ctx, c, upgrader)
	})
}

// checkOrigin validates the Origin header against allowed origins
func checkOrigin(ctx *app.RequestContext, allowedOrigins []string) bool {
	origin := string(ctx.Request.Header.Peek("Origin"))

	// No origin header means same-origin or a non-browser client
	if origin == "" {
		return true
	}

	if len(allowedOrigins) == 0 {
		return false
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			return true
		}
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}

	return false
}
