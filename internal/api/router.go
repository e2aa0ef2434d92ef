package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncissues/civic-api/internal/api/handler"
	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/access"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
	"github.com/ncissues/civic-api/internal/core/service"
	mongodb "github.com/ncissues/civic-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ncissues/civic-api/internal/infrastructure/db/redis"
)

// RouterConfig carries everything the router needs beyond the two stores.
type RouterConfig struct {
	JWTSecret    string
	CookieSecure bool
	Activity     ports.ActivityRecorder
	Log          zerolog.Logger
}

// Services groups the constructed use-case layer so main can reuse pieces
// (the issue service runs the periodic view flush).
type Services struct {
	Issues *service.IssueService
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, mongoClient *mongo.Client, cfg RouterConfig) (*echo.Echo, *Services) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ncissues"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Repositories ---
	memberRepo := mongodb.NewMemberRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	publicRepo := mongodb.NewPublicUserRepository(db)
	billRepo := mongodb.NewBillRepository(db)
	trackedRepo := mongodb.NewTrackedBillRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	issueRepo := mongodb.NewIssueRepository(db)
	calendarRepo := mongodb.NewCalendarRepository(db)
	directoryRepo := mongodb.NewDirectoryRepository(db)
	contactRepo := mongodb.NewContactRepository(db)

	cardCache := redisdb.NewCardCache(rdb)
	viewCounter := redisdb.NewViewCounter(rdb)

	// --- Services ---
	authService := service.NewAuthService(memberRepo, adminRepo, publicRepo, cfg.JWTSecret, cfg.Log)
	memberService := service.NewMemberService(memberRepo, cfg.Log)
	billService := service.NewBillService(billRepo, cfg.Activity, cfg.Log)
	trackedService := service.NewTrackedBillService(trackedRepo, billRepo, cfg.Activity, cfg.Log)
	commentService := service.NewCommentService(commentRepo, billRepo, issueRepo, memberRepo, cfg.Activity, cfg.Log)
	issueService := service.NewIssueService(issueRepo, viewCounter, cfg.Log)
	calendarService := service.NewCalendarService(calendarRepo, directoryRepo, cfg.Log)
	directoryService := service.NewDirectoryService(directoryRepo)
	contactService := service.NewContactService(contactRepo, directoryRepo, cfg.Log)
	shareService := service.NewShareService(cardCache, cfg.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure, cfg.Log)
	memberHandler := handler.NewMemberHandler(memberService, cfg.Log)
	billHandler := handler.NewBillHandler(billService, commentService, trackedService, cfg.Log)
	trackedHandler := handler.NewTrackedBillHandler(trackedService, cfg.Log)
	issueHandler := handler.NewIssueHandler(issueService, commentService, cfg.Log)
	adminHandler := handler.NewAdminHandler(billService, memberService, cfg.Log)
	calendarHandler := handler.NewCalendarHandler(calendarService, cfg.Log)
	directoryHandler := handler.NewDirectoryHandler(directoryService, contactService, cfg.Log)
	shareHandler := handler.NewShareHandler(shareService, cfg.Log)
	healthHandler := handler.NewHealthHandler(mongoClient, rdb)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)
	requireMember := middleware.RequireType(domain.UserTypeMember)
	requireAdmin := middleware.RequireAdmin(domain.RoleAdmin, domain.RoleSuperAdmin)
	requireComment := middleware.RequireFeature(access.CommentOnIssues, memberRepo)
	requireTrack := middleware.RequireFeature(access.TrackBills, memberRepo)
	requireSubmit := middleware.RequireFeature(access.SubmitIssues, memberRepo)

	// --- Auth ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/login", authHandler.LoginMember)
	// Voter-record login shares the handler; it accepts voter_reg_num or
	// ncid in place of email.
	authGroup.POST("/member/login", authHandler.LoginMember)
	authGroup.POST("/admin/login", authHandler.LoginAdmin)
	authGroup.POST("/register-public", authHandler.RegisterPublic)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, auth)

	// --- Members ---
	e.GET("/api/members", memberHandler.Lookup)
	e.POST("/api/members", memberHandler.Claim)

	// --- Bills ---
	e.GET("/api/bills", billHandler.List)
	e.GET("/api/bills/:id", billHandler.Get, optionalAuth)
	e.GET("/api/bills/:id/comments", billHandler.ListComments)
	e.POST("/api/bills/:id/comments", billHandler.PostComment, auth, requireComment)

	// --- Tracked bills ---
	e.GET("/api/tracked-bills", trackedHandler.List, auth, requireTrack)
	e.POST("/api/tracked-bills", trackedHandler.Track, auth, requireTrack)
	e.DELETE("/api/tracked-bills", trackedHandler.Untrack, auth, requireTrack)

	// --- Issues ---
	e.GET("/api/issues", issueHandler.List)
	e.POST("/api/issues", issueHandler.Create, auth, requireSubmit)
	e.GET("/api/issues/tags", issueHandler.ListTags)
	e.GET("/api/issues/:slug", issueHandler.Get)
	e.GET("/api/issues/:slug/comments", issueHandler.ListComments)
	e.POST("/api/issues/:slug/comments", issueHandler.PostComment, auth, requireComment)

	// --- Calendar ---
	e.GET("/api/calendar", calendarHandler.ListEvents)
	e.POST("/api/calendar", calendarHandler.CreateEvent, auth, requireAdmin)
	e.GET("/api/calendar/subscribe", calendarHandler.ListSubscriptions, auth, requireMember)
	e.POST("/api/calendar/subscribe", calendarHandler.Subscribe, auth, requireMember)
	e.DELETE("/api/calendar/subscribe", calendarHandler.Unsubscribe, auth, requireMember)

	// --- Directory ---
	e.GET("/api/committees", directoryHandler.ListCommittees)
	e.GET("/api/officials", directoryHandler.ListOfficials)
	e.GET("/api/legislators", directoryHandler.ListLegislators)
	e.POST("/api/contact", directoryHandler.Contact, auth)

	// --- Share cards ---
	e.GET("/api/og/issue", shareHandler.IssueCard)
	e.GET("/api/og/comment", shareHandler.CommentCard)
	e.POST("/api/share/comment", shareHandler.ShareComment)

	// --- Admin ---
	adminGroup := e.Group("/api/admin", auth, requireAdmin)
	adminGroup.GET("/bills", adminHandler.ListBills)
	adminGroup.POST("/bills", adminHandler.CreateBill)
	adminGroup.PUT("/bills/:id", adminHandler.UpdateBill)
	adminGroup.DELETE("/bills", adminHandler.DeleteBill)
	adminGroup.GET("/members", adminHandler.ListMembers)
	adminGroup.GET("/stats", adminHandler.Stats)

	// --- Ops ---
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, &Services{Issues: issueService}
}
