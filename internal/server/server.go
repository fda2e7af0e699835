package server

import (
	"web-travelsite/internal/activity"
	"web-travelsite/internal/admin"
	"web-travelsite/internal/apiclient"
	"web-travelsite/internal/auth"
	"web-travelsite/internal/config"
	"web-travelsite/internal/db"
	"web-travelsite/internal/gallery"
	"web-travelsite/internal/provider"
	"web-travelsite/internal/public"
	"web-travelsite/internal/seo"
	"web-travelsite/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Stream    *stream.Hub
	Provider  *provider.Provider
	Galleries *gallery.Service
	Sessions  *auth.Service
	Activity  *activity.Service
}

// NewServer wires every component around one backend client. db and
// redisClient may be nil.
func NewServer(cfg config.Config, pg *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	api := apiclient.New(cfg.APIURL, cfg.RequestTimeout)
	hub := stream.NewHub(redisClient)

	var q db.Querier
	if pg != nil {
		q = pg
	}

	s := &Server{
		App:       app,
		Cfg:       cfg,
		DB:        pg,
		Redis:     redisClient,
		Stream:    hub,
		Provider:  provider.New(api),
		Galleries: gallery.NewService(api),
		Sessions:  auth.NewService(redisClient, api, cfg.SessionTTL, cfg.RememberTTL),
		Activity:  activity.NewService(q, hub),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiAuth := auth.Middleware(s.Sessions, auth.API)
	pageAuth := auth.Middleware(s.Sessions, auth.Page)

	adminGroup := s.App.Group("/admin")
	auth.RegisterRoutes(adminGroup, s.Sessions)
	admin.RegisterPages(adminGroup, s.Cfg.SiteName, pageAuth)
	stream.RegisterRoutes(adminGroup, s.Stream, apiAuth)

	apiGroup := s.App.Group("/admin/api")
	admin.RegisterRoutes(apiGroup, admin.Deps{
		Provider:         s.Provider,
		Galleries:        s.Galleries,
		Activity:         s.Activity,
		Sessions:         s.Sessions,
		DashboardTimeout: s.Cfg.DashboardTimeout,
	}, apiAuth)
	activity.RegisterRoutes(apiGroup, s.Activity, apiAuth)

	public.RegisterRoutes(s.App, public.Deps{
		Provider:  s.Provider,
		Galleries: s.Galleries,
		Site: seo.Site{
			Name:    s.Cfg.SiteName,
			BaseURL: s.Cfg.SiteURL,
			Phone:   s.Cfg.ContactPhone,
		},
		GAID:     s.Cfg.GAID,
		WhatsApp: s.Cfg.WhatsAppNumber,
	})
}
