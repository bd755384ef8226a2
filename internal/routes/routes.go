package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/grade-request-portal/internal/handler"
	"github.com/noah-isme/grade-request-portal/internal/middleware"
	"github.com/noah-isme/grade-request-portal/internal/service"
	"github.com/noah-isme/grade-request-portal/pkg/config"
	"github.com/noah-isme/grade-request-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/grade-request-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/grade-request-portal/pkg/middleware/requestid"
	"github.com/noah-isme/grade-request-portal/pkg/session"
)

const metricsPath = "/metrics"

type sessionAuthenticator interface {
	Authenticate(token string) (*session.Payload, error)
}

// Options carries everything the router needs.
type Options struct {
	Env            string
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	AllowedOrigins []string
	CookieName     string

	Sessions sessionAuthenticator
	Auth     *handler.AuthHandler
	Requests *handler.RequestHandler
	Health   *handler.HealthHandler
}

// New builds the HTTP engine. Metrics is nil when metrics are disabled, which
// also removes the /metrics route.
func New(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = session.CookieName
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics, metricsPath))
	r.SetHTMLTemplate(handler.Templates())

	public := r.Group("/")
	public.Use(middleware.OptionalSession(opts.Sessions, opts.CookieName))
	{
		public.GET("/", opts.Auth.Index)
		public.GET("/register", opts.Auth.RegisterForm)
		public.POST("/register", opts.Auth.Register)
		public.GET("/login", opts.Auth.LoginForm)
		public.POST("/login", opts.Auth.Login)
		public.GET("/logout", opts.Auth.Logout)
	}

	private := r.Group("/")
	private.Use(middleware.RequireSession(opts.Sessions, opts.CookieName))
	{
		private.GET("/dashboard", opts.Requests.Dashboard)
		private.GET("/submit-request", opts.Requests.SubmitForm)
		private.POST("/submit-request", opts.Requests.Submit)
		private.GET("/my-requests", opts.Requests.MyRequests)
		private.GET("/my-requests/export", opts.Requests.Export)
	}

	diagnostics := r.Group("/")
	diagnostics.Use(corsmiddleware.New(opts.AllowedOrigins))
	{
		diagnostics.GET("/health", opts.Health.Health)
		diagnostics.GET("/db-status", opts.Health.DBStatus)
		diagnostics.GET("/test-db", opts.Health.TestDB)
		diagnostics.OPTIONS("/health", noContent)
		diagnostics.OPTIONS("/db-status", noContent)
		diagnostics.OPTIONS("/test-db", noContent)
	}

	if opts.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	if opts.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
