package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/enotehq/enote/internal/auth"
	authdomain "github.com/enotehq/enote/internal/auth/domain"
	"github.com/enotehq/enote/internal/client"
	"github.com/enotehq/enote/internal/config"
	"github.com/enotehq/enote/internal/employee"
	employeedomain "github.com/enotehq/enote/internal/employee/domain"
	"github.com/enotehq/enote/internal/feedback"
	feedbackdomain "github.com/enotehq/enote/internal/feedback/domain"
	"github.com/enotehq/enote/internal/invoice"
	invoicedomain "github.com/enotehq/enote/internal/invoice/domain"
	invoicerender "github.com/enotehq/enote/internal/invoice/render"
	"github.com/enotehq/enote/internal/observability"
	obsmiddleware "github.com/enotehq/enote/internal/observability/logger"
	obsmetrics "github.com/enotehq/enote/internal/observability/metrics"
	obstracing "github.com/enotehq/enote/internal/observability/tracing"
	"github.com/enotehq/enote/internal/owner"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	"github.com/enotehq/enote/internal/product"
	productdomain "github.com/enotehq/enote/internal/product/domain"
	"github.com/enotehq/enote/internal/scheduler"
	"github.com/enotehq/enote/internal/subscription"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	owner.Module,
	employee.Module,
	client.Module,
	product.Module,
	invoice.Module,
	subscription.Module,
	feedback.Module,
	scheduler.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Log:   log,
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	authSvc         authdomain.Service
	ownerSvc        ownerdomain.Service
	employeeSvc     employeedomain.Service
	productSvc      productdomain.Service
	invoiceSvc      invoicedomain.Service
	invoiceRenderer invoicerender.Renderer
	subscriptionSvc subscriptiondomain.Service
	feedbackSvc     feedbackdomain.Service
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	AuthSvc         authdomain.Service
	OwnerSvc        ownerdomain.Service
	EmployeeSvc     employeedomain.Service
	ProductSvc      productdomain.Service
	InvoiceSvc      invoicedomain.Service
	InvoiceRenderer invoicerender.Renderer
	SubscriptionSvc subscriptiondomain.Service
	FeedbackSvc     feedbackdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine: p.Gin,
		cfg:    p.Cfg,
		db:     p.DB,
		genID:  p.GenID,

		authSvc:         p.AuthSvc,
		ownerSvc:        p.OwnerSvc,
		employeeSvc:     p.EmployeeSvc,
		productSvc:      p.ProductSvc,
		invoiceSvc:      p.InvoiceSvc,
		invoiceRenderer: p.InvoiceRenderer,
		subscriptionSvc: p.SubscriptionSvc,
		feedbackSvc:     p.FeedbackSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	s.engine.POST("/register", s.Register)
	s.engine.POST("/login", s.Login)
	// Separate path kept for older clients; same unified login underneath.
	s.engine.POST("/employee/login", s.Login)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("", s.AuthRequired())

	api.GET("/me", s.Me)
	api.PUT("/me", s.UpdateMe)
	api.GET("/me/subscription", s.MySubscription)

	employees := api.Group("/employees")
	employees.GET("", s.ListEmployees)
	employees.POST("", s.CreateEmployee)
	employees.GET("/:id", s.GetEmployee)
	employees.PUT("/:id/phone", s.UpdateEmployeePhone)
	employees.PUT("/:id/password", s.UpdateEmployeePassword)
	employees.POST("/:id/block", s.BlockEmployee)
	employees.POST("/:id/unblock", s.UnblockEmployee)
	employees.DELETE("/:id", s.DeleteEmployee)

	products := api.Group("/products")
	products.GET("", s.ListProducts)
	products.POST("", s.CreateProduct)
	products.GET("/:id", s.GetProduct)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	invoices := api.Group("/invoices")
	invoices.POST("", s.CreateInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoice)
	invoices.POST("/:id/payments", s.RecordInvoicePayment)

	api.GET("/stats/sellers", s.SellerStats)

	api.POST("/feedback", s.SubmitFeedback)
}

func (s *Server) registerPublicRoutes() {
	// Shareable invoice page, no auth. The snowflake id is the capability.
	s.engine.GET("/invoice/:id", s.PublicInvoicePage)
}
