package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	"github.com/smallbiznis/notaventa/internal/config"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	"github.com/smallbiznis/notaventa/internal/observability"
	obsmiddleware "github.com/smallbiznis/notaventa/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/notaventa/internal/observability/metrics"
	productdomain "github.com/smallbiznis/notaventa/internal/product/domain"
	salesnotedomain "github.com/smallbiznis/notaventa/internal/salesnote/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

// Server holds the handlers' dependencies. Services are optional so each
// composition root only wires the domains it serves.
type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	customerSvc customerdomain.Service
	addressSvc  addressdomain.Service
	productSvc  productdomain.Service
	noteSvc     salesnotedomain.Service
	obsMetrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	CustomerSvc customerdomain.Service  `optional:"true"`
	AddressSvc  addressdomain.Service   `optional:"true"`
	ProductSvc  productdomain.Service   `optional:"true"`
	NoteSvc     salesnotedomain.Service `optional:"true"`
	ObsMetrics  *obsmetrics.Metrics     `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		customerSvc: p.CustomerSvc,
		addressSvc:  p.AddressSvc,
		productSvc:  p.ProductSvc,
		noteSvc:     p.NoteSvc,
		obsMetrics:  p.ObsMetrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterCatalogRoutes exposes the customer, address and product CRUD
// surface.
func (s *Server) RegisterCatalogRoutes() {
	customers := s.engine.Group("/customers")
	{
		customers.POST("", s.CreateCustomer)
		customers.GET("", s.ListCustomers)
		customers.GET("/:id", s.GetCustomerByID)
		customers.PUT("/:id", s.UpdateCustomer)
		customers.DELETE("/:id", s.DeleteCustomer)
		customers.GET("/:id/addresses", s.ListCustomerAddresses)
	}

	addresses := s.engine.Group("/addresses")
	{
		addresses.POST("", s.CreateAddress)
		addresses.GET("/:id", s.GetAddressByID)
		addresses.PUT("/:id", s.UpdateAddress)
		addresses.DELETE("/:id", s.DeleteAddress)
	}

	products := s.engine.Group("/products")
	{
		products.POST("", s.CreateProduct)
		products.GET("", s.ListProducts)
		products.GET("/:id", s.GetProductByID)
		products.PUT("/:id", s.UpdateProduct)
		products.DELETE("/:id", s.DeleteProduct)
	}
}

// RegisterOrderRoutes exposes the sales note surface. Notes are immutable, so
// there is no update or delete.
func (s *Server) RegisterOrderRoutes() {
	orders := s.engine.Group("/orders")
	{
		orders.POST("", s.CreateNote)
		orders.GET("", s.ListNotes)
		orders.GET("/:id", s.GetNoteByID)
		orders.GET("/:id/pdf", s.DownloadNotePDF)
		orders.POST("/:id/resend", s.ResendNote)
	}
}

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     cfg.AppName,
			"environment": cfg.Environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
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
