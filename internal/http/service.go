package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/config"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/http/metric"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/http/middleware"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/http/swagger"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	validate validator.Validator

	authSvc      service.AuthService
	productSvc   service.ProductService
	inventorySvc service.InventoryService
	providerSvc  service.ProviderService
	checkoutSvc  service.CheckoutService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	validate validator.Validator,
	authSvc service.AuthService,
	productSvc service.ProductService,
	inventorySvc service.InventoryService,
	providerSvc service.ProviderService,
	checkoutSvc service.CheckoutService,
) *Service {
	return &Service{
		cfg:          cfg,
		logger:       log.With(slog.String("service", "http")),
		metrics:      metric.New(),
		validate:     validate,
		authSvc:      authSvc,
		productSvc:   productSvc,
		inventorySvc: inventorySvc,
		providerSvc:  providerSvc,
		checkoutSvc:  checkoutSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	rp := &responder{logger: s.logger}

	authHdl := newAuthHandler(rp, s.authSvc, s.validate)
	productHdl := newProductHandler(rp, s.productSvc, s.validate)
	inventoryHdl := newInventoryHandler(rp, s.inventorySvc, s.validate)
	providerHdl := newProviderHandler(rp, s.providerSvc, s.validate)
	checkoutHdl := newCheckoutHandler(rp, s.checkoutSvc)

	protect := middleware.Protect(middleware.UserResolver(s.authSvc.ResolveUser))
	adminOnly := middleware.RequireAdmin()

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
			rp.respondJSON(w, req, http.StatusOK, messageResponse{Message: "pong"})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHdl.Register)
			r.Post("/login", authHdl.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHdl.List)
			r.Get("/{id}", productHdl.Get)

			r.Group(func(r chi.Router) {
				r.Use(protect, adminOnly)
				r.Post("/", productHdl.Create)
				r.Put("/{id}", productHdl.Update)
				r.Delete("/{id}", productHdl.Delete)
			})
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryHdl.List)
			r.Get("/{id}", inventoryHdl.Get)

			r.Group(func(r chi.Router) {
				r.Use(protect, adminOnly)
				r.Post("/", inventoryHdl.Create)
				r.Put("/{id}", inventoryHdl.Update)
				r.Delete("/{id}", inventoryHdl.Delete)
			})
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", providerHdl.List)
			r.Get("/{id}", providerHdl.Get)

			r.Group(func(r chi.Router) {
				r.Use(protect, adminOnly)
				r.Post("/", providerHdl.Create)
				r.Put("/{id}", providerHdl.Update)
				r.Delete("/{id}", providerHdl.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(protect)
			r.Post("/checkout", checkoutHdl.Checkout)
		})
	})

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}
