package handlers

import (
	"context"
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RateRPS        float64
	RateBurst      int
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Health reports storage readiness for /health.
	Health func(ctx context.Context) error
}

type Handler struct {
	trades  usecase.TradeUsecase
	escrow  usecase.EscrowUsecase
	ratings usecase.RatingUsecase
	traders usecase.TraderUsecase
	catalog usecase.CatalogUsecase
	logger  *zap.Logger
	opts    Options
}

func New(
	trades usecase.TradeUsecase,
	escrow usecase.EscrowUsecase,
	ratings usecase.RatingUsecase,
	traders usecase.TraderUsecase,
	catalog usecase.CatalogUsecase,
	log *zap.Logger,
	opts Options,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		trades:  trades,
		escrow:  escrow,
		ratings: ratings,
		traders: traders,
		catalog: catalog,
		logger:  log,
		opts:    opts,
	}
}

func (h *Handler) Routes() http.Handler {
	origins := h.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestLogger(h.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	auth := middleware.Auth(h.opts.JWTSecret)
	limiter := middleware.NewRateLimiter(h.opts.RateRPS, h.opts.RateBurst)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Route("/trades", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.CreateTrade)
			r.Get("/", h.ListTrades)
			r.Get("/{code}", h.GetTrade)
			r.Patch("/{code}", h.UpdateTrade)
			r.Post("/{code}/cancel", h.CancelTrade)
			r.Post("/{code}/dispute", h.DisputeTrade)
		})

		r.Route("/escrow/{code}", func(r chi.Router) {
			r.Use(auth)
			r.Post("/fund", h.FundEscrow)
			r.Post("/confirm-payment", h.ConfirmPayment)
			r.Post("/release", h.ReleaseEscrow)
			r.Get("/status", h.EscrowStatus)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.With(auth).Post("/", h.CreateRating)
			r.Get("/user/{id}", h.UserRatings)
			r.With(auth).Post("/report", h.CreateReport)
			r.With(auth).Get("/reports/my", h.MyReports)
		})

		r.Route("/traders", func(r chi.Router) {
			r.Get("/search", h.SearchTraders)
			r.Get("/top", h.TopTraders)
			r.Get("/verify/{identifier}", h.VerifyTrader)
			r.Get("/{id}/stats", h.TraderStats)
		})

		r.Route("/crypto", func(r chi.Router) {
			r.Get("/supported", h.SupportedCryptos)
			r.Get("/pairs", h.TradingPairs)
			r.With(auth).Post("/seed-defaults", h.SeedDefaults)
			r.Get("/{symbol}/config", h.CryptoConfig)
			r.Get("/{symbol}/network-info", h.CryptoNetworkInfo)
			r.Get("/{symbol}/fee", h.CryptoFee)
			r.With(auth).Post("/{symbol}/validate-amount", h.ValidateAmount)
		})
	})

	router.Get("/health", h.HealthCheck)
	if h.opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(h.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return router
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.opts.Health != nil {
		if err := h.opts.Health(r.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
