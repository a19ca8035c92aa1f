package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/config"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/handler"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/middleware"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/observability"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/session"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}
	observability.InitLogger(logLevel, logFormat)

	slog.Info("starting market gateway",
		slog.String("backend", cfg.BackendAPIURL))

	tokens := session.NewMemoryTokenStore()
	client := api.New(cfg.BackendAPIURL, cfg.UpstreamTimeout, tokens)

	sessions := session.NewManager(client, tokens)
	defer sessions.Close()

	// Initial silent profile fetch; the session resolves to anonymous
	// when no tokens were ever persisted
	go func() {
		startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sessions.Start(startCtx)
		slog.Info("session initialized", slog.String("state", sessions.State().String()))
	}()

	taxRate := decimal.RequireFromString(cfg.TaxRate)

	authHandler := handler.NewAuthHandler(sessions, client, cfg.AuthCookieName, cfg.IsProduction())
	cartHandler := handler.NewCartHandler(client)
	checkoutHandler := handler.NewCheckoutHandler(client, taxRate, cfg.PaymentConfirm)
	marketHandler := handler.NewMarketHandler(client)
	notificationsHandler := handler.NewNotificationsHandler(client, sessions)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)))
	r.Use(middleware.Metrics())
	r.Use(middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig()))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.Ready(client))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/index.html")
	})
	r.Get("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/login.html")
	})
	r.Get("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/register.html")
	})

	// The /account family is reachable only with the auth cookie set at
	// login; anonymous navigation redirects to the login page carrying
	// the original path
	r.Route("/account", func(r chi.Router) {
		r.Use(middleware.RequireAuthCookie(cfg.AuthCookieName))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, "./static/account.html")
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	authLimiter := middleware.NewRateLimiter(5, 10)
	apiLimiter := middleware.NewRateLimiter(20, 50)
	defer authLimiter.Stop()
	defer apiLimiter.Stop()

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware())
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		// Public catalog reads
		r.Group(func(r chi.Router) {
			r.Use(apiLimiter.Middleware())
			r.Get("/products", marketHandler.Products)
			r.Get("/products/{id}", marketHandler.Product)
			r.Get("/products/{id}/reviews", marketHandler.Reviews)
			r.Get("/categories", marketHandler.Categories)
			r.Get("/sellers", marketHandler.Sellers)
			r.Get("/sellers/{id}", marketHandler.Seller)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))
			r.Use(apiLimiter.Middleware())

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/change-password", authHandler.ChangePassword)
			r.Put("/auth/profile", authHandler.UpdateProfile)

			r.Get("/cart", cartHandler.Get)
			r.Post("/cart/items", cartHandler.Add)
			r.Put("/cart/items/{product_id}", cartHandler.Update)
			r.Delete("/cart/items/{product_id}", cartHandler.Remove)
			r.Delete("/cart", cartHandler.Clear)

			r.Post("/checkout", checkoutHandler.Start)
			r.Get("/checkout", checkoutHandler.State)
			r.Delete("/checkout", checkoutHandler.Cancel)
			r.Post("/checkout/shipping", checkoutHandler.SubmitShipping)
			r.Post("/checkout/back", checkoutHandler.Back)
			r.Post("/checkout/payment", checkoutHandler.SubmitPayment)

			r.Get("/orders", marketHandler.Orders)
			r.Get("/orders/seller", marketHandler.SellerOrders)
			r.Get("/orders/{id}", marketHandler.Order)
			r.Patch("/orders/{id}/status", marketHandler.UpdateOrderStatus)
			r.Get("/seller/stats", marketHandler.SellerStats)

			r.Post("/categories", marketHandler.CreateCategory)
			r.Post("/reviews/{id}/reply", marketHandler.ReplyToReview)

			r.Get("/messages", marketHandler.Messages)
			r.Post("/messages", marketHandler.SendMessage)
			r.Post("/messages/{id}/read", marketHandler.MarkMessageRead)

			r.Get("/notifications", notificationsHandler.List)
			r.Post("/notifications/{id}/read", notificationsHandler.MarkRead)
			r.Post("/notifications/read-all", notificationsHandler.MarkAllRead)

			r.Get("/favorites", marketHandler.Favorites)
			r.Post("/favorites/{id}/toggle", marketHandler.ToggleFavorite)
		})
	})

	// Auth checked inside the handler so the upgrade can fail cleanly
	r.Get("/ws/notifications", notificationsHandler.Stream)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("market gateway listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	slog.Info("server stopped gracefully")
}
