package server

import (
	"github.com/Lutefd/frankfurter-service/internal/handler"
	api_middleware "github.com/Lutefd/frankfurter-service/internal/middleware"
	"github.com/Lutefd/frankfurter-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) registerRoutes(currencyService service.CurrencyServiceInterface) {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	limiter := api_middleware.NewRateLimiter(s.config.RateLimitRPS)

	router.Get("/healthz", handler.HandlerReadiness)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	router.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/rates", currencyHandler.GetRate)
		r.Get("/convert", currencyHandler.ConvertCurrency)
	})
	s.router = router
}
