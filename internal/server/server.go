package server

import (
	"log/slog"
	"net/http"

	"cafe-dashboard/internal/handlers"
	"cafe-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints; all accept filter query parameters
	s.mux.HandleFunc("GET /api/kpis", s.apiHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /api/trends/daily", s.apiHandlers.HandleDailyTrend)
	s.mux.HandleFunc("GET /api/trends/monthly", s.apiHandlers.HandleMonthlyTrend)
	s.mux.HandleFunc("GET /api/categories", s.apiHandlers.HandleCategories)
	s.mux.HandleFunc("GET /api/categories/summary", s.apiHandlers.HandleCategorySummary)
	s.mux.HandleFunc("GET /api/categories/comparison", s.apiHandlers.HandleCategoryComparison)
	s.mux.HandleFunc("GET /api/stores", s.apiHandlers.HandleStores)
	s.mux.HandleFunc("GET /api/products/top", s.apiHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /api/heatmap", s.apiHandlers.HandleHeatmap)
	s.mux.HandleFunc("GET /api/hours", s.apiHandlers.HandleHourly)
	s.mux.HandleFunc("GET /api/weekdays", s.apiHandlers.HandleWeekdays)
	s.mux.HandleFunc("GET /api/time-periods", s.apiHandlers.HandleTimePeriods)
	s.mux.HandleFunc("GET /api/price-matrix", s.apiHandlers.HandlePriceMatrix)
	s.mux.HandleFunc("GET /api/filters", s.apiHandlers.HandleFilterOptions)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/kpis", s.sseHandlers.HandleKPIs)
	s.mux.HandleFunc("GET /sse/trends/daily", s.sseHandlers.HandleDailyTrend)
	s.mux.HandleFunc("GET /sse/categories", s.sseHandlers.HandleCategories)
	s.mux.HandleFunc("GET /sse/products/top", s.sseHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /sse/heatmap", s.sseHandlers.HandleHeatmap)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
