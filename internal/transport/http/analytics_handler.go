package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "vendescli/internal/errors"
	"vendescli/pkg/contracts/domain"
)

// AnalyticsHandler serves the derived analytics views.
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(service AnalyticsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/timebands", h.GetTimeBands)
	r.Get("/products", h.GetProducts)
	return r
}

// GetSummary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetTimeBands handles GET /api/analytics/timebands.
func (h *AnalyticsHandler) GetTimeBands(w http.ResponseWriter, r *http.Request) {
	bands, skipped, err := h.service.TimeBands(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"bands":            bands,
		"files_sense_hora": skipped,
	})
}

// productsQuery carries the validated GET /products parameters.
type productsQuery struct {
	Metric string `validate:"oneof=amount units margin"`
	Limit  int    `validate:"min=0,max=500"`
}

// GetProducts handles GET /api/analytics/products?metric=amount&limit=10.
func (h *AnalyticsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := productsQuery{Metric: string(domain.MetricAmount)}

	if m := r.URL.Query().Get("metric"); m != "" {
		q.Metric = m
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "limit must be an integer"))
			return
		}
		q.Limit = n
	}

	if err := h.validate.Struct(q); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	products, err := h.service.Products(r.Context(), domain.ProductMetric(q.Metric), q.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, products)
}
