package http

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "vendescli/internal/errors"
	"vendescli/pkg/contracts/domain"
)

// ImportHandler handles spreadsheet upload requests.
type ImportHandler struct {
	service        ImportServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewImportHandler creates an import handler.
func NewImportHandler(service ImportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "import_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the import routes.
func (h *ImportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/products", h.ImportProducts)
	r.With(h.KindCtx).Post("/{kind}", h.Import)
	return r
}

// KindCtx validates the dataset kind URL parameter.
func (h *ImportHandler) KindCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := domain.DatasetKind(chi.URLParam(r, "kind"))
		if !kind.Valid() {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("kind", "Unknown dataset kind"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Import handles POST /api/import/{kind}: a multipart upload with one
// "file" part holding the exported workbook.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	kind := domain.DatasetKind(chi.URLParam(r, "kind"))
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "import requested",
		slog.String("request_id", reqID),
		slog.String("kind", string(kind)))

	file, err := h.uploadedFile(r, "file")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer file.Close()

	result, err := h.service.Import(r.Context(), kind, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// ImportProducts handles POST /api/import/products: a multipart upload
// carrying the two parallel product layouts as "amounts" and
// "quantities" parts.
func (h *ImportHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	amounts, err := h.uploadedFile(r, "amounts")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer amounts.Close()

	quantities, err := h.uploadedFile(r, "quantities")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer quantities.Close()

	amountResult, quantityResult, err := h.service.ImportProductPair(r.Context(), amounts, quantities)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]*domain.ImportResult{
		"amounts":    amountResult,
		"quantities": quantityResult,
	})
}

func (h *ImportHandler) uploadedFile(r *http.Request, field string) (multipart.File, error) {
	if r.MultipartForm == nil {
		r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			return nil, apierrors.InvalidRequestWithError(err)
		}
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, apierrors.ErrValidation(field, "Uploaded spreadsheet file is required")
	}
	return file, nil
}
