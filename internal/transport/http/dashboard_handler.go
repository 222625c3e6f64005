package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/dataprocessing"
	apierrors "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/errors"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/exporter"
	appmiddleware "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/middleware"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/services"
	api "github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/api/v1"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Query parameter limits
const (
	maxBuckets = 100
	maxPerPage = 100
	maxCompare = 10
	maxPage    = 1 << 20
)

var (
	sortKeys = []string{
		string(dataprocessing.SortByCompany),
		string(dataprocessing.SortByModel),
		string(dataprocessing.SortByEngine),
		string(dataprocessing.SortByHorsePower),
		string(dataprocessing.SortByPrice),
	}
	sortOrders = []string{"asc", "desc"}
)

// DashboardHandler serves the dashboard API
type DashboardHandler struct {
	service      DashboardServiceInterface
	csv          *exporter.CSVWriter
	validation   *appmiddleware.ValidationMiddleware
	query        *appmiddleware.QueryParamValidator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:      service,
		csv:          exporter.NewCSVWriter(logger),
		validation:   appmiddleware.NewValidationMiddleware(logger, errorHandler),
		query:        appmiddleware.NewQueryParamValidator(errorHandler),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/", h.GetSnapshot)

		r.Route("/filter", func(r chi.Router) {
			r.Get("/", h.GetFilter)
			r.With(
				appmiddleware.ContentTypeValidator(h.errorHandler, "application/json"),
				h.validation.ValidateRequest,
			).Patch("/", h.PatchFilter)
			r.Post("/flush", h.FlushFilter)
			r.Delete("/", h.ResetFilter)
		})

		r.Get("/options", h.GetOptions)
		r.Get("/kpis", h.GetKPIs)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/brand-performance", h.GetBrandPerformance)
			r.Get("/price-distribution", h.GetPriceDistribution)
			r.Get("/market-share", h.GetMarketShare)
			r.Get("/features", h.GetFeatures)
		})

		r.Get("/cars", h.GetCars)
		r.Get("/cars/{carID}", h.GetCar)
		r.Get("/compare", h.GetComparison)
		r.Get("/export", h.ListExports)
	})

	r.Get("/export/{dataset}", h.Export)

	return r
}

// GetSnapshot handles GET /api/dashboard
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

// GetFilter handles GET /api/dashboard/filter
func (h *DashboardHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	active, pending, err := h.service.Filter()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, api.FilterState{Filter: active, Pending: pending})
}

// PatchFilter handles PATCH /api/dashboard/filter. A change still inside its
// debounce window is answered with 202 and the pending filter.
func (h *DashboardHandler) PatchFilter(w http.ResponseWriter, r *http.Request) {
	var patch domain.FilterPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validation.ValidateStruct(patch); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snap, err := h.service.SetFilter(r.Context(), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "filter updated",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Bool("pending", snap.Pending),
		slog.Uint64("generation", snap.Generation))

	if snap.Pending {
		render.Status(r, http.StatusAccepted)
	}
	render.JSON(w, r, snap)
}

// FlushFilter handles POST /api/dashboard/filter/flush
func (h *DashboardHandler) FlushFilter(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Flush(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

// ResetFilter handles DELETE /api/dashboard/filter
func (h *DashboardHandler) ResetFilter(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.ResetFilter(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.URL.Query().Get("brand_search"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, options)
}

// GetKPIs handles GET /api/dashboard/kpis
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.service.KPIs()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, kpis)
}

// GetBrandPerformance handles GET /api/dashboard/charts/brand-performance
func (h *DashboardHandler) GetBrandPerformance(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.BrandPerformance()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, brands)
}

// GetPriceDistribution handles GET /api/dashboard/charts/price-distribution
func (h *DashboardHandler) GetPriceDistribution(w http.ResponseWriter, r *http.Request) {
	buckets, ok := h.query.ValidateInt(w, r, "buckets", 1, maxBuckets, 0)
	if !ok {
		return
	}

	dist, err := h.service.PriceDistribution(buckets)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, dist)
}

// GetMarketShare handles GET /api/dashboard/charts/market-share
func (h *DashboardHandler) GetMarketShare(w http.ResponseWriter, r *http.Request) {
	shares, err := h.service.MarketShare()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, shares)
}

// GetFeatures handles GET /api/dashboard/charts/features
func (h *DashboardHandler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.service.Features()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, features)
}

// GetCars handles GET /api/dashboard/cars
func (h *DashboardHandler) GetCars(w http.ResponseWriter, r *http.Request) {
	sortKey, ok := h.query.ValidateEnum(w, r, "sort", sortKeys, "")
	if !ok {
		return
	}
	order, ok := h.query.ValidateEnum(w, r, "order", sortOrders, "asc")
	if !ok {
		return
	}
	page, ok := h.query.ValidateInt(w, r, "page", 1, maxPage, 1)
	if !ok {
		return
	}
	perPage, ok := h.query.ValidateInt(w, r, "per_page", 1, maxPerPage, 0)
	if !ok {
		return
	}

	result, err := h.service.Page(dataprocessing.SortKey(sortKey), order == "desc", page, perPage)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetCar handles GET /api/dashboard/cars/{carID}
func (h *DashboardHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "carID")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	car, err := h.service.Car(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, car)
}

// GetComparison handles GET /api/dashboard/compare
func (h *DashboardHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.query.ValidateInt(w, r, "limit", 1, maxCompare, 0)
	if !ok {
		return
	}

	cmp, err := h.service.Compare(limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, cmp)
}

// ListExports handles GET /api/dashboard/export
func (h *DashboardHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	list := api.ExportList{Datasets: make([]api.ExportDataset, 0, len(exporter.Datasets))}
	for _, d := range exporter.Datasets {
		list.Datasets = append(list.Datasets, api.ExportDataset{
			Name:     string(d),
			FileName: d.FileName(),
			URL:      "/api/dashboard/export/" + string(d),
		})
	}
	render.JSON(w, r, list)
}

// Export handles GET /api/dashboard/export/{dataset}
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")
	dataset, ok := exporter.ParseDataset(name)
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("export dataset "+name))
		return
	}

	table, err := h.service.ExportTable(dataset)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+dataset.FileName()+`"`)
	if err := h.csv.Write(w, table, exporter.WriteOptions{}); err != nil {
		// Headers are already sent.
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("dataset", name),
			slog.String("error", err.Error()))
	}
}

// fail maps service errors onto API errors
func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.errorHandler.HandleError(w, r, toAPIError(err))
}

func toAPIError(err error) error {
	switch {
	case errors.Is(err, services.ErrDatasetNotLoaded):
		return apierrors.ErrDatasetNotLoaded
	case errors.Is(err, services.ErrDatasetLoadFailed):
		return apierrors.DatasetLoadFailedError(err)
	case errors.Is(err, services.ErrCarNotFound):
		return apierrors.CarNotFoundError(err.Error())
	case errors.Is(err, services.ErrUnknownExport):
		return apierrors.NotFoundError("export dataset")
	case errors.Is(err, services.ErrInvalidInput):
		return apierrors.InvalidRequestWithError(err)
	default:
		return err
	}
}
