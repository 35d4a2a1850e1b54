package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MohamadRiza/happytime/internal/catalog"
	"github.com/MohamadRiza/happytime/internal/metrics"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler serves the public catalog and the admin product CRUD.
type ProductHandler struct {
	products store.ProductStore
	catalog  *catalog.Catalog
	metrics  *metrics.Collector
	logger   *zap.Logger
}

func NewProductHandler(products store.ProductStore, cat *catalog.Catalog, collector *metrics.Collector, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, catalog: cat, metrics: collector, logger: logger}
}

// List handles GET /api/products. Filter, search, and sort parameters are
// parsed with the same defaults the storefront uses, so a shared URL
// reproduces the same result set.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := catalog.ParseQuery(r.URL.Query())

	result, err := h.catalog.Query(filters)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Failed to load products, please try again")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordCatalogQuery(len(result))
	}

	respondFields(w, http.StatusOK, map[string]any{"products": result})
}

// Facets handles GET /api/products/facets: the dropdown option lists,
// derived from the full product list.
func (h *ProductHandler) Facets(w http.ResponseWriter, r *http.Request) {
	opts, err := h.catalog.Options()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Failed to load products, please try again")
		return
	}
	respondData(w, http.StatusOK, opts)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.GetProduct(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.logger.Error("product lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	respondData(w, http.StatusOK, product)
}

type productRequest struct {
	Title       string          `json:"title"`
	Brand       string          `json:"brand"`
	Description string          `json:"description"`
	ModelNumber string          `json:"modelNumber"`
	ProductType string          `json:"productType"`
	Gender      string          `json:"gender"`
	WatchShape  string          `json:"watchShape"`
	Colors      []catalog.Color `json:"colors"`
	Price       *float64        `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Featured    bool            `json:"featured"`
}

func (req *productRequest) validate() string {
	if msg := requireFields(
		requiredField{"title", req.Title},
		requiredField{"brand", req.Brand},
	); msg != "" {
		return msg
	}
	if req.ProductType != catalog.TypeWatch && req.ProductType != catalog.TypeWallClock {
		return "productType must be watch or wall_clock"
	}
	if req.Price != nil && *req.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

// Create handles POST /api/products (admin).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	product := &catalog.Product{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Brand:       req.Brand,
		Description: req.Description,
		ModelNumber: req.ModelNumber,
		ProductType: req.ProductType,
		Gender:      req.Gender,
		WatchShape:  req.WatchShape,
		Colors:      req.Colors,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		CreatedAt:   time.Now(),
	}

	if err := h.products.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("product creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	h.refreshCatalog(r)
	respondData(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} (admin).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.products.GetProduct(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.logger.Error("product lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	existing.Title = req.Title
	existing.Brand = req.Brand
	existing.Description = req.Description
	existing.ModelNumber = req.ModelNumber
	existing.ProductType = req.ProductType
	existing.Gender = req.Gender
	existing.WatchShape = req.WatchShape
	existing.Colors = req.Colors
	existing.Price = req.Price
	existing.ImageURL = req.ImageURL
	existing.Featured = req.Featured

	if err := h.products.UpdateProduct(r.Context(), existing); err != nil {
		h.logger.Error("product update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	h.refreshCatalog(r)
	respondData(w, http.StatusOK, existing)
}

// Delete handles DELETE /api/products/{id} (admin).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.products.DeleteProduct(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.logger.Error("product deletion failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}

	h.refreshCatalog(r)
	respondMessage(w, http.StatusOK, "Product deleted")
}

// refreshCatalog reloads the in-memory catalog after an admin mutation.
// Failure is logged, not surfaced: the write already succeeded and the
// catalog will self-correct on the next load.
func (h *ProductHandler) refreshCatalog(r *http.Request) {
	if err := h.catalog.Load(r.Context()); err != nil {
		h.logger.Error("catalog refresh failed", zap.Error(err))
	}
}
