package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/house-price/internal/cache"
	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/internal/model"
	"github.com/iwvelando/house-price/internal/store"
	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/iwvelando/house-price/pkg/format"
	"github.com/iwvelando/house-price/pkg/mathutil"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

//go:embed static/* templates/*
var assets embed.FS

// FailureMessage is the user-facing message of every failed prediction.
const FailureMessage = "Error in prediction. Please check your inputs."

// History records served predictions.
type History interface {
	Save(ctx context.Context, rec *store.Record) error
	Recent(ctx context.Context, limit int) ([]store.Record, error)
}

// Options wires the collaborators of the handler. Zero values select the
// default catalog, the fallback model, no cache and no history.
type Options struct {
	Catalog     *features.Catalog
	Model       model.Predictor
	Cache       cache.Repository
	History     History
	MaxBodySize int64
	Version     string
	Compress    bool
	RateLimit   RateLimit
}

type handler struct {
	logger      *zap.Logger
	catalog     features.Catalog
	model       model.Predictor
	cache       cache.Repository
	history     History
	maxBodySize int64
	version     string
	index       *template.Template
}

// NewHandler constructs the HTTP handler that serves the web UI and prediction API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog := features.Default()
	if opts.Catalog != nil {
		catalog = *opts.Catalog
	}

	predictor := opts.Model
	if predictor == nil {
		predictor = model.Fallback()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	index, err := template.ParseFS(assets, "templates/index.html")
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded index template: %v", err))
	}

	h := &handler{
		logger:      logger,
		catalog:     catalog,
		model:       predictor,
		cache:       opts.Cache,
		history:     opts.History,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		index:       index,
	}

	mux := http.NewServeMux()

	// Prediction endpoint, rate limited per client
	limiter := newClientLimiter(opts.RateLimit)
	mux.Handle(constants.PredictPath, h.rateLimited(limiter, http.HandlerFunc(h.handlePredict)))

	// Feature descriptions
	mux.HandleFunc(constants.FeatureInfoPath, h.handleFeatureInfo)

	// Version endpoint for UI metadata
	mux.HandleFunc(constants.VersionPath, h.handleVersion)

	// Recent predictions
	mux.HandleFunc(constants.HistoryPath, h.handleHistory)

	// Static assets (script and stylesheet)
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	// Estimate form
	mux.HandleFunc("/", h.handleIndex)

	var root http.Handler = mux
	if opts.Compress {
		root = gzhttp.GzipHandler(root)
	}
	return h.logRequests(root)
}

type predictResponse struct {
	Success        bool     `json:"success"`
	PredictedPrice *float64 `json:"predicted_price,omitempty"`
	Message        string   `json:"message"`
	Error          string   `json:"error,omitempty"`
}

func (h *handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondFailure(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), "server.handlePredict")
			return
		}
		h.respondFailure(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), "server.handlePredict")
		return
	}

	values, err := decodeValues(body)
	if err != nil {
		h.respondFailure(w, http.StatusBadRequest, err.Error(), "server.handlePredict")
		return
	}

	input, err := h.catalog.Vector(values)
	if err != nil {
		h.respondFailure(w, http.StatusBadRequest, err.Error(), "server.handlePredict")
		return
	}

	price, cached, err := h.estimate(r.Context(), input)
	if err != nil {
		h.respondFailure(w, http.StatusInternalServerError, err.Error(), "server.handlePredict")
		return
	}

	if h.history != nil {
		rec := &store.Record{Fields: values, Input: input, Price: price, Cached: cached}
		if err := h.history.Save(r.Context(), rec); err != nil {
			h.logger.Warn("failed to record prediction",
				zap.String("op", "server.handlePredict"),
				zap.Error(err),
			)
		}
	}

	h.logger.Info("prediction computed",
		zap.String("op", "server.handlePredict"),
		zap.Float64("price", price),
		zap.Bool("cached", cached),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, predictResponse{
		Success:        true,
		PredictedPrice: &price,
		Message:        "Estimated House Price: " + format.Lakhs(price),
	})
}

// estimate evaluates the model, consulting the cache first. Prices are
// clamped to zero and rounded to two decimals.
func (h *handler) estimate(ctx context.Context, input []float64) (float64, bool, error) {
	key := cache.Key(input)
	if h.cache != nil {
		raw, ok, err := h.cache.Get(ctx, key)
		switch {
		case err != nil:
			h.logger.Warn("failed to read prediction cache",
				zap.String("op", "server.estimate"),
				zap.String("key", key),
				zap.Error(err),
			)
		case ok:
			if price, err := strconv.ParseFloat(raw, 64); err == nil && isFinite(price) {
				return price, true, nil
			}
			h.logger.Warn("ignoring unparsable cached prediction",
				zap.String("op", "server.estimate"),
				zap.String("key", key),
			)
		}
	}

	raw, err := h.model.Predict(ctx, input)
	if err != nil {
		return 0, false, fmt.Errorf("model prediction failed: %w", err)
	}
	if !isFinite(raw) {
		return 0, false, fmt.Errorf("model prediction failed: %v is not a finite price", raw)
	}
	price := mathutil.Round(mathutil.ClampNonNegative(raw))

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64)); err != nil {
			h.logger.Warn("failed to cache prediction",
				zap.String("op", "server.estimate"),
				zap.Error(err),
			)
		}
	}
	return price, false, nil
}

// decodeValues reads the submitted form values. An empty body or a JSON null
// is treated as an empty object.
func decodeValues(body []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var values map[string]interface{}
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("failed to decode form values: %v", err)
	}
	if values == nil {
		values = make(map[string]interface{})
	}
	return values, nil
}

func (h *handler) handleFeatureInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, h.catalog.Descriptions)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "prediction history is disabled"})
		return
	}

	limit := constants.DefaultHistoryLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		limit = n
	}
	if limit > constants.MaxHistoryLimit {
		limit = constants.MaxHistoryLimit
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load prediction history",
			zap.String("op", "server.handleHistory"),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load prediction history"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": records,
	})
}

func (h *handler) respondFailure(w http.ResponseWriter, status int, cause string, op string) {
	h.logger.Error("prediction request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", cause),
	)

	h.writeJSON(w, status, predictResponse{
		Success: false,
		Error:   cause,
		Message: FailureMessage,
	})
}

// writeJSON encodes payload before writing the header, so an unencodable
// payload becomes a 500 failure envelope instead of an empty body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(predictResponse{
			Success: false,
			Error:   "failed to encode response",
			Message: FailureMessage,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
