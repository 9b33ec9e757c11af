package server

import (
	"bytes"
	"net/http"

	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/pkg/constants"
	"go.uber.org/zap"
)

type indexPage struct {
	Version      string
	PredictPath  string
	Ranges       []features.Range
	Categoricals []features.Categorical
	Localities   []features.Locality
	Descriptions map[string]string
	Unknown      string
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	page := indexPage{
		Version:      h.version,
		PredictPath:  constants.PredictPath,
		Ranges:       h.catalog.Ranges,
		Categoricals: h.catalog.Categoricals,
		Localities:   h.catalog.Localities,
		Descriptions: h.catalog.Descriptions,
		Unknown:      features.UnknownDescription,
	}

	var buf bytes.Buffer
	if err := h.index.Execute(&buf, page); err != nil {
		h.logger.Error("failed to render index",
			zap.String("op", "server.handleIndex"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
