package status

import (
	"context"
	"net/http"

	domain "github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
)

// Path is where the status is served.
const Path = "/status"

// Source provides the current status.
type Source interface {
	GetStatus(ctx context.Context) *domain.State
}

// Handler answers GET and HEAD requests with the status JSON.
type Handler struct {
	source Source
}

// NewHandler creates a status handler backed by source.
func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

// NewMux routes Path to a status handler.
func NewMux(source Source) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, NewHandler(source))

	return mux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Cache-Control", "no-store")

	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodOptions:
		header.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		w.WriteHeader(http.StatusNoContent)

		return
	default:
		header.Set("Allow", "GET, HEAD, OPTIONS")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

		return
	}

	ctx := r.Context()

	body, err := pb.MarshalStatusJSON(pb.StatusFromState(h.source.GetStatus(ctx)), false)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to encode status", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	header.Set("Content-Type", "application/json")

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)

		return
	}

	if _, err = w.Write(body); err != nil {
		logger.DebugKV(ctx, "Failed to write status response", "remote", r.RemoteAddr, "error", err)
	}
}
