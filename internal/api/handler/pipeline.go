package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/betterway/betterway/internal/api/models"
	"github.com/betterway/betterway/internal/api/response"
	"github.com/betterway/betterway/internal/history"
	"github.com/betterway/betterway/internal/pipeline"
	"github.com/betterway/betterway/internal/planner"
	"github.com/betterway/betterway/internal/rank"
	"github.com/betterway/betterway/internal/storage"
)

// ObjectBrowser is an object store whose keys can be enumerated.
type ObjectBrowser interface {
	storage.ObjectStore
	Keys() []string
}

// PipelineHandler runs the pipeline and exposes its intermediate objects.
type PipelineHandler struct {
	chain   *pipeline.Chain
	store   ObjectBrowser
	history *history.Service
}

// NewPipelineHandler creates a new PipelineHandler. The history service is
// optional.
func NewPipelineHandler(chain *pipeline.Chain, store ObjectBrowser, hist *history.Service) *PipelineHandler {
	return &PipelineHandler{
		chain:   chain,
		store:   store,
		history: hist,
	}
}

// Run handles POST /v1/pipeline/run - executes fetch, transform and notify.
func (h *PipelineHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.chain.Run(r.Context())
	if err != nil {
		var provErr *planner.Error
		switch {
		case errors.As(err, &provErr), errors.Is(err, planner.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "journey planner unavailable")
		case errors.Is(err, rank.ErrEmptyDataset):
			response.BadRequest(w, r, "journey plan contained no rankable itineraries", nil)
		default:
			response.InternalError(w, r, "pipeline run failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.PipelineRun{
		PlanKey: result.PlanKey,
		CSVKey:  result.CSVKey,
		Selection: models.SelectionView{
			ItineraryID:    result.Selection.ID,
			Modes:          result.Selection.Modes,
			Label:          result.Selection.Label,
			ElapsedSeconds: int64(result.Selection.Elapsed.Seconds()),
			TravelSeconds:  int64(result.Selection.TravelTime.Seconds()),
		},
	})
}

// ListObjects handles GET /v1/objects - lists stored object keys.
func (h *PipelineHandler) ListObjects(w http.ResponseWriter, r *http.Request) {
	keys := h.store.Keys()
	if keys == nil {
		keys = []string{}
	}
	response.JSON(w, r, http.StatusOK, models.ObjectList{Keys: keys})
}

// GetObject handles GET /v1/objects/* - returns a stored object verbatim.
func (h *PipelineHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	body, err := h.store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.NotFound(w, r, "no object at "+key)
			return
		}
		response.InternalError(w, r, "failed to read object")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(key))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// ListSelections handles GET /v1/selections - recent best-route selections.
func (h *PipelineHandler) ListSelections(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, r, "limit must be an integer between 1 and 100", []models.FieldError{
				{Field: "limit", Message: "must be an integer between 1 and 100"},
			})
			return
		}
		limit = parsed
	}

	items := []models.SelectionRecord{}
	if h.history != nil {
		selections, err := h.history.Recent(r.Context(), limit)
		if err != nil {
			response.InternalError(w, r, "failed to load selection history")
			return
		}
		for _, s := range selections {
			items = append(items, models.SelectionRecord{
				ID:             s.ID,
				ItineraryID:    s.ItineraryID,
				Label:          s.Label,
				ElapsedSeconds: s.ElapsedSeconds,
				TravelSeconds:  s.TravelSeconds,
				SourceKey:      s.SourceKey,
				CreatedAt:      s.CreatedAt,
			})
		}
	}
	response.JSON(w, r, http.StatusOK, models.SelectionList{Items: items})
}

func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".json"):
		return "application/json"
	case strings.HasSuffix(key, ".csv"):
		return "text/csv"
	default:
		return "text/plain; charset=utf-8"
	}
}
