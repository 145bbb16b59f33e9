package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/placementdrive/listing-server-go/internal/errors"
	"github.com/placementdrive/listing-server-go/internal/model"
	"github.com/placementdrive/listing-server-go/internal/service"
)

type PostingHandler struct {
	postingService *service.PostingService
	authMiddleware func(http.Handler) http.Handler
}

func NewPostingHandler(postingService *service.PostingService, authMiddleware func(http.Handler) http.Handler) *PostingHandler {
	return &PostingHandler{
		postingService: postingService,
		authMiddleware: authMiddleware,
	}
}

func (h *PostingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListActive)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
	})

	return r
}

type postingRequest struct {
	Company      string  `json:"company"`
	Designation  string  `json:"designation"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Application  string  `json:"application"`
	Salary       string  `json:"salary"`
	Batch        string  `json:"batch"`
	InactiveDate *string `json:"inactiveDate"`
}

func decodePostingParams(r *http.Request) (model.PostingParams, error) {
	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.PostingParams{}, apperrors.ValidationError("Invalid request body")
	}

	for field, value := range map[string]string{
		"company":     req.Company,
		"designation": req.Designation,
		"description": req.Description,
		"image":       req.Image,
		"application": req.Application,
	} {
		if value == "" {
			return model.PostingParams{}, apperrors.MissingRequired(field)
		}
	}

	params := model.PostingParams{
		Company:         req.Company,
		Designation:     req.Designation,
		Description:     req.Description,
		ImagePath:       req.Image,
		ApplicationLink: req.Application,
		Salary:          req.Salary,
		Batch:           req.Batch,
	}

	if req.InactiveDate != nil && *req.InactiveDate != "" {
		d, err := time.Parse(dateLayout, *req.InactiveDate)
		if err != nil {
			return model.PostingParams{}, apperrors.InvalidInput("inactiveDate", "expected YYYY-MM-DD")
		}
		params.InactiveDate = &d
	}

	return params, nil
}

func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, err := decodePostingParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	posting, err := h.postingService.Create(r.Context(), params, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to create posting")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, formatPosting(posting))
}

func (h *PostingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperrors.InvalidInput("id", "expected an integer"))
		return
	}

	params, err := decodePostingParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	posting, err := h.postingService.Update(r.Context(), id, params, time.Now())
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeDatabase {
			log.Error().Err(err).Msg("failed to update posting")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, formatPosting(posting))
}

func (h *PostingHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	postings, err := h.postingService.ListActive(r.Context(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to list active postings")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"postings": postings})
}
