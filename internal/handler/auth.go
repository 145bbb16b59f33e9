package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/placementdrive/listing-server-go/internal/errors"
	"github.com/placementdrive/listing-server-go/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/admins", h.CreateAccount)
	r.Post("/auth", h.Login)

	return r
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperrors.ValidationError("Invalid request body")
	}
	if req.Username == "" {
		return nil, apperrors.MissingRequired("username")
	}
	if req.Password == "" {
		return nil, apperrors.MissingRequired("password")
	}
	return &req, nil
}

func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.authService.CreateAccount(r.Context(), req.Username, req.Password)
	if err != nil {
		if apperrors.GetCode(err) != apperrors.ErrCodeAlreadyExists {
			log.Error().Err(err).Msg("failed to create admin account")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("%s created", account.Username),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeDatabase {
			log.Error().Err(err).Msg("login failed against the store")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
