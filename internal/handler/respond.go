package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondUpstreamError maps a backend error onto the gateway response,
// passing through the best available server-provided message
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		respondError(w, status, apiErr.Error())
		return
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondError(w, http.StatusBadGateway, err.Error())
}
