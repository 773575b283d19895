package rest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/favkeeper/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
}

// Every business failure is a 422; the body only carries the classified
// message, never the underlying cause.
func writeMessageError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, messageResponse{Message: common.MessageOf(err)})
}

func writeFieldError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: common.MessageOf(err)})
}
