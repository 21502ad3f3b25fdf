// internal/app/system/httpapi/httpapi.go
//
// Package httpapi holds the small helpers the JSON feature handlers
// share: request decoding, response writing, and the mapping from the
// error taxonomy to HTTP status codes.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/archhub/archhub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes the request body into v. Unknown fields are
// rejected so typos surface as 400s instead of silent zero values.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ParseID parses a hex ObjectID from a URL parameter value.
func ParseID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// WriteError maps an error to a status code and writes it:
// NotFound 404, Validation 400, Conflict and DependencyBlocked 409,
// everything else 500. Unmapped errors are logged; the taxonomy errors
// carry their own context and are the caller's responsibility to log if
// interesting.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case apperr.IsNotFound(err) || errors.Is(err, mongo.ErrNoDocuments):
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.IsValidation(err):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperr.IsConflict(err) || apperr.IsDependencyBlocked(err):
		WriteJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// WriteBadRequest writes a 400 with the given message.
func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
