package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

const _maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}

func ReplyWithError(w http.ResponseWriter, statusCode int, errMsg string) {
	ReplyJSONResponse(w, statusCode, &ErrorResponse{Message: errMsg})
}

func ReplyJSONResponse(w http.ResponseWriter, statusCode int, output any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(output); err != nil {
		slog.Warn("writing response", slog.Int("status", statusCode), slog.Any("error", err))
	}
}

// DecodeJSONBody reads at most 1MiB of the body into placeholder.
func DecodeJSONBody(r *http.Request, placeholder any) error {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, _maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if len(reqBody) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(reqBody, placeholder); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}

func GetPathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}

// GetQueryParamInt returns fallback when the parameter is missing or not a number.
func GetQueryParamInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}
