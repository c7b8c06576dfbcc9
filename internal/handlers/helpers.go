package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/services"
)

const maxBodyBytes = 1 << 20

var errNotJSON = errors.New("Request must be JSON")

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// decodeJSON requires a JSON media type and a body that decodes into dst.
// Any failure is reported to the client as errNotJSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !isJSONMediaType(ct) {
		return errNotJSON
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("request body rejected")
		return errNotJSON
	}
	return nil
}

// isJSONMediaType accepts application/json and structured-syntax types such
// as application/problem+json.
func isJSONMediaType(ct string) bool {
	return ct == "application/json" ||
		(strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json"))
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp(e.Message))
	case *services.EmptyResponseError:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Empty response from model",
			Details: e.Error(),
		})
	case *services.ProviderError:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Model processing error",
			Details: e.Error(),
		})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, errorResp(models.GenericErrorMessage))
	}
}
