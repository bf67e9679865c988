package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gambit/admin-api/internal/domain"
)

// internalErrorMessage is what clients see for any 500; the real failure is
// logged server-side only.
const internalErrorMessage = "Internal server error"

// envelope is the wire shape every response uses.
type envelope struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// Respond writes a success envelope with the given status code.
func Respond(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// RespondError writes a failure envelope, detecting domain.AppError for the
// status code and message. Server errors are logged with their cause and
// request id; the client only ever sees the generic message for those.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*domain.AppError)
	if !ok {
		appErr = domain.ErrInternal("unhandled error", err)
	}

	if appErr.Status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed",
			"op", appErr.Message,
			"error", appErr.Cause,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", GetRequestID(r.Context()),
		)
		w.WriteHeader(appErr.Status)
		json.NewEncoder(w).Encode(envelope{
			Success: false,
			Error:   &errorDetail{Message: internalErrorMessage},
		})
		return
	}

	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorDetail{Message: appErr.Message, Details: appErr.Details},
	})
}

// DecodeJSON reads and decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrValidation("Invalid request body")
	}
	return nil
}

// Pagination is the pagination block carried by paginated list responses.
type Pagination struct {
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPagination computes the pagination block for a list of total items.
func NewPagination(total, page, perPage int) Pagination {
	pages := (total + perPage - 1) / perPage
	return Pagination{
		Total:   total,
		Pages:   pages,
		Page:    page,
		PerPage: perPage,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
