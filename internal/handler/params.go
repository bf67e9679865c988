package handler

import (
	"net/http"
	"strconv"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// URLID parses a numeric id URL parameter.
func URLID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("Invalid " + param + " parameter")
	}
	return id, nil
}

// QueryInt parses an integer query parameter, falling back to def when absent
// or unparseable.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// QueryInt64 parses an int64 query parameter, falling back to 0 when absent.
func QueryInt64(r *http.Request, name string) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
