package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/apperror"
	"github.com/serendibgo/rental-api/config"
	"github.com/serendibgo/rental-api/models"
)

// writeSuccess writes the uniform success body
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	b, err := json.Marshal(models.SuccessResponse{Success: true, Message: message, Data: data})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// writeError maps a classified error onto its status and message
func writeError(w http.ResponseWriter, err error) {
	config.ErrorStatus(apperror.Message(err), apperror.StatusCode(err), w, err)
}

// decodeBody reads a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.Validation("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

// decodeOptionalBody is decodeBody for endpoints where the body may be omitted
func decodeOptionalBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

// caller returns the authenticated principal or writes a 401
func caller(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	p, ok := api.PrincipalFrom(r.Context())
	if !ok {
		config.ErrorStatus("Not authorized", http.StatusUnauthorized, w, nil)
	}
	return p, ok
}

// pageParams reads page and limit query values, leaving zero when absent or malformed
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
