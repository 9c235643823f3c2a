package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/serendibgo/rental-api/api"
	"github.com/serendibgo/rental-api/models"
)

// newRequest builds a request carrying the principal and mux vars a routed,
// authenticated request would have
func newRequest(t *testing.T, method, target string, body interface{}, p *models.Principal, vars map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	if p != nil {
		req = req.WithContext(api.WithPrincipal(req.Context(), *p))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}
