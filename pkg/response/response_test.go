package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()

	SuccessWithMeta(rec, http.StatusOK, "ok", []string{"a"}, &Meta{Page: 2, Limit: 10, Total: 25, TotalPages: 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{
		"page": float64(2), "limit": float64(10), "total": float64(25), "total_pages": float64(3),
	}, body["meta"])
	assert.NotContains(t, body, "error")
}

func TestErrorHelpersFallBackToDefaultMessage(t *testing.T) {
	cases := []struct {
		write   func(http.ResponseWriter, string)
		status  int
		message string
	}{
		{BadRequest, http.StatusBadRequest, "Bad request"},
		{NotFound, http.StatusNotFound, "Resource not found"},
		{Conflict, http.StatusConflict, "Conflict"},
		{BadGateway, http.StatusBadGateway, "Upstream service failed"},
		{InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.write(rec, "")

		assert.Equal(t, tc.status, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["message"])
	}

	rec := httptest.NewRecorder()
	Conflict(rec, "Another admission is being submitted")
	assert.Equal(t, "Another admission is being submitted", decode(t, rec)["message"])
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	ValidationError(rec, []map[string]string{{"field": "nik", "tag": "len"}, {"field": "nik", "tag": "digits"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Len(t, body["error"], 2)
}
