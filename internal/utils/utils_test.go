package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("Set and get", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), "owner")

		username, ok := GetUsernameFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "owner", username)
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUsernameFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "error message", http.StatusBadRequest)

	resp := w.Result()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error message", body["error"])
}

func TestWriteJSON_NoBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name      string
		body      string
		expectErr string
	}{
		{"Valid", `{"name":"Acme"}`, ""},
		{"Empty", ``, "request body is empty"},
		{"Unknown field", `{"nme":"Acme"}`, "invalid request body"},
		{"Malformed", `{"name":`, "invalid request body"},
		{"Trailing object", `{"name":"a"}{"name":"b"}`, "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := DecodeJSON(req, &p)
			if tt.expectErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, "Acme", p.Name)
				return
			}
			assert.ErrorContains(t, err, tt.expectErr)
		})
	}
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()

	parsed, err := ParseUUID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}
