package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestResponses_Envelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		code   int
		status bool
		field  string
	}{
		{"success", func(w http.ResponseWriter) { ResponseSuccess(w, "ok", map[string]int{"id": 1}) }, http.StatusOK, true, `"data"`},
		{"created", func(w http.ResponseWriter) { ResponseCreated(w, "made", 7) }, http.StatusCreated, true, `"data"`},
		{"bad request", func(w http.ResponseWriter) { ResponseBadRequest(w, "bad", map[string]string{"name": "required"}) }, http.StatusBadRequest, false, `"errors"`},
		{"not found", func(w http.ResponseWriter) { ResponseNotFound(w, "missing") }, http.StatusNotFound, false, `"message"`},
		{"internal", func(w http.ResponseWriter) { ResponseInternalError(w, "oops") }, http.StatusInternalServerError, false, `"message"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.code {
				t.Fatalf("code = %d, want %d", rec.Code, tt.code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
			var body Response
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.status {
				t.Errorf("status = %v, want %v", body.Status, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.field) {
				t.Errorf("body %s lacks %s", rec.Body.String(), tt.field)
			}
		})
	}
}
