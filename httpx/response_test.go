package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONMessage(rec, http.StatusConflict, "confirmation_required", "Please confirm the deletion", map[string]int{"id": 3})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "confirmation_required" || body.Message != "Please confirm the deletion" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unencodable payload, got %d", rec.Code)
	}
}
