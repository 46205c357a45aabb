package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation(nil), http.StatusBadRequest},
		{TooManyNotes(), http.StatusBadRequest},
		{DuplicatePhone(), http.StatusConflict},
		{DuplicateEmail(), http.StatusConflict},
		{NotFound("x"), http.StatusNotFound},
		{InvalidCredentials(), http.StatusUnauthorized},
		{Unauthorized(), http.StatusUnauthorized},
		{Forbidden(), http.StatusForbidden},
		{RateLimited(), http.StatusTooManyRequests},
		{Internal("x"), http.StatusInternalServerError},
		{New("SomethingNew", "x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf(%s) = %d, want %d", tt.err.Code, got, tt.want)
			}
		})
	}
}

func TestRespondErrorDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, NotFound("Patient not found"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != CodeNotFound {
		t.Errorf("error = %v, want %s", body["error"], CodeNotFound)
	}
	if body["message"] != "Patient not found" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["timestamp"]; !ok {
		t.Error("missing timestamp")
	}
	if _, ok := body["details"]; ok {
		t.Error("details present without field errors")
	}
}

func TestRespondErrorIncludesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RespondError(c, Validation([]FieldError{{Field: "phone", Message: "too short"}}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		Details []FieldError `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Details) != 1 || body.Details[0].Field != "phone" {
		t.Errorf("details = %+v", body.Details)
	}
}

func TestRespondErrorOpaqueForUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); !json.Valid([]byte(body)) {
		t.Fatalf("body is not JSON: %s", body)
	}
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["message"] == "pq: connection refused" {
		t.Error("internal error detail leaked to the client")
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", DuplicatePhone())

	var domainErr *Error
	if !errors.As(wrapped, &domainErr) {
		t.Fatal("errors.As failed to unwrap the domain error")
	}
	if domainErr.Code != CodeDuplicatePhone {
		t.Errorf("code = %s, want %s", domainErr.Code, CodeDuplicatePhone)
	}
}
