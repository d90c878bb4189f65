// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux without services.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Delete("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "registered GET", method: http.MethodGet, path: "/api/tasks", wantStatus: http.StatusOK},
		{name: "registered POST", method: http.MethodPost, path: "/api/tasks", wantStatus: http.StatusCreated},
		{name: "PATCH on tasks", method: http.MethodPatch, path: "/api/tasks", wantStatus: http.StatusNotFound},
		{name: "PUT on tasks", method: http.MethodPut, path: "/api/tasks", wantStatus: http.StatusNotFound},
		{name: "GET on delete-only route", method: http.MethodGet, path: "/api/user/profile", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCheckHTTPMethod_JSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/tasks", nil))

	assertDetail(t, rec, http.StatusNotFound, "Not Found")
}
