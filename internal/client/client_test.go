package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilewizard/internal/client"
	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/services/validation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/locations/countries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"options": []domain.LocationOption{{ID: "us", Name: "United States"}},
		})
	})
	mux.HandleFunc("GET /api/locations/states/{country}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("country") != "us" {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "unknown country"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"options": []domain.LocationOption{{ID: "ca", Name: "California"}},
		})
	})
	mux.HandleFunc("GET /api/locations/cities/{state}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"success": false, "error": "directory offline"})
	})
	mux.HandleFunc("GET /api/username/{name}/availability", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("name") {
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "available": r.PathValue("name") != "taken"})
		}
	})
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "No file received"})
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if len(data) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "No file received"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"filename": "1-" + hdr.Filename,
			"url":      "/uploads/1-" + hdr.Filename,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchChildren(t *testing.T) {
	srv := newServer(t)
	c := client.NewHTTP(srv.URL, logr.Discard())
	ctx := context.Background()

	countries, err := c.FetchChildren(ctx, domaintypes.TierCountry, "")
	require.NoError(t, err)
	assert.Equal(t, []domain.LocationOption{{ID: "us", Name: "United States"}}, countries)

	states, err := c.FetchChildren(ctx, domaintypes.TierState, "us")
	require.NoError(t, err)
	assert.Equal(t, []domain.LocationOption{{ID: "ca", Name: "California"}}, states)

	unknown, err := c.FetchChildren(ctx, domaintypes.TierState, "zz")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	empty, err := c.FetchChildren(ctx, domaintypes.TierState, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = c.FetchChildren(ctx, domaintypes.TierCity, "ca")
	assert.True(t, errors.Is(err, domaintypes.ErrBackendUnavailable), "got %v", err)
	assert.ErrorContains(t, err, "directory offline")
}

func TestCheckAvailability(t *testing.T) {
	srv := newServer(t)
	c := client.NewHTTP(srv.URL, logr.Discard())
	ctx := context.Background()

	assert.True(t, c.CheckAvailability(ctx, "gopher").Available)
	assert.False(t, c.CheckAvailability(ctx, "taken").Available)
	assert.False(t, c.CheckAvailability(ctx, "broken").Available, "errors fail closed")

	down := client.NewHTTP("http://127.0.0.1:1", logr.Discard())
	assert.False(t, down.CheckAvailability(ctx, "gopher").Available)
}

func TestUploadPhoto(t *testing.T) {
	srv := newServer(t)
	c := client.NewHTTP(srv.URL, logr.Discard())
	ctx := context.Background()

	stored, err := c.UploadPhoto(ctx, domain.Photo{Filename: "me.png", ContentType: "image/png", Data: []byte("\x89PNG")})
	require.NoError(t, err)
	assert.Equal(t, domain.StoredPhoto{Filename: "1-me.png", URL: "/uploads/1-me.png"}, stored)

	_, err = c.UploadPhoto(ctx, domain.Photo{Filename: "me.png", ContentType: "image/png"})
	var rejected *domain.UploadRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "No file received", rejected.Reason)
}

func TestLocalRejectionsSkipServer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "available": true})
	}))
	t.Cleanup(srv.Close)
	c := client.NewHTTP(srv.URL, logr.Discard())
	ctx := context.Background()

	tests := []struct {
		name   string
		photo  domain.Photo
		reason string
	}{
		{"gif", domain.Photo{Filename: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")}, validation.MsgPhotoType},
		{"oversized png", domain.Photo{Filename: "big.png", ContentType: "image/png", Data: make([]byte, 3<<20)}, validation.MsgPhotoSize},
		{"empty png", domain.Photo{Filename: "e.png", ContentType: "image/png"}, "No file received"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.UploadPhoto(ctx, tt.photo)
			var rejected *domain.UploadRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.reason, rejected.Reason)
		})
	}

	assert.False(t, c.CheckAvailability(ctx, "ab").Available)
	assert.Zero(t, hits.Load())

	assert.True(t, c.CheckAvailability(ctx, "gopher").Available)
	assert.EqualValues(t, 1, hits.Load())
}
