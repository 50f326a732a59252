package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/go-logr/logr"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/services/validation"
)

// HTTP talks to the profilewizard JSON API rooted at Base.
type HTTP struct {
	Base string
	HTTP *http.Client
	log  logr.Logger
}

// NewHTTP returns a client for the server at base.
func NewHTTP(base string, log logr.Logger) *HTTP {
	return &HTTP{Base: base, HTTP: http.DefaultClient, log: log.WithName("client")}
}

// envelope is the common response shape of the API.
type envelope struct {
	Success   bool                    `json:"success"`
	Error     string                  `json:"error,omitempty"`
	Options   []domain.LocationOption `json:"options,omitempty"`
	Available bool                    `json:"available"`
	Filename  string                  `json:"filename,omitempty"`
	URL       string                  `json:"url,omitempty"`
}

// FetchChildren returns the options of tier under parent. A parent the
// server does not know yields an empty list.
func (c *HTTP) FetchChildren(ctx context.Context, tier domain.Tier, parent string) ([]domain.LocationOption, error) {
	var path string
	switch tier {
	case domaintypes.TierCountry:
		path = "/api/locations/countries"
	case domaintypes.TierState:
		path = "/api/locations/states/" + url.PathEscape(parent)
	case domaintypes.TierCity:
		path = "/api/locations/cities/" + url.PathEscape(parent)
	default:
		return nil, fmt.Errorf("unknown location tier %q", tier)
	}
	if tier != domaintypes.TierCountry && parent == "" {
		return []domain.LocationOption{}, nil
	}

	var out envelope
	status, err := c.getJSON(ctx, path, &out)
	if status == http.StatusNotFound {
		return []domain.LocationOption{}, nil
	}
	if err != nil {
		return nil, domaintypes.Unavailable("fetch "+tier.String()+" options", err)
	}
	if out.Options == nil {
		return []domain.LocationOption{}, nil
	}
	return out.Options, nil
}

// CheckAvailability reports whether candidate is free. Any failure is
// reported as unavailable. Too-short candidates never reach the server.
func (c *HTTP) CheckAvailability(ctx context.Context, candidate domain.Username) domain.Availability {
	if !validation.Checkable(candidate.String()) {
		return domain.Availability{Available: false}
	}
	var out envelope
	path := "/api/username/" + url.PathEscape(candidate.String()) + "/availability"
	if _, err := c.getJSON(ctx, path, &out); err != nil {
		c.log.Error(err, "availability check failed", "username", candidate)
		return domain.Availability{Available: false}
	}
	return domain.Availability{Available: out.Success && out.Available}
}

// UploadPhoto posts photo as the multipart "file" field. A 400 response is
// returned as *domain.UploadRejectedError carrying the server's message.
// Type, size and empty-payload violations are rejected without a request.
func (c *HTTP) UploadPhoto(ctx context.Context, photo domain.Photo) (domain.StoredPhoto, error) {
	if msg := validation.CheckPhoto(photo); msg != "" {
		return domain.StoredPhoto{}, &domain.UploadRejectedError{Reason: msg}
	}
	if photo.Size() == 0 {
		return domain.StoredPhoto{}, &domain.UploadRejectedError{Reason: "No file received"}
	}

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", photo.Filename)
	if err != nil {
		return domain.StoredPhoto{}, err
	}
	if _, err := part.Write(photo.Data); err != nil {
		return domain.StoredPhoto{}, err
	}
	if err := mw.Close(); err != nil {
		return domain.StoredPhoto{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/api/upload", body)
	if err != nil {
		return domain.StoredPhoto{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out envelope
	status, err := c.do(req, &out)
	switch {
	case status == http.StatusBadRequest && out.Error != "":
		return domain.StoredPhoto{}, &domain.UploadRejectedError{Reason: out.Error}
	case err != nil:
		return domain.StoredPhoto{}, domaintypes.Unavailable("upload photo", err)
	}
	return domain.StoredPhoto{Filename: out.Filename, URL: out.URL}, nil
}

// DiscardPhoto is not exposed by the server; stored photos are kept.
func (c *HTTP) DiscardPhoto(context.Context, domain.StoredPhoto) error {
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out *envelope) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return 0, err
	}
	return c.do(req, out)
}

// do sends req and decodes the envelope. Non-2xx statuses and
// success=false bodies are errors; out is still populated when the body
// decodes.
func (c *HTTP) do(req *http.Request, out *envelope) (int, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	decodeErr := json.Unmarshal(raw, out)
	if resp.StatusCode/100 != 2 {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return resp.StatusCode, fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, msg)
	}
	if decodeErr != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", req.URL.Path, decodeErr)
	}
	if !out.Success {
		return resp.StatusCode, errors.New(out.Error)
	}
	return resp.StatusCode, nil
}

var (
	_ domain.LocationService     = (*HTTP)(nil)
	_ domain.AvailabilityService = (*HTTP)(nil)
	_ domain.UploadService       = (*HTTP)(nil)
)
