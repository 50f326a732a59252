package server

import (
	"errors"
	"net/http"
	"os"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type profileResponse struct {
	Success bool             `json:"success"`
	ID      domain.ProfileID `json:"id"`
	Message string           `json:"message"`
}

type availabilityResponse struct {
	Success   bool `json:"success"`
	Available bool `json:"available"`
}

type locationsResponse struct {
	Success bool                    `json:"success"`
	Options []domain.LocationOption `json:"options"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		recordUploadMetric(err)
		s.writeErr(w, r, err)
		return
	}
	photo, ok, err := readPhoto(r, "file")
	if err == nil && !ok {
		err = &domain.UploadRejectedError{Reason: msgNoFile}
	}
	if err != nil {
		recordUploadMetric(err)
		s.writeErr(w, r, err)
		return
	}

	stored, err := s.uploads.UploadPhoto(r.Context(), photo)
	recordUploadMetric(err)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, Filename: stored.Filename, URL: stored.URL})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		recordSubmissionMetric(err)
		s.writeErr(w, r, err)
		return
	}
	form, err := formFromRequest(r)
	if err != nil {
		recordSubmissionMetric(err)
		s.writeErr(w, r, err)
		return
	}

	res, err := s.profiles.SubmitProfile(r.Context(), form)
	recordSubmissionMetric(err)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Success: true, ID: res.ID, Message: res.Message})
}

// formFromRequest reads a submitted profile from a parsed multipart form.
func formFromRequest(r *http.Request) (domain.FormState, error) {
	form := domaintypes.NewFormState()
	form.Step = domaintypes.StepSummary
	form.Username = r.FormValue(domaintypes.FieldUsername.String())
	form.CurrentPassword = r.FormValue(domaintypes.FieldCurrentPassword.String())
	form.NewPassword = r.FormValue(domaintypes.FieldNewPassword.String())
	form.Profession = r.FormValue(domaintypes.FieldProfession.String())
	form.CompanyName = r.FormValue(domaintypes.FieldCompanyName.String())
	form.AddressLine1 = r.FormValue(domaintypes.FieldAddressLine1.String())
	form.Country = r.FormValue(domaintypes.FieldCountry.String())
	form.State = r.FormValue(domaintypes.FieldState.String())
	form.City = r.FormValue(domaintypes.FieldCity.String())
	form.SubscriptionPlan = r.FormValue(domaintypes.FieldSubscriptionPlan.String())
	form.Newsletter = r.FormValue(domaintypes.FieldNewsletter.String()) == "true"

	photo, ok, err := readPhoto(r, domaintypes.FieldProfilePhoto.String())
	if err != nil {
		return domain.FormState{}, err
	}
	if ok {
		form.ProfilePhoto = &photo
	}
	return form, nil
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	name := domain.Username(r.PathValue("name"))
	res := s.availability.CheckAvailability(r.Context(), name)
	writeJSON(w, http.StatusOK, availabilityResponse{Success: true, Available: res.Available})
}

func (s *Server) handleLocations(tier domain.Tier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.locations.FetchChildren(r.Context(), tier, r.PathValue("parent"))
		if err != nil {
			s.writeErr(w, r, domaintypes.Unavailable("fetch "+tier.String()+" options", err))
			return
		}
		writeJSON(w, http.StatusOK, locationsResponse{Success: true, Options: opts})
	}
}

func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.photos.ReadPhoto(r.Context(), r.PathValue("name"))
	if errors.Is(err, os.ErrNotExist) {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}
	if err != nil {
		s.writeErr(w, r, domaintypes.Unavailable("read photo", err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}
