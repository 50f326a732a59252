package server

import (
	"errors"
	"io"
	"net/http"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
)

const (
	// maxFormBytes bounds a whole multipart request. Photos over
	// MaxPhotoBytes still fit so they get the size message rather than a
	// parse failure.
	maxFormBytes = 8 << 20

	msgNoFile = "No file received"
)

// readPhoto reads the file part named field. ok is false when the part is
// absent or empty. The content type is sniffed from the bytes; the
// client's declared type is ignored.
func readPhoto(r *http.Request, field string) (photo domain.Photo, ok bool, err error) {
	file, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return domain.Photo{}, false, nil
	}
	if err != nil {
		return domain.Photo{}, false, badRequest("unable to read uploaded file")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, domaintypes.MaxPhotoBytes+1))
	if err != nil {
		return domain.Photo{}, false, badRequest("unable to read uploaded file")
	}
	if len(raw) == 0 {
		return domain.Photo{}, false, nil
	}
	return domain.Photo{
		Filename:    hdr.Filename,
		ContentType: http.DetectContentType(raw),
		Data:        raw,
	}, true, nil
}

// parseMultipart bounds the body and parses the form.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return badRequest("File size must be less than 2MB")
		}
		return badRequest("invalid multipart form")
	}
	return nil
}
