package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"profilewizard/internal/domain"
	"profilewizard/internal/wizard"
)

// sessionResponse carries a wizard view. Error and Fields are set when the
// action failed; the view is still the current one.
type sessionResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Fields  domain.FieldErrors   `json:"fields,omitempty"`
	ID      domain.SessionID     `json:"id"`
	Session wizard.View          `json:"session"`
	Result  *domain.SubmitResult `json:"result,omitempty"`
}

type fieldRequest struct {
	Field domain.Field `json:"field"`
	Value any          `json:"value"`
}

func (s *Server) writeSession(w http.ResponseWriter, sess *session) {
	writeJSON(w, http.StatusOK, sessionResponse{Success: true, ID: sess.id, Session: sess.ctrl.Snapshot()})
}

func (s *Server) writeSessionErr(w http.ResponseWriter, r *http.Request, sess *session, err error) {
	status := statusFor(err)
	body := sessionResponse{Error: err.Error(), ID: sess.id, Session: sess.ctrl.Snapshot()}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		body.Fields = invalid.Fields
	}
	if status == http.StatusInternalServerError {
		s.log.Error(err, "session request failed", "session", sess.id, "path", r.URL.Path)
		body.Error = msgUnexpected
	}
	writeJSON(w, status, body)
}

// lookup resolves the {id} path value, writing a 404 when it is unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := domain.SessionID(r.PathValue("id"))
	sess, ok := s.sessions.get(id)
	if !ok {
		s.writeErr(w, r, notFound("session not found"))
		return nil, false
	}
	return sess, true
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.create()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.log.V(1).Info("session created", "session", sess.id)
	writeJSON(w, http.StatusCreated, sessionResponse{Success: true, ID: sess.id, Session: sess.ctrl.Snapshot()})
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.lookup(w, r); ok {
		s.writeSession(w, sess)
	}
}

func (s *Server) handleSessionField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		s.writeSessionErr(w, r, sess, badRequest("invalid JSON body"))
		return
	}
	value, err := fieldValue(req.Value)
	if err != nil {
		s.writeSessionErr(w, r, sess, err)
		return
	}
	if err := sess.ctrl.Update(req.Field, value); err != nil {
		s.writeSessionErr(w, r, sess, badRequestFrom(err))
		return
	}
	s.writeSession(w, sess)
}

// fieldValue accepts JSON strings, booleans, numbers and null.
func fieldValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", badRequest("value must be a string, boolean or number")
	}
}

// badRequestFrom marks errors from Update that carry no status of their own.
func badRequestFrom(err error) error {
	if statusFor(err) == http.StatusInternalServerError {
		return badRequest(err.Error())
	}
	return err
}

func (s *Server) handleSessionPhoto(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := parseMultipart(w, r); err != nil {
		s.writeSessionErr(w, r, sess, err)
		return
	}
	photo, ok, err := readPhoto(r, "file")
	if err == nil && !ok {
		err = &domain.UploadRejectedError{Reason: msgNoFile}
	}
	if err == nil {
		err = sess.ctrl.SetPhoto(photo)
	}
	if err != nil {
		s.writeSessionErr(w, r, sess, err)
		return
	}
	s.writeSession(w, sess)
}

func (s *Server) handleSessionAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if !sess.ctrl.Advance() {
		view := sess.ctrl.Snapshot()
		s.writeSessionErr(w, r, sess, &domain.ValidationError{Fields: view.Errors})
		return
	}
	s.writeSession(w, sess)
}

func (s *Server) handleSessionRetreat(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.lookup(w, r); ok {
		sess.ctrl.Retreat()
		s.writeSession(w, sess)
	}
}

func (s *Server) handleSessionSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res, err := sess.ctrl.Submit(r.Context())
	recordSubmissionMetric(err)
	if err != nil {
		s.writeSessionErr(w, r, sess, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		ID:      sess.id,
		Session: sess.ctrl.Snapshot(),
		Result:  &res,
	})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(r.PathValue("id"))
	if !s.sessions.remove(id) {
		s.writeErr(w, r, notFound("session not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
