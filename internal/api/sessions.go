package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/tracker"
	"github.com/mwantia/pathways/pkg/validation"
	"github.com/mwantia/pathways/pkg/view"
)

type studentTypeRequest struct {
	StudentType string `json:"student_type"`
}

type viewRequest struct {
	View string `json:"view"`
}

func parseStudentType(value string) (tracker.StudentType, error) {
	st, err := tracker.ParseStudentType(value)
	if err != nil {
		return "", validation.FieldError{Field: "student_type", Reason: err.Error()}
	}
	return st, nil
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	req := studentTypeRequest{}
	if r.ContentLength != 0 {
		var err error
		if req, err = decodeJSON[studentTypeRequest](r); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	student, err := parseStudentType(req.StudentType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := s.sessions.Create(student)
	s.log.Info("Started %s session %s", student, sess.ID())
	writeJSON(w, http.StatusCreated, sess.Summary())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "session"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Summary())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "session")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "session"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sess.Summary())
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[viewRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		v, err := view.Parse(req.View)
		if err != nil {
			return 0, nil, validation.FieldError{Field: "view", Reason: err.Error()}
		}
		st.View = v
		return http.StatusOK, viewRequest{View: string(v)}, nil
	})
}

func (s *Server) handleSetStudentType(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[studentTypeRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		student, err := parseStudentType(req.StudentType)
		if err != nil {
			return 0, nil, err
		}
		st.SwitchStudentType(student)
		return http.StatusOK, studentTypeRequest{StudentType: string(student)}, nil
	})
}
