package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/tracker"
	"github.com/mwantia/pathways/pkg/validation"
)

type documentsResponse struct {
	Documents  []tracker.Document         `json:"documents"`
	Progress   tracker.Progress           `json:"progress"`
	Categories []tracker.CategoryProgress `json:"categories"`
}

type timelineResponse struct {
	StudentType tracker.StudentType          `json:"student_type"`
	Tasks       []tracker.TaskState          `json:"tasks"`
	Progress    tracker.Progress             `json:"progress"`
	Categories  []tracker.CategoryCompletion `json:"categories"`
}

type subtaskRequest struct {
	Subtask string `json:"subtask"`
}

type toggleResponse struct {
	Completed bool             `json:"completed"`
	Progress  tracker.Progress `json:"progress"`
}

// documentFilter reads ?status= and ?category=; "all" or empty disables a filter.
func documentFilter(r *http.Request) (tracker.Status, tracker.Category, error) {
	var (
		status   tracker.Status
		category tracker.Category
		errs     validation.Errors
	)

	if raw := r.URL.Query().Get("status"); raw != "" && raw != "all" {
		parsed, err := tracker.ParseStatus(raw)
		if err != nil {
			errs.Add("status", "%v", err)
		}
		status = parsed
	}
	if raw := r.URL.Query().Get("category"); raw != "" && raw != "all" {
		parsed, err := tracker.ParseCategory(raw)
		if err != nil {
			errs.Add("category", "%v", err)
		}
		category = parsed
	}
	return status, category, errs.Err()
}

func documentID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "document")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", tracker.ErrUnknownDocument, raw)
	}
	return id, nil
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	status, category, err := documentFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		docs := st.Documents.Filter(status, category)
		if docs == nil {
			docs = []tracker.Document{}
		}
		return http.StatusOK, documentsResponse{
			Documents:  docs,
			Progress:   st.Documents.Progress(),
			Categories: st.Documents.CategoryProgress(),
		}, nil
	})
}

func (s *Server) handleAdvanceDocument(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		doc, err := st.Documents.Advance(id)
		if err != nil {
			return 0, nil, err
		}
		s.metrics.IncrementDocumentsAdvanced()
		return http.StatusOK, doc, nil
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := documentID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		if err := st.Documents.Delete(id); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, documentsResponse{
			Documents:  st.Documents.All(),
			Progress:   st.Documents.Progress(),
			Categories: st.Documents.CategoryProgress(),
		}, nil
	})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		return http.StatusOK, timelineResponse{
			StudentType: st.Timeline.StudentType(),
			Tasks:       st.Timeline.Tasks(),
			Progress:    st.Timeline.Progress(),
			Categories:  st.Timeline.CategoryProgress(),
		}, nil
	})
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task := chi.URLParam(r, "task")

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		done, err := st.Timeline.ToggleTask(task)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, toggleResponse{Completed: done, Progress: st.Timeline.Progress()}, nil
	})
}

func (s *Server) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	task := chi.URLParam(r, "task")
	req, err := decodeJSON[subtaskRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		done, err := st.Timeline.ToggleSubtask(task, req.Subtask)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, toggleResponse{Completed: done, Progress: st.Timeline.Progress()}, nil
	})
}
