package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/match"
	"github.com/mwantia/pathways/pkg/validation"
)

type matchResponse[T any] struct {
	Items       []T   `json:"items"`
	Total       int   `json:"total"`
	Matched     int   `json:"matched"`
	Constrained bool  `json:"constrained"`
	NoMatches   bool  `json:"no_matches"`
	Selection   []int `json:"selection,omitempty"`
}

func newMatchResponse[T any](res match.Result[T]) matchResponse[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return matchResponse[T]{
		Items:       items,
		Total:       res.Total,
		Matched:     res.Matched(),
		Constrained: res.Constrained,
		NoMatches:   res.NoMatches(),
	}
}

type toggleRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type selectionResponse struct {
	Selection []int `json:"selection"`
	Count     int   `json:"count"`
	Selected  *bool `json:"selected,omitempty"`
}

func newSelectionResponse(sel match.SelectionSet) selectionResponse {
	return selectionResponse{Selection: sel.IDs(), Count: sel.Len()}
}

// criteriaValues flattens a JSON patch body into raw field values. Numbers
// are formatted, lists are joined and null clears a field.
func criteriaValues(body map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(body))
	var errs validation.Errors

	for field, raw := range body {
		switch v := raw.(type) {
		case nil:
			out[field] = ""
		case string:
			out[field] = v
		case float64:
			out[field] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[field] = strconv.FormatBool(v)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			out[field] = strings.Join(parts, ",")
		default:
			errs.Add(field, "unsupported value")
		}
	}
	return out, errs.Err()
}

func (s *Server) handleListColleges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.colleges.All())
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.programs.All())
}

func (s *Server) handleGetCriteria(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		return http.StatusOK, st.Criteria.Clone(), nil
	})
}

func (s *Server) handlePatchCriteria(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSON[map[string]any](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fields, err := criteriaValues(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		next, err := st.Criteria.Apply(fields)
		if err != nil {
			return 0, nil, err
		}
		st.Criteria = next
		return http.StatusOK, next.Clone(), nil
	})
}

func (s *Server) handleToggleCriteria(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[toggleRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		next, err := st.Criteria.Toggle(req.Field, req.Value)
		if err != nil {
			return 0, nil, err
		}
		st.Criteria = next
		return http.StatusOK, next.Clone(), nil
	})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		res := match.MatchColleges(s.colleges, st.Criteria, s.Tolerances())
		s.metrics.ObserveFilter("colleges", res.Matched())

		body := newMatchResponse(res)
		body.Selection = st.Selection.IDs()
		return http.StatusOK, body, nil
	})
}

func (s *Server) handleGetTransferCriteria(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		return http.StatusOK, st.Transfer.Clone(), nil
	})
}

func (s *Server) handlePatchTransferCriteria(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSON[map[string]any](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fields, err := criteriaValues(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		next, err := st.Transfer.Apply(fields)
		if err != nil {
			return 0, nil, err
		}
		st.Transfer = next
		return http.StatusOK, next.Clone(), nil
	})
}

func (s *Server) handleTransferMatches(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		res := match.MatchPrograms(s.programs, st.Transfer)
		s.metrics.ObserveFilter("programs", res.Matched())
		return http.StatusOK, newMatchResponse(res), nil
	})
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		return http.StatusOK, newSelectionResponse(st.Selection), nil
	})
}

func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "college")
	id, err := strconv.Atoi(raw)
	if err != nil || !s.colleges.Has(id) {
		s.writeError(w, r, fmt.Errorf("%w: %s", errUnknownCollege, raw))
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		st.Selection = st.Selection.Toggle(id)

		body := newSelectionResponse(st.Selection)
		selected := st.Selection.Contains(id)
		body.Selected = &selected
		return http.StatusOK, body, nil
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		st.Selection = st.Selection.Clear()
		return http.StatusOK, newSelectionResponse(st.Selection), nil
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(st *session.State) (int, any, error) {
		comparison, err := match.Project(s.colleges, st.Selection)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, comparison, nil
	})
}
