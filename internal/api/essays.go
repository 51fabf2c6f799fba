package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/essay"
)

type essayRequest struct {
	Text string `json:"text"`
}

type draftResponse struct {
	PromptID string         `json:"prompt_id"`
	Text     string         `json:"text"`
	Feedback essay.Feedback `json:"feedback"`
}

func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, essay.Prompts())
}

// handleEssayFeedback evaluates text without saving it.
func (s *Server) handleEssayFeedback(w http.ResponseWriter, r *http.Request) {
	prompt := chi.URLParam(r, "prompt")
	req, err := decodeJSON[essayRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		fb, err := essay.Evaluate(prompt, req.Text)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, fb, nil
	})
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	prompt := chi.URLParam(r, "prompt")
	req, err := decodeJSON[essayRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		if err := st.Drafts.Save(prompt, req.Text); err != nil {
			return 0, nil, err
		}
		return s.draft(st, prompt)
	})
}

func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	prompt := chi.URLParam(r, "prompt")

	s.withSession(w, r, func(st *session.State) (int, any, error) {
		return s.draft(st, prompt)
	})
}

func (s *Server) draft(st *session.State, prompt string) (int, any, error) {
	text := st.Drafts.Load(prompt)
	fb, err := essay.Evaluate(prompt, text)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, draftResponse{PromptID: prompt, Text: text, Feedback: fb}, nil
}
