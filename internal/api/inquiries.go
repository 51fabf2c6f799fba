package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/inquiry"
)

type inquiryRequest struct {
	inquiry.Form
	SessionID string `json:"session_id,omitempty"`
}

type inquiryResponse struct {
	Reference   uuid.UUID `json:"reference"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (s *Server) handleSubmitInquiry(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[inquiryRequest](r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sub, err := s.inquiries.Submit(r.Context(), req.Form, req.SessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, inquiryResponse{
		Reference:   sub.Reference,
		SubmittedAt: sub.SubmittedAt,
	})
}
