package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/levesol/solarproposal/pkg/log"
	"github.com/levesol/solarproposal/pkg/sizing"
	"github.com/levesol/solarproposal/pkg/types"
)

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (types.ProposalRequest, bool) {
	var req types.ProposalRequest
	// Limit body size to 1MB to prevent DoS
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return types.ProposalRequest{}, false
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return types.ProposalRequest{}, false
	}
	return req, true
}

// isDomainError reports whether the failure is a deterministic consequence of
// the input or the reference data, which the caller must fix. Nothing here is
// retriable.
func isDomainError(err error) bool {
	return errors.Is(err, sizing.ErrNoValidConsumption) ||
		errors.Is(err, sizing.ErrPriceBandNotFound) ||
		errors.Is(err, sizing.ErrOutOfPriceRange)
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	p, err := s.assembler.Build(ctx, req)
	if err != nil {
		if isDomainError(err) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "failed to build proposal", slog.Any("error", err))
		writeJSONError(w, "failed to build proposal", http.StatusInternalServerError)
		return
	}

	if req.IncludePDF || r.URL.Query().Get("pdf") == "1" {
		pdf, err := s.renderer.Render(p)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to render proposal pdf", slog.Any("error", err))
			writeJSONError(w, "failed to render proposal pdf", http.StatusInternalServerError)
			return
		}
		p.PDFBase64 = base64.StdEncoding.EncodeToString(pdf)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleProposalPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	p, err := s.assembler.Build(ctx, req)
	if err != nil {
		if isDomainError(err) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "failed to build proposal", slog.Any("error", err))
		writeJSONError(w, "failed to build proposal", http.StatusInternalServerError)
		return
	}

	pdf, err := s.renderer.Render(p)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to render proposal pdf", slog.Any("error", err))
		writeJSONError(w, "failed to render proposal pdf", http.StatusInternalServerError)
		return
	}

	filename := "proposta-" + strings.ReplaceAll(p.ProposalNumber, "/", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(pdf); err != nil {
		panic(http.ErrAbortHandler)
	}
}

// handleReferenceData exposes the active reference dataset so the frontend
// can show the assumptions behind a proposal.
func (s *Server) handleReferenceData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := json.NewEncoder(w).Encode(s.ref); err != nil {
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
