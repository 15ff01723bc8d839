package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-tracker/internal/scraper"
	"github.com/jonathan/job-tracker/internal/types"
)

const maxRequestBytes = 64 << 10

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScrapeJob scrapes a LinkedIn posting and returns it as JSON or CSV.
func (s *Server) handleScrapeJob(w http.ResponseWriter, r *http.Request) {
	req, err := decodeScrapeRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	info, err := s.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		log.Printf("[scraper] %v", err)
		s.writeError(w, &ErrScrape{URL: req.URL, Cause: err})
		return
	}

	if strings.EqualFold(req.Format, "csv") {
		s.csvResponse(w, info)
		return
	}
	s.jsonResponse(w, http.StatusOK, info.Response())
}

// decodeScrapeRequest reads and validates the body. The format defaults to json.
func decodeScrapeRequest(r *http.Request) (*types.ScrapeRequest, error) {
	var req types.ScrapeRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: "failed to read request body"}
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, &ErrValidation{Field: "body", Message: "invalid JSON body"}
		}
	}
	req.URL = strings.TrimSpace(req.URL)

	if req.URL == "" {
		return nil, &ErrValidation{Field: "url", Message: "URL is required"}
	}
	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Format" {
			return nil, &ErrValidation{Field: "format", Message: "format must be json or csv"}
		}
		return nil, &ErrValidation{Field: "url", Message: "Invalid LinkedIn job URL"}
	}
	if req.Format == "" {
		req.Format = "json"
	}
	return &req, nil
}

func (s *Server) csvResponse(w http.ResponseWriter, info scraper.JobInfo) {
	var buf bytes.Buffer
	if err := info.WriteCSV(&buf); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment;filename=job-"+scraper.URLHash(info.URL)+".csv")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing CSV response: %v", err)
	}
}

// writeError maps err to a status and writes {"error": msg}.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ve *ErrValidation
	var se *ErrScrape
	message := err.Error()
	switch {
	case errors.As(err, &ve):
		message = ve.Message
	case errors.As(err, &se):
		message = se.Cause.Error()
	}
	s.jsonResponse(w, HTTPStatus(err), map[string]string{"error": message})
}
