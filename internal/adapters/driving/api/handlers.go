package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/logger"
)

// fileResponse is the body of GET /api/file.
type fileResponse struct {
	Path        string         `json:"path"`
	Mode        string         `json:"mode"`
	Cells       []cellResponse `json:"cells"`
	Annotations int            `json:"annotations"`
	Orphans     []annotation   `json:"orphans"`
	Truncation  string         `json:"truncation,omitempty"`
}

type cellResponse struct {
	Index       int          `json:"index"`
	Heading     string       `json:"heading"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Match       string       `json:"match"`
	Annotations []annotation `json:"annotations"`
}

type annotation struct {
	ID            string  `json:"id"`
	Body          string  `json:"body"`
	Heading       string  `json:"heading"`
	CellIndex     int     `json:"cell_index"`
	Confidence    string  `json:"confidence"`
	CreatedAt     string  `json:"created_at"`
	LastMatchedAt *string `json:"last_matched_at,omitempty"`
}

type addAnnotationRequest struct {
	Path      string `json:"path"`
	Mode      string `json:"mode"`
	CellIndex *int   `json:"cell_index"`
	Body      string `json:"body"`
}

type exportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Dest string `json:"dest"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path, mode, ok := pathAndMode(w, r)
	if !ok {
		return
	}

	doc, err := s.ports.Document.Load(r.Context(), path, mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := fileResponse{
		Path:        doc.Path,
		Mode:        doc.Mode.String(),
		Cells:       make([]cellResponse, len(doc.Cells)),
		Annotations: doc.AnnotationCount(),
		Orphans:     toAnnotations(doc.Orphans),
		Truncation:  string(doc.Truncation),
	}
	for i, rc := range doc.Cells {
		c := cellResponse{
			Index:       rc.Cell.Index,
			Heading:     rc.Cell.HeadingLabel,
			Title:       rc.Cell.Title(),
			Content:     rc.Cell.RawText,
			Match:       "none",
			Annotations: []annotation{},
		}
		if rc.Match != nil {
			c.Match = rc.Match.Kind()
			c.Annotations = toAnnotations(rc.Match.Annotations())
		}
		resp.Cells[i] = c
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	path, mode, ok := pathAndMode(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("index must be an integer"))
		return
	}

	summary, err := s.ports.Document.Summary(r.Context(), path, mode, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleListAnnotations(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing path"))
		return
	}

	list, err := s.ports.Annotation.List(r.Context(), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]annotation{"annotations": toAnnotations(list)})
}

func (s *Server) handleAddAnnotation(w http.ResponseWriter, r *http.Request) {
	var req addAnnotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Path == "" || req.CellIndex == nil || strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, errors.New("path, cell_index, and body are required"))
		return
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	a, err := s.ports.Annotation.Add(r.Context(), req.Path, mode, *req.CellIndex, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAnnotation(*a))
}

func (s *Server) handleDeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing path"))
		return
	}

	if err := s.ports.Annotation.Delete(r.Context(), path, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	path, mode, ok := pathAndMode(w, r)
	if !ok {
		return
	}

	text, err := s.ports.Document.Compose(r.Context(), path, mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing path"))
		return
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	written, err := s.ports.Document.Export(r.Context(), req.Path, mode, req.Dest)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"written": written})
}

func pathAndMode(w http.ResponseWriter, r *http.Request) (string, domain.ParseMode, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing path"))
		return "", "", false
	}
	mode, err := parseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeServiceError(w, err)
		return "", "", false
	}
	return path, mode, true
}

// parseMode leaves an empty mode empty so the service default applies.
func parseMode(s string) (domain.ParseMode, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseParseMode(s)
}

func toAnnotations(list []domain.Annotation) []annotation {
	out := make([]annotation, len(list))
	for i, a := range list {
		out[i] = toAnnotation(a)
	}
	return out
}

func toAnnotation(a domain.Annotation) annotation {
	out := annotation{
		ID:         a.ID,
		Body:       a.Body,
		Heading:    a.HeadingLabel,
		CellIndex:  a.CellIndex,
		Confidence: a.Confidence.String(),
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.LastMatchedAt != nil {
		at := a.LastMatchedAt.UTC().Format(time.RFC3339)
		out.LastMatchedAt = &at
	}
	return out
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAnnotationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidEncoding):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Debug("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
