package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger      *zap.Logger
	registry    *calculator.Registry
	about       map[string]string
	maxBodySize int64
	version     string
}

type calculatorSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

type fieldDetail struct {
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Kind          string   `json:"kind"`
	Policy        string   `json:"policy"`
	Default       *float64 `json:"default,omitempty"`
	DefaultChoice string   `json:"defaultChoice,omitempty"`
	Choices       []string `json:"choices,omitempty"`
	Help          string   `json:"help,omitempty"`
}

type outputDetail struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Format string `json:"format"`
}

type calculatorDetail struct {
	calculatorSummary
	Fields    []fieldDetail  `json:"fields"`
	Outputs   []outputDetail `json:"outputs"`
	AboutHTML string         `json:"aboutHtml"`
}

type evaluateRequest struct {
	Inputs map[string]interface{} `json:"inputs"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Issues []validation.Issue `json:"issues,omitempty"`
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, registry *calculator.Registry, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		registry:    registry,
		about:       renderAbout(logger, registry),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	// Version endpoint for UI metadata
	mux.HandleFunc("GET /api/version", h.handleVersion)

	// Catalog and per-calculator form definitions
	mux.HandleFunc("GET /api/calculators", h.handleList)
	mux.HandleFunc("GET /api/calculators/{id}", h.handleDetail)

	// Form submission
	mux.HandleFunc("POST /api/calculators/{id}/evaluate", h.handleEvaluate)

	return h.withRequestID(mux)
}

// renderAbout converts every calculator's markdown once up front.
func renderAbout(logger *zap.Logger, registry *calculator.Registry) map[string]string {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	about := make(map[string]string, registry.Len())
	for _, spec := range registry.List() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(spec.About), &buf); err != nil {
			logger.Warn("failed to render calculator notes",
				zap.String("op", "server.renderAbout"),
				zap.String("calculator", spec.ID),
				zap.Error(err),
			)
			continue
		}
		about[spec.ID] = buf.String()
	}
	return about
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Info("request handled",
			zap.String("op", "server.request"),
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	specs := h.registry.List()
	summaries := make([]calculatorSummary, 0, len(specs))
	for _, spec := range specs {
		summaries = append(summaries, summarize(spec))
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	spec, ok := h.registry.Get(id)
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", id), "server.handleDetail")
		return
	}

	detail := calculatorDetail{
		calculatorSummary: summarize(spec),
		Fields:            make([]fieldDetail, 0, len(spec.Fields)),
		Outputs:           make([]outputDetail, 0, len(spec.Outputs)),
		AboutHTML:         h.about[spec.ID],
	}
	for _, field := range spec.Fields {
		fd := fieldDetail{
			Name:    field.Name,
			Label:   field.Label,
			Kind:    field.Kind.String(),
			Policy:  field.Policy.String(),
			Choices: field.Choices,
			Help:    field.Help,
		}
		if field.Policy == calculator.Permissive && field.Kind == calculator.Number {
			def := field.Default
			fd.Default = &def
		}
		if field.Kind == calculator.Choice {
			fd.DefaultChoice = field.DefaultChoice
		}
		detail.Fields = append(detail.Fields, fd)
	}
	for _, out := range spec.Outputs {
		detail.Outputs = append(detail.Outputs, outputDetail{Name: out.Name, Label: out.Label, Format: out.Format.String()})
	}

	h.writeJSON(w, http.StatusOK, detail)
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluate"

	id := r.PathValue("id")
	if _, ok := h.registry.Get(id); !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", id), op)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	raw, err := decodeInputs(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), op)
		return
	}

	view, err := h.registry.Evaluate(id, raw)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			h.logger.Info("calculator inputs rejected",
				zap.String("op", op),
				zap.String("calculator", id),
				zap.Int("issues", len(vErr.Issues)),
			)
			h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: vErr.Error(), Issues: vErr.Issues})
		case errors.Is(err, calculator.ErrUnknownCalculator):
			h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		case errors.Is(err, calculator.ErrNonFiniteResult):
			h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		default:
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// decodeInputs reads either a JSON {"inputs": {...}} body or a urlencoded
// form into raw field text.
func decodeInputs(r *http.Request) (calculator.RawInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		raw := make(calculator.RawInput, len(r.PostForm))
		for key := range r.PostForm {
			raw[key] = r.PostForm.Get(key)
		}
		return raw, nil
	}

	var payload evaluateRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}

	raw := make(calculator.RawInput, len(payload.Inputs))
	for key, value := range payload.Inputs {
		text, err := inputText(value)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", key, err)
		}
		raw[key] = text
	}
	return raw, nil
}

// inputText flattens one JSON value to the text a form field would carry.
// Arrays become semicolon-separated lists.
func inputText(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return "", fmt.Errorf("invalid number %s", v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if _, nested := item.([]interface{}); nested {
				return "", errors.New("nested lists are not supported")
			}
			text, err := inputText(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
		}
		return strings.Join(parts, ";"), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", value)
}

func summarize(spec calculator.Spec) calculatorSummary {
	return calculatorSummary{ID: spec.ID, Title: spec.Title, Category: spec.Category, Summary: spec.Summary}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
