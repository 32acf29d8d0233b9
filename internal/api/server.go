// Package api exposes the codec over HTTP: upload a plugin file for a
// structural summary, or validate it and get offset diagnostics back.
package api

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/skelsey/tes3io/internal/logger"
	"github.com/skelsey/tes3io/pkg/esm"
)

// maxUploadBytes bounds decoded upload size. The largest shipped master
// file is under 256 MiB.
const maxUploadBytes = 512 << 20

type Server struct {
	codec esm.Codec
	store *InspectionStore
	log   logger.Logger
	clock func() time.Time
}

func NewServer(codec esm.Codec, store *InspectionStore, log logger.Logger) *Server {
	if store == nil {
		store = NewInspectionStore()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		codec: codec,
		store: store,
		log:   log,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/inspect", s.handleInspect)
	e.GET("/v1/inspections/:id", s.handleGetInspection)
	e.DELETE("/v1/inspections/:id", s.handleDeleteInspection)
	e.POST("/v1/validate", s.handleValidate)
	e.GET("/healthz", s.handleHealth)
}

func (s *Server) handleInspect(c *echo.Context) error {
	req, err := decodeJSON[InspectRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(req.Data) == 0 {
		return writeBadRequest(c, "data is required")
	}
	if len(req.Data) > maxUploadBytes {
		return writeError(c, http.StatusRequestEntityTooLarge, "too_large", "file exceeds upload limit")
	}

	f, err := s.codec.Decode(req.Data)
	if err != nil {
		s.log.Warn("inspect failed", "name", req.Name, "err", err)
		return writeDecodeError(c, err)
	}

	resp := InspectResponse{
		ID:        newInspectionID(),
		Object:    "inspection",
		CreatedAt: s.clock().Unix(),
		Name:      req.Name,
		Header:    summarizeHeader(f.Header),
		Records:   countRecords(f.Records),
	}
	s.store.Save(resp)
	s.log.Info("inspected", "id", resp.ID, "name", req.Name, "records", len(f.Records))
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetInspection(c *echo.Context) error {
	resp, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "no such inspection")
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteInspection(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "no such inspection")
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "deleted": true})
}

func (s *Server) handleValidate(c *echo.Context) error {
	req, err := decodeJSON[ValidateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(req.Data) == 0 {
		return writeBadRequest(c, "data is required")
	}
	if len(req.Data) > maxUploadBytes {
		return writeError(c, http.StatusRequestEntityTooLarge, "too_large", "file exceeds upload limit")
	}

	if _, err := s.codec.Decode(req.Data); err != nil {
		return c.JSON(http.StatusOK, ValidateResponse{
			Valid:      false,
			Diagnostic: diagnose(err),
		})
	}
	return c.JSON(http.StatusOK, ValidateResponse{Valid: true})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func summarizeHeader(h esm.FileHeader) HeaderSummary {
	out := HeaderSummary{
		Version:     h.Version,
		Type:        h.Type.String(),
		Author:      h.Author,
		Description: h.Description,
		NumRecords:  h.NumRecords,
	}
	for _, ref := range h.Refs {
		out.Masters = append(out.Masters, ref.Name)
	}
	return out
}

func countRecords(records []esm.Record) []RecordCount {
	byTag := make(map[string]*RecordCount)
	for _, rec := range records {
		tag := rec.Tag.String()
		rc, ok := byTag[tag]
		if !ok {
			rc = &RecordCount{Tag: tag}
			byTag[tag] = rc
		}
		rc.Count++
		rc.Fields += len(rec.Fields)
	}
	out := make([]RecordCount, 0, len(byTag))
	for _, rc := range byTag {
		out = append(out, *rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// diagnose maps a decode failure to its wire form, keeping the offsets.
func diagnose(err error) *Diagnostic {
	var (
		end  *esm.UnexpectedEndError
		size *esm.SizeMismatchError
		sig  *esm.SignatureMismatchError
		typ  *esm.UnrecognizedFileTypeError
	)
	switch {
	case errors.Is(err, esm.ErrFormatNotRecognized):
		return &Diagnostic{Kind: "format_not_recognized", Message: err.Error()}
	case errors.As(err, &end):
		off := int64(end.Offset)
		return &Diagnostic{Kind: "unexpected_end", Message: err.Error(), Offset: &off}
	case errors.As(err, &size):
		off := int64(size.Offset)
		declared := int64(size.Declared)
		consumed := int64(size.Consumed)
		return &Diagnostic{
			Kind:     "size_mismatch",
			Message:  err.Error(),
			Offset:   &off,
			Declared: &declared,
			Consumed: &consumed,
		}
	case errors.As(err, &sig):
		off := int64(sig.Offset)
		return &Diagnostic{
			Kind:     "signature_mismatch",
			Message:  err.Error(),
			Offset:   &off,
			Expected: sig.Expected,
			Actual:   sig.Actual,
		}
	case errors.As(err, &typ):
		return &Diagnostic{Kind: "unrecognized_file_type", Message: err.Error()}
	default:
		return &Diagnostic{Kind: "decode_error", Message: err.Error()}
	}
}

func writeDecodeError(c *echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]any{
		"error":      apiError{Message: err.Error(), Type: "decode_error"},
		"diagnostic": diagnose(err),
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": apiError{Message: msg, Type: errType},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
