package api

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/skelsey/tes3io/pkg/esm"
)

func newTestEcho() *echo.Echo {
	server := NewServer(esm.Codec{}, NewInspectionStore(), nil)
	e := echo.New()
	server.Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func pluginBytes(t *testing.T) []byte {
	t.Helper()
	var codec esm.Codec
	data, err := codec.Encode(&esm.File{
		Header: esm.FileHeader{
			Version:     0x0133,
			Type:        esm.Plugin,
			Author:      "tester",
			Description: []string{"fixture"},
			NumRecords:  2,
			Refs:        []esm.FileRef{{Name: "Morrowind.esm", Size: 1024}},
		},
		Records: []esm.Record{
			{Tag: esm.GMST, Fields: []esm.Field{
				{Tag: esm.NAME, Data: esm.StringData{Value: "sDay"}},
				{Tag: esm.STRV, Data: esm.StringData{Value: "Day"}},
			}},
			{Tag: esm.GMST, Fields: []esm.Field{
				{Tag: esm.NAME, Data: esm.StringData{Value: "sNight"}},
			}},
		},
	})
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return data
}

func TestInspectLifecycle(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/inspect", InspectRequest{Name: "fixture.esp", Data: pluginBytes(t)})
	if rec.Code != http.StatusOK {
		t.Fatalf("inspect status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var created InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode inspect response: %v", err)
	}
	if !strings.HasPrefix(created.ID, "insp_") {
		t.Fatalf("unexpected inspection id %q", created.ID)
	}
	if created.Header.Type != "plugin" || created.Header.Author != "tester" {
		t.Fatalf("unexpected header summary: %+v", created.Header)
	}
	if len(created.Header.Masters) != 1 || created.Header.Masters[0] != "Morrowind.esm" {
		t.Fatalf("unexpected masters: %v", created.Header.Masters)
	}
	if len(created.Records) != 1 || created.Records[0].Tag != "GMST" || created.Records[0].Count != 2 || created.Records[0].Fields != 3 {
		t.Fatalf("unexpected record counts: %+v", created.Records)
	}

	getRec := doJSON(t, e, http.MethodGet, "/v1/inspections/"+created.ID, nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status: got %d body=%s", getRec.Code, getRec.Body.String())
	}

	delRec := doJSON(t, e, http.MethodDelete, "/v1/inspections/"+created.ID, nil)
	if delRec.Code != http.StatusOK {
		t.Fatalf("delete status: got %d body=%s", delRec.Code, delRec.Body.String())
	}
	if doJSON(t, e, http.MethodGet, "/v1/inspections/"+created.ID, nil).Code != http.StatusNotFound {
		t.Fatal("expected 404 after delete")
	}
}

func TestInspectRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/inspect", InspectRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestInspectRejectsForeignFile(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/inspect", InspectRequest{Data: []byte("GIF89a not a plugin")})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "format_not_recognized") {
		t.Fatalf("missing diagnostic kind: %s", rec.Body.String())
	}
}

func TestValidateGoodFile(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/validate", ValidateRequest{Data: pluginBytes(t)})
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode validate response: %v", err)
	}
	if !resp.Valid || resp.Diagnostic != nil {
		t.Fatalf("expected a clean verdict: %+v", resp)
	}
}

func TestValidateReportsOffset(t *testing.T) {
	t.Parallel()

	// Truncate mid-record so the decoder fails with a located error.
	data := pluginBytes(t)
	truncated := data[:len(data)-3]
	// Records after the header still declare their full size.
	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/validate", ValidateRequest{Data: truncated})
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode validate response: %v", err)
	}
	if resp.Valid || resp.Diagnostic == nil {
		t.Fatalf("expected a diagnostic: %+v", resp)
	}
	if resp.Diagnostic.Kind != "unexpected_end" || resp.Diagnostic.Offset == nil {
		t.Fatalf("unexpected diagnostic: %+v", resp.Diagnostic)
	}
}

func TestValidateReportsSizeMismatch(t *testing.T) {
	t.Parallel()

	// Append a record declaring 10 body bytes but holding one empty field
	// frame plus 2 bytes of slack, which is not enough for another frame.
	var rec bytes.Buffer
	rec.Write(pluginBytes(t))
	hdr := make([]byte, 16)
	copy(hdr[0:4], "STAT")
	binary.LittleEndian.PutUint32(hdr[4:8], 10)
	rec.Write(hdr)
	field := make([]byte, 10)
	copy(field[0:4], "XXXX")
	rec.Write(field)

	e := newTestEcho()
	r := doJSON(t, e, http.MethodPost, "/v1/validate", ValidateRequest{Data: rec.Bytes()})
	var resp ValidateResponse
	if err := json.Unmarshal(r.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode validate response: %v", err)
	}
	if resp.Valid || resp.Diagnostic == nil || resp.Diagnostic.Kind != "size_mismatch" {
		t.Fatalf("expected a size mismatch diagnostic: %+v", resp)
	}
	if resp.Diagnostic.Declared == nil || *resp.Diagnostic.Declared != 10 {
		t.Fatalf("unexpected declared size: %+v", resp.Diagnostic)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}
