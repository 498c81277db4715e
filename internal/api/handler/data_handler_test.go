package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// ---- Stubs ----

type stubDocumentService struct {
	docs    map[string]domain.Document
	saveErr error
	loadErr error
	saved   []string
}

func newStubDocuments() *stubDocumentService {
	return &stubDocumentService{docs: map[string]domain.Document{}}
}

func (s *stubDocumentService) Load(_ context.Context, username string) (domain.Document, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.docs[username], nil
}

func (s *stubDocumentService) Save(_ context.Context, username string, doc domain.Document) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[username] = doc
	s.saved = append(s.saved, username)
	return nil
}

// ---- Tests ----

func TestDataHandler_Get_ReturnsDocument(t *testing.T) {
	e := newEcho()
	docs := newStubDocuments()
	docs.docs["alice"] = domain.Document{"2024-03-01": {Custodian: domain.GuardianA}}
	handler := NewDataHandler(docs)

	req := httptest.NewRequest(http.MethodGet, "/api/data?username=Alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got domain.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["2024-03-01"].Custodian != domain.GuardianA {
		t.Fatalf("unexpected document: %+v", got)
	}
}

func TestDataHandler_Get_UnknownUserIsEmptyObject(t *testing.T) {
	e := newEcho()
	handler := NewDataHandler(newStubDocuments())

	req := httptest.NewRequest(http.MethodGet, "/api/data?username=nobody", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "{}" {
		t.Fatalf("expected {}, got %s", body)
	}
}

func TestDataHandler_RequiresUsername(t *testing.T) {
	e := newEcho()
	handler := NewDataHandler(newStubDocuments())

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req := httptest.NewRequest(method, "/api/data?username=%20", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		var err error
		if method == http.MethodGet {
			err = handler.Get(c)
		} else {
			err = handler.Save(c)
		}
		if got := validationMessage(t, err); got != "Username is required." {
			t.Fatalf("%s: unexpected message %q", method, got)
		}
	}
}

func TestDataHandler_Save_ReplacesDocument(t *testing.T) {
	e := newEcho()
	docs := newStubDocuments()
	handler := NewDataHandler(docs)

	body := `{"2024-03-01":{"custodian":"B","notes":"swap"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/data?username=bob", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if got := docs.docs["bob"]["2024-03-01"]; got.Custodian != domain.GuardianB || got.Notes != "swap" {
		t.Fatalf("unexpected saved entry: %+v", got)
	}
}

func TestDataHandler_Save_InvalidPayload(t *testing.T) {
	e := newEcho()
	docs := newStubDocuments()
	handler := NewDataHandler(docs)

	req := httptest.NewRequest(http.MethodPost, "/api/data?username=bob", strings.NewReader(`[1,2]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Save(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(docs.saved) != 0 {
		t.Fatalf("nothing should be saved")
	}
}

func TestDataHandler_Save_PropagatesServiceError(t *testing.T) {
	e := newEcho()
	docs := newStubDocuments()
	docs.saveErr = domain.Invalid(`invalid date "2024-13-01", expected YYYY-MM-DD`)
	handler := NewDataHandler(docs)

	req := httptest.NewRequest(http.MethodPost, "/api/data?username=bob", strings.NewReader(`{"2024-13-01":{"custodian":"A"}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Save(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
