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
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nocturnal/nocturnal-api/internal/core/ports"
)

type stubMessageService struct {
	inputs []ports.CreateMessageInput
	replay bool
	id     string
	err    error
}

func (s *stubMessageService) CreateMessage(_ context.Context, in ports.CreateMessageInput) (*ports.MessageResult, error) {
	s.inputs = append(s.inputs, in)
	if s.err != nil {
		return nil, s.err
	}
	return &ports.MessageResult{ID: s.id, AlreadyExisted: s.replay}, nil
}

func postMessage(t *testing.T, h *MessageHandler, body, key string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/admin/messages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	return rec, h.Create(e.NewContext(req, rec))
}

func TestCreateMessage_Created(t *testing.T) {
	author := primitive.NewObjectID().Hex()
	svc := &stubMessageService{id: primitive.NewObjectID().Hex()}
	h := NewMessageHandler(svc)

	rec, err := postMessage(t, h, `{"author":"`+author+`","content":"  hi there  "}`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.inputs[0].Content != "  hi there  " {
		t.Errorf("content should pass through verbatim, got %q", svc.inputs[0].Content)
	}
	if svc.inputs[0].IdempotencyKey != "" {
		t.Errorf("expected empty key, got %q", svc.inputs[0].IdempotencyKey)
	}

	var got createdResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != svc.id {
		t.Errorf("expected id %s, got %s", svc.id, got.ID)
	}
}

func TestCreateMessage_ReplayReturns200(t *testing.T) {
	svc := &stubMessageService{id: primitive.NewObjectID().Hex(), replay: true}
	h := NewMessageHandler(svc)

	rec, err := postMessage(t, h, `{"author":"`+primitive.NewObjectID().Hex()+`","content":"x"}`, "retry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
	if svc.inputs[0].IdempotencyKey != "retry-1" {
		t.Errorf("expected key forwarded, got %q", svc.inputs[0].IdempotencyKey)
	}
}

func TestCreateMessage_InvalidAuthor(t *testing.T) {
	svc := &stubMessageService{}
	h := NewMessageHandler(svc)

	_, err := postMessage(t, h, `{"author":"not-an-id","content":"x"}`, "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if len(svc.inputs) != 0 {
		t.Errorf("service should not be called")
	}
}

func TestCreateMessage_ServiceError(t *testing.T) {
	svcErr := errors.New("insert failed")
	h := NewMessageHandler(&stubMessageService{err: svcErr})

	_, err := postMessage(t, h, `{"author":"`+primitive.NewObjectID().Hex()+`","content":"x"}`, "")
	if !errors.Is(err, svcErr) {
		t.Fatalf("expected service error, got %v", err)
	}
}
