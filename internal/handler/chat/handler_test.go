package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/misssam/tutor-backend/internal/config"
	modelchat "github.com/misssam/tutor-backend/internal/model/chat"
	"github.com/misssam/tutor-backend/internal/service/ai"
	"github.com/misssam/tutor-backend/internal/service/conversation"
	"github.com/misssam/tutor-backend/internal/service/tutor"
)

type stubChatModel struct {
	reply string
}

func (s *stubChatModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s *stubChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func setupRouter() (*chi.Mux, *conversation.Service) {
	conversations := conversation.NewService()
	completion := ai.NewCompletion(&stubChatModel{reply: "jawab yeh hai"}, time.Second, 0, 200)
	controller := tutor.New(conversations, completion, config.TutorConfig{})
	handler := New(conversations, controller)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, conversations
}

func createSession(t *testing.T, r *chi.Mux) modelchat.Session {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var session modelchat.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func postMessage(t *testing.T, r *chi.Mux, sessionID, content string) (*httptest.ResponseRecorder, tutor.Outcome) {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"content": content})
	req := httptest.NewRequest(http.MethodPost, "/session/"+sessionID+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var outcome tutor.Outcome
	if resp.Code == http.StatusOK {
		if err := json.Unmarshal(resp.Body.Bytes(), &outcome); err != nil {
			t.Fatalf("decode outcome: %v", err)
		}
	}
	return resp, outcome
}

func TestCreateSession(t *testing.T) {
	r, _ := setupRouter()

	session := createSession(t, r)
	if session.ID == "" {
		t.Fatal("expected a session ID")
	}
}

func TestMessageGreetingThenAnswer(t *testing.T) {
	r, _ := setupRouter()
	session := createSession(t, r)

	resp, outcome := postMessage(t, r, session.ID, "Assalam o Alaikum")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if outcome.Kind != tutor.OutcomeGreeting {
		t.Fatalf("expected greeting, got %s", outcome.Kind)
	}

	resp, outcome = postMessage(t, r, session.ID, "2+2 kitna hai?")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if outcome.Kind != tutor.OutcomeAnswered || outcome.Reply != "jawab yeh hai" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestMessageUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	resp, _ := postMessage(t, r, "missing", "hello")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMessageInvalidBody(t *testing.T) {
	r, _ := setupRouter()
	session := createSession(t, r)

	req := httptest.NewRequest(http.MethodPost, "/session/"+session.ID+"/messages", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageEmptyContent(t *testing.T) {
	r, conversations := setupRouter()
	session := createSession(t, r)

	resp, _ := postMessage(t, r, session.ID, "   \t ")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for whitespace-only content, got %d", resp.Code)
	}

	// The rejected input must not touch session state.
	users, assistants, err := conversations.Turns(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Turns err: %v", err)
	}
	if len(users) != 0 || len(assistants) != 0 {
		t.Fatal("empty input must not mutate the conversation")
	}
	if greeted, _ := conversations.Greeted(context.Background(), session.ID); greeted {
		t.Fatal("empty input must not trigger the greeting")
	}
}

func TestTranscriptRendersPairs(t *testing.T) {
	r, _ := setupRouter()
	session := createSession(t, r)

	postMessage(t, r, session.ID, "salam")
	postMessage(t, r, session.ID, "what is 3+3")

	req := httptest.NewRequest(http.MethodGet, "/session/"+session.ID+"/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var turns []modelchat.RenderedTurn
	if err := json.Unmarshal(resp.Body.Bytes(), &turns); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("expected 2 rendered pairs, got %d turns", len(turns))
	}
	if !turns[0].IsUser || turns[0].Text != "salam" {
		t.Fatalf("unexpected first turn: %+v", turns[0])
	}
	if turns[3].IsUser || turns[3].Text != "jawab yeh hai" {
		t.Fatalf("unexpected last turn: %+v", turns[3])
	}
}

func TestTranscriptUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/session/missing/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
