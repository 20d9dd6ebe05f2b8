package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

func chatCompletionsServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handler)
	return httptest.NewServer(mux)
}

// completionBody wraps model output in a chat completions response.
func completionBody(content string) string {
	msg, _ := json.Marshal(content)
	return fmt.Sprintf(`{"choices": [{"message": {"content": %s}, "finish_reason": "stop"}]}`, msg)
}

const analysisJSON = `{
	"tasks": [
		{
			"title": "Submit lab report",
			"description": "Chemistry lab 4 writeup",
			"deadline": "2025-06-06T12:00:00.000Z",
			"priority": "high",
			"category": "Study",
			"subject": "Chemistry"
		}
	],
	"summary": "One lab report due Friday"
}`

func TestNewOpenAIExtractor(t *testing.T) {
	if _, err := NewOpenAIExtractor("", "", ""); err == nil {
		t.Error("expected error for missing API key")
	}

	extractor, err := NewOpenAIExtractor("sk-test", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impl := extractor.(*OpenAIExtractor)
	if impl.model != "gpt-4o-mini" {
		t.Errorf("expected default model, got %s", impl.model)
	}
	if impl.baseURL != "https://api.openai.com/v1" {
		t.Errorf("expected default base URL, got %s", impl.baseURL)
	}
}

func TestExtract(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	srv := chatCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody(analysisJSON)))
	})
	defer srv.Close()

	extractor, err := NewOpenAIExtractor("sk-test", "gpt-4o-mini", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analysis, err := extractor.Extract(context.Background(), "Lab report due Friday at noon")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(analysis.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(analysis.Tasks))
	}
	task := analysis.Tasks[0]
	if task.Title != "Submit lab report" {
		t.Errorf("unexpected title: %s", task.Title)
	}
	if task.Priority != domain.PriorityHigh {
		t.Errorf("expected high priority, got %s", task.Priority)
	}
	if task.Category != domain.CategoryStudy {
		t.Errorf("expected Study category, got %s", task.Category)
	}
	if analysis.Summary != "One lab report due Friday" {
		t.Errorf("unexpected summary: %s", analysis.Summary)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %s", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("expected model in request, got %s", gotReq.Model)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Error("expected response_format json_object")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Error("expected system plus user messages")
	}
	if !strings.Contains(gotReq.Messages[1].Content, "Lab report due Friday at noon") {
		t.Error("expected user content in request")
	}
}

func TestExtractToleratesCodeFence(t *testing.T) {
	srv := chatCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("```json\n" + analysisJSON + "\n```")))
	})
	defer srv.Close()

	extractor, _ := NewOpenAIExtractor("sk-test", "", srv.URL)

	analysis, err := extractor.Extract(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(analysis.Tasks) != 1 {
		t.Errorf("expected fenced JSON parsed, got %d tasks", len(analysis.Tasks))
	}
}

func TestExtractAPIError(t *testing.T) {
	srv := chatCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	})
	defer srv.Close()

	extractor, _ := NewOpenAIExtractor("sk-bad", "", srv.URL)

	_, err := extractor.Extract(context.Background(), "some text")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("expected API error message surfaced, got %v", err)
	}
}

func TestExtractNoChoices(t *testing.T) {
	srv := chatCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	})
	defer srv.Close()

	extractor, _ := NewOpenAIExtractor("sk-test", "", srv.URL)

	if _, err := extractor.Extract(context.Background(), "some text"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestExtractMalformedModelOutput(t *testing.T) {
	srv := chatCompletionsServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("Sorry, I cannot help with that.")))
	})
	defer srv.Close()

	extractor, _ := NewOpenAIExtractor("sk-test", "", srv.URL)

	if _, err := extractor.Extract(context.Background(), "some text"); err == nil {
		t.Error("expected error for non-JSON model output")
	}
}

func TestParseAnalysisDefaults(t *testing.T) {
	analysis, err := parseAnalysis(`{
		"tasks": [{"title": "Loose task"}],
		"summary": "s"
	}`)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if analysis.Tasks[0].Priority != domain.PriorityMedium {
		t.Errorf("expected default medium priority, got %s", analysis.Tasks[0].Priority)
	}
	if analysis.Tasks[0].Category != domain.CategoryPersonal {
		t.Errorf("expected default Personal category, got %s", analysis.Tasks[0].Category)
	}
}

func TestParseAnalysisNoTasks(t *testing.T) {
	analysis, err := parseAnalysis(`{"summary": "nothing actionable"}`)
	if err != nil {
		t.Fatalf("parseAnalysis failed: %v", err)
	}
	if analysis.Tasks == nil {
		t.Error("expected empty slice rather than nil tasks")
	}
	if len(analysis.Tasks) != 0 {
		t.Errorf("expected 0 tasks, got %d", len(analysis.Tasks))
	}
}
