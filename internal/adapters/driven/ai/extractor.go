package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Ensure OpenAIExtractor implements TaskExtractor
var _ driven.TaskExtractor = (*OpenAIExtractor)(nil)

// extractorSystemPrompt instructs the model to return strict JSON matching
// domain.Analysis.
const extractorSystemPrompt = `You are an intelligent email analyzer. Extract tasks, deadlines, and important events from the text.
Return your analysis as a JSON object with this structure:
{
  "tasks": [
    {
      "title": "Task title",
      "description": "Task description",
      "deadline": "ISO date string (YYYY-MM-DDTHH:mm:ss.sssZ) or empty if no specific deadline",
      "priority": "high" | "medium" | "low",
      "category": "Study" | "Personal" | "Admin",
      "subject": "Subject/Course name if applicable"
    }
  ],
  "summary": "Brief summary of the text"
}

Guidelines:
- Extract actionable tasks with clear deadlines
- Set priority based on urgency indicated in the text
- Use "high" priority for urgent items with close deadlines
- Include subject/course names when mentioned
- Be concise and actionable
- Return ONLY the JSON object, no surrounding prose`

// OpenAIExtractor implements TaskExtractor against an OpenAI-compatible
// chat completions API.
type OpenAIExtractor struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIExtractor creates a task extractor
func NewOpenAIExtractor(apiKey, model, baseURL string) (driven.TaskExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI API key is required")
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIExtractor{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// chatRequest is the request body for the chat completions API
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response from the chat completions API
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Extract analyzes free text and returns structured task proposals
func (e *OpenAIExtractor) Extract(ctx context.Context, content string) (*domain.Analysis, error) {
	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: extractorSystemPrompt},
			{Role: "user", Content: "Analyze this text and extract tasks:\n\n" + content},
		},
		Temperature: 0.2,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	resp, err := e.doRequest(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("AI API returned no choices")
	}

	analysis, err := parseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return analysis, nil
}

// parseAnalysis decodes the model output, tolerating a markdown code fence
// around the JSON object.
func parseAnalysis(content string) (*domain.Analysis, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, err
	}

	// Normalize fields the model is allowed to get loose.
	for i := range analysis.Tasks {
		task := &analysis.Tasks[i]
		if task.Priority == "" {
			task.Priority = domain.PriorityMedium
		}
		if task.Category == "" {
			task.Category = domain.CategoryPersonal
		}
	}
	if analysis.Tasks == nil {
		analysis.Tasks = []domain.ExtractedTask{}
	}

	return &analysis, nil
}

// doRequest makes a request to the chat completions API
func (e *OpenAIExtractor) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("AI API error: %s (type: %s, code: %s)",
			chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API returned status %d", resp.StatusCode)
	}

	return &chatResp, nil
}
