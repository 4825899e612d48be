// Package llm adapts the Gemini generateContent REST API to the LLMClient
// port. The tool-calling loop itself lives in the usecase layer; this client
// only translates one conversation into one request and one model turn back.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sujayx07/TruthScope/internal/domain"
)

const generationTemperature = 0.2

// toolDeclarations describes the three evidence tools in the wire schema the
// model expects.
var toolDeclarations = []map[string]any{
	{
		"name":        domain.ToolCheckDatabaseForURL,
		"description": "Checks whether the article URL's domain is in the credibility database. Returns 'real', 'fake', 'not_found', or 'invalid_url'.",
		"parameters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{"type": "string"},
			},
			"required": []string{"url"},
		},
	},
	{
		"name":        domain.ToolSearchGoogleNews,
		"description": "Searches Google for recent news related to the query. Returns a list of results with title, link, and snippet.",
		"parameters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
			},
			"required": []string{"query"},
		},
	},
	{
		"name":        domain.ToolFactCheckClaims,
		"description": "Fact-checks a list of short claims. Returns at most one published review per claim.",
		"parameters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"claims": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []string{"claims"},
		},
	},
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	Tools             []toolsEnvelope  `json:"tools,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type toolsEnvelope struct {
	FunctionDeclarations []map[string]any `json:"functionDeclarations"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *functionCall     `json:"functionCall,omitempty"`
	FunctionResponse *functionResponse `json:"functionResponse,omitempty"`
}

type functionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type functionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// GeminiClient sends tool-enabled conversations to the Gemini REST endpoint.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGeminiClient(baseURL, apiKey, model string, client *http.Client) *GeminiClient {
	return &GeminiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

func (c *GeminiClient) Chat(ctx context.Context, system string, history []domain.ChatMessage) (*domain.ModelTurn, error) {
	if c.apiKey == "" || strings.HasPrefix(c.apiKey, "YOUR_") {
		return nil, &domain.ConfigurationError{Setting: "GOOGLE_API_KEY"}
	}

	reqBody := generateRequest{
		Contents: convertHistory(history),
		Tools:    []toolsEnvelope{{FunctionDeclarations: toolDeclarations}},
		GenerationConfig: generationConfig{
			Temperature: generationTemperature,
		},
	}
	if system != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.APIError{Collaborator: "model", Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &domain.APIError{
			Collaborator: "model",
			Status:       resp.StatusCode,
			Message:      strings.TrimSpace(string(body)),
		}
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, &domain.APIError{Collaborator: "model", Message: "invalid response", Err: err}
	}

	if len(genResp.Candidates) == 0 {
		return nil, &domain.APIError{Collaborator: "model", Message: "no candidates in response"}
	}

	turn := &domain.ModelTurn{}
	var text strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		if p.FunctionCall != nil {
			turn.Calls = append(turn.Calls, domain.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			})
			continue
		}
		text.WriteString(p.Text)
	}
	turn.Text = strings.TrimSpace(text.String())

	if turn.Text == "" && len(turn.Calls) == 0 {
		return nil, &domain.APIError{Collaborator: "model", Message: "candidate contained neither text nor tool calls"}
	}
	return turn, nil
}

// Version returns the wrapped model name.
func (c *GeminiClient) Version() string {
	return c.model
}

func convertHistory(history []domain.ChatMessage) []content {
	contents := make([]content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case domain.RoleModel:
			parts := make([]part, 0, len(msg.Calls)+1)
			for _, call := range msg.Calls {
				parts = append(parts, part{FunctionCall: &functionCall{Name: call.Name, Args: call.Args}})
			}
			if msg.Text != "" {
				parts = append(parts, part{Text: msg.Text})
			}
			contents = append(contents, content{Role: "model", Parts: parts})
		case domain.RoleTool:
			parts := make([]part, 0, len(msg.Results))
			for _, result := range msg.Results {
				parts = append(parts, part{FunctionResponse: &functionResponse{
					Name:     result.Name,
					Response: result.Response,
				}})
			}
			contents = append(contents, content{Role: "user", Parts: parts})
		default:
			contents = append(contents, content{Role: "user", Parts: []part{{Text: msg.Text}}})
		}
	}
	return contents
}

var _ domain.LLMClient = (*GeminiClient)(nil)
