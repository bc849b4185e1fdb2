package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini extracts structured qualifications and requirements from a raw job
// description. It backs the Service; the manual extractor takes over when the
// model is unavailable or returns garbage.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

type extraction struct {
	Qualifications []string `json:"qualifications"`
	Requirements   []string `json:"requirements"`
}

const extractPrompt = `Extract the candidate qualifications and the hard requirements from this job description.
Respond with JSON only, shaped as {"qualifications": [...], "requirements": [...]}.
Each entry must be a short phrase taken from the text, at most 8 entries per list.

Job description:
%s`

func (g *Gemini) Extract(ctx context.Context, description string) ([]string, []string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, nil, errors.New("empty description")
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(extractPrompt, description)))
	if err != nil {
		return nil, nil, fmt.Errorf("generate content: %w", err)
	}

	text, err := textFromResponse(resp)
	if err != nil {
		return nil, nil, err
	}

	var out extraction
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &out); err != nil {
		return nil, nil, fmt.Errorf("decode model output: %w", err)
	}
	return trimAll(out.Qualifications), trimAll(out.Requirements), nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
