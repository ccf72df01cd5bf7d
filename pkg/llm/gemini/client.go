package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/validate"
)

const (
	defaultModel = "gemini-2.5-flash"
	providerName = "gemini"
)

// modelsAPI is the subset of *genai.Models used here.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Client implements llm.Generator on top of the Google GenAI SDK.
type Client struct {
	models      modelsAPI
	model       string
	temperature *float32
}

var _ llm.Generator = (*Client)(nil)

// New creates a client configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newWithModels(client.Models, model), nil
}

func newWithModels(models modelsAPI, model string) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Client{models: models, model: model, temperature: genai.Ptr[float32](0.2)}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends the prompt and returns the concatenated text of the first candidate.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{Temperature: c.temperature}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Mode == llm.ModeJSON {
		cfg.ResponseMIMEType = "application/json"
		if req.Schema != nil {
			cfg.ResponseSchema = toGenaiSchema(req.Schema.Root)
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", llm.Fail(providerName, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llm.Fail(providerName, errors.New("empty response"))
	}
	return text, nil
}

// Name implements health.Checker.
func (c *Client) Name() string { return "gemini" }

// Check verifies that the configured model is reachable.
func (c *Client) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := c.models.Get(ctx, c.model, &genai.GetModelConfig{}); err != nil {
		return fmt.Errorf("gemini model %s: %w", c.model, err)
	}
	return nil
}

// toGenaiSchema mirrors a validation descriptor as a provider response schema.
// Cross-field checks cannot be expressed there and stay with the validator.
func toGenaiSchema(f validate.Field) *genai.Schema {
	s := &genai.Schema{Description: f.Description}
	if f.Nullable {
		s.Nullable = genai.Ptr(true)
	}
	switch f.Kind {
	case validate.KindString:
		s.Type = genai.TypeString
		if len(f.Enum) > 0 {
			s.Enum = append([]string(nil), f.Enum...)
		}
	case validate.KindNumber:
		s.Type = genai.TypeNumber
		s.Minimum = f.Min
		s.Maximum = f.Max
	case validate.KindBool:
		s.Type = genai.TypeBoolean
	case validate.KindArray:
		s.Type = genai.TypeArray
		if f.Items != nil {
			s.Items = toGenaiSchema(*f.Items)
		}
		if f.NonEmpty {
			s.MinItems = genai.Ptr[int64](1)
		}
	case validate.KindObject:
		s.Type = genai.TypeObject
		s.Properties = make(map[string]*genai.Schema, len(f.Fields))
		for _, child := range f.Fields {
			s.Properties[child.Name] = toGenaiSchema(child)
			s.PropertyOrdering = append(s.PropertyOrdering, child.Name)
			if child.Required {
				s.Required = append(s.Required, child.Name)
			}
		}
	}
	return s
}
