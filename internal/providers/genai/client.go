// Package genai is a lightweight facade over the Gemini REST API implementing
// the generation capability contracts. It speaks the generateContent wire
// format directly so the rest of the service never depends on SDK types.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Masty1988/my-social-flow/internal/domain"
	"github.com/Masty1988/my-social-flow/internal/prompt"
	"github.com/Masty1988/my-social-flow/internal/providers/generation"
)

// Options controls how the client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client calls the Gemini generateContent endpoint for both text and image
// modalities. It is single-shot: a failed call surfaces immediately.
type Client struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	httpClient *http.Client
	logger     zerolog.Logger
}

const defaultTimeout = 60 * time.Second

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Properties  map[string]*geminiSchema `json:"properties,omitempty"`
	Items       *geminiSchema            `json:"items,omitempty"`
	Required    []string                 `json:"required,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *geminiSchema `json:"responseSchema,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	CandidateCount     int           `json:"candidateCount,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults. A nil HTTP client gets a
// reusable one with a generation-sized timeout.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	textModel := strings.TrimSpace(opts.TextModel)
	if textModel == "" {
		textModel = "gemini-2.0-flash"
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "gemini-2.0-flash-exp-image-generation"
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		textModel:  textModel,
		imageModel: imageModel,
		httpClient: client,
		logger:     logger,
	}
}

// GenerateContent sends the instruction (and the uploaded image, when
// present) to the text model with the schema attached as a structured-output
// constraint, and returns the raw text the model emitted.
func (c *Client) GenerateContent(ctx context.Context, req generation.ContentRequest) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMisconfigured
	}
	parts := make([]geminiPart, 0, 2)
	if req.Image != nil {
		mime := req.Image.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
		}})
	}
	parts = append(parts, geminiPart{Text: req.Instruction})

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   translateSchema(req.Schema),
			CandidateCount:   1,
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, c.textModel, payload, &response); err != nil {
		return "", err
	}
	text := extractText(response)
	if text == "" {
		return "", fmt.Errorf("%w: empty text response", domain.ErrUpstreamFailure)
	}
	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.textModel).
		Int("bytes", len(text)).
		Msg("genai: text generation completed")
	return text, nil
}

// GenerateImage asks the image model for an illustration and returns the
// first inline image part as a data URI.
func (c *Client) GenerateImage(ctx context.Context, imagePrompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMisconfigured
	}
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: imagePrompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, c.imageModel, payload, &response); err != nil {
		return "", err
	}
	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			c.logger.Debug().
				Str("model", c.imageModel).
				Str("mime", mime).
				Msg("genai: image generation completed")
			return "data:" + mime + ";base64," + part.InlineData.Data, nil
		}
	}
	return "", domain.ErrNoImageProduced
}

func (c *Client) invoke(ctx context.Context, model string, payload any, out any) error {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamFailure, err)
	}
	return nil
}

func extractText(resp geminiGenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func translateSchema(schema prompt.OutputSchema) *geminiSchema {
	out := &geminiSchema{
		Type:       "OBJECT",
		Properties: make(map[string]*geminiSchema, len(schema.Properties)),
		Required:   schema.Required,
	}
	for key, prop := range schema.Properties {
		out.Properties[key] = translateProperty(prop)
	}
	return out
}

func translateProperty(p prompt.Property) *geminiSchema {
	s := &geminiSchema{Type: strings.ToUpper(p.Type), Description: p.Description}
	if p.Items != nil {
		s.Items = translateProperty(*p.Items)
	}
	return s
}

var (
	_ generation.TextGenerator  = (*Client)(nil)
	_ generation.ImageGenerator = (*Client)(nil)
)
