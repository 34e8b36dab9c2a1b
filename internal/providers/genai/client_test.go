package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Masty1988/my-social-flow/internal/domain"
	"github.com/Masty1988/my-social-flow/internal/prompt"
	"github.com/Masty1988/my-social-flow/internal/providers/generation"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(rt roundTripFunc) *Client {
	return NewClient(Options{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: rt},
	})
}

func contentRequest() generation.ContentRequest {
	return generation.ContentRequest{
		Instruction: "write posts",
		Schema: prompt.OutputSchema{
			Properties: map[string]prompt.Property{
				"linkedin": {Type: "array", Items: &prompt.Property{Type: "string"}},
				prompt.SchemaKeyImagePrompt: {Type: "string"},
			},
			Required: []string{"linkedin", prompt.SchemaKeyImagePrompt},
		},
		RequestID: "req-1",
	}
}

func TestGenerateContentSuccess(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash:generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatal("request missing api key")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"{\"linkedin\":[\"a\"]}"}]}}]}`), nil
	})

	text, err := client.GenerateContent(context.Background(), contentRequest())
	if err != nil {
		t.Fatalf("GenerateContent() unexpected error: %v", err)
	}
	if text != `{"linkedin":["a"]}` {
		t.Fatalf("GenerateContent() = %q", text)
	}

	cfg := captured.GenerationConfig
	if cfg == nil || cfg.ResponseMimeType != "application/json" {
		t.Fatal("request missing structured-output mime type")
	}
	if cfg.ResponseSchema == nil || cfg.ResponseSchema.Type != "OBJECT" {
		t.Fatal("request missing uppercase OBJECT schema")
	}
	if got := cfg.ResponseSchema.Properties["linkedin"]; got == nil || got.Type != "ARRAY" || got.Items == nil || got.Items.Type != "STRING" {
		t.Fatalf("linkedin schema property = %+v", got)
	}
}

func TestGenerateContentVisionPart(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`), nil
	})

	req := contentRequest()
	req.Image = &domain.SourceImage{Data: []byte("img-bytes"), MIMEType: "image/png"}
	if _, err := client.GenerateContent(context.Background(), req); err != nil {
		t.Fatalf("GenerateContent() unexpected error: %v", err)
	}

	parts := captured.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/png" {
		t.Fatalf("first part should carry the inline image, got %+v", parts[0])
	}
	if parts[1].Text != "write posts" {
		t.Fatalf("second part text = %q", parts[1].Text)
	}
}

func TestGenerateContentUpstreamError(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded"}}`), nil
	})
	_, err := client.GenerateContent(context.Background(), contentRequest())
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("GenerateContent() error = %v, want ErrUpstreamFailure", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error should carry the upstream message, got %v", err)
	}
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
	})
	_, err := client.GenerateContent(context.Background(), contentRequest())
	if !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("GenerateContent() error = %v, want ErrUpstreamFailure", err)
	}
}

func TestGenerateContentMissingKey(t *testing.T) {
	client := NewClient(Options{HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request should be sent without an api key")
		return nil, nil
	})}})
	_, err := client.GenerateContent(context.Background(), contentRequest())
	if !errors.Is(err, domain.ErrMisconfigured) {
		t.Fatalf("GenerateContent() error = %v, want ErrMisconfigured", err)
	}
}

func TestGenerateImageSuccess(t *testing.T) {
	var captured geminiGenerateContentRequest
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash-exp-image-generation:generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"here you go"},{"inlineData":{"mimeType":"image/png","data":"QUJD"}}]}}]}`), nil
	})

	uri, err := client.GenerateImage(context.Background(), "a sunrise over mountains")
	if err != nil {
		t.Fatalf("GenerateImage() unexpected error: %v", err)
	}
	if uri != "data:image/png;base64,QUJD" {
		t.Fatalf("GenerateImage() = %q", uri)
	}
	cfg := captured.GenerationConfig
	if cfg == nil || len(cfg.ResponseModalities) != 2 || cfg.ResponseModalities[1] != "IMAGE" {
		t.Fatalf("request modalities = %+v, want [TEXT IMAGE]", cfg)
	}
}

func TestGenerateImageNoInlinePart(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"sorry, text only"}]}}]}`), nil
	})
	_, err := client.GenerateImage(context.Background(), "anything")
	if !errors.Is(err, domain.ErrNoImageProduced) {
		t.Fatalf("GenerateImage() error = %v, want ErrNoImageProduced", err)
	}
}

func TestGenerateImageMissingKey(t *testing.T) {
	client := NewClient(Options{})
	_, err := client.GenerateImage(context.Background(), "anything")
	if !errors.Is(err, domain.ErrMisconfigured) {
		t.Fatalf("GenerateImage() error = %v, want ErrMisconfigured", err)
	}
}
