package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Masty1988/my-social-flow/internal/audit"
	"github.com/Masty1988/my-social-flow/internal/domain"
	"github.com/Masty1988/my-social-flow/internal/middleware"
	"github.com/Masty1988/my-social-flow/internal/prompt"
	"github.com/Masty1988/my-social-flow/internal/providers/generation"
)

type generateContentRequest struct {
	Topic        string   `json:"topic"`
	Tone         string   `json:"tone"`
	Platforms    []string `json:"platforms"`
	UserPersona  string   `json:"userPersona"`
	UserAudience string   `json:"userAudience"`
	UserVoice    string   `json:"userVoice"`
}

// GenerateContent turns a topic into post variants for the selected
// platforms plus an image prompt. Without an explicit selection the original
// facebook/instagram/linkedin trio is used.
func (a *App) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req generateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Topic == "" || req.Tone == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields: topic and tone")
		return
	}
	platforms := domain.ParsePlatforms(req.Platforms)
	if len(platforms) == 0 {
		if len(req.Platforms) > 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "no supported platform selected")
			return
		}
		platforms = domain.DefaultPlatforms
	}

	genReq := domain.GenerationRequest{
		Topic:     req.Topic,
		Tone:      domain.ParseTone(req.Tone),
		Platforms: platforms,
		Profile: domain.Profile{
			Persona:  req.UserPersona,
			Audience: req.UserAudience,
			Voice:    req.UserVoice,
		},
		Locale: middleware.LocaleFromContext(r.Context()),
	}

	content, err := a.generate(r, genReq, "GENERATE_CONTENT")
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, prompt.Serialize(content))
}

type generateFromImageRequest struct {
	ImageBase64  string   `json:"imageBase64"`
	MimeType     string   `json:"mimeType"`
	Description  string   `json:"description"`
	Platforms    []string `json:"platforms"`
	Tone         string   `json:"tone"`
	UserPersona  string   `json:"userPersona"`
	UserAudience string   `json:"userAudience"`
	UserVoice    string   `json:"userVoice"`
}

// GenerateFromImage writes posts inspired by an uploaded image. The response
// maps each requested platform key to its two variants.
func (a *App) GenerateFromImage(w http.ResponseWriter, r *http.Request) {
	var req generateFromImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ImageBase64 == "" || len(req.Platforms) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields: imageBase64 and platforms")
		return
	}
	platforms := domain.ParsePlatforms(req.Platforms)
	if len(platforms) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "no supported platform selected")
		return
	}
	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "imageBase64 is not valid base64")
		return
	}

	genReq := domain.GenerationRequest{
		Tone:      domain.ParseTone(req.Tone),
		Platforms: platforms,
		Profile: domain.Profile{
			Persona:  req.UserPersona,
			Audience: req.UserAudience,
			Voice:    req.UserVoice,
		},
		Image:            &domain.SourceImage{Data: imageData, MIMEType: req.MimeType},
		ImageDescription: req.Description,
		Locale:           middleware.LocaleFromContext(r.Context()),
	}

	content, err := a.generate(r, genReq, "GENERATE_FROM_IMAGE")
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	out := make(map[string][]string, len(content.Posts))
	for p, variants := range content.Posts {
		out[string(p)] = variants
	}
	a.json(w, http.StatusOK, out)
}

type analyzeImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
	Tone        string `json:"tone"`
}

// AnalyzeImage describes an uploaded image and generates posts for the
// default platform trio alongside the description and a regeneration prompt.
func (a *App) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var req analyzeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ImageBase64 == "" || req.MimeType == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields: imageBase64 and mimeType")
		return
	}
	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "imageBase64 is not valid base64")
		return
	}

	genReq := domain.GenerationRequest{
		Tone:                 domain.ParseTone(req.Tone),
		Platforms:            domain.DefaultPlatforms,
		Image:                &domain.SourceImage{Data: imageData, MIMEType: req.MimeType},
		Locale:               middleware.LocaleFromContext(r.Context()),
		WantImageDescription: true,
	}

	content, err := a.generate(r, genReq, "ANALYZE_IMAGE")
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, prompt.Serialize(content))
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

type generateImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// GenerateImage turns an image prompt into a data-URI encoded illustration.
// It is a separate call from text generation so an image failure never
// discards already-delivered text results.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Prompt == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required field: prompt")
		return
	}

	start := time.Now()
	dataURI, err := a.ImageGen.GenerateImage(r.Context(), req.Prompt)
	a.Audit.Record(r.Context(), audit.Event{
		Subject:   a.currentUserID(r),
		RequestID: middleware.RequestIDFromContext(r.Context()),
		EventType: "GENERATE_IMAGE",
		Success:   err == nil,
		Latency:   time.Since(start),
		Country:   middleware.CountryFromContext(r.Context()),
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, generateImageResponse{ImageURL: dataURI})
}

// generate runs the build → invoke → normalize pipeline shared by the three
// text endpoints, recording one audit event per attempt.
func (a *App) generate(r *http.Request, genReq domain.GenerationRequest, eventType string) (domain.GeneratedContent, error) {
	instruction, schema, err := prompt.Build(genReq)
	if err != nil {
		return domain.GeneratedContent{}, err
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	start := time.Now()
	raw, err := a.TextGen.GenerateContent(r.Context(), generation.ContentRequest{
		Instruction: instruction,
		Schema:      schema,
		Image:       genReq.Image,
		RequestID:   requestID,
	})
	var content domain.GeneratedContent
	if err == nil {
		content, err = prompt.Normalize(raw, genReq.Platforms)
	}

	platformKeys := make([]string, len(genReq.Platforms))
	for i, p := range genReq.Platforms {
		platformKeys[i] = string(p)
	}
	a.Audit.Record(r.Context(), audit.Event{
		Subject:   a.currentUserID(r),
		RequestID: requestID,
		EventType: eventType,
		Success:   err == nil,
		Latency:   time.Since(start),
		Country:   middleware.CountryFromContext(r.Context()),
		Props: map[string]any{
			"platforms": platformKeys,
			"tone":      string(genReq.Tone),
			"locale":    genReq.Locale,
		},
	})
	if err != nil {
		return domain.GeneratedContent{}, err
	}
	return content, nil
}
