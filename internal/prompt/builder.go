// Package prompt turns a generation request into the natural-language
// instruction and structured-output schema sent to the model, and normalizes
// whatever the model sends back.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Masty1988/my-social-flow/internal/domain"
)

// SchemaKeyImagePrompt is the schema key for the image-generation prompt that
// every text request asks for.
const SchemaKeyImagePrompt = "imagePrompt"

// SchemaKeyImageDescription is only required when the caller asked for an
// analysis of the uploaded image.
const SchemaKeyImageDescription = "imageDescription"

// Built-in persona defaults, used when the caller never filled the profile.
// The instruction text must read naturally either way.
const (
	defaultPersona  = "Tech entrepreneur / independent developer"
	defaultAudience = "Freelancers, developers, tech-curious readers"
	defaultVoice    = "Accessible, concrete, no corporate fluff"
)

// Build produces the instruction text and the output schema for a request.
// It refuses empty platform sets and requests carrying neither a topic nor an
// image; everything else is total.
func Build(req domain.GenerationRequest) (string, OutputSchema, error) {
	if len(req.Platforms) == 0 {
		return "", OutputSchema{}, fmt.Errorf("%w: at least one platform must be selected", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Topic) == "" && req.Image == nil {
		return "", OutputSchema{}, fmt.Errorf("%w: either a topic or a source image is required", domain.ErrInvalidRequest)
	}

	var sb strings.Builder

	sb.WriteString("Role: you are an elite social media strategist and ghostwriter.\n\n")
	fmt.Fprintf(&sb, "IMPORTANT: every post MUST be written in %s.\n\n", languageName(req.Locale))

	writeUserContext(&sb, req.Profile)
	writeMission(&sb, req)
	writePlatformRules(&sb, req.Platforms)
	writeGeneralRules(&sb)
	writeImageDirective(&sb, req)

	return sb.String(), buildSchema(req), nil
}

func writeUserContext(sb *strings.Builder, p domain.Profile) {
	persona := coalesce(p.Persona, defaultPersona)
	audience := coalesce(p.Audience, defaultAudience)
	voice := coalesce(p.Voice, defaultVoice)
	sb.WriteString("=== USER CONTEXT ===\n")
	fmt.Fprintf(sb, "Persona: %s\n", persona)
	fmt.Fprintf(sb, "Target audience: %s\n", audience)
	fmt.Fprintf(sb, "Voice: %s\n\n", voice)
}

func writeMission(sb *strings.Builder, req domain.GenerationRequest) {
	sb.WriteString("=== MISSION ===\n")
	if req.Image != nil {
		sb.WriteString("Analyse the attached image and generate posts for the selected networks.\n")
		sb.WriteString("Find a unique ANGLE based on the image: what does it show and why is it interesting, what concrete impact for the audience, what opinion or question does it raise.\n")
		sb.WriteString("Do NOT describe the image literally; use it as inspiration for engaging content.\n")
		if desc := strings.TrimSpace(req.ImageDescription); desc != "" {
			fmt.Fprintf(sb, "Context supplied by the user: %q\n", desc)
		}
		if req.WantImageDescription {
			fmt.Fprintf(sb, "Also return a short description of what the image shows under the %q key.\n", SchemaKeyImageDescription)
		}
	} else {
		fmt.Fprintf(sb, "Subject: %q\n", strings.TrimSpace(req.Topic))
	}
	fmt.Fprintf(sb, "Desired tone: %q\n", req.Tone)
	sb.WriteString("Generate exactly 2 variants per selected platform, each with the creative angle named below.\n")
	sb.WriteString("Generate posts ONLY for the platforms listed below. Produce NOTHING for any other platform.\n\n")
}

func writePlatformRules(sb *strings.Builder, platforms []domain.Platform) {
	sb.WriteString("=== PLATFORM RULES ===\n")
	for _, p := range platforms {
		rule, ok := platformRules[p]
		if !ok {
			continue
		}
		fmt.Fprintf(sb, "\n%s (2 variants):\n", strings.ToUpper(displayName(p)))
		fmt.Fprintf(sb, "- %s\n", rule.variantOne)
		fmt.Fprintf(sb, "- %s\n", rule.variantTwo)
		fmt.Fprintf(sb, "- Format: %s\n", rule.format)
	}
	sb.WriteString("\n")
}

func writeGeneralRules(sb *strings.Builder) {
	sb.WriteString("=== GENERAL RULES ===\n")
	sb.WriteString("- Spelling: zero mistakes.\n")
	sb.WriteString("- Style: direct, no pointless jargon, motivating.\n")
	sb.WriteString("- Layout: air out the text with line breaks.\n")
	sb.WriteString("- Adapt content, length and hashtags to each platform's conventions.\n\n")
}

func writeImageDirective(sb *strings.Builder, req domain.GenerationRequest) {
	sb.WriteString("=== IMAGE PROMPT ===\n")
	if req.Image != nil {
		fmt.Fprintf(sb, "Finally, fill the %q key with an English-language prompt for a generative image AI that could recreate or improve the attached image.\n", SchemaKeyImagePrompt)
	} else {
		fmt.Fprintf(sb, "Finally, fill the %q key with an English-language prompt for a generative image AI (Midjourney/DALL-E style) illustrating the subject.\n", SchemaKeyImagePrompt)
	}
	fmt.Fprintf(sb, "Visual style: %s.\n", imageStyleFor(req.Tone))
	sb.WriteString("Constraints: no plain background, no text or typography embedded in the image, no generic clip-art.\n")
	sb.WriteString("Be richly descriptive: at least 3 full sentences covering subject, setting, and lighting.\n")
}

func buildSchema(req domain.GenerationRequest) OutputSchema {
	props := make(map[string]Property, len(req.Platforms)+2)
	required := make([]string, 0, len(req.Platforms)+2)
	for _, p := range req.Platforms {
		props[string(p)] = Property{
			Type:        "array",
			Description: fmt.Sprintf("2 variants for %s", displayName(p)),
			Items:       &Property{Type: "string"},
		}
		required = append(required, string(p))
	}
	props[SchemaKeyImagePrompt] = Property{Type: "string", Description: "English prompt for an image generator"}
	required = append(required, SchemaKeyImagePrompt)
	if req.WantImageDescription {
		props[SchemaKeyImageDescription] = Property{Type: "string", Description: "Short description of what the image shows"}
		required = append(required, SchemaKeyImageDescription)
	}
	return OutputSchema{Properties: props, Required: required}
}

func languageName(locale string) string {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en":
		return "English"
	default:
		// The product ships to a French-speaking audience first.
		return "French"
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
