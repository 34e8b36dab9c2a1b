package prompt

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/Masty1988/my-social-flow/internal/domain"
)

func TestBuildSchemaKeysMatchSelection(t *testing.T) {
	subsets := [][]domain.Platform{
		{domain.PlatformLinkedIn},
		{domain.PlatformFacebook, domain.PlatformInstagram},
		{domain.PlatformTikTok, domain.PlatformThreads, domain.PlatformPinterest},
		domain.AllPlatforms,
	}
	for _, platforms := range subsets {
		for _, tone := range domain.Tones {
			req := domain.GenerationRequest{Topic: "release notes", Tone: tone, Platforms: platforms}
			_, schema, err := Build(req)
			if err != nil {
				t.Fatalf("Build(%v, %s) unexpected error: %v", platforms, tone, err)
			}
			want := make([]string, 0, len(platforms)+1)
			for _, p := range platforms {
				want = append(want, string(p))
			}
			want = append(want, SchemaKeyImagePrompt)
			got := append([]string(nil), schema.Required...)
			sort.Strings(got)
			sort.Strings(want)
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Fatalf("schema required = %v, want %v", got, want)
			}
			if len(schema.Properties) != len(want) {
				t.Fatalf("schema has %d properties, want %d", len(schema.Properties), len(want))
			}
		}
	}
}

func TestBuildRejectsEmptyPlatformSet(t *testing.T) {
	req := domain.GenerationRequest{Topic: "anything", Tone: domain.ToneCasual}
	if _, _, err := Build(req); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("Build() error = %v, want ErrInvalidRequest", err)
	}
}

func TestBuildRejectsMissingTopicAndImage(t *testing.T) {
	req := domain.GenerationRequest{Tone: domain.ToneCasual, Platforms: domain.DefaultPlatforms}
	if _, _, err := Build(req); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("Build() error = %v, want ErrInvalidRequest", err)
	}
}

func TestBuildSelectedPlatformsOnly(t *testing.T) {
	req := domain.GenerationRequest{
		Topic:     "Les nouvelles features de React 19",
		Tone:      domain.ToneProfessional,
		Platforms: []domain.Platform{domain.PlatformLinkedIn, domain.PlatformFacebook},
	}
	instruction, schema, err := Build(req)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !strings.Contains(instruction, "LINKEDIN") {
		t.Fatal("instruction missing the LinkedIn rule block")
	}
	if !strings.Contains(instruction, "FACEBOOK") {
		t.Fatal("instruction missing the Facebook rule block")
	}
	if strings.Contains(instruction, "INSTAGRAM") {
		t.Fatal("instruction mentions Instagram although it was not selected")
	}
	if !strings.Contains(instruction, "Les nouvelles features de React 19") {
		t.Fatal("instruction missing the topic")
	}
	for _, key := range []string{"linkedin", "facebook", SchemaKeyImagePrompt} {
		if !schema.HasKey(key) {
			t.Fatalf("schema missing required key %q", key)
		}
	}
	if schema.HasKey("instagram") {
		t.Fatal("schema requires instagram although it was not selected")
	}
}

func TestBuildPersonaDefaults(t *testing.T) {
	req := domain.GenerationRequest{
		Topic:     "astuces SEO",
		Tone:      domain.ToneInformative,
		Platforms: []domain.Platform{domain.PlatformFacebook},
	}
	instruction, _, err := Build(req)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !strings.Contains(instruction, defaultPersona) {
		t.Fatal("instruction should fall back to the default persona")
	}
	if strings.Contains(instruction, "Persona: \n") {
		t.Fatal("instruction references an empty persona")
	}

	req.Profile = domain.Profile{Persona: "Indie hacker", Audience: "Founders", Voice: "Blunt"}
	instruction, _, err = Build(req)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	for _, want := range []string{"Indie hacker", "Founders", "Blunt"} {
		if !strings.Contains(instruction, want) {
			t.Fatalf("instruction missing profile field %q", want)
		}
	}
	if strings.Contains(instruction, defaultPersona) {
		t.Fatal("default persona should be replaced by the supplied one")
	}
}

func TestBuildImageDirectivePerTone(t *testing.T) {
	for tone, style := range toneImageStyles {
		req := domain.GenerationRequest{Topic: "x", Tone: tone, Platforms: []domain.Platform{domain.PlatformThreads}}
		instruction, _, err := Build(req)
		if err != nil {
			t.Fatalf("Build(%s) unexpected error: %v", tone, err)
		}
		if !strings.Contains(instruction, style) {
			t.Fatalf("instruction for tone %s missing style %q", tone, style)
		}
	}

	req := domain.GenerationRequest{Topic: "x", Tone: domain.Tone("brutalist"), Platforms: []domain.Platform{domain.PlatformThreads}}
	instruction, _, err := Build(req)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !strings.Contains(instruction, defaultImageStyle) {
		t.Fatal("unknown tone should fall back to the default image style")
	}
}

func TestBuildImageDirectiveConstraints(t *testing.T) {
	req := domain.GenerationRequest{Topic: "x", Tone: domain.ToneInspiring, Platforms: domain.DefaultPlatforms}
	instruction, _, err := Build(req)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	for _, want := range []string{"no plain background", "no text or typography", "no generic clip-art", "at least 3 full sentences"} {
		if !strings.Contains(instruction, want) {
			t.Fatalf("image directive missing constraint %q", want)
		}
	}
}

func TestBuildVisionRequest(t *testing.T) {
	req := domain.GenerationRequest{
		Tone:                 domain.ToneCasual,
		Platforms:            []domain.Platform{domain.PlatformLinkedIn},
		Image:                &domain.SourceImage{Data: []byte{0x1}, MIMEType: "image/png"},
		ImageDescription:     "my desk setup",
		WantImageDescription: true,
	}
	instruction, schema, err := Build(req)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !strings.Contains(instruction, "my desk setup") {
		t.Fatal("instruction missing the user-supplied image context")
	}
	if !schema.HasKey(SchemaKeyImageDescription) {
		t.Fatal("vision schema missing imageDescription")
	}
}
