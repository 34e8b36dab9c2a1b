package domain

import "strings"

// Tone is a closed style category. It drives both the copy voice and the
// visual-style keywords injected into the image prompt.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneInformative  Tone = "informative"
	ToneHumorous     Tone = "humorous"
	ToneInspiring    Tone = "inspiring"
)

// Tones lists every supported tone in display order.
var Tones = []Tone{ToneProfessional, ToneCasual, ToneInformative, ToneHumorous, ToneInspiring}

// ParseTone sanitizes free-form user input into a supported tone. Unknown
// values fall back to professional so a typo never blocks generation.
func ParseTone(raw string) Tone {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ToneCasual), "décontracté", "decontracte":
		return ToneCasual
	case string(ToneInformative), "éducatif", "educatif":
		return ToneInformative
	case string(ToneHumorous), "humoristique":
		return ToneHumorous
	case string(ToneInspiring), "inspirant":
		return ToneInspiring
	default:
		return ToneProfessional
	}
}

// Platform identifies a social network the generator can target. The value
// doubles as the response key, so it is always lower-case.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformSnapchat  Platform = "snapchat"
	PlatformPinterest Platform = "pinterest"
	PlatformThreads   Platform = "threads"
)

// AllPlatforms lists every supported platform.
var AllPlatforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformLinkedIn,
	PlatformTwitter,
	PlatformYouTube,
	PlatformTikTok,
	PlatformSnapchat,
	PlatformPinterest,
	PlatformThreads,
}

// DefaultPlatforms preserves the original product contract: topic-based
// generation without an explicit selection targets these three networks.
var DefaultPlatforms = []Platform{PlatformFacebook, PlatformInstagram, PlatformLinkedIn}

// ParsePlatforms lower-cases, deduplicates, and filters unknown entries.
// Order of first appearance is preserved.
func ParsePlatforms(raw []string) []Platform {
	known := make(map[Platform]struct{}, len(AllPlatforms))
	for _, p := range AllPlatforms {
		known[p] = struct{}{}
	}
	seen := make(map[Platform]struct{}, len(raw))
	var out []Platform
	for _, r := range raw {
		p := Platform(strings.ToLower(strings.TrimSpace(r)))
		if _, ok := known[p]; !ok {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SourceImage carries an uploaded image used as vision input.
type SourceImage struct {
	Data     []byte
	MIMEType string
}

// Profile holds the user-supplied persona fields. Empty fields fall back to
// built-in defaults at prompt-build time; the struct itself is never stored
// server-side.
type Profile struct {
	Persona  string
	Audience string
	Voice    string
}

// IsZero reports whether no persona field was supplied.
func (p Profile) IsZero() bool {
	return strings.TrimSpace(p.Persona) == "" &&
		strings.TrimSpace(p.Audience) == "" &&
		strings.TrimSpace(p.Voice) == ""
}

// GenerationRequest is the normalized input of the prompt builder. At least
// one of Topic or Image must be present, and Platforms must be non-empty.
type GenerationRequest struct {
	Topic            string
	Tone             Tone
	Platforms        []Platform
	Profile          Profile
	Image            *SourceImage
	ImageDescription string
	Locale           string
	// WantImageDescription asks the model to describe the uploaded image in
	// addition to writing posts for it.
	WantImageDescription bool
}

// GeneratedContent is the normalized output of a text-generation call. Every
// requested platform key is guaranteed present with a string slice value, and
// ImagePrompt is always a string.
type GeneratedContent struct {
	Posts            map[Platform][]string
	ImagePrompt      string
	ImageDescription string
}
