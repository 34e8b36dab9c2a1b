package prompt

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Masty1988/my-social-flow/internal/domain"
)

// platformRule describes the two variants generated for one network. The
// tables below are static data: adding a platform is a data change, not a
// control-flow change.
type platformRule struct {
	variantOne string
	variantTwo string
	format     string
}

var platformRules = map[domain.Platform]platformRule{
	domain.PlatformLinkedIn: {
		variantOne: `Option 1 "Opinion": take a clear stance on the subject, be divisive if needed. Long-form LinkedIn post with a hook, an argued development, and a strong conclusion.`,
		variantTwo: `Option 2 "Carousel": structured content for a LinkedIn carousel, each slide separated by "---":
--- Slide 1: punchy hook that sparks curiosity and makes people swipe (max 15 words)
--- Slide 2: first key point, one idea only, short and impactful (max 20 words)
--- Slide 3: second key point, one idea only, short and impactful (max 20 words)
--- Slide 4: third key point, one idea only, short and impactful (max 20 words)
--- Slide 5: fourth key point, one idea only, short and impactful (max 20 words)
--- Slide 6: strong CTA / engaging conclusion that pushes to act (comment, share, follow)
Carousel rules: each slide must stand alone, the whole must tell one coherent story, use numbers or concrete examples where possible.`,
		format: "Airy text, sober emojis, call-to-action at the end, 3-5 relevant hashtags after the last paragraph.",
	},
	domain.PlatformFacebook: {
		variantOne: `Option 1 "Engaging": ask a real question that makes the community think and reply.`,
		variantTwo: `Option 2 "Did you know?": a surprising fact plus why it matters.`,
		format:     "Conversational text, max 280 characters, 2-3 emojis max, invite comments.",
	},
	domain.PlatformInstagram: {
		variantOne: `Option 1 "Punchy": hook on the first line, strategic emojis, bullet points, clear CTA.`,
		variantTwo: `Option 2 "Storytelling": a mini personal story or concrete case behind the scenes.`,
		format:     "Short and impactful, max 200 characters before hashtags, 5-10 hashtags mixing popular and niche.",
	},
	domain.PlatformTwitter: {
		variantOne: `Option 1 "Thread": a hook tweet plus 2-3 development tweets.`,
		variantTwo: `Option 2 "Viral": a single punchy tweet, max 280 characters.`,
		format:     "2-3 hashtags max, no filler words.",
	},
	domain.PlatformYouTube: {
		variantOne: `Option 1 "SEO description": catchy title (max 60 characters) plus a 2-3 paragraph description with the hook in the first two lines.`,
		variantTwo: `Option 2 "Community post": short teaser post announcing the video with a question to the audience.`,
		format:     "Suggest timestamps when relevant, 5-10 keyword tags, subscription CTA and useful links at the end.",
	},
	domain.PlatformTikTok: {
		variantOne: `Option 1 "Script": a 15-60 second script with a striking hook in the first 3 seconds.`,
		variantTwo: `Option 2 "Trend": the same idea mapped onto a current trend or sound, with the on-screen captions.`,
		format:     "Gen-Z friendly language, humour welcome, simple CTA, 3-5 hashtags mixing viral and niche.",
	},
	domain.PlatformSnapchat: {
		variantOne: `Option 1 "Spontaneous story": short, direct message with a behind-the-scenes feeling.`,
		variantTwo: `Option 2 "Overlay": minimalist text overlay for a snap, one sentence max.`,
		format:     "Casual and authentic tone, fun emojis, no hashtags.",
	},
	domain.PlatformPinterest: {
		variantOne: `Option 1 "SEO pin": SEO-friendly title (40-60 characters) plus a keyword-rich description (150-300 characters).`,
		variantTwo: `Option 2 "Inspiration": an inspiring, save-for-later oriented description of the same idea.`,
		format:     "Informative and inspiring, 2-5 hashtags max.",
	},
	domain.PlatformThreads: {
		variantOne: `Option 1 "Conversation": a conversational, authentic post that invites direct replies.`,
		variantTwo: `Option 2 "Mini thread": a series of 2-3 linked short posts.`,
		format:     "Short and punchy, close to Twitter in tone, no hashtags.",
	},
}

// toneImageStyles maps each tone to the visual-style keywords injected into
// the closing image-prompt directive.
var toneImageStyles = map[domain.Tone]string{
	domain.ToneProfessional: "clean, modern, corporate aesthetic, soft studio lighting, minimalist composition",
	domain.ToneCasual:       "warm, candid lifestyle photography, natural light, relaxed authentic atmosphere",
	domain.ToneInformative:  "flat design illustration, infographic style, clear geometric shapes, balanced palette",
	domain.ToneHumorous:     "playful, vibrant colors, quirky composition, slightly exaggerated perspective",
	domain.ToneInspiring:    "cinematic, golden hour lighting, wide dramatic angle, uplifting mood",
}

const defaultImageStyle = "modern, aesthetic, minimalist"

func imageStyleFor(tone domain.Tone) string {
	if style, ok := toneImageStyles[tone]; ok {
		return style
	}
	return defaultImageStyle
}

var platformDisplayNames = map[domain.Platform]string{
	domain.PlatformLinkedIn:  "LinkedIn",
	domain.PlatformFacebook:  "Facebook",
	domain.PlatformInstagram: "Instagram",
	domain.PlatformTwitter:   "Twitter/X",
	domain.PlatformYouTube:   "YouTube",
	domain.PlatformTikTok:    "TikTok",
	domain.PlatformSnapchat:  "Snapchat",
	domain.PlatformPinterest: "Pinterest",
	domain.PlatformThreads:   "Threads",
}

func displayName(p domain.Platform) string {
	if name, ok := platformDisplayNames[p]; ok {
		return name
	}
	return cases.Title(language.Und).String(string(p))
}
