package prompt

// Property describes a single field of the structured output the model is
// asked to produce.
type Property struct {
	Type        string
	Description string
	Items       *Property
}

// OutputSchema is the provider-neutral declaration of the response shape.
// Required always equals the selected platform keys plus imagePrompt (and
// imageDescription for vision requests); providers translate it into their
// own wire format.
type OutputSchema struct {
	Properties map[string]Property
	Required   []string
}

// HasKey reports whether the schema requires the given key.
func (s OutputSchema) HasKey(key string) bool {
	for _, k := range s.Required {
		if k == key {
			return true
		}
	}
	return false
}
