package domain

import "strings"

// Dream is a static catalog entry describing one "life goal" category. The
// Prompt field is the fragment interpolated into the generation instruction.
type Dream struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// Dreams is the hand-authored catalog, fixed for the process lifetime.
var Dreams = []Dream{
	{
		ID:          "fitness",
		Icon:        "💪",
		Title:       "Health & Vitality",
		Description: "Your strongest, most energetic self",
		Prompt:      "fit, athletic, healthy, vibrant, energetic, working out, athletic wear, confident posture, strong physique",
	},
	{
		ID:          "career",
		Icon:        "✨",
		Title:       "Career Success",
		Description: "Confidence in your professional life",
		Prompt:      "professional, successful, confident, business attire, executive office, leadership, accomplished, prestigious",
	},
	{
		ID:          "home",
		Icon:        "🏡",
		Title:       "Dream Home",
		Description: "Your perfect sanctuary",
		Prompt:      "beautiful luxury home interior, elegant living space, modern sophisticated design, dream house, comfortable sanctuary",
	},
	{
		ID:          "travel",
		Icon:        "✈️",
		Title:       "Adventure",
		Description: "Exploring the world freely",
		Prompt:      "traveling, exotic destination, beach paradise, mountains, adventure, vacation, worldly, exploring beautiful locations",
	},
	{
		ID:          "style",
		Icon:        "🌟",
		Title:       "Style & Confidence",
		Description: "Looking and feeling your best",
		Prompt:      "fashionable, stylish, well-dressed, designer clothing, elegant, confident, photoshoot quality, polished appearance",
	},
	{
		ID:          "wealth",
		Icon:        "🍃",
		Title:       "Abundance",
		Description: "Financial peace and freedom",
		Prompt:      "luxury lifestyle, successful, abundant, wealthy, high-end environment, prosperity, financial freedom, upscale",
	},
}

// DreamByID looks up a catalog entry by its identifier.
func DreamByID(id string) (Dream, bool) {
	id = strings.TrimSpace(id)
	for _, d := range Dreams {
		if d.ID == id {
			return d, true
		}
	}
	return Dream{}, false
}

// DreamFragments resolves dream identifiers to their prompt fragments,
// preserving input order. Unknown identifiers are skipped.
func DreamFragments(ids []string) []string {
	fragments := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := DreamByID(id); ok {
			fragments = append(fragments, d.Prompt)
		}
	}
	return fragments
}
