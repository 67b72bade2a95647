package vision

import (
	"fmt"
	"strings"
)

const instructionTemplate = `Edit this photo to show this person as their ideal future self with these qualities: %s.

Make them look:
- Successful, healthy, confident, and living their best life
- Professional photography quality with natural lighting
- Photorealistic and believable
- Maintaining their facial features and identity
- In an environment that matches their dreams

Keep the transformation realistic and inspiring.`

// BuildPrompt renders the generation instruction from ordered dream fragments.
// Deterministic for the same ordered input. Callers must reject empty input
// before reaching this point.
func BuildPrompt(fragments []string) string {
	return fmt.Sprintf(instructionTemplate, strings.Join(fragments, ", "))
}
