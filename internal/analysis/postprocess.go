package analysis

import "strings"

// EnsureBanner enforces the safety-banner invariant on an analysis text.
// A text is compliant when it contains both "educational" and "not medical
// advice" (case-insensitive, in any order). Non-compliant text is returned
// with the canonical banner and a blank line prepended; compliant text is
// returned unchanged, so the operation is idempotent.
func EnsureBanner(text string) string {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "EDUCATIONAL") && strings.Contains(upper, "NOT MEDICAL ADVICE") {
		return text
	}
	return Banner + "\n\n" + text
}
