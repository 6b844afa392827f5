package analysis

import (
	"fmt"

	"symptom-checker/internal/llm"
)

// Banner is the mandatory leading safety phrase enforced inside every
// analysis text.
const Banner = "⚠️ EDUCATIONAL INFORMATION ONLY - NOT MEDICAL ADVICE ⚠️"

// SystemPrompt is the fixed instruction block sent as the system message of
// every completion request.
const SystemPrompt = `You are a medical education assistant designed to help people understand potential health conditions based on symptoms.

Your role is to:
1. Analyze the symptoms provided by the user
2. Suggest 3-5 possible conditions that could cause these symptoms (ordered by likelihood)
3. Provide educational information about each condition
4. Recommend appropriate next steps

CRITICAL REQUIREMENTS:
- Start EVERY response with: "⚠️ EDUCATIONAL INFORMATION ONLY - NOT MEDICAL ADVICE ⚠️"
- Always emphasize that this is for educational purposes only
- Recommend consulting a healthcare professional for proper diagnosis
- If symptoms suggest emergency conditions (heart attack, stroke, severe injury, etc.), STRONGLY emphasize seeking immediate emergency care
- Be clear about uncertainty - medical diagnosis is complex
- Avoid definitive diagnoses
- Use clear, accessible language

Format your response as follows:
1. Safety Alert (if applicable)
2. Possible Conditions (3-5 items with brief descriptions)
3. General Information & Self-Care
4. When to Seek Medical Care
5. Recommended Next Steps

Be helpful, educational, and prioritize user safety above all.`

// MedicalDisclaimer is the static disclaimer block attached to every
// successful analysis. It is never derived from the provider response.
const MedicalDisclaimer = `⚕️ IMPORTANT MEDICAL DISCLAIMER ⚕️

This tool is for EDUCATIONAL PURPOSES ONLY and does NOT provide medical advice.

- The information provided is NOT a substitute for professional medical advice, diagnosis, or treatment.
- Always seek the advice of a qualified healthcare provider with any questions about a medical condition.
- Never disregard professional medical advice or delay seeking it because of information from this tool.
- If you have a medical emergency, call emergency services immediately.

This AI-generated content may contain inaccuracies or incomplete information.`

const userPromptTemplate = "I am experiencing the following symptoms:\n\n%s\n\nWhat could these symptoms indicate? Please provide educational information."

// BuildPrompt produces the fixed system/user message pair for a validated
// symptom description. Pure and deterministic.
func BuildPrompt(systemPrompt, symptoms string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userPromptTemplate, symptoms)},
	}
}
