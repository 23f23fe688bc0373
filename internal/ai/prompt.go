package ai

import (
	"fmt"
	"strings"
)

// Persona is sent as the system message on every request
const Persona = `You are an experienced social media marketer who writes clear, engaging posts that fit each platform's conventions. Your tone is professional but approachable.

When asked for a post, reply with the post text and emojis only. Never add an introduction, explanation or commentary.`

const returnOnly = "Remember: Return ONLY the post text/emojis, nothing else."

// minCleanLength is the shortest cleaned reply accepted before falling back
// to the raw reply.
const minCleanLength = 10

// GeneratePrompt wraps a user prompt with the output rule
func GeneratePrompt(prompt string) string {
	return fmt.Sprintf("%s\n\n%s", strings.TrimSpace(prompt), returnOnly)
}

// RefinePrompt asks for an improved version of content
func RefinePrompt(content, instruction string) string {
	var ask string
	if instruction = strings.TrimSpace(instruction); instruction != "" {
		ask = fmt.Sprintf("Refine and improve the following social media post based on this instruction: %q.", instruction)
	} else {
		ask = "Refine and improve the following social media post. Make it more engaging, clear and well-structured while keeping its original meaning."
	}
	return fmt.Sprintf("%s Here is the current post:\n\n%s\n\n%s", ask, content, returnOnly)
}

// CleanPostText strips assistant preambles such as "Here's your post:" or a
// leading "Post:" label. Short leading lines are dropped until the post body
// starts. If cleaning leaves almost nothing the trimmed raw text is returned.
func CleanPostText(raw string) string {
	var kept []string
	started := false

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if isPreamble(lower) || (!started && len(lower) < 3) {
			continue
		}
		started = true
		kept = append(kept, line)
	}

	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(cleaned) < minCleanLength {
		return strings.TrimSpace(raw)
	}
	return cleaned
}

func isPreamble(lower string) bool {
	switch {
	case strings.Contains(lower, "here's"), strings.Contains(lower, "here is"):
		return true
	case strings.HasPrefix(lower, "post:"), strings.HasPrefix(lower, "content:"), strings.HasPrefix(lower, "social media post:"):
		return true
	}
	return false
}
