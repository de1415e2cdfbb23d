package chat

import "strings"

// Direct terms that by themselves signal a diagram request.
var directTerms = []string{
	"diagram", "canvas", "visualize", "visualise", "draw", "show me", "yes",
}

// Architecture nouns and action verbs: one of each, together, also signals
// a diagram request.
var archNouns = []string{
	"architecture", "system", "stack", "setup", "infrastructure",
}

var actionVerbs = []string{
	"create", "design", "build", "make", "show", "implement", "set up", "add", "yes",
}

// Phrases that ask for the canvas to be wiped rather than redrawn.
var clearPhrases = []string{
	"clear the canvas", "clear canvas", "reset the canvas", "start over", "start from scratch",
}

// WantsCanvas classifies free text for a "wants a diagram" signal. Matching
// is case-insensitive substring matching with no tokenization, which is
// deliberately permissive: a false positive costs nothing because graph
// synthesis still requires at least one resolved component mention.
func WantsCanvas(message string) bool {
	m := strings.ToLower(message)
	for _, term := range directTerms {
		if strings.Contains(m, term) {
			return true
		}
	}
	noun := false
	for _, n := range archNouns {
		if strings.Contains(m, n) {
			noun = true
			break
		}
	}
	if !noun {
		return false
	}
	for _, v := range actionVerbs {
		if strings.Contains(m, v) {
			return true
		}
	}
	return false
}

// WantsClear reports whether the message asks to wipe the canvas.
func WantsClear(message string) bool {
	m := strings.ToLower(message)
	for _, p := range clearPhrases {
		if strings.Contains(m, p) {
			return true
		}
	}
	return false
}
