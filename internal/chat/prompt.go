package chat

import (
	"fmt"
	"strings"

	"archsandbox/internal/catalog"
	"archsandbox/internal/graph"
)

// PromptComposer builds the system instruction for the completion call. The
// rendered contract is load-bearing: ScopeReconcile depends on the fenced
// scope_analysis block and its field names, and ExtractMentions depends on
// the model referencing components by catalog id. Neither side may be
// loosened without the other.
type PromptComposer struct {
	lib *catalog.Library
}

func NewPromptComposer(lib *catalog.Library) *PromptComposer {
	return &PromptComposer{lib: lib}
}

// Compose renders the system prompt from the retrieved context, the current
// scope, and an optional chat-panel width in pixels (0 means unconstrained).
func (p *PromptComposer) Compose(context string, scope graph.Scope, chatWidth int) string {
	var b strings.Builder

	b.WriteString(basePrompt)
	b.WriteString("\n\n")
	b.WriteString(p.lib.PromptText())

	b.WriteString("\n\nCurrent Architecture Scope:\n")
	fmt.Fprintf(&b, "- Users: %s\n", orUnspecified(scope.Users > 0, fmt.Sprintf("%d", scope.Users)))
	fmt.Fprintf(&b, "- Traffic Level: %s/5\n", orUnspecified(scope.TrafficLevel > 0, fmt.Sprintf("%d", scope.TrafficLevel)))
	fmt.Fprintf(&b, "- Data Volume: %s GB\n", orUnspecified(scope.DataVolumeGB > 0, fmt.Sprintf("%g", scope.DataVolumeGB)))
	fmt.Fprintf(&b, "- Regions: %s\n", orUnspecified(scope.Regions > 0, fmt.Sprintf("%d", scope.Regions)))
	fmt.Fprintf(&b, "- Availability: %s%%", orUnspecified(scope.Availability > 0, fmt.Sprintf("%g", scope.Availability)))

	if chatWidth > 0 {
		b.WriteString("\n\nUI Constraints:\n")
		fmt.Fprintf(&b, "- Chat panel width: %dpx\n", chatWidth)
		b.WriteString("- For complex diagrams or visualizations, suggest implementing on the canvas instead of text\n")
		b.WriteString("- Keep code blocks and text responses concise to fit the chat width\n")
		fmt.Fprintf(&b, "- Avoid ASCII diagrams wider than %dpx", chatWidth-100)
	}

	if strings.TrimSpace(context) != "" {
		b.WriteString("\n\nRelevant Knowledge Base Context:\n")
		b.WriteString(context)
	}

	return b.String()
}

func orUnspecified(ok bool, value string) string {
	if ok {
		return value
	}
	return "not specified"
}

const basePrompt = `You are an expert architecture advisor.

**Role & Persona:**
- Target Audience: Senior/Staff Software Engineers.
- Tone: Extremely concise, direct, technical, "no-nonsense".
- Format: Bullet points preferred. Short paragraphs (max 2 sentences).

**Responsibilities:**
1. Design architectures using ONLY the provided Component Library.
2. Propose cost-effective, scalable solutions based on Scope.
3. Suggest improvements to existing designs.

**IMPORTANT RULES:**
- Ask for scope details if not provided and clarify the user's intentions FIRST
- **NO FLUFF**: Do not use phrases like "Here is a suggestion" or "Great question". Go straight to the answer.
- When you describe an architecture, ALWAYS ask: "Would you like me to visualize this on the canvas?"
- **Visuals**: If a diagram is helpful, listing component IDs is enough. The system will auto-render.
- **NO DIAGRAM CODE**: Do not output Mermaid, Graphviz, or other diagram code in the chat.
- **Canvas Trigger**: To visualize, reference component IDs in your response using single backticks (e.g., ` + "`react` `fastapi` `redis`" + `).
- **Scope Awareness**:
    - <1k users: Low cost/Free tier.
    - 1k-10k users: Managed services.
    - >10k users: Enterprise/Auto-scaling.

**Scope Analysis Format:**
- When the user defines or updates scope, you MUST output a JSON block exactly like this:
  ` + "```json" + `
  {
    "scope_analysis": {
      "users": [Number],
      "trafficLevel": [1-5],
      "dataVolumeGB": [Number],
      "regions": [Number],
      "availability": [Number 0-100],
      "estimatedCost": [Number]
    }
  }
  ` + "```" + `
- If details are missing, estimate them based on context.
- Provide a brief text summary of these values BEFORE the JSON block; the block itself is hidden from the user.`
