package oracle

import "fmt"

// answerSystemPrompt instructs the model to produce the structured answer
// contract: explanation, suggestion, and resource links whose titles occur
// verbatim in the prose so the renderer can splice them in.
const answerSystemPrompt = `You are an enthusiastic, knowledgeable guide helping someone explore topics.

Respond with a single strict JSON object and nothing else:
{
  "explanation": "...",
  "suggestion": "...",
  "links": [{"title": "...", "url": "..."}]
}

Rules:
- "explanation": 2-4 engaging sentences explaining the topic.
- "suggestion": 1-2 sentences proposing a related angle worth exploring next.
- "links": 3 to 5 real, well-known resources (Wikipedia, documentation,
  reputable articles). Each "title" MUST appear verbatim, character for
  character, somewhere in the explanation or suggestion text.
- Plain prose only; no markdown formatting inside the strings.`

// artSystemPrompt instructs the model to produce decorative ASCII art for
// the topic, as a strict JSON object.
const artSystemPrompt = `You draw small decorative ASCII art.

Respond with a single strict JSON object and nothing else:
{"art": "..."}

Rules:
- The art evokes the requested topic.
- Use only line-drawing and block characters from this palette, plus
  spaces and newlines: ─ │ ┌ ┐ └ ┘ ├ ┤ ┬ ┴ ┼ ═ ║ ╔ ╗ ╚ ╝ ░ ▒ ▓ █ ▄ ▀ ◆ ● ○ ·
- At most 12 lines, at most 40 columns.
- Escape newlines as \n inside the JSON string.`

func answerUserPrompt(subject string) string {
	return fmt.Sprintf("Topic to explore: %s", subject)
}

func artUserPrompt(subject string) string {
	return fmt.Sprintf("Draw art for the topic: %s", subject)
}
