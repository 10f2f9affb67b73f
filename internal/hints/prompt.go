package hints

import (
	"fmt"
	"strings"
)

const hintSystemPrompt = `You write hints for study flashcards. A hint nudges the learner toward the answer on the back of the card without ever stating it.`

func buildHintUserMessage(in SuggestInput, rejected []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Front: %s\n", in.Front)
	fmt.Fprintf(&b, "Back: %s\n", in.Back)
	if len(in.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(in.Tags, ", "))
	}

	if len(rejected) > 0 {
		b.WriteString("\nThese hints were rejected because they give the answer away:\n")
		for _, r := range rejected {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	b.WriteString(`
Instructions:
1. Write one hint of 2-6 words, in the style of "European city" or "Famous playwright".
2. Never include the answer, any word of the answer, or a translation of it.
3. Plain text only. No quotes, no trailing punctuation.`)

	return b.String()
}
