package essay

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrUnknownPrompt is returned for prompt ids outside the prompt list.
var ErrUnknownPrompt = errors.New("unknown essay prompt")

// Prompt is an essay question with its word limit and writing tips.
type Prompt struct {
	ID        string   `json:"id"`
	Category  string   `json:"category"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	WordLimit int      `json:"word_limit"`
	Tips      []string `json:"tips"`
}

// Feedback is the word count of a draft measured against its prompt.
type Feedback struct {
	PromptID string  `json:"prompt_id"`
	Words    int     `json:"words"`
	Limit    int     `json:"limit"`
	Percent  float64 `json:"percent"`
	Over     bool    `json:"over"`
}

// WordCount counts the whitespace separated words of text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Prompts returns the prompt list in display order.
func Prompts() []Prompt {
	return defaultPrompts()
}

// Lookup returns the prompt with the given id.
func Lookup(id string) (Prompt, error) {
	for _, p := range defaultPrompts() {
		if p.ID == id {
			return p, nil
		}
	}
	return Prompt{}, fmt.Errorf("%w: %s", ErrUnknownPrompt, id)
}

// Evaluate measures text against the prompt's word limit. The percentage is capped at 100.
func Evaluate(promptID, text string) (Feedback, error) {
	p, err := Lookup(promptID)
	if err != nil {
		return Feedback{}, err
	}

	words := WordCount(text)
	percent := 0.0
	if p.WordLimit > 0 {
		percent = min(float64(words)/float64(p.WordLimit)*100, 100)
	}

	return Feedback{
		PromptID: p.ID,
		Words:    words,
		Limit:    p.WordLimit,
		Percent:  percent,
		Over:     words > p.WordLimit,
	}, nil
}

// Drafts holds the saved essay drafts of one session, keyed by prompt id.
type Drafts struct {
	texts map[string]string
}

func NewDrafts() *Drafts {
	return &Drafts{texts: map[string]string{}}
}

// Save stores text as the draft for promptID, replacing any earlier draft.
func (d *Drafts) Save(promptID, text string) error {
	if _, err := Lookup(promptID); err != nil {
		return err
	}
	d.texts[promptID] = text
	return nil
}

// Load returns the saved draft or an empty string when none exists.
func (d *Drafts) Load(promptID string) string {
	return d.texts[promptID]
}

func (d *Drafts) Count() int {
	return len(d.texts)
}

// PromptIDs lists prompts that have a saved draft, sorted.
func (d *Drafts) PromptIDs() []string {
	return slices.Sorted(maps.Keys(d.texts))
}

func defaultPrompts() []Prompt {
	return []Prompt{
		{
			ID:        "common-1",
			Category:  "Common App",
			Title:     "Prompt 1: Background & Identity",
			Text:      "Some students have a background, identity, interest, or talent that is so meaningful they believe their application would be incomplete without it. If this sounds like you, then please share your story.",
			WordLimit: 650,
			Tips:      []string{"Focus on what makes you unique", "Explain significance, not just description", "Show growth and self-awareness"},
		},
		{
			ID:        "common-2",
			Category:  "Common App",
			Title:     "Prompt 2: Challenge & Failure",
			Text:      "The lessons we take from obstacles we encounter can be fundamental to later success. Recount a time when you faced a challenge, setback, or failure. How did it affect you, and what did you learn from the experience?",
			WordLimit: 650,
			Tips:      []string{"Be honest about the challenge", "Focus on your response and growth", "Show resilience and problem-solving"},
		},
		{
			ID:        "common-3",
			Category:  "Common App",
			Title:     "Prompt 3: Beliefs & Ideas",
			Text:      "Reflect on a time when you questioned a belief or idea you previously held. What prompted your thinking? What was the outcome?",
			WordLimit: 650,
			Tips:      []string{"Show intellectual curiosity", "Demonstrate willingness to change", "Explain the reasoning process"},
		},
		{
			ID:        "common-4",
			Category:  "Common App",
			Title:     "Prompt 4: Problem-Solving",
			Text:      "Describe a problem you've solved or would like to solve. It can be an intellectual challenge, a research query, an ethical dilemma-anything that is of personal importance, no matter the scale.",
			WordLimit: 650,
			Tips:      []string{"Pick a problem meaningful to you", "Show your thought process", "Explain impact and implications"},
		},
		{
			ID:        "why-school",
			Category:  "Supplemental",
			Title:     "Why Do You Want to Attend?",
			Text:      "What specifically about [School Name] appeals to you? Please discuss your academic interests and any other aspects of the university that attract you.",
			WordLimit: 300,
			Tips:      []string{"Research the school thoroughly", "Be specific about programs/opportunities", "Connect school offerings to your goals"},
		},
		{
			ID:        "leadership",
			Category:  "Supplemental",
			Title:     "Leadership & Contribution",
			Text:      "Tell us about a time you demonstrated leadership or made a meaningful contribution to a community.",
			WordLimit: 250,
			Tips:      []string{"Define your leadership style", "Show impact on others", "Reflect on lessons learned"},
		},
	}
}
