// Package curriculum extracts prose and self-check quizzes from the markdown
// learning paths produced by the generation prompt.
package curriculum

import "strings"

// Placeholder marks where a quiz section was excised from the prose.
const Placeholder = "[[QUIZ_PLACEHOLDER]]"

// DefaultTopicTitle is used when no topic heading precedes a quiz section.
const DefaultTopicTitle = "Tópico"

const optionsPerQuestion = 4

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// TopicQuiz is the quiz attached to one topic. Section is the zero-based
// index of the quiz section in the source document, so consumers can align
// a quiz with its prose even when an earlier section was dropped.
type TopicQuiz struct {
	TopicTitle string         `json:"topic_title"`
	Questions  []QuizQuestion `json:"questions"`
	Section    int            `json:"section"`
}

// Document is the segmented form of a learning path. Prose always has
// SectionCount+1 fragments. Quizzes only holds sections that parsed.
type Document struct {
	Prose        []string    `json:"prose"`
	Quizzes      []TopicQuiz `json:"quizzes"`
	SectionCount int         `json:"section_count"`
}

// Pair is one prose fragment and the quiz shown after it, if any.
type Pair struct {
	Prose string     `json:"prose"`
	Quiz  *TopicQuiz `json:"quiz,omitempty"`
}

// Pairs matches fragment i with quiz i. Quizzes left over once the fragments
// run out are kept with empty prose.
func (d Document) Pairs() []Pair {
	n := len(d.Prose)
	if len(d.Quizzes) > n {
		n = len(d.Quizzes)
	}

	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		var p Pair
		if i < len(d.Prose) {
			p.Prose = d.Prose[i]
		}
		if i < len(d.Quizzes) {
			quiz := d.Quizzes[i]
			p.Quiz = &quiz
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// Markdown rejoins the prose with a placeholder where each section was.
func (d Document) Markdown() string {
	return strings.Join(d.Prose, Placeholder)
}

func (d Document) QuestionCount() int {
	total := 0
	for _, q := range d.Quizzes {
		total += len(q.Questions)
	}
	return total
}
