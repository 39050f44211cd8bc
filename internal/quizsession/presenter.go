package quizsession

import (
	"errors"
	"fmt"

	"skillpath-backend/internal/curriculum"
)

type Phase int

const (
	Answering Phase = iota
	Revealed
)

func (p Phase) String() string {
	switch p {
	case Answering:
		return "answering"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Unset marks a question without a selected option.
const Unset = -1

// Score thresholds, in percent.
const (
	positiveThreshold = 70
	neutralThreshold  = 50
)

type Band int

const (
	BandEncouragement Band = iota
	BandNeutral
	BandPositive
)

func (b Band) String() string {
	switch b {
	case BandPositive:
		return "positive"
	case BandNeutral:
		return "neutral"
	default:
		return "encouragement"
	}
}

func (b Band) Message() string {
	switch b {
	case BandPositive:
		return "Excelente! Você dominou este tópico! 🎉"
	case BandNeutral:
		return "Bom trabalho! Revise alguns conceitos para melhorar. 📚"
	default:
		return "Continue estudando! A prática leva à perfeição. 💪"
	}
}

// BandFor classifies a percentage score.
func BandFor(percentage float64) Band {
	switch {
	case percentage >= positiveThreshold:
		return BandPositive
	case percentage >= neutralThreshold:
		return BandNeutral
	default:
		return BandEncouragement
	}
}

// State is the persisted form of a presenter.
type State struct {
	Selected     []int `json:"selected"`
	Revealed     bool  `json:"revealed"`
	CorrectCount int   `json:"correct_count"`
}

var ErrStateMismatch = errors.New("quiz state does not match questions")

// Presenter holds the answers for one topic quiz. It references the
// questions it was given and never modifies them. A Presenter is not safe
// for concurrent use.
type Presenter struct {
	questions    []curriculum.QuizQuestion
	selected     []int
	phase        Phase
	correctCount int
}

func New(questions []curriculum.QuizQuestion) *Presenter {
	p := &Presenter{questions: questions, selected: make([]int, len(questions))}
	p.Reset()
	return p
}

// Restore rebuilds a presenter from a snapshot taken over the same questions.
func Restore(questions []curriculum.QuizQuestion, s State) (*Presenter, error) {
	if len(s.Selected) != len(questions) {
		return nil, fmt.Errorf("%w: %d selections for %d questions", ErrStateMismatch, len(s.Selected), len(questions))
	}

	p := New(questions)
	for i, o := range s.Selected {
		if o != Unset && (o < 0 || o >= len(questions[i].Options)) {
			return nil, fmt.Errorf("%w: option %d out of range for question %d", ErrStateMismatch, o, i)
		}
		p.selected[i] = o
	}

	if s.Revealed {
		if !p.CanSubmit() {
			return nil, fmt.Errorf("%w: revealed with unanswered questions", ErrStateMismatch)
		}
		p.Submit()
		if p.correctCount != s.CorrectCount {
			return nil, fmt.Errorf("%w: correct count %d, expected %d", ErrStateMismatch, s.CorrectCount, p.correctCount)
		}
	}
	return p, nil
}

func (p *Presenter) Phase() Phase { return p.phase }

func (p *Presenter) Questions() []curriculum.QuizQuestion { return p.questions }

// Select records option for question. It is a no-op returning false after
// reveal or when either index is out of range.
func (p *Presenter) Select(question, option int) bool {
	if p.phase != Answering {
		return false
	}
	if question < 0 || question >= len(p.questions) {
		return false
	}
	if option < 0 || option >= len(p.questions[question].Options) {
		return false
	}
	p.selected[question] = option
	return true
}

// CanSubmit reports whether every question has an answer and the quiz is
// still open.
func (p *Presenter) CanSubmit() bool {
	if p.phase != Answering {
		return false
	}
	for _, o := range p.selected {
		if o == Unset {
			return false
		}
	}
	return true
}

// Submit scores the answers and reveals the result. It returns false and
// changes nothing unless CanSubmit holds.
func (p *Presenter) Submit() bool {
	if !p.CanSubmit() {
		return false
	}
	correct := 0
	for i, o := range p.selected {
		if o == p.questions[i].CorrectIndex {
			correct++
		}
	}
	p.correctCount = correct
	p.phase = Revealed
	return true
}

func (p *Presenter) Reset() {
	for i := range p.selected {
		p.selected[i] = Unset
	}
	p.phase = Answering
	p.correctCount = 0
}

func (p *Presenter) CorrectCount() int { return p.correctCount }

func (p *Presenter) Percentage() float64 {
	if len(p.questions) == 0 {
		return 0
	}
	return float64(p.correctCount) / float64(len(p.questions)) * 100
}

func (p *Presenter) Feedback() Band { return BandFor(p.Percentage()) }

func (p *Presenter) Snapshot() State {
	selected := make([]int, len(p.selected))
	copy(selected, p.selected)
	return State{Selected: selected, Revealed: p.phase == Revealed, CorrectCount: p.correctCount}
}
