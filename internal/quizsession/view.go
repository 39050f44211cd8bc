package quizsession

import (
	"fmt"
	"math"
)

type OptionView struct {
	Letter        string `json:"letter"`
	Text          string `json:"text"`
	Selected      bool   `json:"selected"`
	ShowCorrect   bool   `json:"show_correct"`
	ShowIncorrect bool   `json:"show_incorrect"`
}

type QuestionView struct {
	Number   int          `json:"number"`
	Question string       `json:"question"`
	Options  []OptionView `json:"options"`
}

type ResultView struct {
	CorrectCount int     `json:"correct_count"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
	Band         string  `json:"band"`
	Message      string  `json:"message"`
	Summary      string  `json:"summary"`
}

// View is what a client needs to draw the quiz. Correct answers only show
// up once the quiz is revealed.
type View struct {
	Phase     string         `json:"phase"`
	Questions []QuestionView `json:"questions"`
	CanSubmit bool           `json:"can_submit"`
	Result    *ResultView    `json:"result,omitempty"`
}

func (p *Presenter) View() View {
	revealed := p.phase == Revealed
	v := View{
		Phase:     p.phase.String(),
		Questions: make([]QuestionView, len(p.questions)),
		CanSubmit: p.CanSubmit(),
	}

	for i, q := range p.questions {
		qv := QuestionView{Number: i + 1, Question: q.Question, Options: make([]OptionView, len(q.Options))}
		for j, text := range q.Options {
			selected := p.selected[i] == j
			qv.Options[j] = OptionView{
				Letter:        string(rune('A' + j)),
				Text:          text,
				Selected:      selected,
				ShowCorrect:   revealed && j == q.CorrectIndex,
				ShowIncorrect: revealed && selected && j != q.CorrectIndex,
			}
		}
		v.Questions[i] = qv
	}

	if revealed {
		band := p.Feedback()
		v.Result = &ResultView{
			CorrectCount: p.correctCount,
			Total:        len(p.questions),
			Percentage:   p.Percentage(),
			Band:         band.String(),
			Message:      band.Message(),
			Summary:      p.Summary(),
		}
	}
	return v
}

// Summary is the one-line score shown after reveal.
func (p *Presenter) Summary() string {
	return fmt.Sprintf("Resultado: %d de %d corretas (%d%%)",
		p.correctCount, len(p.questions), int(math.Round(p.Percentage())))
}
