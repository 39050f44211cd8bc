package curriculum

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseQuiz_SingleQuestion(t *testing.T) {
	got := ParseQuiz("**Questão 1:** 2+2?\na) 3\nb) 4 - CORRETA\nc) 5\nd) 6")

	want := []QuizQuestion{
		{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParseQuiz_TwoOptionsDropped(t *testing.T) {
	got := ParseQuiz("**Questão 1:** Qual a capital?\na) Paris\nb) Roma - CORRETA")
	if len(got) != 0 {
		t.Fatalf("expected no questions, got %+v", got)
	}
}

func TestParseStructured_ThreeQuestionsWithAnswers(t *testing.T) {
	section := `
**Questão 1:** O que é uma variável?
a) Um loop
b) Um espaço nomeado na memória - CORRETA
c) Um arquivo
d) Um servidor

**Questão 2:** Qual comando lista arquivos?
a) ls - CORRETA
b) cd
c) rm
d) mv

**Questão 3:** Qual estrutura é LIFO?
a) Fila
b) Árvore
c) Pilha - CORRETA
d) Grafo

**Respostas:** 1-B, 2-A, 3-C

---
`
	got := ParseStructured(section)
	if len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d: %+v", len(got), got)
	}

	wantText := []string{"O que é uma variável?", "Qual comando lista arquivos?", "Qual estrutura é LIFO?"}
	wantIndex := []int{1, 0, 2}
	for i, q := range got {
		if q.Question != wantText[i] {
			t.Errorf("question %d: expected %q, got %q", i, wantText[i], q.Question)
		}
		if q.CorrectIndex != wantIndex[i] {
			t.Errorf("question %d: expected correct index %d, got %d", i, wantIndex[i], q.CorrectIndex)
		}
		for _, o := range q.Options {
			if strings.Contains(o, "CORRETA") {
				t.Errorf("question %d: marker not stripped from %q", i, o)
			}
		}
	}
	if got[2].Options[2] != "Pilha" {
		t.Errorf("expected stripped option %q, got %q", "Pilha", got[2].Options[2])
	}
}

func TestParseStructured_WrongOptionCountDropsOnlyThatBlock(t *testing.T) {
	section := `**Questão 1:** Três opções?
a) um
b) dois - CORRETA
c) três

**Questão 2:** Quatro opções?
a) um
b) dois
c) três - CORRETA
d) quatro

**Questão 3:** Cinco opções?
a) um
b) dois
c) três
d) quatro - CORRETA
d) cinco`

	got := ParseStructured(section)
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d: %+v", len(got), got)
	}
	if got[0].Question != "Quatro opções?" || got[0].CorrectIndex != 2 {
		t.Fatalf("unexpected question kept: %+v", got[0])
	}
}

func TestParseStructured_OptionMustFollowQuestionLine(t *testing.T) {
	section := "**Questão 1:** Pergunta solta\n\na) um\nb) dois - CORRETA\nc) três\nd) quatro"

	if got := ParseStructured(section); len(got) != 0 {
		t.Fatalf("expected block to be dropped, got %+v", got)
	}
	// the tolerant pass still recovers it
	got := ParseQuiz(section)
	if len(got) != 1 || got[0].CorrectIndex != 1 {
		t.Fatalf("expected fallback to recover the question, got %+v", got)
	}
}

func TestParseStructured_CorrectMarkerVariants(t *testing.T) {
	tests := []struct {
		name    string
		options string
		want    int
		wantOpt string
	}{
		{"dash marker", "a) um\nb) dois\nc) três - CORRETA\nd) quatro", 2, "três"},
		{"no dash", "a) um CORRETA\nb) dois\nc) três\nd) quatro", 0, "um"},
		{"lower case", "a) um\nb) dois\nc) três\nd) quatro - correta", 3, "quatro"},
		{"english alias", "a) one\nb) two - CORRECT\nc) three\nd) four", 1, "two"},
		{"parenthesized", "a) um\nb) dois (CORRETA)\nc) três\nd) quatro", 1, "dois"},
		{"missing marker defaults to first", "a) um\nb) dois\nc) três\nd) quatro", 0, "um"},
		{"last marker wins", "a) um - CORRETA\nb) dois\nc) três - CORRETA\nd) quatro", 2, "três"},
		{"incorreta is not a marker", "a) resposta incorreta\nb) dois - CORRETA\nc) três\nd) quatro", 1, "dois"},
		{"bold annotation", "a) um\nb) dois - **CORRETA**\nc) três\nd) quatro", 1, "dois"},
		{"lower case word kept", "a) um - CORRETA\nb) dois\nc) três\nd) está correta", 0, "um"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseStructured("**Questão 1:** Qual?\n" + tc.options)
			if len(got) != 1 {
				t.Fatalf("expected 1 question, got %+v", got)
			}
			if got[0].CorrectIndex != tc.want {
				t.Errorf("expected correct index %d, got %d", tc.want, got[0].CorrectIndex)
			}
			if got[0].Options[tc.want] != tc.wantOpt {
				t.Errorf("expected option %q, got %q", tc.wantOpt, got[0].Options[tc.want])
			}
		})
	}
}

func TestParseQuiz_LowercaseWordInOptionIsNotAMarker(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    QuizQuestion
	}{
		{
			name:    "portuguese",
			section: "**Questão 1:** Sobre a afirmação\na) Falsa\nb) Verdadeira - CORRETA\nc) Parcial\nd) A afirmação está correta",
			want: QuizQuestion{
				Question:     "Sobre a afirmação",
				Options:      []string{"Falsa", "Verdadeira", "Parcial", "A afirmação está correta"},
				CorrectIndex: 1,
			},
		},
		{
			name:    "english",
			section: "**Question 1:** Which one?\na) One - CORRECT\nb) Two\nc) Three\nd) None is correct",
			want: QuizQuestion{
				Question:     "Which one?",
				Options:      []string{"One", "Two", "Three", "None is correct"},
				CorrectIndex: 0,
			},
		},
		{
			name:    "line scan",
			section: "Questão 1: Sobre a afirmação\n- a) Falsa\n- b) Verdadeira (correta)\n- c) Parcial\n- d) A afirmação está correta",
			want: QuizQuestion{
				Question:     "Sobre a afirmação",
				Options:      []string{"Falsa", "Verdadeira", "Parcial", "A afirmação está correta"},
				CorrectIndex: 1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseQuiz(tc.section)
			if len(got) != 1 || !reflect.DeepEqual(got[0], tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseQuiz_OptionLetteredPastDDropsBlock(t *testing.T) {
	tests := []struct {
		name    string
		section string
	}{
		{"structured", "**Questão 1:** Cinco?\na) um\nb) dois - CORRETA\nc) três\nd) quatro\ne) cinco"},
		{"line scan", "Questão 1: Cinco?\n- a) um\n- b) dois - CORRETA\n- c) três\n- d) quatro\n- E) cinco"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseQuiz(tc.section); len(got) != 0 {
				t.Fatalf("expected block with five options to be dropped, got %+v", got)
			}
		})
	}

	// only the five-option block goes
	section := "**Questão 1:** Cinco?\na) um\nb) dois\nc) três\nd) quatro\ne) cinco\n\n" +
		"**Questão 2:** Quatro?\na) um\nb) dois\nc) três - CORRETA\nd) quatro"
	got := ParseStructured(section)
	if len(got) != 1 || got[0].Question != "Quatro?" || got[0].CorrectIndex != 2 {
		t.Fatalf("expected only the four-option block, got %+v", got)
	}
}

func TestParseStructured_EnglishMarkersAndCRLF(t *testing.T) {
	section := "**Question 1:** What is Go?\r\na) A game\r\nb) A language - CORRECT\r\nc) A car\r\nd) A fish\r\n**Answers:** 1-B\r\n"

	got := ParseStructured(section)
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %+v", got)
	}
	want := QuizQuestion{
		Question:     "What is Go?",
		Options:      []string{"A game", "A language", "A car", "A fish"},
		CorrectIndex: 1,
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("expected %+v, got %+v", want, got[0])
	}
}

func TestParseLineScan_ToleratesDrift(t *testing.T) {
	section := `
Questão 1: Qual é o tipo de 42 em Go?
- a) string
- B) int - CORRETA
- c) bool
- d) rune

**Questao 2**: Quem escreve o markdown?
A) o usuário
b) o LLM CORRETA
c) o navegador
d) o servidor

**Questão 3:** Incompleta
a) um
b) dois
`
	got := ParseLineScan(section)
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d: %+v", len(got), got)
	}

	want := []QuizQuestion{
		{Question: "Qual é o tipo de 42 em Go?", Options: []string{"string", "int", "bool", "rune"}, CorrectIndex: 1},
		{Question: "Quem escreve o markdown?", Options: []string{"o usuário", "o LLM", "o navegador", "o servidor"}, CorrectIndex: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParseLineScan_OptionsAfterAnswersIgnored(t *testing.T) {
	section := "Questão 1: Pergunta\na) um\nb) dois\nc) três - CORRETA\nd) quatro\n**Respostas:** 1-C\na) nota solta"

	got := ParseLineScan(section)
	if len(got) != 1 || got[0].CorrectIndex != 2 {
		t.Fatalf("expected one question with index 2, got %+v", got)
	}
}

func TestParseLineScan_RequiresQuestionText(t *testing.T) {
	section := "**Questão 1:**\na) um\nb) dois\nc) três\nd) quatro"

	if got := ParseLineScan(section); len(got) != 0 {
		t.Fatalf("expected no questions, got %+v", got)
	}
}

func TestParseQuiz_GarbageNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"**Questão 1:**",
		"**Questão 1:** ",
		"a) b) c) d)",
		"**Questão 1:** x\na)",
		"**Respostas:** 1-A",
		strings.Repeat("**Questão 9:** ?\n", 50),
	}
	for _, in := range inputs {
		for _, q := range ParseQuiz(in) {
			if len(q.Options) != 4 || q.CorrectIndex < 0 || q.CorrectIndex > 3 {
				t.Fatalf("invalid question from %q: %+v", in, q)
			}
		}
	}
}

func TestParseQuiz_Idempotent(t *testing.T) {
	section := "**Questão 1:** A?\na) 1\nb) 2\nc) 3 - CORRETA\nd) 4\n\n**Questão 2:** B?\na) 1 - CORRETA\nb) 2\nc) 3\nd) 4"

	first := ParseQuiz(section)
	second := ParseQuiz(section)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}
