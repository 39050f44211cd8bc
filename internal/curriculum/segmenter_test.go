package curriculum

import (
	"reflect"
	"strings"
	"testing"
)

const samplePath = `# 🎯 Trilha de Aprendizagem: Backend com Go

## 📋 Visão Geral
Duração: 8 semanas.

## Tópico 1: Fundamentos da Linguagem

### 📚 Conteúdo
Tipos, funções e pacotes.

### ✅ Quiz de Avaliação

**Questão 1:** Qual palavra-chave declara uma função?
a) def
b) fun
c) func - CORRETA
d) function

**Questão 2:** Qual é o valor zero de um int?
a) 0 - CORRETA
b) nil
c) -1
d) indefinido

**Respostas:** 1-C, 2-A

---

## Tópico 2: Concorrência

### 📚 Conteúdo
Goroutines e canais.

### ✅ Quiz de Avaliação

**Questão 1:** Como se inicia uma goroutine?
a) go f() - CORRETA
b) async f()
c) spawn f()
d) thread f()

## 🏆 Conclusão
Bons estudos!
`

func TestSegment_NoSections(t *testing.T) {
	input := "## Tópico 1: Sem quiz\n\nApenas texto.\n"

	doc := Segment(input)
	if len(doc.Prose) != 1 || doc.Prose[0] != input {
		t.Fatalf("expected one fragment equal to input, got %q", doc.Prose)
	}
	if len(doc.Quizzes) != 0 || doc.SectionCount != 0 {
		t.Fatalf("expected no quizzes, got %+v", doc.Quizzes)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	doc := Segment("")
	if !reflect.DeepEqual(doc.Prose, []string{""}) {
		t.Fatalf("expected a single empty fragment, got %q", doc.Prose)
	}
}

func TestSegment_SamplePath(t *testing.T) {
	doc := Segment(samplePath)

	if doc.SectionCount != 2 || len(doc.Prose) != 3 || len(doc.Quizzes) != 2 {
		t.Fatalf("expected 2 sections, 3 fragments, 2 quizzes; got %d, %d, %d",
			doc.SectionCount, len(doc.Prose), len(doc.Quizzes))
	}

	if doc.Quizzes[0].TopicTitle != "Fundamentos da Linguagem" {
		t.Errorf("unexpected first title %q", doc.Quizzes[0].TopicTitle)
	}
	if doc.Quizzes[1].TopicTitle != "Concorrência" {
		t.Errorf("unexpected second title %q", doc.Quizzes[1].TopicTitle)
	}
	if len(doc.Quizzes[0].Questions) != 2 || len(doc.Quizzes[1].Questions) != 1 {
		t.Errorf("unexpected question counts: %d, %d", len(doc.Quizzes[0].Questions), len(doc.Quizzes[1].Questions))
	}
	if doc.QuestionCount() != 3 {
		t.Errorf("expected 3 questions, got %d", doc.QuestionCount())
	}

	if !strings.HasSuffix(doc.Prose[0], "Tipos, funções e pacotes.\n\n") {
		t.Errorf("unexpected end of first fragment: %q", doc.Prose[0])
	}
	if !strings.HasPrefix(doc.Prose[1], "\n## Tópico 2: Concorrência") {
		t.Errorf("unexpected start of second fragment: %q", doc.Prose[1])
	}
	if !strings.HasPrefix(doc.Prose[2], "\n## 🏆 Conclusão") {
		t.Errorf("unexpected start of last fragment: %q", doc.Prose[2])
	}

	for i, p := range doc.Prose {
		if strings.Contains(p, "Quiz de Avaliação") || strings.Contains(p, "CORRETA") || strings.Contains(p, "Respostas") {
			t.Errorf("fragment %d still holds quiz text: %q", i, p)
		}
	}
}

func TestSegment_ReassemblyLaw(t *testing.T) {
	doc := Segment(samplePath)

	first := strings.Index(samplePath, "### ✅ Quiz de Avaliação")
	firstEnd := strings.Index(samplePath, "\n## Tópico 2")
	second := strings.LastIndex(samplePath, "### ✅ Quiz de Avaliação")
	secondEnd := strings.Index(samplePath, "\n## 🏆 Conclusão")

	want := samplePath[:first] + Placeholder + samplePath[firstEnd:second] + Placeholder + samplePath[secondEnd:]
	if got := doc.Markdown(); got != want {
		t.Fatalf("reassembled document differs:\nwant %q\ngot  %q", want, got)
	}
}

func TestSegment_MalformedSectionStillExcised(t *testing.T) {
	input := `## Tópico 1: Quebrado

### ✅ Quiz de Avaliação

**Questão 1:** Só duas opções
a) um - CORRETA
b) dois

## Tópico 2: Válido

### ✅ Quiz de Avaliação

**Questão 1:** Quatro opções
a) um
b) dois - CORRETA
c) três
d) quatro
`
	doc := Segment(input)

	if doc.SectionCount != 2 || len(doc.Prose) != 3 {
		t.Fatalf("expected 2 sections and 3 fragments, got %d and %d", doc.SectionCount, len(doc.Prose))
	}
	if len(doc.Quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(doc.Quizzes))
	}
	if doc.Quizzes[0].Section != 1 || doc.Quizzes[0].TopicTitle != "Válido" {
		t.Fatalf("unexpected quiz: %+v", doc.Quizzes[0])
	}
	for i, p := range doc.Prose {
		if strings.Contains(p, "Só duas opções") {
			t.Fatalf("fragment %d holds malformed quiz text: %q", i, p)
		}
	}

	// pairing stays positional: the surviving quiz follows the first fragment
	pairs := doc.Pairs()
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	if pairs[0].Quiz == nil || pairs[0].Quiz.TopicTitle != "Válido" {
		t.Errorf("expected first pair to carry the surviving quiz, got %+v", pairs[0].Quiz)
	}
	if pairs[1].Quiz != nil || pairs[2].Quiz != nil {
		t.Errorf("expected trailing pairs without quiz")
	}
}

func TestSegment_TopicTitleSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"default without heading",
			"Introdução\n\n### ✅ Quiz de Avaliação\n**Questão 1:** A?\na) 1\nb) 2\nc) 3\nd) 4\n",
			DefaultTopicTitle,
		},
		{
			"nearest heading wins",
			"## Tópico 1: Primeiro\n\n## Tópico 2: Segundo\n\n### ✅ Quiz de Avaliação\n**Questão 1:** A?\na) 1\nb) 2\nc) 3\nd) 4\n",
			"Segundo",
		},
		{
			"english alias",
			"## Topic 3: Channels\n\n### Evaluation Quiz\n**Question 1:** A?\na) 1\nb) 2\nc) 3\nd) 4\n",
			"Channels",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := Segment(tc.input)
			if len(doc.Quizzes) != 1 {
				t.Fatalf("expected 1 quiz, got %d", len(doc.Quizzes))
			}
			if doc.Quizzes[0].TopicTitle != tc.want {
				t.Errorf("expected title %q, got %q", tc.want, doc.Quizzes[0].TopicTitle)
			}
		})
	}
}

func TestSegment_TitleRegionStartsAfterPreviousSection(t *testing.T) {
	input := `## Tópico 1: Único

### ✅ Quiz de Avaliação
**Questão 1:** A?
a) 1 - CORRETA
b) 2
c) 3
d) 4

### ✅ Quiz de Avaliação
**Questão 1:** B?
a) 1
b) 2 - CORRETA
c) 3
d) 4
`
	doc := Segment(input)
	if doc.SectionCount != 2 || len(doc.Quizzes) != 2 {
		t.Fatalf("expected two adjacent sections, got %d sections and %d quizzes", doc.SectionCount, len(doc.Quizzes))
	}
	if doc.Quizzes[0].TopicTitle != "Único" {
		t.Errorf("unexpected first title %q", doc.Quizzes[0].TopicTitle)
	}
	if doc.Quizzes[1].TopicTitle != DefaultTopicTitle {
		t.Errorf("expected default title for second section, got %q", doc.Quizzes[1].TopicTitle)
	}
	if doc.Prose[1] != "\n" {
		t.Errorf("expected only the separating newline between sections, got %q", doc.Prose[1])
	}
}

func TestDocumentPairs_ExtraQuizzesKept(t *testing.T) {
	quiz := TopicQuiz{TopicTitle: "Extra"}
	doc := Document{Prose: []string{"a"}, Quizzes: []TopicQuiz{quiz, quiz}}

	pairs := doc.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[1].Prose != "" || pairs[1].Quiz == nil {
		t.Fatalf("expected extra quiz with empty prose, got %+v", pairs[1])
	}
}
