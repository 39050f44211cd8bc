package services

import (
	"fmt"
	"strconv"
	"strings"

	"skillpath-backend/internal/models"
)

// The document layout below is what internal/curriculum parses. Changing a
// marker here means changing the patterns there.
const systemPrompt = `Você é um especialista em educação e desenvolvimento de carreira que cria trilhas de aprendizagem personalizadas para o SkillPath.

Gere uma trilha em formato de documentação técnica, dividida em aproximadamente 8 tópicos. Cada tópico deve ser completo como uma página de documentação.

ESTRUTURA OBRIGATÓRIA:

# 🎯 [Nome da Trilha]

## 📋 Visão Geral
[Introdução, objetivo final e contexto da pessoa]

---

## 📚 Índice dos Tópicos
1. [Tópico 1 - Nome]
...
8. [Tópico 8 - Nome]

---

## Tópico 1: [Nome do Tópico]

### 🎯 Objetivo
[O que será aprendido]

### 📖 Conceitos Fundamentais
#### [Conceito]
[Explicação didática com 3 a 4 parágrafos, exemplos de código quando fizer sentido]

### 📚 Recursos Recomendados
- 📄 [Documentação oficial - link]
- 📖 [Artigo ou tutorial - link]
- 💻 [Curso gratuito - link]

### 🎯 Projeto Prático
[Projeto específico para aplicar o conteúdo]

### ✅ Quiz de Avaliação

**Questão 1:** [Pergunta]
a) [Opção A]
b) [Opção B]
c) [Opção C] - CORRETA
d) [Opção D]

**Questão 2:** [Pergunta]
a) [Opção A]
b) [Opção B] - CORRETA
c) [Opção C]
d) [Opção D]

**Questão 3:** [Pergunta]
a) [Opção A] - CORRETA
b) [Opção B]
c) [Opção C]
d) [Opção D]

**Respostas:** 1-C, 2-B, 3-A

---

[REPITA A ESTRUTURA PARA TODOS OS TÓPICOS]

## 🎓 Conclusão e Próximos Passos
[Mensagem final, próximos desafios e recursos adicionais]

REGRAS:
- NÃO inclua links do YouTube
- Use documentações oficiais, MDN, freeCodeCamp, artigos técnicos e cursos gratuitos
- Cada quiz tem exatamente 3 perguntas com 4 alternativas (a, b, c, d)
- Marque a alternativa correta com "- CORRETA" no fim da linha
- Termine cada quiz com a linha de respostas
- Adapte a complexidade ao nível da pessoa`

const (
	defaultFormats  = "qualquer formato"
	defaultDeadline = "flexível"
)

// Sampling parameters used by every provider.
const (
	generationTemperature = 0.7
	generationTopP        = 0.9
)

func buildUserPrompt(p models.LearnerProfile) string {
	formats := defaultFormats
	if len(p.PreferredFormat) > 0 {
		formats = strings.Join(p.PreferredFormat, ", ")
	}
	deadline := defaultDeadline
	if p.DeadlineWeeks != nil {
		deadline = formatNumber(*p.DeadlineWeeks) + " semanas"
	}

	var b strings.Builder
	b.WriteString("Crie uma trilha de aprendizagem personalizada com os seguintes dados:\n\n")
	fmt.Fprintf(&b, "**Objetivo Profissional:** %s\n", p.Objective)
	fmt.Fprintf(&b, "**Área de Interesse:** %s\n", p.Area)
	fmt.Fprintf(&b, "**Nível Atual:** %s\n", p.Level)
	fmt.Fprintf(&b, "**Tempo Disponível:** %sh por semana\n", formatNumber(p.WeeklyTime))
	fmt.Fprintf(&b, "**Prazo:** %s\n", deadline)
	fmt.Fprintf(&b, "**Formato Preferido:** %s\n\n", formats)
	b.WriteString("Gere uma trilha focada, realista e motivadora que leve a pessoa do ponto atual até o objetivo.")
	return b.String()
}

// formatNumber prints 10 as "10" and 7.5 as "7.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
