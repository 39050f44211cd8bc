package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"skillpath-backend/internal/curriculum"
	"skillpath-backend/internal/quizsession"
)

const help = "Comandos: <pergunta> <letra> (ex: 1 b), s = corrigir, r = reiniciar, n = próximo, q = sair"

type viewer struct {
	render func(string) (string, error)
	in     *bufio.Scanner
	out    io.Writer
}

func (v *viewer) show(doc curriculum.Document, interactive bool) error {
	for _, pair := range doc.Pairs() {
		if strings.TrimSpace(pair.Prose) != "" {
			rendered, err := v.render(pair.Prose)
			if err != nil {
				return fmt.Errorf("render prose: %w", err)
			}
			fmt.Fprint(v.out, rendered)
		}
		if pair.Quiz == nil {
			continue
		}

		p := quizsession.New(pair.Quiz.Questions)
		if !interactive {
			// Nothing to answer with; show the key.
			for i, q := range pair.Quiz.Questions {
				p.Select(i, q.CorrectIndex)
			}
			p.Submit()
			v.printQuiz(pair.Quiz.TopicTitle, p)
			continue
		}

		quit, err := v.runQuiz(pair.Quiz.TopicTitle, p)
		if err != nil || quit {
			return err
		}
	}
	return nil
}

// runQuiz reads commands until the learner moves on. It reports true when
// they asked to quit.
func (v *viewer) runQuiz(title string, p *quizsession.Presenter) (bool, error) {
	v.printQuiz(title, p)
	fmt.Fprintln(v.out, help)

	for {
		fmt.Fprint(v.out, "> ")
		if !v.in.Scan() {
			return true, v.in.Err()
		}

		switch cmd := strings.ToLower(strings.TrimSpace(v.in.Text())); cmd {
		case "":
			continue
		case "q":
			return true, nil
		case "n":
			return false, nil
		case "r":
			p.Reset()
		case "s":
			if !p.Submit() {
				fmt.Fprintln(v.out, "Responda todas as perguntas antes de corrigir.")
				continue
			}
		default:
			question, option, ok := parseAnswer(cmd)
			if !ok || !p.Select(question, option) {
				fmt.Fprintln(v.out, help)
				continue
			}
		}
		v.printQuiz(title, p)
	}
}

// parseAnswer turns "2 c" into (1, 2).
func parseAnswer(cmd string) (int, int, bool) {
	fields := strings.Fields(cmd)
	if len(fields) != 2 || len(fields[1]) != 1 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	letter := fields[1][0]
	if letter < 'a' || letter > 'd' {
		return 0, 0, false
	}
	return n - 1, int(letter - 'a'), true
}

func (v *viewer) printQuiz(title string, p *quizsession.Presenter) {
	view := p.View()

	fmt.Fprintf(v.out, "\n== Quiz: %s ==\n", title)
	for _, q := range view.Questions {
		fmt.Fprintf(v.out, "%d. %s\n", q.Number, q.Question)
		for _, o := range q.Options {
			mark := " "
			if o.Selected {
				mark = "x"
			}
			suffix := ""
			switch {
			case o.ShowCorrect:
				suffix = "  ✓"
			case o.ShowIncorrect:
				suffix = "  ✗"
			}
			fmt.Fprintf(v.out, "   [%s] %s) %s%s\n", mark, o.Letter, o.Text, suffix)
		}
	}

	if view.Result != nil {
		fmt.Fprintf(v.out, "%s\n%s\n", view.Result.Summary, view.Result.Message)
	}
}
