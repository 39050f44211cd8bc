// Command planview renders a generated learning path on the terminal and
// runs its quizzes interactively.
//
//	planview [-style auto|dark|light|notty] [-width 100] plan.md
//
// With no file argument the markdown is read from stdin and quizzes are
// shown with their answers revealed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"

	"skillpath-backend/internal/curriculum"
	"skillpath-backend/internal/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "planview:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("planview", flag.ContinueOnError)
	style := fs.String("style", "auto", "glamour style: auto, dark, light or notty")
	width := fs.Int("width", 100, "word wrap width")
	verbose := fs.Bool("v", false, "log parsing details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.Nop()
	if *verbose {
		l, err := logger.New("development")
		if err != nil {
			return err
		}
		log = l
		defer log.Sync()
	}

	var (
		markdown    []byte
		err         error
		interactive = fs.NArg() > 0
	)
	if interactive {
		markdown, err = os.ReadFile(fs.Arg(0))
	} else {
		markdown, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("read plan: %w", err)
	}

	renderer, err := newRenderer(*style, *width)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	doc := curriculum.Segment(string(markdown))
	log.Debug("plan segmented", "sections", doc.SectionCount, "quizzes", len(doc.Quizzes), "questions", doc.QuestionCount())

	v := &viewer{
		render: renderer.Render,
		in:     bufio.NewScanner(stdin),
		out:    stdout,
	}
	return v.show(doc, interactive)
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}
