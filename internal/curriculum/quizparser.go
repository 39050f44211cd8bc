package curriculum

import "strings"

// ParseQuiz extracts the questions of one quiz section. The line scanner
// only runs when the structured pass finds nothing.
func ParseQuiz(section string) []QuizQuestion {
	if questions := ParseStructured(section); len(questions) > 0 {
		return questions
	}
	return ParseLineScan(section)
}

// ParseStructured reads blocks that follow the prompt format exactly:
// a bold question marker with the text on the same line, immediately
// followed by four lettered options.
func ParseStructured(section string) []QuizQuestion {
	markers := patterns.questionMarker.FindAllStringIndex(section, -1)
	if len(markers) == 0 {
		return nil
	}

	var questions []QuizQuestion
	for i, m := range markers {
		end := len(section)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		block := section[m[1]:end]
		if loc := patterns.answersMarker.FindStringIndex(block); loc != nil {
			block = block[:loc[0]]
		}

		if q, ok := parseStructuredBlock(block); ok {
			questions = append(questions, q)
		}
	}
	return questions
}

func parseStructuredBlock(block string) (QuizQuestion, bool) {
	lines := strings.Split(block, "\n")
	head := strings.TrimRight(lines[0], "\r")
	if head == "" || (head[0] != ' ' && head[0] != '\t') {
		return QuizQuestion{}, false
	}
	text := strings.TrimSpace(head)
	if text == "" || len(lines) < 2 {
		return QuizQuestion{}, false
	}
	if !patterns.structuredOption.MatchString(strings.TrimRight(lines[1], "\r")) {
		return QuizQuestion{}, false
	}

	var options []string
	correct := 0
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if !patterns.optionLabel.MatchString(line) {
			continue
		}
		// Any other lettered line still counts as an option.
		m := patterns.structuredOption.FindStringSubmatch(line)
		if m == nil {
			return QuizQuestion{}, false
		}
		option, marked := stripCorrectMarker(m[2])
		if marked {
			correct = len(options)
		}
		options = append(options, option)
	}
	if len(options) != optionsPerQuestion {
		return QuizQuestion{}, false
	}

	return QuizQuestion{Question: text, Options: options, CorrectIndex: correct}, true
}

// ParseLineScan is the tolerant pass. It walks trimmed lines, starting a new
// record at every question marker and collecting option lines into it.
// Records are kept only with question text and exactly four options, all
// lettered a to d.
func ParseLineScan(section string) []QuizQuestion {
	var (
		questions []QuizQuestion
		current   *draftQuestion
	)
	flush := func() {
		if current == nil {
			return
		}
		if q, ok := current.build(); ok {
			questions = append(questions, q)
		}
		current = nil
	}

	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if loc := patterns.scanQuestion.FindStringIndex(line); loc != nil {
			flush()
			current = &draftQuestion{text: strings.TrimSpace(line[loc[1]:])}
			continue
		}
		if patterns.answersMarker.MatchString(line) {
			flush()
			continue
		}
		if current == nil {
			continue
		}
		if !patterns.optionLabel.MatchString(line) {
			continue
		}
		if m := patterns.scanOption.FindStringSubmatch(line); m != nil {
			current.add(m[2])
		} else {
			current.invalid = true
		}
	}
	flush()

	return questions
}

type draftQuestion struct {
	text    string
	options []string
	correct int
	invalid bool // saw an option lettered outside a-d
}

func (d *draftQuestion) add(option string) {
	text, marked := stripCorrectMarker(option)
	if marked {
		d.correct = len(d.options)
	}
	d.options = append(d.options, text)
}

func (d *draftQuestion) build() (QuizQuestion, bool) {
	if d.text == "" || d.invalid || len(d.options) != optionsPerQuestion {
		return QuizQuestion{}, false
	}
	return QuizQuestion{Question: d.text, Options: d.options, CorrectIndex: d.correct}, true
}
