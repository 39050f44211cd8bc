package curriculum

import "strings"

type span struct {
	start     int // heading line start
	bodyStart int // end of heading line
	end       int
}

// Segment splits a learning path into prose fragments and topic quizzes.
// Every quiz section is cut out of the prose, including sections whose
// body yields no questions. The returned strings do not share memory with
// markdown.
func Segment(markdown string) Document {
	sections := findSections(markdown)

	doc := Document{
		Prose:        make([]string, 0, len(sections)+1),
		SectionCount: len(sections),
	}

	prev := 0
	for i, s := range sections {
		before := markdown[prev:s.start]
		doc.Prose = append(doc.Prose, strings.Clone(before))

		if questions := ParseQuiz(markdown[s.bodyStart:s.end]); len(questions) > 0 {
			doc.Quizzes = append(doc.Quizzes, TopicQuiz{
				TopicTitle: topicTitle(before),
				Questions:  cloneQuestions(questions),
				Section:    i,
			})
		}
		prev = s.end
	}
	doc.Prose = append(doc.Prose, strings.Clone(markdown[prev:]))

	return doc
}

func findSections(markdown string) []span {
	headings := patterns.quizHeading.FindAllStringIndex(markdown, -1)
	if len(headings) == 0 {
		return nil
	}

	sections := make([]span, 0, len(headings))
	for i, h := range headings {
		s := span{start: h[0], bodyStart: h[1], end: len(markdown)}
		if i+1 < len(headings) {
			s.end = headings[i+1][0]
		}
		// bodyStart sits on the heading's newline, so ^ cannot match there.
		if loc := patterns.sectionBoundary.FindStringIndex(markdown[s.bodyStart:s.end]); loc != nil {
			s.end = s.bodyStart + loc[0]
		}
		// The newline before the next heading belongs to the prose.
		if s.end < len(markdown) && s.end > s.bodyStart && markdown[s.end-1] == '\n' {
			s.end--
		}
		sections = append(sections, s)
	}
	return sections
}

// topicTitle returns the last topic heading in region, or the default.
func topicTitle(region string) string {
	matches := patterns.topicHeading.FindAllStringSubmatch(region, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if title := strings.TrimSpace(matches[i][1]); title != "" {
			return strings.Clone(title)
		}
	}
	return DefaultTopicTitle
}

func cloneQuestions(questions []QuizQuestion) []QuizQuestion {
	out := make([]QuizQuestion, len(questions))
	for i, q := range questions {
		options := make([]string, len(q.Options))
		for j, o := range q.Options {
			options[j] = strings.Clone(o)
		}
		out[i] = QuizQuestion{
			Question:     strings.Clone(q.Question),
			Options:      options,
			CorrectIndex: q.CorrectIndex,
		}
	}
	return out
}
