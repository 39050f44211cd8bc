package curriculum

import (
	"regexp"
	"strings"
)

// Markers produced by the generation prompt. English aliases are accepted
// because models occasionally switch language mid-document.
var patterns = struct {
	quizHeading     *regexp.Regexp
	sectionBoundary *regexp.Regexp
	topicHeading    *regexp.Regexp

	questionMarker   *regexp.Regexp
	answersMarker    *regexp.Regexp
	structuredOption *regexp.Regexp
	optionLabel      *regexp.Regexp

	scanQuestion *regexp.Regexp
	scanOption   *regexp.Regexp

	correctAnnotation *regexp.Regexp
	correctUpper      *regexp.Regexp
}{
	quizHeading:     regexp.MustCompile(`(?m)^[ \t]*(?:#{1,6}[ \t]+|\*\*)[^\n]*(?:Quiz de Avaliação|Evaluation Quiz)[^\n]*$`),
	sectionBoundary: regexp.MustCompile(`(?m)^#{1,2}[ \t]`),
	topicHeading:    regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*(?:Tópico|Topico|Topic)[ \t]+\d+[ \t]*:[ \t]*(.*?)[ \t\r]*$`),

	questionMarker:   regexp.MustCompile(`\*\*Quest(?:ão|ion) \d+:\*\*`),
	answersMarker:    regexp.MustCompile(`(?m)^[ \t]*\*\*(?:Respostas|Answers)\b`),
	structuredOption: regexp.MustCompile(`^([a-d])\)[ \t]+(\S.*)$`),
	optionLabel:      regexp.MustCompile(`^(?:[-*+]\s+)?[a-zA-Z]\)`),

	scanQuestion: regexp.MustCompile(`(?i)^(?:(?:[-*+]|\d+[.)])\s+)?(?:\*\*)?\s*quest(?:ão|ao|ion)\s*\d+\s*(?:\*\*\s*[:.)]?|[:.)]\s*(?:\*\*)?)`),
	scanOption:   regexp.MustCompile(`^(?:[-*+]\s+)?([a-dA-D])\)\s*(.*)$`),

	// A trailing "- correta" or "(correta)" in any case, or the word in
	// upper case anywhere. Plain lower case "correta" is option text.
	correctAnnotation: regexp.MustCompile(`(?i)\s*(?:[-–—]\s*\(?\s*\**\s*CORRE(?:TA|CT)\s*\**\s*\)?|\(\s*\**\s*CORRE(?:TA|CT)\s*\**\s*\))\s*$`),
	correctUpper:      regexp.MustCompile(`\s*[-–—]?\s*\(?\**\bCORRE(?:TA|CT)\b\**\)?`),
}

// stripCorrectMarker reports whether option carries the correctness marker
// and returns the option text with the marker removed.
func stripCorrectMarker(option string) (string, bool) {
	marked := false
	if loc := patterns.correctAnnotation.FindStringIndex(option); loc != nil {
		option = option[:loc[0]]
		marked = true
	}
	if patterns.correctUpper.MatchString(option) {
		option = patterns.correctUpper.ReplaceAllString(option, "")
		marked = true
	}
	return strings.TrimSpace(option), marked
}
