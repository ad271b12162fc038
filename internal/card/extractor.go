// Package card extracts the question prompt and expected answers from
// rendered flashcard HTML, including cloze deletion cards.
package card

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/answercheck/answercheck/internal/domain"
	"golang.org/x/net/html"
)

// answerMarkerID is the id of the <hr> separating question from answer on
// the rendered back side of a card.
const answerMarkerID = "answer"

// statusSpanID marks the scheduler status overlay some templates inject;
// its text is noise for evaluation purposes.
const statusSpanID = "FSRS_status"

var clozePattern = regexp.MustCompile(`\{\{c(\d+)::(.*?)\}\}`)

// ExtractText returns the visible text of a rendered card side. Style and
// script subtrees and the scheduler status overlay are dropped.
func ExtractText(rendered string) (string, error) {
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCardExtraction, err)
	}

	var text strings.Builder
	collectText(root, &text)
	return normalizeSpace(text.String()), nil
}

// ExtractAnswers returns the expected answers from the rendered back side.
// Text after the answer marker is the answer; cards without the marker
// yield their full text as a single answer.
func ExtractAnswers(renderedBack string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(renderedBack))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCardExtraction, err)
	}

	var before, after strings.Builder
	splitAtMarker(root, &before, &after, new(bool))

	answer := normalizeSpace(after.String())
	if answer == "" {
		answer = normalizeSpace(before.String())
	}
	if answer == "" {
		return nil, fmt.Errorf("%w: no answer text found", domain.ErrCardExtraction)
	}
	return []string{answer}, nil
}

// ClozeDeletion is one {{cN::...}} deletion extracted from a cloze note.
type ClozeDeletion struct {
	// Ord is the 1-based cloze ordinal N.
	Ord int

	// Answer is the deleted text, with any ::hint suffix removed.
	Answer string
}

// ExtractCloze parses the cloze deletions for the given ordinal and returns
// the answers alongside a prompt with every deletion replaced by a blank.
// Returns domain.ErrCardExtraction when the note has no deletion for ord.
func ExtractCloze(noteText string, ord int) (prompt string, answers []string, err error) {
	matches := clozePattern.FindAllStringSubmatch(noteText, -1)
	for _, m := range matches {
		if m[1] != fmt.Sprintf("%d", ord) {
			continue
		}
		answers = append(answers, stripClozeHint(m[2]))
	}
	if len(answers) == 0 {
		return "", nil, fmt.Errorf("%w: no cloze deletion with ordinal %d", domain.ErrCardExtraction, ord)
	}

	prompt = clozePattern.ReplaceAllStringFunc(noteText, func(match string) string {
		m := clozePattern.FindStringSubmatch(match)
		if m[1] == fmt.Sprintf("%d", ord) {
			return "[...]"
		}
		return stripClozeHint(m[2])
	})
	return normalizeSpace(prompt), answers, nil
}

// stripClozeHint drops the optional ::hint suffix inside a cloze deletion.
func stripClozeHint(body string) string {
	if i := strings.Index(body, "::"); i >= 0 {
		return body[:i]
	}
	return body
}

// collectText walks the parse tree accumulating text nodes, skipping
// subtrees that never render visible content.
func collectText(n *html.Node, out *strings.Builder) {
	if skipNode(n) {
		return
	}
	if n.Type == html.TextNode {
		out.WriteString(n.Data)
	}
	if n.Type == html.ElementNode && blockElement(n.Data) {
		out.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// splitAtMarker accumulates text into before until the answer marker <hr>
// is seen, then into after. seen is shared across the recursion.
func splitAtMarker(n *html.Node, before, after *strings.Builder, seen *bool) {
	if skipNode(n) {
		return
	}
	if n.Type == html.ElementNode && n.Data == "hr" && attrValue(n, "id") == answerMarkerID {
		*seen = true
		return
	}
	if n.Type == html.TextNode {
		if *seen {
			after.WriteString(n.Data)
		} else {
			before.WriteString(n.Data)
		}
	}
	if n.Type == html.ElementNode && blockElement(n.Data) {
		if *seen {
			after.WriteString("\n")
		} else {
			before.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		splitAtMarker(c, before, after, seen)
	}
}

// skipNode reports whether a subtree contributes no visible card text.
func skipNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "style", "script", "head":
		return true
	case "span":
		return attrValue(n, "id") == statusSpanID
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func blockElement(tag string) bool {
	switch tag {
	case "br", "div", "p", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// normalizeSpace collapses runs of whitespace within lines and trims
// surrounding blank lines.
func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
