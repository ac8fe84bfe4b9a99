package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/countyhub/go-minisite/sections"
	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SplitResult is a Markdown body cut into text sections.
type SplitResult struct {
	// Title is the text of a leading level-1 heading, removed from the body.
	Title    string
	Sections []sections.Section
}

// SplitSections cuts body at level-2 headings. Each heading starts a text
// section whose body is the Markdown up to the next level-2 heading. Text
// before the first heading becomes a section without a heading. Section ids
// derive from the heading and position so re-importing keeps them.
func SplitSections(body []byte) SplitResult {
	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	type cut struct {
		heading   string
		lineStart int
		bodyStart int
	}
	var (
		cuts   []cut
		title  string
		offset int
	)
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			continue
		}
		first := heading.Lines().At(0)
		last := heading.Lines().At(heading.Lines().Len() - 1)
		lineStart := bytes.LastIndexByte(body[:first.Start], '\n') + 1
		lineEnd := len(body)
		if idx := bytes.IndexByte(body[last.Stop:], '\n'); idx >= 0 {
			lineEnd = last.Stop + idx + 1
		}
		lineEnd = skipSetextUnderline(body, lineEnd)
		label := headingText(heading, body)

		switch {
		case heading.Level == 1 && title == "" && len(cuts) == 0 && isBlank(body[offset:lineStart]):
			title = label
			offset = lineEnd
		case heading.Level == 2:
			cuts = append(cuts, cut{heading: label, lineStart: lineStart, bodyStart: lineEnd})
		}
	}

	out := SplitResult{Title: title, Sections: []sections.Section{}}
	preambleEnd := len(body)
	if len(cuts) > 0 {
		preambleEnd = cuts[0].lineStart
	}
	if preamble := strings.TrimSpace(string(body[offset:preambleEnd])); preamble != "" {
		out.Sections = append(out.Sections, sections.Section{
			ID:      "intro",
			Content: sections.Text{Body: preamble},
		})
	}
	for i, c := range cuts {
		end := len(body)
		if i+1 < len(cuts) {
			end = cuts[i+1].lineStart
		}
		out.Sections = append(out.Sections, sections.Section{
			ID: sectionID(c.heading, i),
			Content: sections.Text{
				Heading: c.heading,
				Body:    strings.TrimSpace(string(body[c.bodyStart:end])),
			},
		})
	}
	return out
}

func sectionID(heading string, index int) string {
	base, err := slug.Normalize(heading)
	if err != nil || base == "" {
		base = "section"
	}
	return fmt.Sprintf("%s-%d", base, index+1)
}

func headingText(heading *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := heading.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return strings.TrimSpace(buf.String())
}

// skipSetextUnderline moves past a "---" or "===" line that turns the
// previous line into a heading.
func skipSetextUnderline(body []byte, from int) int {
	if from >= len(body) {
		return from
	}
	end := len(body)
	if idx := bytes.IndexByte(body[from:], '\n'); idx >= 0 {
		end = from + idx + 1
	}
	line := bytes.TrimSpace(body[from:end])
	if len(line) == 0 {
		return from
	}
	if len(bytes.Trim(line, "-")) == 0 || len(bytes.Trim(line, "=")) == 0 {
		return end
	}
	return from
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
