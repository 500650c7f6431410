// ABOUTME: Splits article markdown into sections on level-2 headings
// ABOUTME: Builds stable slug anchors that the sidebar and tracker key on

package content

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one navigable slice of an article. Body keeps the heading
// line so the rendered section opens with its title.
type Section struct {
	ID         string // slug derived from the heading text
	Title      string
	OrderIndex int
	Body       string // markdown including the heading
}

// SplitSections parses markdown and splits it on level-2 headings.
// Text before the first heading becomes the intro. Deeper headings stay
// inside their enclosing section.
func SplitSections(src []byte) (string, []Section) {
	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	type cut struct {
		offset int
		title  string
	}

	var cuts []cut

	// Walk top-level siblings only; nested content never starts a section
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			continue
		}

		if heading.Lines().Len() == 0 {
			continue
		}

		// The segment starts after the "## " marker; back up to the line
		// start so the body keeps the heading syntax
		start := heading.Lines().At(0).Start
		for start > 0 && src[start-1] != '\n' {
			start--
		}

		cuts = append(cuts, cut{
			offset: start,
			title:  string(heading.Text(src)),
		})
	}

	if len(cuts) == 0 {
		return string(src), nil
	}

	intro := strings.TrimSpace(string(src[:cuts[0].offset]))
	sections := make([]Section, 0, len(cuts))
	used := make(map[string]int, len(cuts))

	for i, c := range cuts {
		end := len(src)
		if i+1 < len(cuts) {
			end = cuts[i+1].offset
		}

		sections = append(sections, Section{
			ID:         uniqueSlug(c.title, used),
			Title:      c.title,
			OrderIndex: i,
			Body:       strings.TrimSpace(string(src[c.offset:end])),
		})
	}

	return intro, sections
}

// Slugify converts a heading title to a lowercase dash-separated anchor
// Example: "Habitat & Range" -> "habitat-range"
func Slugify(title string) string {
	var b strings.Builder

	lastDash := true // suppress a leading dash

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)

			lastDash = false
		case !lastDash:
			b.WriteByte('-')

			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// uniqueSlug appends a numeric suffix when a heading repeats within one
// article so every section keeps a distinct anchor
func uniqueSlug(title string, used map[string]int) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "section"
	}

	used[slug]++
	if n := used[slug]; n > 1 {
		return slug + "-" + strconv.Itoa(n)
	}

	return slug
}
