package ast

import (
	"strings"

	"slicec/internal/source"
)

// DocComment is the structured form of the /// lines preceding a definition.
// Lines are concatenated in source order; @-tags are parsed post-hoc.
type DocComment struct {
	Span     source.Span
	Overview string // text before the first tag, lines joined with \n
	Params   []DocTag
	Returns  []DocTag
	Throws   []DocTag
	See      []DocTag
	Links    []string // inline {@link Target} targets, in order
}

// DocTag is one parsed @-tag. Name is empty for tags that take no name
// operand (@returns without a name, @see targets live in Desc).
type DocTag struct {
	Name string
	Desc string
}

// ParseDocComment assembles raw doc lines into a DocComment. Problems with
// tag shapes are returned as messages for the caller to report as warnings;
// a malformed tag keeps its text in the overview so nothing is lost.
func ParseDocComment(lines []string, span source.Span) (DocComment, []string) {
	doc := DocComment{Span: span}
	var problems []string
	var overview []string

	// current tag being accumulated; continuation lines append to it
	var current *DocTag

	flush := func() { current = nil }

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@") {
			doc.Links = append(doc.Links, extractLinks(trimmed)...)
			if current != nil {
				if trimmed != "" {
					current.Desc = joinDesc(current.Desc, trimmed)
				}
				continue
			}
			overview = append(overview, line)
			continue
		}

		tag, rest, _ := strings.Cut(trimmed, " ")
		rest = strings.TrimSpace(rest)
		switch tag {
		case "@param", "@throws":
			name, desc, ok := splitNameColon(rest)
			if !ok {
				problems = append(problems, "malformed '"+tag+"' tag: expected '"+tag+" name: description'")
				flush()
				continue
			}
			entry := DocTag{Name: name, Desc: desc}
			if tag == "@param" {
				doc.Params = append(doc.Params, entry)
				current = &doc.Params[len(doc.Params)-1]
			} else {
				doc.Throws = append(doc.Throws, entry)
				current = &doc.Throws[len(doc.Throws)-1]
			}
		case "@returns":
			name, desc, ok := splitNameColon(rest)
			if !ok {
				// a bare description is fine for @returns
				name, desc = "", rest
			}
			doc.Returns = append(doc.Returns, DocTag{Name: name, Desc: desc})
			current = &doc.Returns[len(doc.Returns)-1]
		case "@see":
			if rest == "" {
				problems = append(problems, "malformed '@see' tag: expected a target")
				flush()
				continue
			}
			doc.See = append(doc.See, DocTag{Desc: rest})
			flush()
		default:
			problems = append(problems, "unknown doc comment tag '"+tag+"'")
			flush()
		}
	}

	doc.Overview = strings.TrimRight(strings.Join(overview, "\n"), "\n")
	return doc, problems
}

// splitNameColon parses "name: description". ok is false if there is no
// name or no colon.
func splitNameColon(s string) (name, desc string, ok bool) {
	name, desc, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !found || name == "" || strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return name, strings.TrimSpace(desc), true
}

// extractLinks pulls the targets out of inline {@link Target} markers.
func extractLinks(line string) []string {
	var links []string
	for {
		start := strings.Index(line, "{@link")
		if start < 0 {
			return links
		}
		end := strings.Index(line[start:], "}")
		if end < 0 {
			return links
		}
		target := strings.TrimSpace(line[start+len("{@link") : start+end])
		if target != "" {
			links = append(links, target)
		}
		line = line[start+end+1:]
	}
}

func joinDesc(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
