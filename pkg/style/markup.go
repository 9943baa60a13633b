// Package style holds the lipgloss styles pkgactions prints with and the
// renderer for the <tag>text</tag> markup used in action messages.
package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type tagRule struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// MarkupParser handles parsing and rendering of markup tags
type MarkupParser struct {
	rules map[string]tagRule
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{rules: make(map[string]tagRule)}
	p.AddStyle("info", InfoStyle)
	p.AddStyle("comment", CommentStyle)
	p.AddStyle("question", QuestionStyle)
	p.AddStyle("error", ErrorStyle)
	p.AddStyle("warning", WarningStyle)
	p.AddStyle("title", TitleStyle)
	p.AddStyle("muted", MutedStyle)
	p.AddStyle("success", SuccessStyle)
	p.AddStyle("bold", lipgloss.NewStyle().Bold(true))
	return p
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.rules[tag] = tagRule{
		pattern: regexp.MustCompile(`(?s)<` + regexp.QuoteMeta(tag) + `>(.*?)</` + regexp.QuoteMeta(tag) + `>`),
		style:   style,
	}
}

// Render replaces every known tag with its styled content. Nested tags are
// handled by repeating the pass until nothing changes.
func (p *MarkupParser) Render(text string) string {
	return p.apply(text, func(rule tagRule, content string) string {
		return rule.style.Render(content)
	})
}

// Strip removes known tags and keeps their content
func (p *MarkupParser) Strip(text string) string {
	return p.apply(text, func(_ tagRule, content string) string {
		return content
	})
}

func (p *MarkupParser) apply(text string, fn func(tagRule, string) string) string {
	tags := make([]string, 0, len(p.rules))
	for tag := range p.rules {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	result := text
	for {
		before := result
		for _, tag := range tags {
			rule := p.rules[tag]
			result = rule.pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := rule.pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return fn(rule, submatch[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// Global parser instance
var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
