package genai

import "strings"

const (
	titleLabel     = "제목:"
	sectionDivider = "---"

	// DefaultDraftTitle is used when no title survives parsing.
	DefaultDraftTitle = "제목 없음"
)

// Default placeholders for summary sections that parse out empty.
const (
	DefaultKeyIdea         = "핵심 아이디어를 찾지 못했어요"
	DefaultCommonThought   = "공통된 생각이 아직 없어요"
	DefaultDiscussionPoint = "더 이야기해볼 점이 아직 없어요"
)

// ParseDraft splits a generated reply into title and body. A line starting
// with the title label carries the title; a line containing the divider
// separates it from the body. When no title is labeled, the first body line
// is promoted. The title is hard-truncated to 100 characters and falls back
// to a fixed placeholder; an empty body falls back to the whole raw reply.
func ParseDraft(raw string) Draft {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var title string
	var bodyLines []string
	foundSeparator := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, titleLabel):
			title = strings.TrimSpace(strings.TrimPrefix(line, titleLabel))
		case strings.Contains(line, sectionDivider):
			foundSeparator = true
		case foundSeparator:
			bodyLines = append(bodyLines, line)
		}
	}

	if title == "" && len(bodyLines) > 0 {
		title = bodyLines[0]
		bodyLines = bodyLines[1:]
	}

	if title == "" {
		title = DefaultDraftTitle
	} else {
		runes := []rune(title)
		if len(runes) > 100 {
			title = string(runes[:100])
		}
	}

	content := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if content == "" {
		content = raw
	}

	return Draft{Title: title, Content: content}
}

// TruncateComment enforces the gardener reply length cap. Replies longer
// than 200 runes are cut and suffixed with an ellipsis marker.
func TruncateComment(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= 200 {
		return text
	}
	return string(runes[:200]) + "..."
}

// summary section markers matched against section headers.
var summaryMarkers = []struct {
	substr  string
	section int
}{
	{"핵심 아이디어", 0},
	{"공통된 생각", 1},
	{"더 이야기해볼", 2},
}

// ParseSummary splits a generated reply on the section divider, classifies
// each section by its marker substring, and collects bullet lines as items.
// Sections that come out empty get their fixed default placeholder.
func ParseSummary(raw string) Summary {
	sections := strings.Split(raw, sectionDivider)

	buckets := [3][]string{}
	for _, section := range sections {
		idx := -1
		for _, m := range summaryMarkers {
			if strings.Contains(section, m.substr) {
				idx = m.section
				break
			}
		}
		if idx < 0 {
			continue
		}
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if item, ok := strings.CutPrefix(line, "- "); ok {
				buckets[idx] = append(buckets[idx], strings.TrimSpace(item))
			} else if item, ok := strings.CutPrefix(line, "• "); ok {
				buckets[idx] = append(buckets[idx], strings.TrimSpace(item))
			}
		}
	}

	if len(buckets[0]) == 0 {
		buckets[0] = []string{DefaultKeyIdea}
	}
	if len(buckets[1]) == 0 {
		buckets[1] = []string{DefaultCommonThought}
	}
	if len(buckets[2]) == 0 {
		buckets[2] = []string{DefaultDiscussionPoint}
	}

	return Summary{
		KeyIdeas:         buckets[0],
		CommonThoughts:   buckets[1],
		DiscussionPoints: buckets[2],
	}
}
