package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPostTitleLength is the rune limit for post titles.
const MaxPostTitleLength = 26

// ValidatePostTitle checks that a trimmed title is non-empty and within limits.
func ValidatePostTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxPostTitleLength {
		return fmt.Errorf("title must not exceed %d characters", MaxPostTitleLength)
	}
	return nil
}

// ValidatePostContent checks that post content is non-empty after trimming.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// ValidateCommentContent checks that comment content is non-empty after trimming.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment content is required")
	}
	return nil
}
