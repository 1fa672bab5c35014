package instagram

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionPattern = regexp.MustCompile(`@([\w.]+)`)
)

// ExtractHashtags returns the lowercased hashtags found in a caption,
// in order of appearance, without the leading '#'.
func ExtractHashtags(caption string) []string {
	return extract(hashtagPattern, caption)
}

// ExtractMentions returns the lowercased handles mentioned in a
// caption, in order of appearance, without the leading '@'.
func ExtractMentions(caption string) []string {
	tokens := extract(mentionPattern, caption)
	// A handle never ends with a dot; the regexp is greedy on '.'
	for i, token := range tokens {
		tokens[i] = strings.TrimRight(token, ".")
	}
	return tokens
}

func extract(pattern *regexp.Regexp, caption string) []string {
	if caption == "" {
		return nil
	}
	matches := pattern.FindAllStringSubmatch(caption, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		tokens = append(tokens, strings.ToLower(match[1]))
	}
	return tokens
}
