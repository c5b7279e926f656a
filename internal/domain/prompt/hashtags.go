package prompt

import "strings"

// ParseHashtags extracts hashtags from a provider response. It reads one
// candidate per line, strips list markers, prefixes a missing '#', drops
// anything that is not a single token and removes case-insensitive duplicates.
// The result holds at most MaxHashtags entries.
func ParseHashtags(text string) []string {
	var tags []string
	for _, line := range strings.Split(text, "\n") {
		line = stripListMarker(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) > 1 {
			// "#a #b #c" on one line is still a hashtag list
			if !allHashtags(fields) {
				continue
			}
		}

		for _, f := range fields {
			if tag, ok := normalizeHashtag(f); ok {
				tags = append(tags, tag)
			}
		}
	}
	return dedupe(tags)
}

func stripListMarker(line string) string {
	line = strings.TrimLeft(line, "-*•· \t")
	// numbered lists: "1. #tag" or "1) #tag"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}

func allHashtags(fields []string) bool {
	for _, f := range fields {
		if !strings.HasPrefix(f, "#") {
			return false
		}
	}
	return true
}

func normalizeHashtag(token string) (string, bool) {
	token = strings.TrimRight(token, ".,;:!?\"'")
	token = strings.TrimLeft(token, "\"'")
	token = strings.TrimLeft(token, "#")
	if token == "" {
		return "", false
	}
	return "#" + token, true
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, min(len(tags), MaxHashtags))
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
		if len(out) == MaxHashtags {
			break
		}
	}
	return out
}
