package tracker

import (
	"fmt"
	"strings"
)

// ParsePayload turns key=value pairs into a page payload. A value holding
// commas becomes a list.
func ParsePayload(pairs []string) (map[string]any, error) {
	payload := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("tracker: expected key=value, got %q", pair)
		}
		value = strings.TrimSpace(value)
		if strings.Contains(value, ",") {
			var list []any
			for _, part := range strings.Split(value, ",") {
				if part = strings.TrimSpace(part); part != "" {
					list = append(list, part)
				}
			}
			payload[key] = list
			continue
		}
		payload[key] = value
	}
	return payload, nil
}

// SplitPairs breaks a prompt line into key=value pairs. A new pair starts at
// each word holding a key=; other words belong to the value before them.
func SplitPairs(line string) []string {
	var pairs []string
	for _, word := range strings.Fields(line) {
		if i := strings.Index(word, "="); i > 0 || len(pairs) == 0 {
			pairs = append(pairs, word)
			continue
		}
		pairs[len(pairs)-1] += " " + word
	}
	return pairs
}
