package model

import (
	"encoding/json"
	"strings"
)

// TextItem is a single free-text entry that may carry structured
// project and milestone context.
type TextItem struct {
	Text       string
	Project    string
	Milestone  string
	Structured bool
}

// DecodeTextItem normalizes one raw entry. Newer clients store entries
// as JSON objects with text/project/milestone keys; older clients store
// plain strings. A brace-wrapped value that fails to decode falls back
// to plain text. Decoding happens once at ingestion; downstream logic
// never sees the raw form.
func DecodeTextItem(raw string) TextItem {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var obj struct {
			Text      string `json:"text"`
			Project   string `json:"project"`
			Milestone string `json:"milestone"`
		}
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			return TextItem{
				Text:       obj.Text,
				Project:    obj.Project,
				Milestone:  obj.Milestone,
				Structured: true,
			}
		}
	}
	return TextItem{Text: trimmed}
}

// DecodeTextItems normalizes a batch of raw entries, dropping blanks.
func DecodeTextItems(raw []string) []TextItem {
	items := make([]TextItem, 0, len(raw))
	for _, r := range raw {
		item := DecodeTextItem(r)
		if item.Text == "" && !item.Structured {
			continue
		}
		items = append(items, item)
	}
	return items
}
