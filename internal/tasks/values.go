// internal/tasks/values.go
package tasks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/mteb/internal/transform"
)

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("item %d: expected string, got %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}

// labelList renders scalar labels in the same display form as transform.LabelHistogram.
func labelList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		if _, err := transform.LabelKey(item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = fmt.Sprint(item)
	}
	return out, nil
}

// idString renders an identifier cell; hub datasets mix string and integer ids.
func idString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported id type %T", v)
	}
}

func textCell(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected text, got %T", v)
	}
}

func intCell(v any) (int, error) {
	switch x := v.(type) {
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case string:
		return strconv.Atoi(x)
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

// dialogueSeparator joins the turns of a dialogue into one query string.
const dialogueSeparator = "; "

// flattenDialogue decodes a JSON-encoded dialogue and joins its turns. A turn
// is either a string or an object carrying the utterance under "text" or
// "content". Anything that is not a JSON list is returned as-is.
func flattenDialogue(raw string) (string, error) {
	var turns []any
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		var s string
		if json.Unmarshal([]byte(raw), &s) == nil {
			return s, nil
		}
		return raw, nil
	}
	parts := make([]string, 0, len(turns))
	for i, turn := range turns {
		switch x := turn.(type) {
		case string:
			parts = append(parts, x)
		case map[string]any:
			text, ok := x["text"].(string)
			if !ok {
				text, ok = x["content"].(string)
			}
			if !ok {
				return "", fmt.Errorf("dialogue turn %d has no text", i)
			}
			parts = append(parts, text)
		default:
			return "", fmt.Errorf("dialogue turn %d: unsupported type %T", i, turn)
		}
	}
	return strings.Join(parts, dialogueSeparator), nil
}
