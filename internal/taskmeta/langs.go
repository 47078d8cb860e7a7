// internal/taskmeta/langs.go
package taskmeta

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
)

var langCodePattern = regexp.MustCompile(`^[a-z]{3}-[A-Z][a-z]{3}$`)

// EvalLangs is either a flat list of language codes or a mapping from dataset
// subset (or language pair) to the codes it covers.
type EvalLangs struct {
	langs   []string
	subsets map[string][]string
}

// Langs builds a monolingual EvalLangs.
func Langs(codes ...string) EvalLangs {
	return EvalLangs{langs: append([]string(nil), codes...)}
}

// Subsets builds a multilingual EvalLangs.
func Subsets(m map[string][]string) EvalLangs {
	cp := make(map[string][]string, len(m))
	for k, v := range m {
		cp[k] = append([]string(nil), v...)
	}
	return EvalLangs{subsets: cp}
}

// IsMultilingual reports whether the languages are keyed by subset.
func (e EvalLangs) IsMultilingual() bool { return e.subsets != nil }

// Len returns the number of entries: codes for a list, subsets for a mapping.
func (e EvalLangs) Len() int {
	if e.IsMultilingual() {
		return len(e.subsets)
	}
	return len(e.langs)
}

// SubsetNames returns the subset keys in sorted order.
func (e EvalLangs) SubsetNames() []string {
	names := make([]string, 0, len(e.subsets))
	for k := range e.subsets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Subset returns the codes for one subset key.
func (e EvalLangs) Subset(key string) ([]string, bool) {
	codes, ok := e.subsets[key]
	return append([]string(nil), codes...), ok
}

// Languages returns every code, sorted and de-duplicated.
func (e EvalLangs) Languages() []string {
	seen := make(map[string]struct{})
	add := func(codes []string) {
		for _, c := range codes {
			seen[c] = struct{}{}
		}
	}
	add(e.langs)
	for _, codes := range e.subsets {
		add(codes)
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (e EvalLangs) value() any {
	if e.IsMultilingual() {
		return e.subsets
	}
	if e.langs == nil {
		return []string{}
	}
	return e.langs
}

func (e EvalLangs) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.value())
}

func (e *EvalLangs) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*e = Langs(list...)
		return nil
	}
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("eval_langs must be a list or a mapping of lists: %w", err)
	}
	*e = Subsets(m)
	return nil
}

func (e EvalLangs) MarshalYAML() (any, error) {
	return e.value(), nil
}

func (e *EvalLangs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*e = Langs(list...)
	case yaml.MappingNode:
		var m map[string][]string
		if err := node.Decode(&m); err != nil {
			return err
		}
		*e = Subsets(m)
	default:
		return fmt.Errorf("eval_langs must be a list or a mapping of lists")
	}
	return nil
}

// ValidateLanguageCode checks a code of the form <ISO 639-3>-<ISO 15924>, e.g. eng-Latn.
func ValidateLanguageCode(code string) error {
	if !langCodePattern.MatchString(code) {
		return fmt.Errorf("language code %q is not of the form xxx-Xxxx", code)
	}
	lang, script, _ := strings.Cut(code, "-")
	if _, err := language.ParseBase(lang); err != nil {
		return fmt.Errorf("language code %q: unknown language %q: %w", code, lang, err)
	}
	if _, err := language.ParseScript(script); err != nil {
		return fmt.Errorf("language code %q: unknown script %q: %w", code, script, err)
	}
	return nil
}

// LangPairKey shortens two codes to a "xxx-yyy" pair key, e.g. eng-Latn, deu-Latn -> eng-deu.
func LangPairKey(first, second string) string {
	a, _, _ := strings.Cut(first, "-")
	b, _, _ := strings.Cut(second, "-")
	return a + "-" + b
}
