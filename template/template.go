package template

import "fmt"

// ErrorKind identifies why a replacement template failed to parse or
// validate.
type ErrorKind string

const (
	ErrUnterminatedHole ErrorKind = "UnterminatedHole"
	ErrEmptyHoleName    ErrorKind = "EmptyHoleName"
	ErrUnknownHole      ErrorKind = "UnknownHole"
)

// Error is the structural error type for template parsing/validation.
type Error struct {
	Kind   ErrorKind
	Offset int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Part is one element of a Template: either Text or a HoleRef. It is a
// closed sum type.
type Part interface {
	part()
}

// Text is a literal run of replacement text.
type Text string

func (Text) part() {}

// HoleRef refers back to a named placeholder captured by the search
// pattern.
type HoleRef string

func (HoleRef) part() {}

// Template is the parsed form of a replacement string.
type Template struct {
	Parts []Part
	Raw   string
}

// Parse parses raw into a Template without validating hole names against
// any pattern; call Validate afterwards once the associated search
// pattern's hole names are known.
func Parse(raw string) (*Template, error) {
	t := &Template{Raw: raw}
	i := 0
	litStart := 0

	flush := func(end int) {
		if end > litStart {
			t.Parts = append(t.Parts, Text(raw[litStart:end]))
		}
	}

	for i < len(raw) {
		if raw[i] != '$' {
			i++
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '$' {
			flush(i)
			t.Parts = append(t.Parts, Text("$"))
			i += 2
			litStart = i
			continue
		}

		flush(i)
		end := indexByte(raw, i+1, '$')
		if end < 0 {
			return nil, &Error{Kind: ErrUnterminatedHole, Offset: i, Detail: "missing closing '$'"}
		}
		name := raw[i+1 : end]
		if name == "" {
			return nil, &Error{Kind: ErrEmptyHoleName, Offset: i, Detail: "hole name is empty"}
		}
		t.Parts = append(t.Parts, HoleRef(name))
		i = end + 1
		litStart = i
	}

	flush(len(raw))
	return t, nil
}

func indexByte(s string, from int, b byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// HoleNames returns the distinct hole names referenced by the template, in
// first-occurrence order.
func (t *Template) HoleNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range t.Parts {
		if h, ok := p.(HoleRef); ok {
			name := string(h)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Validate checks that every HoleRef in t names a placeholder present in
// patternNames (the search pattern's placeholder names). The first
// unresolvable reference is returned as an ErrUnknownHole error.
func (t *Template) Validate(patternNames []string) error {
	known := make(map[string]bool, len(patternNames))
	for _, n := range patternNames {
		known[n] = true
	}
	for _, p := range t.Parts {
		if h, ok := p.(HoleRef); ok {
			if !known[string(h)] {
				return &Error{Kind: ErrUnknownHole, Detail: "hole $" + string(h) + "$ is not a placeholder in the search pattern"}
			}
		}
	}
	return nil
}
