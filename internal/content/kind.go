package content

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of content a tab displays.
type Kind int

const (
	Home Kind = iota
	TypeA
	TypeB
	TypeC
)

// PlaceholderIcon is shared by every non-home kind.
const PlaceholderIcon = "placeholder-15x15"

// ErrUnknownContentKind is returned for values outside the closed set of kinds.
var ErrUnknownContentKind = errors.New("unknown content kind")

var all = []Kind{Home, TypeA, TypeB, TypeC}

var titles = map[Kind]string{
	Home:  "+",
	TypeA: "Type A",
	TypeB: "Type B",
	TypeC: "Type C",
}

var names = map[Kind]string{
	Home:  "home",
	TypeA: "type-a",
	TypeB: "type-b",
	TypeC: "type-c",
}

// All returns every known kind in display order.
func All() []Kind {
	dup := make([]Kind, len(all))
	copy(dup, all)
	return dup
}

// Valid reports whether k belongs to the closed set.
func (k Kind) Valid() bool {
	_, ok := titles[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns the display title for k.
func Title(k Kind) (string, error) {
	title, ok := titles[k]
	if !ok {
		return "", unknown(k)
	}
	return title, nil
}

// Icon returns the icon reference for k. Home has none.
func Icon(k Kind) (string, bool, error) {
	if !k.Valid() {
		return "", false, unknown(k)
	}
	if k == Home {
		return "", false, nil
	}
	return PlaceholderIcon, true, nil
}

// Descriptor returns the pane body shown for k.
func Descriptor(k Kind) (string, error) {
	title, err := Title(k)
	if err != nil {
		return "", err
	}
	return title + " Content", nil
}

// Parse resolves a stable kind name such as "type-a". Titles are accepted too.
func Parse(value string) (Kind, error) {
	trimmed := strings.TrimSpace(value)
	for _, k := range all {
		if strings.EqualFold(trimmed, names[k]) || strings.EqualFold(trimmed, titles[k]) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownContentKind, value)
}

func unknown(k Kind) error {
	return fmt.Errorf("%w: %d", ErrUnknownContentKind, int(k))
}
