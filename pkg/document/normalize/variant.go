package normalize

import "strings"

type TextKind int

const (
	TextAbsent TextKind = iota
	TextScalar
	TextList
)

// TextField is a list-or-scalar field resolved to one of its variants.
type TextField struct {
	Kind   TextKind
	Scalar string
	List   []string
}

// ClassifyText resolves a field that may be missing, a bare scalar, or a
// list. Blank strings count as absent; nil list elements are dropped and
// other elements are stringified. Mappings are an unexpected shape and
// resolve to absent.
func ClassifyText(v any) TextField {
	switch t := v.(type) {
	case nil:
		return TextField{Kind: TextAbsent}
	case string:
		if strings.TrimSpace(t) == "" {
			return TextField{Kind: TextAbsent}
		}
		return TextField{Kind: TextScalar, Scalar: t}
	case map[string]any, map[string]string, Record:
		return TextField{Kind: TextAbsent}
	}

	if items, ok := asList(v); ok {
		list := make([]string, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			list = append(list, Stringify(item))
		}
		return TextField{Kind: TextList, List: list}
	}

	return TextField{Kind: TextScalar, Scalar: Stringify(v)}
}
