package fieldschema

import (
	"strconv"
	"strings"
)

// pathSeparator joins path segments into form keys and document-type
// suffixes. Field and option ids must not contain it.
const pathSeparator = "."

// Path locates a node inside a value tree: field ids, decimal list indices
// and choice-option ids, in order from the root.
type Path []string

func (p Path) Child(segment string) Path {
	child := make(Path, 0, len(p)+1)
	child = append(child, p...)
	return append(child, segment)
}

func (p Path) Index(i int) Path {
	return p.Child(strconv.Itoa(i))
}

// Encode flattens the path into its string form. Decode is its exact
// inverse for every valid path.
func (p Path) Encode() string {
	return strings.Join(p, pathSeparator)
}

func DecodePath(encoded string) Path {
	if encoded == "" {
		return nil
	}

	return Path(strings.Split(encoded, pathSeparator))
}

// DocumentType derives the document-type string a file field (or checklist
// item) at the given path maps to within a step.
func DocumentType(stepID string, p Path) string {
	return stepID + ":" + p.Encode()
}

// StopRef is a weak cross-step reference used by countdown fields: an
// optional step id plus a path resolved through an injected lookup, never
// an embedded pointer.
type StopRef struct {
	StepID string
	Path   Path
}

// ParseStopRef parses a stop_countdown attribute. The "stepID:path" form
// scopes the path to a sibling step; a bare path refers to the field's own
// step.
func ParseStopRef(raw string) StopRef {
	if before, after, found := strings.Cut(raw, ":"); found {
		return StopRef{StepID: before, Path: DecodePath(after)}
	}

	return StopRef{Path: DecodePath(raw)}
}

func isIndexSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
