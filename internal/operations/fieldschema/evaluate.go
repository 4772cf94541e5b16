package fieldschema

import (
	"sort"
	"strings"
)

// DocumentSet is the pre-fetched set of document types already received for
// a shipment. File-field presence is derived from it exclusively, never
// from the value tree.
type DocumentSet map[string]struct{}

func NewDocumentSet(types ...string) DocumentSet {
	set := make(DocumentSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

func (s DocumentSet) Has(documentType string) bool {
	_, ok := s[documentType]
	return ok
}

func (s DocumentSet) With(documentType string) DocumentSet {
	out := make(DocumentSet, len(s)+1)
	for t := range s {
		out[t] = struct{}{}
	}
	out[documentType] = struct{}{}
	return out
}

// Values returns the member types sorted for stable output.
func (s DocumentSet) Values() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

type OptionStatus string

const (
	OptionActive      OptionStatus = "active"
	OptionAlternative OptionStatus = "alternative"
	OptionSuperseded  OptionStatus = "superseded"
)

// Evaluation is the result of walking a schema against a value tree.
type Evaluation struct {
	// Missing holds the encoded path of every required leaf considered
	// absent. Superseded and alternative choice branches do not
	// contribute.
	Missing map[string]struct{}
	// Options maps each choice option's encoded path to its resolution
	// status.
	Options map[string]OptionStatus
}

func (e *Evaluation) Complete() bool {
	return len(e.Missing) == 0
}

func (e *Evaluation) MissingPaths() []string {
	paths := make([]string, 0, len(e.Missing))
	for p := range e.Missing {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// HasMissingUnder reports whether any missing leaf sits at or below the
// given prefix, so callers can flag a group or choice subtree whose own
// node carries no requirement.
func (e *Evaluation) HasMissingUnder(prefix Path) bool {
	encoded := prefix.Encode()
	for p := range e.Missing {
		if p == encoded || strings.HasPrefix(p, encoded+pathSeparator) {
			return true
		}
	}
	return false
}

// Evaluate walks the schema recursively, mirroring the value tree, and
// collects the missing required leaves plus per-option choice statuses.
func Evaluate(schema Schema, stepID string, values map[string]any, docs DocumentSet) *Evaluation {
	e := &Evaluation{
		Missing: map[string]struct{}{},
		Options: map[string]OptionStatus{},
	}
	e.walk(schema, nil, values, stepID, docs)

	return e
}

func (e *Evaluation) walk(fields []Field, base Path, node any, stepID string, docs DocumentSet) {
	container, _ := node.(map[string]any)

	for _, field := range fields {
		path := base.Child(field.ID)
		var value any
		if container != nil {
			value = container[field.ID]
		}

		switch field.Type {
		case FieldTypeText, FieldTypeNumber, FieldTypeDate:
			if field.Required && leafString(value) == "" {
				e.Missing[path.Encode()] = struct{}{}
			}
		case FieldTypeBoolean:
			if field.Required && !Truthy(value) {
				e.Missing[path.Encode()] = struct{}{}
			}
		case FieldTypeFile:
			if field.Required && !docs.Has(DocumentType(stepID, path)) {
				e.Missing[path.Encode()] = struct{}{}
			}
		case FieldTypeGroup:
			if field.Repeatable {
				entries, _ := value.([]any)
				for i, entry := range entries {
					if entry == nil {
						// Removed entry; its slot is kept as a gap.
						continue
					}
					e.walk(field.Fields, path.Index(i), entry, stepID, docs)
				}
			} else {
				e.walk(field.Fields, path, value, stepID, docs)
			}
		case FieldTypeChoice:
			e.resolveChoice(field, path, value, stepID, docs)
		case FieldTypeShipmentGoods:
			// Participates in allocation extraction only.
		}
	}
}

// resolveChoice applies final/superseded semantics. An option is complete
// iff it holds at least one stored value anywhere in its subtree and has no
// missing required leaf under it. Any complete final option resolves the
// choice: non-final options become superseded, their values retained. With
// no resolved final, the first option holding data (else the first
// declared) is active and alone contributes to the missing set.
func (e *Evaluation) resolveChoice(field Field, path Path, value any, stepID string, docs DocumentSet) {
	branches, _ := value.(map[string]any)

	type optionState struct {
		path     Path
		hasValue bool
		complete bool
		eval     *Evaluation
	}

	states := make([]optionState, len(field.Options))
	for i, option := range field.Options {
		optionPath := path.Child(option.ID)
		var subtree any
		if branches != nil {
			subtree = branches[option.ID]
		}

		sub := &Evaluation{Missing: map[string]struct{}{}, Options: map[string]OptionStatus{}}
		sub.walk(option.Fields, optionPath, subtree, stepID, docs)

		hasValue := hasAnyValue(option.Fields, optionPath, subtree, stepID, docs)
		states[i] = optionState{
			path:     optionPath,
			hasValue: hasValue,
			complete: hasValue && len(sub.Missing) == 0,
			eval:     sub,
		}
	}

	resolved := false
	for i, option := range field.Options {
		if option.Final && states[i].complete {
			resolved = true
			break
		}
	}

	if resolved {
		for i, option := range field.Options {
			switch {
			case option.Final && states[i].complete:
				e.Options[states[i].path.Encode()] = OptionActive
			case option.Final:
				e.Options[states[i].path.Encode()] = OptionAlternative
			default:
				e.Options[states[i].path.Encode()] = OptionSuperseded
			}
		}
		return
	}

	active := 0
	for i := range states {
		if states[i].hasValue {
			active = i
			break
		}
	}

	for i := range states {
		if i == active {
			e.Options[states[i].path.Encode()] = OptionActive
			for p := range states[i].eval.Missing {
				e.Missing[p] = struct{}{}
			}
			for p, status := range states[i].eval.Options {
				e.Options[p] = status
			}
		} else {
			e.Options[states[i].path.Encode()] = OptionAlternative
		}
	}
}

// hasAnyValue reports whether any field in the subtree holds an actual
// stored value, counting file presence through the document set.
func hasAnyValue(fields []Field, base Path, node any, stepID string, docs DocumentSet) bool {
	container, _ := node.(map[string]any)

	for _, field := range fields {
		path := base.Child(field.ID)
		var value any
		if container != nil {
			value = container[field.ID]
		}

		switch field.Type {
		case FieldTypeText, FieldTypeNumber, FieldTypeDate:
			if leafString(value) != "" {
				return true
			}
		case FieldTypeBoolean:
			if Truthy(value) {
				return true
			}
		case FieldTypeFile:
			if docs.Has(DocumentType(stepID, path)) {
				return true
			}
		case FieldTypeGroup:
			if field.Repeatable {
				entries, _ := value.([]any)
				for i, entry := range entries {
					if entry == nil {
						continue
					}
					if hasAnyValue(field.Fields, path.Index(i), entry, stepID, docs) {
						return true
					}
				}
			} else if hasAnyValue(field.Fields, path, value, stepID, docs) {
				return true
			}
		case FieldTypeChoice:
			branches, _ := value.(map[string]any)
			for _, option := range field.Options {
				var subtree any
				if branches != nil {
					subtree = branches[option.ID]
				}
				if hasAnyValue(option.Fields, path.Child(option.ID), subtree, stepID, docs) {
					return true
				}
			}
		case FieldTypeShipmentGoods:
			entries, _ := value.(map[string]any)
			for _, quantity := range entries {
				if leafString(quantity) != "" {
					return true
				}
			}
		}
	}

	return false
}
