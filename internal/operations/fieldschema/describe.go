package fieldschema

import "strings"

// DescribePath renders a path as human-readable labels. Numeric segments
// are ambiguous between a list index and a numeric-looking field id, so the
// schema drives the interpretation: under a repeatable group the segment is
// an instance number, everywhere else it is matched against field and
// option ids. Unresolvable segments fall back to their raw form.
func DescribePath(schema Schema, p Path) string {
	labels := make([]string, 0, len(p))
	fields := []Field(schema)
	var repeatable *Field

	for _, segment := range p {
		if repeatable != nil && isIndexSegment(segment) {
			labels = append(labels, "#"+segment)
			fields = repeatable.Fields
			repeatable = nil
			continue
		}
		repeatable = nil

		field := findField(fields, segment)
		if field == nil {
			if option, children := findOption(fields, segment); option != nil {
				labels = append(labels, option.Label)
				fields = children
				continue
			}
			labels = append(labels, segment)
			fields = nil
			continue
		}

		labels = append(labels, field.Label)
		switch {
		case field.Type == FieldTypeGroup && field.Repeatable:
			repeatable = field
			fields = nil
		case field.Type == FieldTypeGroup:
			fields = field.Fields
		case field.Type == FieldTypeChoice:
			fields = []Field{*field}
		default:
			fields = nil
		}
	}

	return strings.Join(labels, " / ")
}

func findField(fields []Field, id string) *Field {
	for i := range fields {
		if fields[i].ID == id {
			return &fields[i]
		}
	}
	return nil
}

func findOption(fields []Field, id string) (*Option, []Field) {
	for i := range fields {
		if fields[i].Type != FieldTypeChoice {
			continue
		}
		for j := range fields[i].Options {
			if fields[i].Options[j].ID == id {
				return &fields[i].Options[j], fields[i].Options[j].Fields
			}
		}
	}
	return nil, nil
}
