package fieldschema

import "time"

// FreezeMap records, per encoded countdown-field path, when the field's
// stop condition first became true. Only number fields declaring both
// link_to_global and stop_countdown ever appear in it.
type FreezeMap map[string]time.Time

func (m FreezeMap) clone() FreezeMap {
	out := make(FreezeMap, len(m))
	for path, at := range m {
		out[path] = at
	}
	return out
}

func (m FreezeMap) Equal(other FreezeMap) bool {
	if len(m) != len(other) {
		return false
	}
	for path, at := range m {
		if !other[path].Equal(at) {
			return false
		}
	}
	return true
}

// TreeLookup resolves a sibling step's merged value tree by step id. The
// engine never reaches into storage itself; callers pass a snapshot.
type TreeLookup func(stepID string) (map[string]any, bool)

// CountdownField is one linked countdown located during a schema walk.
type CountdownField struct {
	Path  Path
	Field Field
	Stop  StopRef
}

// CountdownFields collects every countdown-bearing number field, descending
// through groups (per repeatable instance) and all choice branches.
func CountdownFields(schema Schema, values map[string]any) []CountdownField {
	var found []CountdownField
	collectCountdowns(schema, nil, values, &found)
	return found
}

func collectCountdowns(fields []Field, base Path, node any, found *[]CountdownField) {
	container, _ := node.(map[string]any)

	for _, field := range fields {
		path := base.Child(field.ID)
		var value any
		if container != nil {
			value = container[field.ID]
		}

		switch field.Type {
		case FieldTypeNumber:
			if field.LinkToGlobal != "" && field.StopCountdown != "" {
				*found = append(*found, CountdownField{
					Path:  path,
					Field: field,
					Stop:  ParseStopRef(field.StopCountdown),
				})
			}
		case FieldTypeGroup:
			if field.Repeatable {
				entries, _ := value.([]any)
				for i, entry := range entries {
					if entry == nil {
						continue
					}
					collectCountdowns(field.Fields, path.Index(i), entry, found)
				}
			} else {
				collectCountdowns(field.Fields, path, value, found)
			}
		case FieldTypeChoice:
			branches, _ := value.(map[string]any)
			for _, option := range field.Options {
				var subtree any
				if branches != nil {
					subtree = branches[option.ID]
				}
				collectCountdowns(option.Fields, path.Child(option.ID), subtree, found)
			}
		}
	}
}

// RecomputeFreeze walks the schema for linked countdown fields and settles
// their freeze entries against the current trees: a newly true stop
// condition records now, a no-longer-true one deletes the entry, and an
// existing entry under a still-true condition is left untouched so the
// frozen timestamp never drifts. Returns the new map and whether it
// differs from the input.
func RecomputeFreeze(schema Schema, values map[string]any, freeze FreezeMap, lookup TreeLookup, now time.Time) (FreezeMap, bool) {
	out := freeze.clone()
	changed := false

	for _, countdown := range CountdownFields(schema, values) {
		stopped := stopConditionTrue(countdown.Stop, values, lookup)
		encoded := countdown.Path.Encode()
		_, frozen := out[encoded]

		switch {
		case stopped && !frozen:
			out[encoded] = now
			changed = true
		case !stopped && frozen:
			delete(out, encoded)
			changed = true
		}
	}

	return out, changed
}

func stopConditionTrue(stop StopRef, values map[string]any, lookup TreeLookup) bool {
	tree := values
	if stop.StepID != "" {
		sibling, ok := lookup(stop.StepID)
		if !ok {
			return false
		}
		tree = sibling
	}

	value, ok := Lookup(tree, stop.Path)
	if !ok {
		return false
	}

	return Truthy(value)
}

// Remaining computes the countdown's remaining days: the configured total
// minus the days elapsed between the linked global date and the anchor. The
// anchor is the frozen timestamp when frozen, else now. Both sides are
// truncated to midnight first, so sub-day drift never changes the result
// within one calendar day. Negative results mean overdue.
func Remaining(totalDays int, globalDate time.Time, frozenAt *time.Time, now time.Time) int {
	anchor := now
	if frozenAt != nil {
		anchor = *frozenAt
	}

	elapsed := int(midnight(anchor).Sub(midnight(globalDate)).Hours() / 24)

	return totalDays - elapsed
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
