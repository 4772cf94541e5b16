package fieldschema

// SyncGlobals propagates linked date values into the shipment-wide global
// map. Only date fields with link_to_global participate, only non-empty
// trimmed values are written, and only globals on the workflow template's
// allow-list are touched. Last write in traversal order wins. The returned
// map is the input map untouched when nothing changed, so callers can skip
// persistence.
func SyncGlobals(schema Schema, values map[string]any, allowed []string, current map[string]string) (map[string]string, bool) {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allowSet[id] = struct{}{}
	}

	updated := make(map[string]string, len(current))
	for id, value := range current {
		updated[id] = value
	}

	changed := false
	collectGlobals(schema, values, func(globalID, value string) {
		if _, ok := allowSet[globalID]; !ok {
			return
		}
		if updated[globalID] == value {
			return
		}
		updated[globalID] = value
		changed = true
	})

	if !changed {
		return current, false
	}

	return updated, true
}

func collectGlobals(fields []Field, node any, emit func(globalID, value string)) {
	container, _ := node.(map[string]any)

	for _, field := range fields {
		var value any
		if container != nil {
			value = container[field.ID]
		}

		switch field.Type {
		case FieldTypeDate:
			if field.LinkToGlobal == "" {
				continue
			}
			if v := leafString(value); v != "" {
				emit(field.LinkToGlobal, v)
			}
		case FieldTypeGroup:
			if field.Repeatable {
				entries, _ := value.([]any)
				for _, entry := range entries {
					if entry == nil {
						continue
					}
					collectGlobals(field.Fields, entry, emit)
				}
			} else {
				collectGlobals(field.Fields, value, emit)
			}
		case FieldTypeChoice:
			branches, _ := value.(map[string]any)
			for _, option := range field.Options {
				var subtree any
				if branches != nil {
					subtree = branches[option.ID]
				}
				collectGlobals(option.Fields, subtree, emit)
			}
		}
	}
}
