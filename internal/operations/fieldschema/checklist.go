package fieldschema

import "encoding/json"

// ChecklistItem is one entry of an ordered checklist group. An item is
// complete when both a non-empty date value sits at its deterministic key
// and a document of its deterministic type has been received.
type ChecklistItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Final bool   `json:"final,omitempty"`
}

type ChecklistGroup struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Items []ChecklistItem `json:"items"`
}

// ParseChecklistGroups decodes the stored checklist document; malformed or
// absent input yields an empty list.
func ParseChecklistGroups(raw []byte) []ChecklistGroup {
	if len(raw) == 0 {
		return nil
	}

	var groups []ChecklistGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil
	}

	return groups
}

// ChecklistKey is the value-tree location of an item's date value.
func ChecklistKey(groupID, itemID string) Path {
	return Path{"checklist", groupID, itemID}
}

func ChecklistDocumentType(stepID, groupID, itemID string) string {
	return DocumentType(stepID, ChecklistKey(groupID, itemID))
}

// EvaluateChecklist returns the ids of groups not yet satisfied. A group
// with an explicitly flagged final item mirrors the choice-option pattern:
// only that item's completion settles it. Without an explicit flag the last
// item is the designated final, but any complete item satisfies the group.
func EvaluateChecklist(groups []ChecklistGroup, stepID string, values map[string]any, docs DocumentSet) []string {
	var unsatisfied []string
	for _, group := range groups {
		if len(group.Items) == 0 {
			continue
		}
		if !checklistGroupSatisfied(group, stepID, values, docs) {
			unsatisfied = append(unsatisfied, group.ID)
		}
	}

	return unsatisfied
}

func checklistGroupSatisfied(group ChecklistGroup, stepID string, values map[string]any, docs DocumentSet) bool {
	final := -1
	for i, item := range group.Items {
		if item.Final {
			final = i
			break
		}
	}

	if final >= 0 {
		return checklistItemComplete(group.Items[final], group.ID, stepID, values, docs)
	}

	for _, item := range group.Items {
		if checklistItemComplete(item, group.ID, stepID, values, docs) {
			return true
		}
	}

	return false
}

// FinalChecklistItem returns the designated final item: the first with an
// explicit flag, else the last.
func FinalChecklistItem(group ChecklistGroup) (ChecklistItem, bool) {
	if len(group.Items) == 0 {
		return ChecklistItem{}, false
	}
	for _, item := range group.Items {
		if item.Final {
			return item, true
		}
	}

	return group.Items[len(group.Items)-1], true
}

func checklistItemComplete(item ChecklistItem, groupID, stepID string, values map[string]any, docs DocumentSet) bool {
	value, _ := Lookup(values, ChecklistKey(groupID, item.ID))
	if leafString(value) == "" {
		return false
	}

	return docs.Has(ChecklistDocumentType(stepID, groupID, item.ID))
}
