package fieldschema

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var goodKeyPattern = regexp.MustCompile(`^good-(\d+)$`)

// GoodsAllocation is one extracted goods-allocation request.
type GoodsAllocation struct {
	ShipmentGoodID int64
	TakenQuantity  int64
}

// ExtractAllocations collects every shipment_goods entry in the tree,
// through group and choice nesting. Keys must match good-<integer> and
// values must parse to non-negative integers; anything else is skipped.
// When the same good id occurs in more than one shipment_goods field, the
// later occurrence in traversal order silently wins.
func ExtractAllocations(schema Schema, values map[string]any) []GoodsAllocation {
	quantities := map[int64]int64{}
	var order []int64

	collectAllocations(schema, values, func(goodID, quantity int64) {
		if _, seen := quantities[goodID]; !seen {
			order = append(order, goodID)
		}
		quantities[goodID] = quantity
	})

	out := make([]GoodsAllocation, 0, len(order))
	for _, goodID := range order {
		out = append(out, GoodsAllocation{ShipmentGoodID: goodID, TakenQuantity: quantities[goodID]})
	}

	return out
}

func collectAllocations(fields []Field, node any, emit func(goodID, quantity int64)) {
	container, _ := node.(map[string]any)

	for _, field := range fields {
		var value any
		if container != nil {
			value = container[field.ID]
		}

		switch field.Type {
		case FieldTypeShipmentGoods:
			entries, _ := value.(map[string]any)
			emitGoodsEntries(entries, emit)
		case FieldTypeGroup:
			if field.Repeatable {
				items, _ := value.([]any)
				for _, item := range items {
					if item == nil {
						continue
					}
					collectAllocations(field.Fields, item, emit)
				}
			} else {
				collectAllocations(field.Fields, value, emit)
			}
		case FieldTypeChoice:
			branches, _ := value.(map[string]any)
			for _, option := range field.Options {
				var subtree any
				if branches != nil {
					subtree = branches[option.ID]
				}
				collectAllocations(option.Fields, subtree, emit)
			}
		}
	}
}

// emitGoodsEntries walks one field's entries in sorted key order so that
// extraction is deterministic regardless of map iteration.
func emitGoodsEntries(entries map[string]any, emit func(goodID, quantity int64)) {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		match := goodKeyPattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		goodID, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			continue
		}

		quantity, ok := parseQuantity(entries[key])
		if !ok {
			continue
		}

		emit(goodID, quantity)
	}
}

func parseQuantity(value any) (int64, bool) {
	switch t := value.(type) {
	case string:
		quantity, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil || quantity < 0 {
			return 0, false
		}
		return quantity, true
	case float64:
		if t < 0 || t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	default:
		return 0, false
	}
}
