package mutate

import (
	"math"
	"strings"

	"route-cli/internal/model"
	"route-cli/internal/store"
)

// UpsertInventoryItem sets an item's quantity and unit, creating it if needed.
//
// An existing item (matched through State.ItemKey, so case-insensitively) has
// its quantity and unit replaced; its stored name is kept. Quantities that do
// not parse become 0, negatives clamp to 0.
func UpsertInventoryItem(st *store.State, name, qtyRaw, unit string) (string, error) {
	name = model.NormalizeName(name)
	if name == "" {
		return "", invalid("name", "required")
	}
	key := name
	if k, ok := st.ItemKey(name); ok {
		key = k
	}
	st.Inventory[key] = model.InventoryItem{
		Qty:  model.CoerceQuantity(qtyRaw),
		Unit: strings.TrimSpace(unit),
	}
	return key, nil
}

// Consume subtracts amount from the item, never going below zero. A missing
// item is created at 0 (with unit) when a positive amount is consumed.
// Consuming never adds stock: a negative or non-finite amount counts as 0.
func Consume(st *store.State, name string, amount float64, unit string) (string, model.InventoryItem, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		amount = 0
	}
	key, ok := st.ItemKey(name)
	if !ok {
		if amount <= 0 {
			return "", model.InventoryItem{}, false
		}
		key = model.NormalizeName(name)
		if key == "" {
			return "", model.InventoryItem{}, false
		}
		st.Inventory[key] = model.InventoryItem{Unit: strings.TrimSpace(unit)}
	}
	it := st.Inventory[key]
	it.Qty = math.Max(0, it.Qty-amount)
	st.Inventory[key] = it
	return key, it, true
}

// AdjustQuantity adds delta (which may be negative), clamping at zero.
func AdjustQuantity(st *store.State, name string, delta float64) (string, model.InventoryItem, error) {
	key, ok := st.ItemKey(name)
	if !ok {
		return "", model.InventoryItem{}, NotFoundError{Kind: "item", ID: model.NormalizeName(name)}
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return "", model.InventoryItem{}, invalid("delta", "must be a finite number")
	}
	it := st.Inventory[key]
	next := it.Qty + delta
	if math.IsInf(next, 0) {
		return "", model.InventoryItem{}, invalid("delta", "result is out of range")
	}
	it.Qty = math.Max(0, next)
	st.Inventory[key] = it
	return key, it, nil
}

// RemoveInventoryItem deletes the item; unknown names are a no-op.
func RemoveInventoryItem(st *store.State, name string) bool {
	key, ok := st.ItemKey(name)
	if !ok {
		return false
	}
	delete(st.Inventory, key)
	return true
}

// ImportState replaces *st wholesale with the parsed payload. On any error *st
// is left exactly as it was.
func ImportState(st *store.State, raw []byte) error {
	next, err := store.ParseState(raw)
	if err != nil {
		return err
	}
	*st = *next
	return nil
}
