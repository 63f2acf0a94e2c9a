package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"route-cli/internal/model"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tailscale/hujson"
)

const stateSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["inventory"],
  "anyOf": [
    {"required": ["schedule"]},
    {"required": ["tasks"]}
  ],
  "properties": {
    "inventory": {
      "type": ["object", "array"],
      "additionalProperties": {"$ref": "#/$defs/item"},
      "items": {"$ref": "#/$defs/legacyItem"}
    },
    "schedule": {"$ref": "#/$defs/tasks"},
    "tasks": {"$ref": "#/$defs/tasks"}
  },
  "$defs": {
    "item": {
      "type": "object",
      "properties": {
        "qty": {"type": "number"},
        "unit": {"type": ["string", "null"]}
      }
    },
    "legacyItem": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "id": {"type": ["string", "number"]},
        "name": {"type": "string"},
        "qty": {"type": "number"},
        "unit": {"type": ["string", "null"]}
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["time", "title"],
        "properties": {
          "id": {"type": "string"},
          "time": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
          "durationMins": {"type": "integer", "minimum": 0, "maximum": 2147483647},
          "title": {"type": "string", "minLength": 1, "pattern": "\\S"},
          "notes": {"type": ["string", "null"]},
          "steps": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "properties": {
                "name": {"type": "string"},
                "link": {"type": ["string", "null"]}
              }
            }
          },
          "required": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string"},
                "qty": {"type": ["number", "string", "null"]},
                "unit": {"type": ["string", "null"]}
              }
            }
          }
        }
      }
    }
  }
}`

var stateSchema = jsonschema.MustCompileString("route-state.schema.json", stateSchemaJSON)

type wireState struct {
	Inventory json.RawMessage `json:"inventory"`
	Schedule  []model.Task    `json:"schedule"`
	Tasks     []model.Task    `json:"tasks"`
}

type wireLegacyItem struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// ParseState turns an exported (or hand-edited) payload into application state.
//
// The payload may be HuJSON. It must contain an inventory (name-keyed object, or
// the id-keyed array layout) and a schedule (or "tasks"). Nothing is returned
// unless the whole payload is usable.
func ParseState(raw []byte) (*State, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ImportError{Reason: "empty payload"}
	}
	std, err := hujson.Standardize(append([]byte(nil), raw...))
	if err != nil {
		return nil, &ImportError{Reason: "invalid JSON", Err: err}
	}

	var doc any
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, &ImportError{Reason: "invalid JSON", Err: err}
	}
	if err := stateSchema.Validate(doc); err != nil {
		return nil, &ImportError{Reason: "unexpected shape", Err: schemaError(err)}
	}

	var w wireState
	if err := json.Unmarshal(std, &w); err != nil {
		return nil, &ImportError{Reason: "unexpected shape", Err: err}
	}

	inv, err := decodeInventory(w.Inventory)
	if err != nil {
		return nil, &ImportError{Reason: "unexpected inventory", Err: err}
	}

	tasks := w.Schedule
	if tasks == nil {
		tasks = w.Tasks
	}
	st := &State{Inventory: inv, Schedule: tasks}
	seen := map[string]bool{}
	for i := range st.Schedule {
		t := &st.Schedule[i]
		if strings.TrimSpace(t.ID) == "" || seen[t.ID] {
			t.ID = model.NewTaskID()
		}
		seen[t.ID] = true
	}
	st.ensure()
	return st, nil
}

func decodeInventory(raw json.RawMessage) (map[string]model.InventoryItem, error) {
	raw = bytes.TrimSpace(raw)
	out := map[string]model.InventoryItem{}
	if len(raw) == 0 {
		return out, nil
	}

	if raw[0] == '[' {
		var xs []wireLegacyItem
		if err := json.Unmarshal(raw, &xs); err != nil {
			return nil, err
		}
		for _, it := range xs {
			foldItem(out, it.Name, model.InventoryItem{Qty: it.Qty, Unit: it.Unit})
		}
		return out, nil
	}

	var m map[string]model.InventoryItem
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	// Deterministic folding when keys collide after normalization.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		foldItem(out, k, m[k])
	}
	return out, nil
}

// foldItem adds it under its normalized name, merging case-insensitive
// duplicates by summing quantities.
func foldItem(inv map[string]model.InventoryItem, name string, it model.InventoryItem) {
	name = model.NormalizeName(name)
	if name == "" {
		return
	}
	it.Qty = math.Max(0, it.Qty)
	it.Unit = strings.TrimSpace(it.Unit)
	for k, cur := range inv {
		if strings.EqualFold(k, name) {
			cur.Qty += it.Qty
			if cur.Unit == "" {
				cur.Unit = it.Unit
			}
			inv[k] = cur
			return
		}
	}
	inv[name] = it
}

// schemaError reduces a jsonschema error to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%s: %s", loc, ve.Message)
}
