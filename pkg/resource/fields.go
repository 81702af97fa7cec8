package resource

// Rename pairs a local JSON field name with the name used on the wire.
type Rename struct {
	Local string
	Wire  string
}

// FieldMap is the bidirectional field-name table for one resource kind. The
// zero value translates nothing.
type FieldMap []Rename

// mongoID is the identifier key some backends use instead of "id".
const mongoID = "_id"

// ToWire renames local keys to wire keys in place and returns obj.
func (m FieldMap) ToWire(obj map[string]any) map[string]any {
	for _, r := range m {
		if v, ok := obj[r.Local]; ok {
			delete(obj, r.Local)
			obj[r.Wire] = v
		}
	}
	return obj
}

// FromWire renames wire keys to local keys in place and returns obj. A wire
// "_id" becomes the local "id" when no "id" is present.
func (m FieldMap) FromWire(obj map[string]any) map[string]any {
	for _, r := range m {
		if v, ok := obj[r.Wire]; ok {
			delete(obj, r.Wire)
			if _, clash := obj[r.Local]; !clash {
				obj[r.Local] = v
			}
		}
	}
	if raw, ok := obj[mongoID]; ok {
		if id, has := obj["id"]; !has || id == nil || id == "" {
			obj["id"] = raw
		}
		delete(obj, mongoID)
	}
	return obj
}
