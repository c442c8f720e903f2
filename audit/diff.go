package audit

import "time"

// diffIgnored are bookkeeping columns that differ on every revision.
var diffIgnored = map[string]bool{
	"id":               true,
	"created_at":       true,
	"tracked_model_id": true,
}

// RevisionDiff is the set comparison of two revision snapshots a and b.
type RevisionDiff struct {
	// Added holds pairs of a that are not in b (the new values).
	Added FieldSet `json:"added"`
	// Unchanged holds pairs common to a and b.
	Unchanged FieldSet `json:"unchanged"`
	// Changed holds pairs present in exactly one of a and b.
	Changed FieldSet `json:"changed"`
	// Previous holds the pairs of b replaced by a (Changed minus Added).
	Previous FieldSet `json:"previous"`
}

// Diff compares two revision snapshots as returned by Store.Values.
// Only non-empty fields take part, and id, created_at and tracked_model_id
// are left out.
func Diff(a, b Values) (*RevisionDiff, error) {
	if sameRevision(a, b) {
		return nil, ErrSameRevision
	}

	setA := NewFieldSet(diffFields(a))
	setB := NewFieldSet(diffFields(b))

	added := setA.Minus(setB)
	changed := setA.SymmetricDifference(setB)

	return &RevisionDiff{
		Added:     added,
		Unchanged: setA.Intersect(setB),
		Changed:   changed,
		Previous:  changed.Minus(added),
	}, nil
}

func diffFields(v Values) Values {
	out := Values{}
	for k, val := range v.NonEmpty() {
		if !diffIgnored[k] {
			out[k] = val
		}
	}
	return out
}

// sameRevision compares ids when both snapshots carry one, created_at otherwise.
func sameRevision(a, b Values) bool {
	idA, okA := a["id"]
	idB, okB := b["id"]
	if okA && okB && idA != nil && idB != nil {
		return normalize(idA) == normalize(idB)
	}
	tA, okA := a["created_at"].(time.Time)
	tB, okB := b["created_at"].(time.Time)
	return okA && okB && tA.Equal(tB)
}
