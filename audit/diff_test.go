package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_IgnoresBookkeepingAndEmptyFields(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Values{
		"id":               int64(2),
		"tracked_model_id": int64(1),
		"created_at":       t1.Add(time.Minute),
		"created_by":       "alice",
		"name":             "Jane",
		"slack_handle":     "",
		"active":           true,
	}
	b := Values{
		"id":               int64(1),
		"tracked_model_id": int64(1),
		"created_at":       t1,
		"created_by":       nil,
		"name":             "Jane",
		"slack_handle":     "@jane",
		"active":           true,
	}

	diff, err := Diff(a, b)
	require.NoError(t, err)

	assert.Equal(t, 1, diff.Added.Len())
	assert.True(t, diff.Added.Contains("created_by", "alice"))

	assert.Equal(t, 2, diff.Unchanged.Len())
	assert.True(t, diff.Unchanged.Contains("name", "Jane"))
	assert.True(t, diff.Unchanged.Contains("active", true))

	assert.Equal(t, 2, diff.Changed.Len())
	assert.Equal(t, 1, diff.Previous.Len())
	assert.True(t, diff.Previous.Contains("slack_handle", "@jane"))

	for _, set := range []FieldSet{diff.Added, diff.Unchanged, diff.Changed, diff.Previous} {
		assert.False(t, set.Contains("id", int64(2)))
		assert.False(t, set.Contains("tracked_model_id", int64(1)))
	}
}

func TestDiff_SameRevision(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Diff(Values{"id": int64(1)}, Values{"id": int64(1)})
	assert.ErrorIs(t, err, ErrSameRevision)

	// without ids the creation time decides
	_, err = Diff(Values{"created_at": at, "a": "x"}, Values{"created_at": at, "a": "y"})
	assert.ErrorIs(t, err, ErrSameRevision)

	// distinct ids win over equal timestamps
	_, err = Diff(Values{"id": int64(1), "created_at": at}, Values{"id": int64(2), "created_at": at})
	assert.NoError(t, err)
}

func TestDiff_TypesAreDistinct(t *testing.T) {
	diff, err := Diff(Values{"n": int64(1)}, Values{"n": "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, diff.Unchanged.Len())
	assert.Equal(t, 2, diff.Changed.Len())
}

func TestFieldSet_MarshalJSON(t *testing.T) {
	set := NewFieldSet(Values{"b": "2", "a": "1"})

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a","value":"1"},{"name":"b","value":"2"}]`, string(data))
}

func TestValues_Accessors(t *testing.T) {
	v := Values{
		"s":     []byte("text"),
		"b":     int64(1),
		"bs":    "true",
		"n":     int64(7),
		"ns":    "8",
		"empty": "",
		"null":  nil,
	}

	assert.Equal(t, "text", v.String("s"))
	assert.Equal(t, "", v.String("null"))
	assert.Equal(t, "7", v.String("n"))
	assert.True(t, v.Bool("b"))
	assert.True(t, v.Bool("bs"))
	assert.False(t, v.Bool("missing"))
	assert.Equal(t, 7, v.Int("n"))
	assert.Equal(t, 8, v.Int("ns"))

	assert.ElementsMatch(t, []string{"empty", "null"}, keys(v.Empty()))
	assert.NotContains(t, v.NonEmpty(), "empty")

	clone := v.Clone()
	clone["n"] = int64(9)
	assert.Equal(t, int64(7), v["n"])
}

func TestScope(t *testing.T) {
	for _, s := range []string{"", "all", "ALL"} {
		scope, err := ParseScope(s)
		require.NoError(t, err)
		assert.Equal(t, ScopeAll, scope)
	}

	scope, err := ParseScope("published")
	require.NoError(t, err)
	assert.Equal(t, "r.is_deleted = 0", scope.Where("r"))

	scope, err = ParseScope("deleted")
	require.NoError(t, err)
	assert.Equal(t, "r.is_deleted = 1", scope.Where("r"))

	assert.Equal(t, "", ScopeAll.Where("r"))

	_, err = ParseScope("archived")
	assert.Error(t, err)
}

func TestPreSaveHooks(t *testing.T) {
	ctx := context.Background()

	head := &Head{}
	RunPreSave(ctx, head)
	assert.Nil(t, head.CreatedBy)

	alice, bob := "alice", "bob"
	ctx = WithPreSave(ctx, StampCreatedBy(&alice))
	child := WithPreSave(ctx, StampCreatedBy(&bob))

	rev := &Revision{}
	RunPreSave(child, rev)
	require.NotNil(t, rev.CreatedBy)
	assert.Equal(t, "bob", *rev.CreatedBy, "later hooks run last")

	RunPreSave(ctx, rev)
	assert.Equal(t, "alice", *rev.CreatedBy, "parent context keeps its own hooks")

	RunPreSave(WithPreSave(ctx, StampCreatedBy(nil)), rev)
	assert.Nil(t, rev.CreatedBy)

	assert.Equal(t, ctx, WithPreSave(ctx, nil))
}

func keys(v Values) []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	return out
}
