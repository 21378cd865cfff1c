package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_PreservesJSONOrder(t *testing.T) {
	var r domain.Record
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":1,"alpha":"a","mid":null}`), &r))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, r.Fields())
	v, ok := r.Get("mid")
	assert.True(t, ok)
	assert.True(t, v.IsNull())
	assert.False(t, r.Has("missing"))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"a","mid":null}`, string(out))
}

func TestRecord_RejectsNonObject(t *testing.T) {
	var r domain.Record
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

func TestNewRecord_RepeatedName(t *testing.T) {
	r := domain.NewRecord(
		domain.Field{Name: "a", Value: domain.Int(1)},
		domain.Field{Name: "b", Value: domain.Int(2)},
		domain.Field{Name: "a", Value: domain.Int(3)},
	)
	assert.Equal(t, []string{"a", "b"}, r.Fields())
	v, _ := r.Get("a")
	assert.Equal(t, domain.Int(3), v)
}

func TestRecord_Without(t *testing.T) {
	r := domain.RecordFromMap(map[string]any{"id": 1, "name": "x", "qty": 2})
	w := r.Without("id")
	assert.Equal(t, []string{"name", "qty"}, w.Fields())
	assert.Equal(t, 3, r.Len(), "original is untouched")
}
