package shared_test

import (
	"proctor/shared"
	"proctor/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID(42, "id", "reservations")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(reservations.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(42)}, args)
}

func TestFilterEq(t *testing.T) {
	group := shared.FilterEq("name", "exam_schedules", "exam 1")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(exam_schedules.name = :name)", where)
	assert.Equal(t, map[string]any{"name": "exam 1"}, args)
}

func TestUpdateFields(t *testing.T) {
	fields := shared.UpdateFields("admin1", map[string]any{"confirmed": true})

	require.Len(t, fields, 3)
	assert.Equal(t, true, fields["confirmed"])
	assert.Equal(t, "admin1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}
