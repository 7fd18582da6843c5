package shared

import (
	"proctor/shared/constant"
	"proctor/shared/dto"
	"proctor/shared/timezone"
)

// FilterByID builds a filter group matching a single row by primary key.
func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterEq builds a filter group with a single equality condition.
func FilterEq(field, table string, value any) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// UpdateFields stamps the audit columns onto a column/value map destined for
// an UPDATE statement.
func UpdateFields(actor string, fields map[string]any) map[string]any {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actor

	return fields
}
