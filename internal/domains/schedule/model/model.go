package model

import (
	"proctor/shared/model"
	"time"
)

const (
	TableName  = "exam_schedules"
	EntityName = "schedule"

	FieldID        = "id"
	FieldName      = "name"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
)

type ExamSchedule struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	model.Metadata
}
