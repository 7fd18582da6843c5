package model

import (
	"proctor/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldExamScheduleID = "exam_schedule_id"
	FieldComment        = "comment"
	FieldConfirmed      = "confirmed"
)

type Reservation struct {
	ID             int64  `db:"id"`
	UserID         int64  `db:"user_id"`
	ExamScheduleID int64  `db:"exam_schedule_id"`
	Comment        string `db:"comment"`
	Confirmed      bool   `db:"confirmed"`
	model.Metadata
}
