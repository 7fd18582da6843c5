package dto

import (
	"proctor/internal/domains/schedule/model"
	gModel "proctor/shared/model"
	"time"
)

type CreateScheduleRequest struct {
	Name      string    `json:"name"       validate:"required,max=255"`
	StartTime time.Time `json:"start_time" validate:"required,future"`
	EndTime   time.Time `json:"end_time"   validate:"required,future,gtfield=StartTime"`
}

func (c *CreateScheduleRequest) ToModel(actor string) model.ExamSchedule {
	return model.ExamSchedule{
		Name:      c.Name,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Metadata: gModel.Metadata{
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type ScheduleResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	RemainSlot int       `json:"remain_slot"`
}

func FromModel(schedule model.ExamSchedule, remainSlot int) ScheduleResponse {
	return ScheduleResponse{
		ID:         schedule.ID,
		Name:       schedule.Name,
		StartTime:  schedule.StartTime,
		EndTime:    schedule.EndTime,
		RemainSlot: remainSlot,
	}
}
