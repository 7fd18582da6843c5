package dto

import (
	"proctor/internal/domains/reservation/model"
	gModel "proctor/shared/model"
)

type MakeReservationRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

func (c *MakeReservationRequest) ToModel(userID, scheduleID int64, actor string) model.Reservation {
	return model.Reservation{
		UserID:         userID,
		ExamScheduleID: scheduleID,
		Comment:        c.Comment,
		Confirmed:      false,
		Metadata: gModel.Metadata{
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type ConfirmReservationRequest struct {
	UserID         int64 `json:"user_id"          validate:"required"`
	ExamScheduleID int64 `json:"exam_schedule_id" validate:"required"`
}

type EditMyReservationRequest struct {
	ExamScheduleID int64  `json:"exam_schedule_id" validate:"required"`
	Comment        string `json:"comment"          validate:"omitempty,max=1000"`
}

type EditUserReservationRequest struct {
	UserID         int64  `json:"user_id"          validate:"required"`
	ExamScheduleID int64  `json:"exam_schedule_id" validate:"required"`
	Comment        string `json:"comment"          validate:"omitempty,max=1000"`
}

type ReservationResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	ExamScheduleID int64  `json:"exam_schedule_id"`
	Comment        string `json:"comment"`
	Confirmed      bool   `json:"confirmed"`
}

func FromModel(reservation model.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             reservation.ID,
		UserID:         reservation.UserID,
		ExamScheduleID: reservation.ExamScheduleID,
		Comment:        reservation.Comment,
		Confirmed:      reservation.Confirmed,
	}
}

func FromModels(reservations []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		res = append(res, FromModel(reservation))
	}

	return res
}
