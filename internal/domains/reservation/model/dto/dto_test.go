package dto_test

import (
	"testing"

	"proctor/internal/domains/reservation/model"
	"proctor/internal/domains/reservation/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestMakeReservationRequest_ToModel(t *testing.T) {
	req := dto.MakeReservationRequest{Comment: "front row please"}

	reservation := req.ToModel(3, 7, "client-001")

	assert.Equal(t, int64(3), reservation.UserID)
	assert.Equal(t, int64(7), reservation.ExamScheduleID)
	assert.Equal(t, "front row please", reservation.Comment)
	assert.False(t, reservation.Confirmed, "new reservations start pending")
	assert.Equal(t, "client-001", reservation.CreatedBy)
	assert.Equal(t, "client-001", reservation.ModifiedBy)
}

func TestReservationResponse_FromModels(t *testing.T) {
	reservations := []model.Reservation{
		{ID: 1, UserID: 3, ExamScheduleID: 7, Comment: "a", Confirmed: false},
		{ID: 2, UserID: 3, ExamScheduleID: 8, Comment: "b", Confirmed: true},
	}

	res := dto.FromModels(reservations)

	assert.Len(t, res, 2)
	assert.Equal(t, int64(1), res[0].ID)
	assert.True(t, res[1].Confirmed)
}
