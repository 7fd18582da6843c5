package service_test

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"proctor/config"
	otelMocks "proctor/infras/otel/mocks"
	"proctor/internal/domains/reservation/mocks"
	"proctor/internal/domains/reservation/model"
	"proctor/internal/domains/reservation/model/dto"
	"proctor/internal/domains/reservation/service"
	scheduleMocks "proctor/internal/domains/schedule/mocks"
	userMocks "proctor/internal/domains/user/mocks"
	userModel "proctor/internal/domains/user/model"
	"proctor/shared/constant"
	"proctor/shared/failure"
)

type fixture struct {
	svc          service.Reservation
	repo         *mocks.MockReservation
	scheduleRepo *scheduleMocks.MockSchedule
	userRepo     *userMocks.MockUser
}

func newFixture(t *testing.T, maxReservations int) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.App.MaxReservations = maxReservations

	repo := mocks.NewMockReservation(ctrl)
	scheduleRepo := scheduleMocks.NewMockSchedule(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)

	return fixture{
		svc:          service.New(repo, scheduleRepo, userRepo, cfg, otelMocks.NewOtel()),
		repo:         repo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
	}
}

func clientContext(id int64) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserHandle, "client-handle")

	return context.WithValue(ctx, constant.ContextKeyUserRole, string(userModel.RoleClient))
}

func adminContext(id int64) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserHandle, "admin-handle")

	return context.WithValue(ctx, constant.ContextKeyUserRole, string(userModel.RoleAdmin))
}

func TestReservationService_Make(t *testing.T) {
	t.Run("client reserves a free slot", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.scheduleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().ConfirmedCount(gomock.Any(), int64(1)).Return(0, nil)
		f.repo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(9), nil)

		res, err := f.svc.Make(clientContext(3), 1, dto.MakeReservationRequest{Comment: "note"})
		assert.NoError(t, err)
		assert.Equal(t, int64(9), res.ID)
		assert.Equal(t, int64(3), res.UserID)
		assert.Equal(t, int64(1), res.ExamScheduleID)
		assert.Equal(t, "note", res.Comment)
		assert.False(t, res.Confirmed)
	})

	t.Run("admin cannot reserve", func(t *testing.T) {
		f := newFixture(t, 50000)

		_, err := f.svc.Make(adminContext(1), 1, dto.MakeReservationRequest{})
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.EqualError(t, err, "Only clients can make reservations")
	})

	t.Run("missing schedule", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.scheduleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Make(clientContext(3), 42, dto.MakeReservationRequest{})
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.EqualError(t, err, "Exam schedule not found")
	})

	t.Run("second reservation on the same schedule", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.scheduleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Make(clientContext(3), 1, dto.MakeReservationRequest{})
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "User already has a reservation for this exam schedule")
	})

	t.Run("schedule at capacity", func(t *testing.T) {
		f := newFixture(t, 2)

		f.scheduleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().ConfirmedCount(gomock.Any(), int64(1)).Return(2, nil)

		_, err := f.svc.Make(clientContext(3), 1, dto.MakeReservationRequest{})
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "Exam schedule has reached maximum reservations")
	})

	t.Run("concurrent duplicate caught by unique constraint", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.scheduleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().ConfirmedCount(gomock.Any(), int64(1)).Return(0, nil)
		f.repo.EXPECT().
			InsertReturningID(gomock.Any(), gomock.Any()).
			Return(int64(0), &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		_, err := f.svc.Make(clientContext(3), 1, dto.MakeReservationRequest{})
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "User already has a reservation for this exam schedule")
	})
}

func TestReservationService_Mine(t *testing.T) {
	t.Run("client lists own reservations", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			Return([]model.Reservation{{ID: 1, UserID: 3, ExamScheduleID: 1}}, nil)

		res, err := f.svc.Mine(clientContext(3))
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		f := newFixture(t, 50000)

		_, err := f.svc.Mine(adminContext(1))
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.EqualError(t, err, "Only clients can view their reservations")
	})
}

func TestReservationService_ForUser(t *testing.T) {
	t.Run("admin lists user reservations", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			Return([]model.Reservation{{ID: 1, UserID: 3}, {ID: 2, UserID: 3}}, nil)

		res, err := f.svc.ForUser(adminContext(1), 3)
		assert.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		f := newFixture(t, 50000)

		_, err := f.svc.ForUser(clientContext(3), 3)
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.EqualError(t, err, "Only admins can view user reservations")
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.ForUser(adminContext(1), 99)
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "User with 99 not found")
	})
}

func TestReservationService_Confirm(t *testing.T) {
	pending := model.Reservation{ID: 4, UserID: 3, ExamScheduleID: 1, Confirmed: false}
	confirmed := model.Reservation{ID: 4, UserID: 3, ExamScheduleID: 1, Confirmed: true}

	req := dto.ConfirmReservationRequest{UserID: 3, ExamScheduleID: 1}

	t.Run("admin confirms pending reservation", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(pending, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		msg, err := f.svc.Confirm(adminContext(1), req)
		assert.NoError(t, err)
		assert.Equal(t, "Reservation confirmed successfully", msg)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		f := newFixture(t, 50000)

		_, err := f.svc.Confirm(clientContext(3), req)
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.EqualError(t, err, "Only admins can confirm reservations")
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(model.Reservation{}, nil)

		_, err := f.svc.Confirm(adminContext(1), req)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.EqualError(t, err, "Reservation not found")
	})

	t.Run("confirming twice is rejected", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(confirmed, nil)

		_, err := f.svc.Confirm(adminContext(1), req)
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "Reservation already confirmed")
	})
}

func TestReservationService_Edit(t *testing.T) {
	pending := model.Reservation{ID: 4, UserID: 3, ExamScheduleID: 1, Confirmed: false}
	confirmed := model.Reservation{ID: 4, UserID: 3, ExamScheduleID: 1, Confirmed: true}

	t.Run("client edits own pending reservation", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(pending, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		msg, err := f.svc.EditMine(clientContext(3), dto.EditMyReservationRequest{ExamScheduleID: 1, Comment: "updated"})
		assert.NoError(t, err)
		assert.Equal(t, "Reservation comment updated successfully", msg)
	})

	t.Run("confirmed reservation is immutable", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(confirmed, nil)

		_, err := f.svc.EditMine(clientContext(3), dto.EditMyReservationRequest{ExamScheduleID: 1, Comment: "updated"})
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "Cannot edit confirmed reservation")
	})

	t.Run("client cannot edit another user's reservation", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(pending, nil)

		_, err := f.svc.EditForUser(clientContext(8), dto.EditUserReservationRequest{UserID: 3, ExamScheduleID: 1, Comment: "x"})
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.EqualError(t, err, "Cannot edit other users' reservations")
	})

	t.Run("admin edits any pending reservation", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(pending, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		msg, err := f.svc.EditForUser(adminContext(1), dto.EditUserReservationRequest{UserID: 3, ExamScheduleID: 1, Comment: "x"})
		assert.NoError(t, err)
		assert.Equal(t, "Reservation comment updated successfully", msg)
	})

	t.Run("missing reservation wins over ownership", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().GetByPair(gomock.Any(), int64(3), int64(1)).Return(model.Reservation{}, nil)

		_, err := f.svc.EditForUser(clientContext(8), dto.EditUserReservationRequest{UserID: 3, ExamScheduleID: 1})
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.EqualError(t, err, "Reservation not found")
	})
}

func TestReservationService_Delete(t *testing.T) {
	pending := model.Reservation{ID: 4, UserID: 3, ExamScheduleID: 1, Confirmed: false}
	confirmed := model.Reservation{ID: 4, UserID: 3, ExamScheduleID: 1, Confirmed: true}

	tests := []struct {
		name        string
		ctx         context.Context
		reservation model.Reservation
		deletes     bool
		wantCode    int
		wantMsg     string
	}{
		{
			name:        "owner deletes pending reservation",
			ctx:         clientContext(3),
			reservation: pending,
			deletes:     true,
			wantMsg:     "Reservation deleted successfully",
		},
		{
			name:        "client cannot delete someone else's",
			ctx:         clientContext(8),
			reservation: pending,
			wantCode:    403,
			wantMsg:     "Cannot delete this reservation",
		},
		{
			name:        "client cannot delete own confirmed reservation",
			ctx:         clientContext(3),
			reservation: confirmed,
			wantCode:    403,
			wantMsg:     "Cannot delete this reservation",
		},
		{
			name:        "admin deletes pending reservation",
			ctx:         adminContext(1),
			reservation: pending,
			deletes:     true,
			wantMsg:     "Reservation deleted successfully",
		},
		{
			name:        "admin cannot delete confirmed reservation",
			ctx:         adminContext(1),
			reservation: confirmed,
			wantCode:    403,
			wantMsg:     "Cannot delete confirmed reservation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50000)

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.reservation, nil)

			if tt.deletes {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			msg, err := f.svc.Delete(tt.ctx, tt.reservation.ID)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.EqualError(t, err, tt.wantMsg)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}

	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(t, 50000)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{}, nil)

		_, err := f.svc.Delete(adminContext(1), 42)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.EqualError(t, err, "Reservation not found")
	})
}
