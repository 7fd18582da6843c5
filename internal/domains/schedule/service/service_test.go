package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"proctor/config"
	otelMocks "proctor/infras/otel/mocks"
	reservationMocks "proctor/internal/domains/reservation/mocks"
	"proctor/internal/domains/schedule/mocks"
	"proctor/internal/domains/schedule/model"
	"proctor/internal/domains/schedule/model/dto"
	"proctor/internal/domains/schedule/service"
	"proctor/shared/constant"
	"proctor/shared/failure"
	"proctor/shared/timezone"
)

func callerContext(id int64, handle, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserHandle, handle)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func newService(t *testing.T, cfg *config.Config) (service.Schedule, *mocks.MockSchedule, *reservationMocks.MockReservation) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockSchedule(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)

	return service.New(mockRepo, mockReservationRepo, cfg, otelMocks.NewOtel()), mockRepo, mockReservationRepo
}

func TestScheduleService_GetSchedules(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.MaxReservations = 50000
	cfg.App.ReservationWindowHours = 72

	schedules := []model.ExamSchedule{
		{ID: 1, Name: "exam 1", StartTime: timezone.Now().Add(24 * time.Hour), EndTime: timezone.Now().Add(48 * time.Hour)},
		{ID: 2, Name: "exam 2", StartTime: timezone.Now().Add(30 * time.Hour), EndTime: timezone.Now().Add(31 * time.Hour)},
	}

	t.Run("admin sees all schedules", func(t *testing.T) {
		svc, mockRepo, mockReservationRepo := newService(t, cfg)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			Return(schedules, nil)

		mockReservationRepo.EXPECT().
			ConfirmedCount(gomock.Any(), int64(1)).
			Return(0, nil)
		mockReservationRepo.EXPECT().
			ConfirmedCount(gomock.Any(), int64(2)).
			Return(12, nil)

		res, err := svc.GetSchedules(callerContext(1, "a-001", "admin"))
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, 50000, res[0].RemainSlot)
		assert.Equal(t, 49988, res[1].RemainSlot)
	})

	t.Run("client sees available window only", func(t *testing.T) {
		svc, mockRepo, mockReservationRepo := newService(t, cfg)

		mockRepo.EXPECT().
			Available(gomock.Any(), int64(2), gomock.Any(), gomock.Any()).
			Return(schedules[:1], nil)

		mockReservationRepo.EXPECT().
			ConfirmedCount(gomock.Any(), int64(1)).
			Return(3, nil)

		res, err := svc.GetSchedules(callerContext(2, "c-001", "client"))
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, 49997, res[0].RemainSlot)
	})

	t.Run("remaining slots never go negative", func(t *testing.T) {
		tight := &config.Config{}
		tight.App.MaxReservations = 10
		tight.App.ReservationWindowHours = 72

		svc, mockRepo, mockReservationRepo := newService(t, tight)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			Return(schedules[:1], nil)

		mockReservationRepo.EXPECT().
			ConfirmedCount(gomock.Any(), int64(1)).
			Return(15, nil)

		res, err := svc.GetSchedules(callerContext(1, "a-001", "admin"))
		assert.NoError(t, err)
		assert.Equal(t, 0, res[0].RemainSlot)
	})

	t.Run("unauthenticated context is rejected", func(t *testing.T) {
		svc, _, _ := newService(t, cfg)

		_, err := svc.GetSchedules(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, mockRepo, _ := newService(t, cfg)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("boom"))

		_, err := svc.GetSchedules(callerContext(1, "a-001", "admin"))
		assert.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestScheduleService_CreateSchedule(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.MaxReservations = 50000

	req := dto.CreateScheduleRequest{
		Name:      "exam 1",
		StartTime: timezone.Now().Add(24 * time.Hour),
		EndTime:   timezone.Now().Add(48 * time.Hour),
	}

	t.Run("admin creates schedule", func(t *testing.T) {
		svc, mockRepo, _ := newService(t, cfg)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			InsertReturningID(gomock.Any(), gomock.Any()).
			Return(int64(5), nil)

		res, err := svc.CreateSchedule(callerContext(1, "a-001", "admin"), req)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), res.ID)
		assert.Equal(t, "exam 1", res.Name)
		assert.Equal(t, 50000, res.RemainSlot)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		svc, _, _ := newService(t, cfg)

		_, err := svc.CreateSchedule(callerContext(2, "c-001", "client"), req)
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.EqualError(t, err, "Only admin can make exam schedules")
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newService(t, cfg)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.CreateSchedule(callerContext(1, "a-001", "admin"), req)
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "Exam schedule's name must be unique. Please use other name.")
	})

	t.Run("insert failure", func(t *testing.T) {
		svc, mockRepo, _ := newService(t, cfg)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			InsertReturningID(gomock.Any(), gomock.Any()).
			Return(int64(0), errors.New("boom"))

		_, err := svc.CreateSchedule(callerContext(1, "a-001", "admin"), req)
		assert.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}
