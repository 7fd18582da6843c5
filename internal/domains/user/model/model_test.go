package model_test

import (
	"context"
	"testing"

	"proctor/internal/domains/user/model"
	"proctor/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, model.RoleClient.Valid())
	assert.True(t, model.RoleAdmin.Valid())
	assert.False(t, model.Role("superuser").Valid())
	assert.False(t, model.Role("").Valid())
}

func TestCallerFromContext(t *testing.T) {
	t.Run("full identity", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, int64(7))
		ctx = context.WithValue(ctx, constant.ContextKeyUserHandle, "c-007")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, "client")

		caller, ok := model.CallerFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, int64(7), caller.ID)
		assert.Equal(t, "c-007", caller.Handle)
		assert.True(t, caller.IsClient())
		assert.False(t, caller.IsAdmin())
	})

	t.Run("missing identity", func(t *testing.T) {
		_, ok := model.CallerFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("unknown role", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, int64(7))
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, "superuser")

		_, ok := model.CallerFromContext(ctx)
		assert.False(t, ok)
	})
}
