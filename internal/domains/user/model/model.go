package model

import (
	"context"
	"proctor/shared/constant"
	"proctor/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID     = "id"
	FieldHandle = "user_id"
	FieldRole   = "role"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

type User struct {
	ID       int64  `db:"id"`
	Handle   string `db:"user_id"`
	Password string `db:"password"`
	Role     Role   `db:"role"`
	model.Metadata
}

// Caller identifies the authenticated user resolved from the request token.
type Caller struct {
	ID     int64
	Handle string
	Role   Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) IsClient() bool {
	return c.Role == RoleClient
}

// CallerFromContext reads the identity placed on the context by the auth
// middleware. The boolean is false when the request never went through it.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	id, ok := ctx.Value(constant.ContextKeyUserID).(int64)
	if !ok {
		return Caller{}, false
	}

	handle, _ := ctx.Value(constant.ContextKeyUserHandle).(string)

	role, ok := ctx.Value(constant.ContextKeyUserRole).(string)
	if !ok || !Role(role).Valid() {
		return Caller{}, false
	}

	return Caller{ID: id, Handle: handle, Role: Role(role)}, true
}
