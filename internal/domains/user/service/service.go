package service

import (
	"context"
	"fmt"
	"proctor/infras/jwt"
	"proctor/infras/otel"
	"proctor/internal/domains/user/model"
	"proctor/internal/domains/user/model/dto"
	"proctor/internal/domains/user/repository"
	"proctor/shared/constant"
	gDto "proctor/shared/dto"
	"proctor/shared/failure"
	"proctor/shared/password"

	"github.com/rs/zerolog/log"
)

const msgBadCredentials = "The id or password is not right"

type User interface {
	Search(ctx context.Context, handle string, role string) ([]dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	repo repository.User
	jwt  jwt.JWT
	otel otel.Otel
}

func New(repo repository.User, jwt jwt.JWT, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		jwt:  jwt,
		otel: otel,
	}
}

// Search lists users, optionally narrowed by a partial handle match and an
// exact role. Empty arguments mean no narrowing at all.
func (s *serviceImpl) Search(ctx context.Context, handle string, role string) (res []dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}

	if handle != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldHandle,
			Value:    handle,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if role != "" {
		if !model.Role(role).Valid() {
			return res, failure.BadRequestFromString(fmt.Sprintf("unknown role %q", role)) // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Value:    role,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	users, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search users")

		return res, fmt.Errorf("failed to search users: %w", err)
	}

	return dto.FromModels(users), nil
}

// Login checks the handle and password and issues a signed token. Unknown
// handle and wrong password produce the same response on purpose.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldHandle,
				Value:    req.Handle,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get user for login")

		return res, fmt.Errorf("failed to get user for login: %w", err)
	}

	if user.ID == 0 {
		return res, failure.BadRequestFromString(msgBadCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		return res, failure.BadRequestFromString(msgBadCredentials) // nolint:wrapcheck
	}

	token, err := s.jwt.Generate(user.ID, user.Handle, string(user.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	return dto.LoginResponse{Token: token}, nil
}
