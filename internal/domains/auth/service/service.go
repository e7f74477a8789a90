package service

import (
	"context"
	"fmt"

	"roomdesk/config"
	"roomdesk/infras/jwt"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/auth/credential"
	"roomdesk/internal/domains/auth/model/dto"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	credentials credential.Store
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(credentials credential.Store, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		credentials: credentials,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := s.credentials.Verify(ctx, req.Username, req.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with invalid credentials")

		return res, failure.Unauthorized("invalid username or password") //nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(req.Username, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")

		return res, fmt.Errorf("failed to generate access token: %w", err)
	}

	res.FromToken(*token)

	return res, nil
}
