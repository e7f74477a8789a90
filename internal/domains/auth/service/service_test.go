package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roomdesk/config"
	"roomdesk/infras/jwt"
	jwtMocks "roomdesk/infras/jwt/mocks"
	"roomdesk/infras/otel/mocks"
	authMocks "roomdesk/internal/domains/auth/mocks"
	"roomdesk/internal/domains/auth/model/dto"
	"roomdesk/internal/domains/auth/service"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"
	"roomdesk/shared/password"
)

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCredentials := authMocks.NewMockStore(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockCredentials, cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Username: "admin",
				Password: "password",
			},
			setupMock: func() {
				mockCredentials.EXPECT().
					Verify(gomock.Any(), "admin", "password").
					Return(nil)

				mockJWT.EXPECT().
					GenerateToken("admin", constant.RoleAdmin).
					Return(&jwt.Token{
						AccessToken: "access-token",
						TokenType:   "Bearer",
						ExpiresIn:   86400,
					}, nil)
			},
			wantErr: false,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Username: "admin",
				Password: "wrongpassword",
			},
			setupMock: func() {
				mockCredentials.EXPECT().
					Verify(gomock.Any(), "admin", "wrongpassword").
					Return(password.ErrInvalidPassword)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			req: dto.LoginRequest{
				Username: "intruder",
				Password: "password",
			},
			setupMock: func() {
				mockCredentials.EXPECT().
					Verify(gomock.Any(), "intruder", "password").
					Return(password.ErrInvalidPassword)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token generation error",
			req: dto.LoginRequest{
				Username: "admin",
				Password: "password",
			},
			setupMock: func() {
				mockCredentials.EXPECT().
					Verify(gomock.Any(), "admin", "password").
					Return(nil)

				mockJWT.EXPECT().
					GenerateToken("admin", constant.RoleAdmin).
					Return(nil, errors.New("token generation failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Login(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.True(t, failure.IsCode(err, tt.wantCode))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.Equal(t, "Bearer", result.TokenType)
			}
		})
	}
}
