package dto

import "roomdesk/infras/jwt"

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (r *LoginResponse) FromToken(token jwt.Token) {
	r.AccessToken = token.AccessToken
	r.TokenType = token.TokenType
	r.ExpiresIn = token.ExpiresIn
}
