package services

import (
	"fmt"
	"net/http"

	"newsgraph-ai/internal/apis/dtos"
	"newsgraph-ai/internal/utils"
)

type AuthService interface {
	Login(req *dtos.LoginRequest) (*dtos.AuthResponse, uint, error)
}

// authService authenticates the single API user configured in the environment.
type authService struct {
	jwtService utils.JWTService
	username   string
	password   string
}

func NewAuthService(jwtService utils.JWTService, username, password string) AuthService {
	return &authService{
		jwtService: jwtService,
		username:   username,
		password:   password,
	}
}

func (s *authService) Login(req *dtos.LoginRequest) (*dtos.AuthResponse, uint, error) {
	if req.Username != s.username || req.Password != s.password {
		return nil, http.StatusUnauthorized, fmt.Errorf("invalid credentials")
	}

	token, err := s.jwtService.GenerateToken(req.Username)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("failed to generate token: %v", err)
	}

	return &dtos.AuthResponse{AccessToken: token}, http.StatusOK, nil
}
