package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/railscamp/registration-api/internal/config"
	"github.com/railscamp/registration-api/internal/pkg/jwthelper"
)

var ErrWrongCredentials = errors.New("wrong email or password")

// AdminService authenticates the single organiser account configured at
// startup. No admin records live in the database.
type AdminService struct {
	conf *config.APIConfig
}

func NewAdminService(conf *config.APIConfig) *AdminService {
	return &AdminService{
		conf: conf,
	}
}

func (s *AdminService) Login(email, password, userAgent string) (string, error) {
	if email != s.conf.AdminEmail {
		return "", ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.conf.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrWrongCredentials
	}

	token, err := jwthelper.GenerateToken([]byte(s.conf.JWTSigningKey), email, userAgent)
	if err != nil {
		return "", err
	}

	return token, nil
}
