package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/authz"
	"leavedesk/internal/employee"
	employeeerrors "leavedesk/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// The employee row is the single source of truth for the role; the
	// token carries a snapshot of it.
	emp, role, err := s.resolveEmployee(ctx, user.EmployeeID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, err := s.generateToken(user.ID.String(), user.EmployeeID.String(), string(role), accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), user.EmployeeID.String(), string(role), refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", user.EmployeeID.String()),
		zap.String("role", string(role)),
	)

	return accessToken, refreshToken, AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		Email:      user.Email,
		FullName:   emp.FullName,
		Role:       string(role),
	}, nil
}

// RefreshToken re-resolves the role from the employee row, so a demotion
// takes effect on the next refresh even though older access tokens still
// carry the previous role until they expire.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	emp, role, err := s.resolveEmployee(ctx, user.EmployeeID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	newAccessToken, err := s.generateToken(user.ID.String(), user.EmployeeID.String(), string(role), accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user.ID.String(), user.EmployeeID.String(), string(role), refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		Email:      user.Email,
		FullName:   emp.FullName,
		Role:       string(role),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	emp, role, err := s.resolveEmployee(ctx, user.EmployeeID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		Email:      user.Email,
		FullName:   emp.FullName,
		Role:       string(role),
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	emp, err := s.employeeRepo.FindByID(ctx, employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AuthResponse{}, err
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Email:      req.Email,
		Password:   string(hashed),
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	role, ok := authz.ParseRole(emp.Role)
	if !ok {
		role = authz.RoleEmployee
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", employeeID.String()),
	)

	return AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: employeeID.String(),
		Email:      user.Email,
		FullName:   emp.FullName,
		Role:       string(role),
	}, nil
}

func (s *service) resolveEmployee(ctx context.Context, employeeID uuid.UUID) (*employee.Employee, authz.Role, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", autherrors.ErrUserNotFound
		}
		return nil, "", err
	}

	role, ok := authz.ParseRole(emp.Role)
	if !ok {
		return nil, "", autherrors.ErrForbidden
	}
	return emp, role, nil
}

func (s *service) generateToken(userID, employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     userID,
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
