package services

import (
	"context"
	"errors"
	"time"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
	"github.com/Calabangata/Graduation-System/internal/db"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
	"github.com/Calabangata/Graduation-System/internal/pkg/auth"
	"github.com/Calabangata/Graduation-System/internal/pkg/helpers"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// AuthService handles registration, login and refresh token rotation
type AuthService struct {
	txManager  db.TxManager
	users      UserStore
	students   StudentStore
	teachers   TeacherStore
	tokens     TokenStore
	jwtService *auth.JWTService

	now func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(txManager db.TxManager, users UserStore, students StudentStore, teachers TeacherStore, tokens TokenStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		txManager:  txManager,
		users:      users,
		students:   students,
		teachers:   teachers,
		tokens:     tokens,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Register creates a user account plus its student or teacher profile.
// Students get a generated faculty number; teachers start without a
// department and must be assigned to one before taking part in the thesis
// workflow.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := models.RoleType(req.Role)
	if role != models.RoleStudent && role != models.RoleTeacher {
		return nil, apperrors.NewBadRequestError("Role must be STUDENT or TEACHER")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var resp *dto.RegisterResponse

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError("User with this email already exists")
		}

		user := &models.User{
			Email:     req.Email,
			Password:  hashedPassword,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			RoleType:  role,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.NewConflictError("User with this email already exists")
			}
			return err
		}

		resp = &dto.RegisterResponse{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.RoleType),
		}

		switch role {
		case models.RoleStudent:
			student := &models.Student{
				ID:     helpers.GenerateFacultyNumber(),
				UserID: user.ID,
			}
			if err := s.students.Create(ctx, student); err != nil {
				return err
			}
			resp.FacultyNumber = student.ID
		case models.RoleTeacher:
			teacher := &models.Teacher{
				UserID:       user.ID,
				AcademicRank: req.AcademicRank,
			}
			if err := s.teachers.Create(ctx, teacher); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userId", resp.UserID).
		Str("role", resp.Role).
		Msg("User registered")

	return resp, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a fresh token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if stored.ExpiresAt.Before(s.now()) {
		_ = s.tokens.Delete(ctx, stored.Token)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	err = s.tokens.Save(ctx, &repositories.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}
