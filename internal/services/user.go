package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
)

type UserService struct {
	db     *gorm.DB
	tokens *auth.Manager
}

func NewUserService(db *gorm.DB, tokens *auth.Manager) *UserService {
	return &UserService{db: db, tokens: tokens}
}

type RegisterInput struct {
	Nickname string
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates the user plus its 1:1 profile/setting rows in one
// transaction, then issues the first token pair.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error) {
	nickname := strings.TrimSpace(input.Nickname)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if utf8.RuneCountInString(nickname) < 2 || utf8.RuneCountInString(nickname) > 30 {
		return nil, nil, apperrors.Validation("Nickname must be between 2 and 30 characters")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		Nickname:     nickname,
		Email:        email,
		PasswordHash: string(passwordHash),
		Status:       types.UserStatusActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("Nickname or email already exists")
			}
			return err
		}

		if err := tx.Create(&models.UserProfile{UserID: user.ID}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.UserSetting{UserID: user.ID, Theme: "light", Language: "en", FontSize: 14, NotifyFriends: true, NotifyChat: true, NotifyAchievements: true}).Error; err != nil {
			return err
		}

		return tx.Create(&models.StorageSetting{UserID: user.ID, Provider: "local", QuotaBytes: 104857600}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, nil, err
	}

	return &user, pair, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, nil, err
	}

	if user.Status == types.UserStatusSuspended {
		return nil, nil, apperrors.Forbidden("Account is suspended")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, apperrors.Unauthorized("Invalid email or password")
	}

	pair, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, nil, err
	}

	return &user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The token must
// match the one on record for that user; issuing overwrites it, which is the
// revocation mechanism.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("Refresh token has expired")
		}
		return nil, apperrors.Unauthorized("Invalid refresh token")
	}

	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	if user.RefreshToken != refreshToken {
		return nil, apperrors.Unauthorized("Refresh token has been revoked")
	}

	return s.issueTokens(ctx, &user)
}

func (s *UserService) Logout(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", "").Error
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Preload("Profile").Preload("Setting").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	return &user, nil
}

type UpdateAccountInput struct {
	Nickname        string
	Email           string
	CurrentPassword string
	NewPassword     string
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uint, input UpdateAccountInput) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Nickname != "" {
		nickname := strings.TrimSpace(input.Nickname)
		if utf8.RuneCountInString(nickname) < 2 || utf8.RuneCountInString(nickname) > 30 {
			return nil, apperrors.Validation("Nickname must be between 2 and 30 characters")
		}
		updates["nickname"] = nickname
	}

	if input.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(input.Email))
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			return nil, apperrors.Validation("Current password is required to change password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
			return nil, apperrors.Validation("Current password is incorrect")
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(passwordHash)
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error
	if err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Conflict("Nickname or email already exists")
		}
		return nil, err
	}

	return &user, nil
}

// DeleteAccount soft-deletes the user after re-checking the password. The
// row stays for audit; the unique columns stay claimed.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return apperrors.Validation("Incorrect password")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"status":        types.UserStatusInactive,
			"refresh_token": "",
		}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("refresh_token", refreshToken).Error
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
