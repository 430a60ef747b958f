package services

import (
	"errors"

	"quizdeck/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterRequest struct {
	Name     string `form:"first_name" json:"name" binding:"required"`
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `form:"first_name" json:"name" binding:"required"`
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
}

// Profile update outcomes, surfaced verbatim to the client.
const (
	ProfileUpdated      = "correct"
	ProfileUsedUsername = "used_username"
	ProfileUsedEmail    = "used_email"
)

// Register creates a new user with role "user". Returns ErrConflict if the
// username or email is already taken.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login checks credentials. Unknown username and wrong password both come
// back as ErrInvalidCredentials so the response cannot leak which one it was.
func (s *AuthService) Login(req *LoginRequest) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes name, username and email in place. The caller's own
// current values never count as conflicts.
func (s *AuthService) UpdateProfile(user *models.User, req *UpdateProfileRequest) (string, error) {
	var existing models.User
	err := s.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil && existing.ID != user.ID {
		return ProfileUsedUsername, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	err = s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil && existing.ID != user.ID {
		return ProfileUsedEmail, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Email = req.Email
	if err := s.db.Save(user).Error; err != nil {
		return "", err
	}

	return ProfileUpdated, nil
}
