package services

import (
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, models.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserService) List(skip, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var users []models.User
	if err := s.db.Order("id ASC").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Delete(userID uint) error {
	result := s.db.Delete(&models.User{}, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *UserService) SetAdmin(userID uint, isAdmin bool) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
