package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
)

// UserRepository defines data operations for accounts and the leaderboard.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	SaveProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error
	ListStudents(ctx context.Context) ([]models.User, error)
	TopStudents(ctx context.Context, limit int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// SaveProfile persists name changes on the user together with its profile.
func (r *userRepository) SaveProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("name", user.Name).Error; err != nil {
			return err
		}

		profile.UserID = user.ID
		return tx.Where(models.UserProfile{UserID: user.ID}).
			Assign(map[string]interface{}{
				"register_number": profile.RegisterNumber,
				"date_of_birth":   profile.DateOfBirth,
				"gender":          profile.Gender,
				"address":         profile.Address,
				"residence":       profile.Residence,
			}).
			FirstOrCreate(&models.UserProfile{}).Error
	})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) ListStudents(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Preload("Profile").
		Where("role = ?", models.RoleStudent).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// TopStudents ranks students by points descending. Ties break on id ascending
// so the ordering is deterministic across databases.
func (r *userRepository) TopStudents(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", models.RoleStudent).
		Order("points DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
