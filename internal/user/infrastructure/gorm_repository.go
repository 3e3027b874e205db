package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mateusmacedo/go-mediator/internal/user/domain"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
	gormadapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/gormsession/adapter"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger pkgApp.AppLogger
}

// NewGormUserRepository migrates the users table and returns the repository.
// Every operation runs on the ambient session's transaction when one is
// bound to the context. Duplicate detection relies on the connection being
// opened with gorm.Config.TranslateError.
func NewGormUserRepository(db *gorm.DB, logger pkgApp.AppLogger) (domain.UserRepository, error) {
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return nil, err
	}
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Save(ctx context.Context, user *domain.User) error {
	db := gormadapter.DBFromContext(ctx, r.db)

	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgDomain.NewDuplicateEntity("User", "email", user.Email)
		}
		pkgApp.LogError(ctx, r.logger, "failed to save user", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	db := gormadapter.DBFromContext(ctx, r.db)

	result := db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND version = ?", user.ID, user.Version).
		Updates(map[string]interface{}{
			"name":       user.Name,
			"updated_at": user.UpdatedAt,
			"version":    user.Version + 1,
		})
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to update user", result.Error, map[string]interface{}{
			"user_id": user.ID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		var current domain.User
		err := db.WithContext(ctx).Select("version").First(&current, "id = ?", user.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgDomain.NewEntityNotFound("User", user.ID)
		}
		if err != nil {
			return err
		}
		return pkgDomain.NewVersionMismatch("User", user.ID, user.Version, current.Version)
	}

	user.Version++
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	db := gormadapter.DBFromContext(ctx, r.db)

	var user domain.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgDomain.NewEntityNotFound("User", id)
		}
		pkgApp.LogError(ctx, r.logger, "failed to find user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	db := gormadapter.DBFromContext(ctx, r.db)

	var count int64
	if err := db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	db := gormadapter.DBFromContext(ctx, r.db)

	var users []domain.User
	if err := db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to list users", err, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		return nil, err
	}
	return users, nil
}
