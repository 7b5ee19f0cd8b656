// file: internals/features/classes/repository/class_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "tutorku_backend/internals/features/classes/model"
)

type GormClassRepository struct {
	DB *gorm.DB
}

func NewGormClassRepository(db *gorm.DB) *GormClassRepository {
	return &GormClassRepository{DB: db}
}

func (r *GormClassRepository) ClassByID(ctx context.Context, id uuid.UUID) (*m.ClassModel, error) {
	var row m.ClassModel
	if err := r.DB.WithContext(ctx).
		Where("class_id = ?", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormClassRepository) ClassesByIDs(ctx context.Context, ids []uuid.UUID) ([]m.ClassModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []m.ClassModel
	if err := r.DB.WithContext(ctx).
		Where("class_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
