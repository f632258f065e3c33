package postgres

import (
	"context"
	"errors"
	"fmt"

	"campusMatching/business/bandit"
	"campusMatching/business/student"
	"campusMatching/domain"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

// Compile-time checks that the struct implements the service contracts.
var (
	_ bandit.StudentRepository  = (*StudentRepository)(nil)
	_ student.StudentRepository = (*StudentRepository)(nil)
)

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{
		DB: db,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	if err := r.DB.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (domain.Student, error) {
	var student domain.Student

	err := r.DB.WithContext(ctx).First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Student{}, fmt.Errorf("student %d: %w", id, domain.ErrNotFound)
		}
		return domain.Student{}, err
	}

	return student, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (domain.Student, error) {
	var student domain.Student

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Student{}, fmt.Errorf("student %q: %w", email, domain.ErrNotFound)
		}
		return domain.Student{}, err
	}

	return student, nil
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student

	if err := r.DB.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}
