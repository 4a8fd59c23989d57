// Package repository declares the storage interfaces the service layer
// depends on. internal/repository/sqlite provides the implementation.
package repository

import (
	"context"

	"github.com/sakif/student-records/internal/model"
)

// StudentRepository stores Student rows.
//
// GetByID, Update and Delete return apperror.ErrNotFound when no row has the id.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository stores User rows.
//
// Create returns apperror.ErrConflict when the username is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}
