// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses forms, renders pages, redirects
//	Service (Business layer) → validates input, enforces rules
//	Repository (Data layer)  → reads/writes the database
//
// Services take repository interfaces, never *sqlite.DB, and return
// apperror values the handler layer maps to HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/student-records/internal/apperror"
	"github.com/sakif/student-records/internal/metrics"
	"github.com/sakif/student-records/internal/model"
	"github.com/sakif/student-records/internal/repository"
)

// StudentService handles the student list: list, create, fetch-for-edit,
// update and delete.
type StudentService struct {
	repo   repository.StudentRepository
	logger *slog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo repository.StudentRepository, logger *slog.Logger) *StudentService {
	return &StudentService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every student. Anyone may call it: the list is shared and
// not scoped to a user.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list students", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing students: %w", err)
	}
	return students, nil
}

// Create validates the form and inserts a new student.
// Name, city and address are required; postal code is optional.
func (s *StudentService) Create(ctx context.Context, in StudentInput) (*model.Student, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:       in.Name,
		City:       in.City,
		Address:    in.Address,
		PostalCode: in.PostalCode,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		s.logger.Error("failed to create student",
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating student: %w", err)
	}

	metrics.StudentChanged("created")
	s.logger.Info("student created",
		slog.Int64("id", student.ID),
		slog.String("name", student.Name),
	)

	return student, nil
}

// Get fetches one student for the edit form.
// Returns apperror.ErrNotFound if the student doesn't exist.
func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	if id <= 0 {
		return nil, apperror.NotFound("student", id)
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to get student",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}
	return student, nil
}

// Update validates the form and overwrites the student's fields in one
// UPDATE statement. Concurrent edits are last-writer-wins.
func (s *StudentService) Update(ctx context.Context, id int64, in StudentInput) (*model.Student, error) {
	if id <= 0 {
		return nil, apperror.NotFound("student", id)
	}

	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	student := &model.Student{
		ID:         id,
		Name:       in.Name,
		City:       in.City,
		Address:    in.Address,
		PostalCode: in.PostalCode,
	}

	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update student",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating student: %w", err)
	}

	metrics.StudentChanged("updated")
	s.logger.Info("student updated",
		slog.Int64("id", student.ID),
		slog.String("name", student.Name),
	)

	return student, nil
}

// Delete removes a student by id.
// Returns apperror.ErrNotFound if the student doesn't exist.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.NotFound("student", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete student",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting student: %w", err)
	}

	metrics.StudentChanged("deleted")
	s.logger.Info("student deleted", slog.Int64("id", id))
	return nil
}
