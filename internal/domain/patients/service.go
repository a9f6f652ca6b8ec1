package patients

import (
	"context"
	"strings"
	"time"

	"health-companion/internal/engine"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name string
	Age  int
	Sex  Sex
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Patient, error) {
	var errs engine.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, &engine.ValidationError{Field: "name", Message: "is required"})
	}
	if in.Age < 0 || in.Age > 120 {
		errs = append(errs, &engine.ValidationError{Field: "age", Message: "must be between 0 and 120"})
	}
	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}
	if sex != SexMale && sex != SexFemale && sex != SexUnknown {
		errs = append(errs, &engine.ValidationError{Field: "sex", Message: "must be male, female or unknown"})
	}
	if len(errs) > 0 {
		return Patient{}, errs
	}

	p := Patient{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Age:       in.Age,
		Sex:       sex,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, engine.ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}
