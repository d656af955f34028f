package service

import (
	"context"
	"errors"
	"testing"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
)

func TestExerciseService_Create(t *testing.T) {
	repo := NewMockExerciseRepository()
	svc := NewExerciseService(repo)

	req := &domain.CreateExerciseRequest{
		Name:       "Barbell Bench Press",
		Type:       domain.ExerciseTypeWeight,
		Equipment:  domain.EquipmentBarbell,
		IsCompound: true,
	}

	exercise, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if exercise.Name != req.Name || exercise.Equipment != domain.EquipmentBarbell || !exercise.IsCompound {
		t.Errorf("Create() exercise = %+v", exercise)
	}

	// Same name again conflicts
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() duplicate error = %v, want ErrConflict", err)
	}
}

func TestExerciseService_GetByName(t *testing.T) {
	repo := NewMockExerciseRepository()
	svc := NewExerciseService(repo)

	if _, err := svc.Create(context.Background(), &domain.CreateExerciseRequest{
		Name:      "Lat Pulldown",
		Type:      domain.ExerciseTypeWeight,
		Equipment: domain.EquipmentCable,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exercise, err := svc.GetByName(context.Background(), "lat pulldown")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if exercise.Name != "Lat Pulldown" {
		t.Errorf("GetByName() name = %v", exercise.Name)
	}

	if _, err := svc.GetByName(context.Background(), "Unknown"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByName() error = %v, want ErrNotFound", err)
	}
}

func TestExerciseService_List(t *testing.T) {
	repo := NewMockExerciseRepository()
	svc := NewExerciseService(repo)

	for _, name := range []string{"Deadlift", "Barbell Bench Press", "Lat Pulldown"} {
		if _, err := svc.Create(context.Background(), &domain.CreateExerciseRequest{
			Name:      name,
			Type:      domain.ExerciseTypeWeight,
			Equipment: domain.EquipmentBarbell,
		}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	exercises, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(exercises) != 3 {
		t.Fatalf("List() returned %d exercises, want 3", len(exercises))
	}
	if exercises[0].Name != "Barbell Bench Press" {
		t.Errorf("List() not sorted by name: first = %v", exercises[0].Name)
	}
}
