package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/google/uuid"
)

func validWorkoutRequest(start time.Time) *domain.CreateWorkoutRequest {
	return &domain.CreateWorkoutRequest{
		StartedAt: start,
		Exercises: []domain.CreateExerciseLogRequest{
			{
				ExerciseName: "Barbell Bench Press",
				Sets: []domain.CreateSetRequest{
					{Weight: floatPtr(100), Reps: intPtr(5), Completed: true},
					{Weight: floatPtr(100), Reps: intPtr(5), Completed: true},
				},
			},
		},
	}
}

func TestWorkoutService_Create(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		userID       uuid.UUID
		req          *domain.CreateWorkoutRequest
		setupRepo    func(*MockWorkoutRepository)
		wantErr      error
		wantExisting bool
	}{
		{
			name:    "valid workout",
			userID:  userID,
			req:     validWorkoutRequest(start),
			wantErr: nil,
		},
		{
			name:    "unknown user",
			userID:  uuid.New(),
			req:     validWorkoutRequest(start),
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "idempotent request returns existing",
			userID: userID,
			req: func() *domain.CreateWorkoutRequest {
				req := validWorkoutRequest(start)
				req.ClientRequestID = strPtr("req-42")
				return req
			}(),
			setupRepo: func(repo *MockWorkoutRepository) {
				existing := &domain.WorkoutSession{
					ID:              uuid.New(),
					UserID:          userID,
					StartedAt:       start,
					ClientRequestID: strPtr("req-42"),
				}
				repo.workouts[existing.ID] = existing
				repo.clientRequestID[userID.String()+":req-42"] = existing
			},
			wantErr:      nil,
			wantExisting: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := NewMockUserRepository()
			userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}
			repo := NewMockWorkoutRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			svc := NewWorkoutService(repo, userRepo)

			workout, existing, err := svc.Create(context.Background(), tt.userID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if existing != tt.wantExisting {
				t.Errorf("Create() existing = %v, want %v", existing, tt.wantExisting)
			}
			if workout == nil {
				t.Fatal("Create() returned nil workout")
			}
			if !tt.wantExisting {
				if len(workout.Exercises) != 1 {
					t.Fatalf("Create() exercises = %d, want 1", len(workout.Exercises))
				}
				if got := len(workout.Exercises[0].Sets); got != 2 {
					t.Errorf("Create() sets = %d, want 2", got)
				}
				// Positions must follow request order
				if workout.Exercises[0].Position != 0 || workout.Exercises[0].Sets[1].Position != 1 {
					t.Error("Create() did not assign positions in request order")
				}
			}
		})
	}
}

func TestWorkoutService_GetByID_OwnershipCheck(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	userRepo := NewMockUserRepository()
	userRepo.users[ownerID] = &domain.User{ID: ownerID, Timezone: "UTC"}
	repo := NewMockWorkoutRepository()
	svc := NewWorkoutService(repo, userRepo)

	workout := &domain.WorkoutSession{
		ID:        uuid.New(),
		UserID:    ownerID,
		StartedAt: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
	}
	repo.workouts[workout.ID] = workout

	if _, err := svc.GetByID(context.Background(), ownerID, workout.ID); err != nil {
		t.Errorf("GetByID() owner error = %v", err)
	}
	if _, err := svc.GetByID(context.Background(), otherID, workout.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() foreign user error = %v, want ErrNotFound", err)
	}
}

func TestWorkoutService_List_Pagination(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}
	repo := NewMockWorkoutRepository()
	svc := NewWorkoutService(repo, userRepo)

	base := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		w := &domain.WorkoutSession{
			ID:        uuid.New(),
			UserID:    userID,
			StartedAt: base.AddDate(0, 0, i),
		}
		repo.workouts[w.ID] = w
	}

	resp, err := svc.List(context.Background(), userID, domain.WorkoutFilter{Limit: 3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("List() returned %d workouts, want 3", len(resp.Data))
	}
	if !resp.Pagination.HasMore {
		t.Error("List() HasMore = false, want true")
	}
	if resp.Pagination.NextCursor == "" {
		t.Error("List() NextCursor is empty with more pages available")
	}
	// Newest first
	if !resp.Data[0].StartedAt.After(resp.Data[1].StartedAt) {
		t.Error("List() workouts not in descending start order")
	}

	// Last page
	resp, err = svc.List(context.Background(), userID, domain.WorkoutFilter{Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Data) != 5 || resp.Pagination.HasMore {
		t.Errorf("List() full page = %d workouts, hasMore %v", len(resp.Data), resp.Pagination.HasMore)
	}
}

func TestWorkoutService_List_UnknownUser(t *testing.T) {
	svc := NewWorkoutService(NewMockWorkoutRepository(), NewMockUserRepository())

	if _, err := svc.List(context.Background(), uuid.New(), domain.WorkoutFilter{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("List() error = %v, want ErrNotFound", err)
	}
}
