package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seededWeeks = 10

// Run seeds the database with sample users, a small exercise catalog and
// several weeks of workout history. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.Exercise{}, &domain.WorkoutSession{}, &domain.ExerciseLog{}, &domain.SetLog{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	if err := seedExercises(db); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedWorkoutsForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedExercises(db *gorm.DB) error {
	exercises := []domain.Exercise{
		{Name: "Barbell Bench Press", Type: domain.ExerciseTypeWeight, Equipment: domain.EquipmentBarbell, IsCompound: true},
		{Name: "Back Squat", Type: domain.ExerciseTypeWeight, Equipment: domain.EquipmentBarbell, IsCompound: true},
		{Name: "Deadlift", Type: domain.ExerciseTypeWeight, Equipment: domain.EquipmentBarbell, IsCompound: true},
		{Name: "Dumbbell Shoulder Press", Type: domain.ExerciseTypeWeight, Equipment: domain.EquipmentDumbbell, IsCompound: true},
		{Name: "Cable Triceps Pushdown", Type: domain.ExerciseTypeWeight, Equipment: domain.EquipmentCable},
		{Name: "Leg Press", Type: domain.ExerciseTypeWeight, Equipment: domain.EquipmentMachine, IsCompound: true},
		{Name: "Pull Up", Type: domain.ExerciseTypeBodyweight, Equipment: domain.EquipmentBodyweight, IsCompound: true, IsBodyweight: true},
		{Name: "Push Up", Type: domain.ExerciseTypeRepsOnly, Equipment: domain.EquipmentBodyweight, IsBodyweight: true},
		{Name: "Assisted Dip", Type: domain.ExerciseTypeAssisted, Equipment: domain.EquipmentMachine, IsBodyweight: true},
		{Name: "Plank", Type: domain.ExerciseTypeDuration, Equipment: domain.EquipmentBodyweight, IsBodyweight: true},
		{Name: "Treadmill Run", Type: domain.ExerciseTypeCardio, Equipment: domain.EquipmentCardioMachine},
		{Name: "Outdoor Run", Type: domain.ExerciseTypeCardio, Equipment: domain.EquipmentCardioMachine, TracksGPS: true},
	}

	for _, exercise := range exercises {
		if err := db.Where("name = ?", exercise.Name).FirstOrCreate(&exercise).Error; err != nil {
			return fmt.Errorf("failed to create exercise %s: %w", exercise.Name, err)
		}
	}
	return nil
}

// seedWorkoutsForUser writes one workout per week per user. The lift loads
// are shaped so every progression pattern shows up somewhere: bench press
// climbs steadily, leg press is stuck, shoulder press cycles reps at a
// fixed load, and pull ups add reps week over week.
func seedWorkoutsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	for week := 0; week < seededWeeks; week++ {
		weeksAgo := seededWeeks - 1 - week
		started := now.AddDate(0, 0, -7*weeksAgo).Add(-time.Duration(rng.Intn(4)) * time.Hour)
		completed := started.Add(time.Duration(55+rng.Intn(25)) * time.Minute)

		clientReqID := fmt.Sprintf("seed-%s-week-%d", user.ID, week)
		workout := domain.WorkoutSession{
			UserID:          user.ID,
			StartedAt:       started,
			CompletedAt:     &completed,
			Notes:           fmt.Sprintf("Seeded session, week %d", week+1),
			ClientRequestID: &clientReqID,
			Exercises: []domain.ExerciseLog{
				{
					ExerciseName: "Barbell Bench Press",
					Position:     0,
					Sets:         weightSets(3, 80+2.5*float64(week), 8),
				},
				{
					ExerciseName: "Leg Press",
					Position:     1,
					Sets:         weightSets(3, 180, 10),
				},
				{
					ExerciseName: "Dumbbell Shoulder Press",
					Position:     2,
					Sets:         weightSets(3, 22, 8+week%4),
				},
				{
					ExerciseName: "Pull Up",
					Position:     3,
					Sets:         repsOnlySets(3, 5+week/2),
				},
			},
		}

		if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&workout).Error; err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}
	}
	return nil
}

func weightSets(count int, weight float64, reps int) []domain.SetLog {
	sets := make([]domain.SetLog, count)
	for i := range sets {
		w := weight
		r := reps
		sets[i] = domain.SetLog{Position: i, Weight: &w, Reps: &r, Completed: true}
	}
	return sets
}

func repsOnlySets(count, reps int) []domain.SetLog {
	sets := make([]domain.SetLog, count)
	for i := range sets {
		r := reps
		sets[i] = domain.SetLog{Position: i, Reps: &r, Completed: true}
	}
	return sets
}
