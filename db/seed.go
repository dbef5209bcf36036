package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/thehaffk/WorkoutTracker/internal/models"
	"github.com/thehaffk/WorkoutTracker/internal/types"
)

// SeedDatabase creates an initial admin account and a public exercise catalog.
// It is a no-op when any user already exists.
func SeedDatabase() error {
	var count int64

	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123"
		log.Println("ADMIN_PASSWORD not set, using default seed password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@workouttracker.local",
		PasswordHash: string(passwordHash),
		Role:         types.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	exercises := []models.Exercise{
		{Name: "Barbell Squat", Description: "Back squat with a barbell", MuscleGroup: "Legs", Equipment: "Barbell", Difficulty: "intermediate", IsPublic: true},
		{Name: "Bench Press", Description: "Flat barbell bench press", MuscleGroup: "Chest", Equipment: "Barbell", Difficulty: "intermediate", IsPublic: true},
		{Name: "Deadlift", Description: "Conventional deadlift from the floor", MuscleGroup: "Back", Equipment: "Barbell", Difficulty: "advanced", IsPublic: true},
		{Name: "Pull-up", Description: "Bodyweight pull-up, overhand grip", MuscleGroup: "Back", Equipment: "None", Difficulty: "intermediate", IsPublic: true},
		{Name: "Push-up", Description: "Standard bodyweight push-up", MuscleGroup: "Chest", Equipment: "None", Difficulty: "beginner", IsPublic: true},
		{Name: "Plank", Description: "Static forearm plank hold", MuscleGroup: "Core", Equipment: "None", Difficulty: "beginner", IsPublic: true},
		{Name: "Running", Description: "Outdoor or treadmill running", MuscleGroup: "Legs", Equipment: "None", Difficulty: "beginner", IsPublic: true},
	}

	for i := range exercises {
		if err := DB.Create(&exercises[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded admin user and %d public exercises", len(exercises))

	return nil
}
