package cli

import (
	"quizdeck/config"
	"quizdeck/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a sample quiz and two accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}

			quiz := models.Quiz{
				Title:       "Sample Quiz",
				Description: "This is a sample quiz.",
			}
			if err := db.Create(&quiz).Error; err != nil {
				return err
			}

			questions := []models.Question{
				{
					QuizID:        quiz.ID,
					Text:          "What is the capital of France?",
					OptionA:       "Paris",
					OptionB:       "London",
					OptionC:       "Berlin",
					OptionD:       "Madrid",
					CorrectOption: "a",
				},
				{
					QuizID:        quiz.ID,
					Text:          "What is 2 + 2?",
					OptionA:       "3",
					OptionB:       "4",
					OptionC:       "5",
					OptionD:       "22",
					CorrectOption: "b",
				},
			}
			if err := db.Create(&questions).Error; err != nil {
				return err
			}

			adminHash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			userHash, err := bcrypt.GenerateFromPassword([]byte("userpass"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			users := []models.User{
				{
					Name:     "Admin",
					Username: "admin",
					Email:    "admin@example.com",
					Password: string(adminHash),
					Role:     models.RoleAdmin,
				},
				{
					Name:     "User",
					Username: "user",
					Email:    "user@example.com",
					Password: string(userHash),
					Role:     models.RoleUser,
				},
			}
			if err := db.Create(&users).Error; err != nil {
				return err
			}

			logrus.WithField("quiz_id", quiz.ID).Info("sample data inserted")
			return nil
		},
	}
}
