package models

type Question struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	QuizID        uint   `json:"quiz_id" gorm:"not null;index"`
	Text          string `json:"text" gorm:"size:255;not null"`
	OptionA       string `json:"option_a" gorm:"size:100;not null"`
	OptionB       string `json:"option_b" gorm:"size:100;not null"`
	OptionC       string `json:"option_c" gorm:"size:100;not null"`
	OptionD       string `json:"option_d" gorm:"size:100;not null"`
	CorrectOption string `json:"correct_option" gorm:"size:1;not null"` // a, b, c, or d
}
