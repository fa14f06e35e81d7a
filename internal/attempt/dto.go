package attempt

import "time"

type AnswerDTO struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
}

type SubmitAttemptRequest struct {
	QuizID  uint        `json:"quiz_id"`
	Answers []AnswerDTO `json:"answers"`
}

type SubmitAttemptResponse struct {
	Message             string `json:"message"`
	FinalScore          int    `json:"final_score"`
	CorrectAnswersCount int    `json:"correct_answers_count"`
	TotalQuestions      int    `json:"total_questions"`
}

type RecordScoreRequest struct {
	QuizID uint `json:"quiz_id" validate:"required"`
	Score  *int `json:"score" validate:"required"`
}

type SaveAnswerRequest struct {
	QuizID         uint `json:"quiz_id" validate:"required"`
	QuestionID     uint `json:"question_id" validate:"required"`
	SelectedOption int  `json:"selected_option" validate:"required"`
}

type ScoreResponse struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	QuizID           uint      `json:"quiz_id"`
	Score            int       `json:"score"`
	AttemptTimestamp time.Time `json:"attempt_timestamp"`
	QuizTitle        string    `json:"quiz_title"`
}

type AnswerResponse struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	QuizID           uint      `json:"quiz_id"`
	QuestionID       uint      `json:"question_id"`
	SelectedOption   int       `json:"selected_option"`
	AttemptTimestamp time.Time `json:"attempt_timestamp"`
}
