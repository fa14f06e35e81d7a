package quiz

type CreateQuizDTO struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	TimeDuration int    `json:"time_duration" validate:"required,gt=0"`
	DateOfQuiz   string `json:"date_of_quiz" validate:"required"`
	// Questions, when present, are created in the same transaction as the quiz.
	Questions []CreateQuestionDTO `json:"questions" validate:"omitempty,dive"`
}

type UpdateQuizDTO struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TimeDuration *int    `json:"time_duration"`
	DateOfQuiz   *string `json:"date_of_quiz"`
	ChapterID    *uint   `json:"chapter_id"`
}

type QuizResponse struct {
	ID           uint   `json:"id"`
	ChapterID    uint   `json:"chapter_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TimeDuration int    `json:"time_duration"`
	DateOfQuiz   string `json:"date_of_quiz"`
}

type CreateQuestionDTO struct {
	QuestionText  string `json:"question_text" validate:"required"`
	Option1       string `json:"option1" validate:"required"`
	Option2       string `json:"option2" validate:"required"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectOption int    `json:"correct_option" validate:"required"`
}

type UpdateQuestionDTO struct {
	QuestionText  *string `json:"question_text"`
	Option1       *string `json:"option1"`
	Option2       *string `json:"option2"`
	Option3       *string `json:"option3"`
	Option4       *string `json:"option4"`
	CorrectOption *int    `json:"correct_option"`
	QuizID        *uint   `json:"quiz_id"`
}

type QuestionResponse struct {
	ID            uint   `json:"id"`
	QuizID        uint   `json:"quiz_id"`
	QuestionText  string `json:"question_text"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectOption int    `json:"correct_option"`
}

// PublicQuestionResponse is what quiz takers see: no answer key.
type PublicQuestionResponse struct {
	ID           uint   `json:"id"`
	QuizID       uint   `json:"quiz_id"`
	QuestionText string `json:"question_text"`
	Option1      string `json:"option1"`
	Option2      string `json:"option2"`
	Option3      string `json:"option3"`
	Option4      string `json:"option4"`
}

type QuizWithQuestionsDTO struct {
	Quiz      QuizResponse       `json:"quiz"`
	Questions []QuestionResponse `json:"questions"`
}
