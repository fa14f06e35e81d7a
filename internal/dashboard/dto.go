package dashboard

type AdminStats struct {
	TotalUsers     int64   `json:"total_users"`
	TotalSubjects  int64   `json:"total_subjects"`
	TotalChapters  int64   `json:"total_chapters"`
	TotalQuizzes   int64   `json:"total_quizzes"`
	TotalQuestions int64   `json:"total_questions"`
	TotalScores    int64   `json:"total_scores"`
	AverageScore   float64 `json:"average_score"`
}

type UserStats struct {
	TotalQuizzesAttempted int64   `json:"total_quizzes_attempted"`
	AverageUserScore      float64 `json:"average_user_score"`
}
