package chapter

type CreateChapterDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateChapterDTO may move the chapter to another subject.
type UpdateChapterDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SubjectID   *uint   `json:"subject_id"`
}

type ChapterResponse struct {
	ID          uint   `json:"id"`
	SubjectID   uint   `json:"subject_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
