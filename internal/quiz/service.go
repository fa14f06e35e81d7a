package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	util "github.com/saulo-duarte/quizmaster/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrQuizNotFound      = apperror.NotFound("Quiz not found")
	ErrQuestionNotFound  = apperror.NotFound("Question not found")
	ErrChapterNotFound   = chapter.ErrChapterNotFound
	ErrQuizFieldsMissing = apperror.Validation("Quiz title, duration, and date are required")
	ErrInvalidQuizDate   = apperror.Validation("Invalid date format for date_of_quiz. Use YYYY-MM-DD.")
	ErrQuestionFields    = apperror.Validation("Question text, option1, option2, and correct option are required")
	ErrCorrectOption     = apperror.Validation("Correct option must be 1, 2, 3, or 4")
)

func errTitleTaken(title string) error {
	return apperror.Conflict(fmt.Sprintf("Quiz with title %q already exists under this chapter", title))
}

type QuizService interface {
	ListByChapter(ctx context.Context, chapterID uint, query string) ([]QuizResponse, error)
	ListAll(ctx context.Context) ([]QuizResponse, error)
	CreateQuiz(ctx context.Context, chapterID uint, dto CreateQuizDTO) (*QuizWithQuestionsDTO, error)
	GetQuiz(ctx context.Context, id uint) (*QuizResponse, error)
	UpdateQuiz(ctx context.Context, id uint, dto UpdateQuizDTO) (*QuizResponse, error)
	DeleteQuiz(ctx context.Context, id uint) error

	ListQuestions(ctx context.Context, quizID uint) ([]QuestionResponse, error)
	ListPublicQuestions(ctx context.Context, quizID uint) ([]PublicQuestionResponse, error)
	AddQuestionToQuiz(ctx context.Context, quizID uint, dto CreateQuestionDTO) (*QuestionResponse, error)
	GetQuestion(ctx context.Context, id uint) (*QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id uint, dto UpdateQuestionDTO) (*QuestionResponse, error)
	RemoveQuestion(ctx context.Context, id uint) error
}

type quizService struct {
	repo        QuizRepository
	chapterRepo chapter.ChapterRepository
	db          *gorm.DB
	cache       cache.Invalidator
}

func NewService(db *gorm.DB, repo QuizRepository, chapterRepo chapter.ChapterRepository, inv cache.Invalidator) QuizService {
	return &quizService{
		repo:        repo,
		chapterRepo: chapterRepo,
		db:          db,
		cache:       inv,
	}
}

func (s *quizService) requireChapter(ctx context.Context, chapterID uint) error {
	ok, err := s.chapterRepo.Exists(ctx, chapterID)
	if err != nil {
		return apperror.Internal("failed to load chapter", err)
	}
	if !ok {
		return ErrChapterNotFound
	}
	return nil
}

func (s *quizService) requireQuiz(ctx context.Context, quizID uint) error {
	ok, err := s.repo.Exists(ctx, quizID)
	if err != nil {
		return apperror.Internal("failed to load quiz", err)
	}
	if !ok {
		return ErrQuizNotFound
	}
	return nil
}

func (s *quizService) ListByChapter(ctx context.Context, chapterID uint, query string) ([]QuizResponse, error) {
	if err := s.requireChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	quizzes, err := s.repo.ListByChapter(ctx, chapterID, query)
	if err != nil {
		return nil, apperror.Internal("failed to list quizzes", err)
	}
	return toQuizResponses(quizzes), nil
}

func (s *quizService) ListAll(ctx context.Context) ([]QuizResponse, error) {
	quizzes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list quizzes", err)
	}
	return toQuizResponses(quizzes), nil
}

func (s *quizService) CreateQuiz(ctx context.Context, chapterID uint, dto CreateQuizDTO) (*QuizWithQuestionsDTO, error) {
	log := config.WithContext(ctx).WithField("chapter_id", chapterID)

	title := strings.TrimSpace(dto.Title)
	if title == "" || dto.TimeDuration <= 0 || dto.DateOfQuiz == "" {
		return nil, ErrQuizFieldsMissing
	}
	date, err := util.ParseDate(dto.DateOfQuiz)
	if err != nil {
		return nil, ErrInvalidQuizDate
	}

	questions := make([]*Question, 0, len(dto.Questions))
	for _, qdto := range dto.Questions {
		q, err := newQuestion(qdto)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := s.requireChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	if taken, err := s.repo.TitleTaken(ctx, chapterID, title, 0); err != nil {
		return nil, apperror.Internal("failed to create quiz", err)
	} else if taken {
		return nil, errTitleTaken(title)
	}

	quiz := &Quiz{
		ChapterID:    chapterID,
		Title:        title,
		Description:  dto.Description,
		TimeDuration: dto.TimeDuration,
		DateOfQuiz:   date,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, errTitleTaken(title)
		}
		log.WithError(err).Error("Failed to create quiz with questions")
		return nil, apperror.Internal("failed to create quiz", err)
	}

	tags := []string{cache.TagQuizzes, cache.TagStats}
	if len(questions) > 0 {
		tags = append(tags, cache.TagQuestions)
	}
	cache.Invalidate(ctx, s.cache, tags...)
	log.WithFields(logrus.Fields{
		"quiz_id":   quiz.ID,
		"questions": len(questions),
	}).Info("Quiz created")

	out := &QuizWithQuestionsDTO{Quiz: toQuizResponse(quiz), Questions: make([]QuestionResponse, 0, len(questions))}
	for _, q := range questions {
		out.Questions = append(out.Questions, toQuestionResponse(q))
	}
	return out, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id uint) (*QuizResponse, error) {
	quiz, err := s.findQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id uint, dto UpdateQuizDTO) (*QuizResponse, error) {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	quiz, err := s.findQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	title := quiz.Title
	if dto.Title != nil {
		title = strings.TrimSpace(*dto.Title)
	}
	duration := quiz.TimeDuration
	if dto.TimeDuration != nil {
		duration = *dto.TimeDuration
	}
	if title == "" || duration <= 0 {
		return nil, ErrQuizFieldsMissing
	}
	date := quiz.DateOfQuiz
	if dto.DateOfQuiz != nil {
		if date, err = util.ParseDate(*dto.DateOfQuiz); err != nil {
			return nil, ErrInvalidQuizDate
		}
	}
	chapterID := quiz.ChapterID
	if dto.ChapterID != nil && *dto.ChapterID != quiz.ChapterID {
		if err := s.requireChapter(ctx, *dto.ChapterID); err != nil {
			return nil, err
		}
		chapterID = *dto.ChapterID
	}

	if title != quiz.Title || chapterID != quiz.ChapterID {
		if taken, err := s.repo.TitleTaken(ctx, chapterID, title, id); err != nil {
			return nil, apperror.Internal("failed to update quiz", err)
		} else if taken {
			return nil, errTitleTaken(title)
		}
	}

	quiz.Title = title
	quiz.TimeDuration = duration
	quiz.DateOfQuiz = date
	quiz.ChapterID = chapterID
	if dto.Description != nil {
		quiz.Description = *dto.Description
	}

	if err := s.repo.Update(ctx, quiz); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, errTitleTaken(title)
		}
		log.WithError(err).Error("Failed to update quiz")
		return nil, apperror.Internal("failed to update quiz", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagQuizzes, cache.TagScores)
	resp := toQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id uint) error {
	log := config.WithContext(ctx).WithField("quiz_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrQuizNotFound
		}
		log.WithError(err).Error("Failed to delete quiz")
		return apperror.Internal("failed to delete quiz", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagQuizzes, cache.TagQuestions, cache.TagScores, cache.TagStats)
	log.Info("Quiz deleted")
	return nil
}

func (s *quizService) ListQuestions(ctx context.Context, quizID uint) ([]QuestionResponse, error) {
	questions, err := s.questionsOf(ctx, quizID)
	if err != nil {
		return nil, err
	}
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, toQuestionResponse(&questions[i]))
	}
	return out, nil
}

func (s *quizService) ListPublicQuestions(ctx context.Context, quizID uint) ([]PublicQuestionResponse, error) {
	questions, err := s.questionsOf(ctx, quizID)
	if err != nil {
		return nil, err
	}
	out := make([]PublicQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, PublicQuestionResponse{
			ID:           q.ID,
			QuizID:       q.QuizID,
			QuestionText: q.QuestionText,
			Option1:      q.Option1,
			Option2:      q.Option2,
			Option3:      q.Option3,
			Option4:      q.Option4,
		})
	}
	return out, nil
}

func (s *quizService) questionsOf(ctx context.Context, quizID uint) ([]Question, error) {
	if err := s.requireQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	questions, err := s.repo.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, apperror.Internal("failed to list questions", err)
	}
	return questions, nil
}

func (s *quizService) AddQuestionToQuiz(ctx context.Context, quizID uint, dto CreateQuestionDTO) (*QuestionResponse, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	question, err := newQuestion(dto)
	if err != nil {
		return nil, err
	}
	if err := s.requireQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	question.QuizID = quizID
	if err := s.repo.AddQuestions(ctx, []*Question{question}); err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, apperror.Internal("failed to add question", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagQuestions, cache.TagStats)
	log.WithField("question_id", question.ID).Info("Question added")
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *quizService) GetQuestion(ctx context.Context, id uint) (*QuestionResponse, error) {
	q, err := s.findQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, id uint, dto UpdateQuestionDTO) (*QuestionResponse, error) {
	log := config.WithContext(ctx).WithField("question_id", id)

	q, err := s.findQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.QuestionText != nil {
		q.QuestionText = *dto.QuestionText
	}
	if dto.Option1 != nil {
		q.Option1 = *dto.Option1
	}
	if dto.Option2 != nil {
		q.Option2 = *dto.Option2
	}
	if dto.Option3 != nil {
		q.Option3 = *dto.Option3
	}
	if dto.Option4 != nil {
		q.Option4 = *dto.Option4
	}
	if dto.CorrectOption != nil {
		q.CorrectOption = *dto.CorrectOption
	}
	if err := checkQuestion(q); err != nil {
		return nil, err
	}
	if dto.QuizID != nil && *dto.QuizID != q.QuizID {
		if err := s.requireQuiz(ctx, *dto.QuizID); err != nil {
			return nil, err
		}
		q.QuizID = *dto.QuizID
	}

	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, apperror.Internal("failed to update question", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagQuestions, cache.TagStats)
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *quizService) RemoveQuestion(ctx context.Context, id uint) error {
	log := config.WithContext(ctx).WithField("question_id", id)

	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrQuestionNotFound
		}
		log.WithError(err).Error("Failed to remove question")
		return apperror.Internal("failed to remove question", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagQuestions, cache.TagStats)
	log.Info("Question removed")
	return nil
}

func (s *quizService) findQuiz(ctx context.Context, id uint) (*Quiz, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, apperror.Internal("failed to load quiz", err)
	}
	return quiz, nil
}

func (s *quizService) findQuestion(ctx context.Context, id uint) (*Question, error) {
	q, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, apperror.Internal("failed to load question", err)
	}
	return q, nil
}

func newQuestion(dto CreateQuestionDTO) (*Question, error) {
	q := &Question{
		QuestionText:  dto.QuestionText,
		Option1:       dto.Option1,
		Option2:       dto.Option2,
		Option3:       dto.Option3,
		Option4:       dto.Option4,
		CorrectOption: dto.CorrectOption,
	}
	if err := checkQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func checkQuestion(q *Question) error {
	if strings.TrimSpace(q.QuestionText) == "" || q.Option1 == "" || q.Option2 == "" {
		return ErrQuestionFields
	}
	if q.CorrectOption < 1 || q.CorrectOption > 4 {
		return ErrCorrectOption
	}
	return nil
}

func toQuizResponse(q *Quiz) QuizResponse {
	return QuizResponse{
		ID:           q.ID,
		ChapterID:    q.ChapterID,
		Title:        q.Title,
		Description:  q.Description,
		TimeDuration: q.TimeDuration,
		DateOfQuiz:   util.FormatDate(q.DateOfQuiz),
	}
}

func toQuizResponses(quizzes []Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, toQuizResponse(&quizzes[i]))
	}
	return out
}

func toQuestionResponse(q *Question) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID,
		QuizID:        q.QuizID,
		QuestionText:  q.QuestionText,
		Option1:       q.Option1,
		Option2:       q.Option2,
		Option3:       q.Option3,
		Option4:       q.Option4,
		CorrectOption: q.CorrectOption,
	}
}
