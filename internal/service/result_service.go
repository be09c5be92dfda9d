package service

import (
	"errors"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"gorm.io/gorm"
)

// SubmittedAnswer references a question by its position within the test.
type SubmittedAnswer struct {
	Position       int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

type ResultService struct {
	TestRepo   *repository.TestRepository
	ResultRepo *repository.ResultRepository
}

func NewResultService(testRepo *repository.TestRepository, resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{TestRepo: testRepo, ResultRepo: resultRepo}
}

// SubmitResult scores a submission against the stored answer key and records
// the attempt. Correctness is exact string equality; answers pointing at
// positions the test no longer has count as incorrect rather than erroring.
// No partial credit, no negative marking.
func (s *ResultService) SubmitResult(userID, testID uint, answers []SubmittedAnswer) (*model.Result, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	key := make(map[int]string, len(test.Questions))
	for _, q := range test.Questions {
		key[q.Position] = q.CorrectAnswer
	}

	result := &model.Result{
		UserID:  userID,
		TestID:  testID,
		Answers: make([]model.ResultAnswer, 0, len(answers)),
	}

	for _, a := range answers {
		correctAnswer, ok := key[a.Position]
		correct := ok && a.SelectedOption == correctAnswer
		if correct {
			result.Score++
		}
		result.Answers = append(result.Answers, model.ResultAnswer{
			Position:       a.Position,
			SelectedOption: a.SelectedOption,
			Correct:        correct,
		})
	}

	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListResults returns the caller's attempts, newest first.
func (s *ResultService) ListResults(userID uint) ([]model.Result, error) {
	return s.ResultRepo.FindByUser(userID)
}
