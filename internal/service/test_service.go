package service

import (
	"errors"
	"fmt"
	"strings"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"gorm.io/gorm"
)

// QuestionInput is one authored question. Positions are assigned by the
// service in input order; clients never pick them.
type QuestionInput struct {
	Prompt        string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

type TestInput struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category" binding:"required"`
	DurationMinutes int             `json:"duration" binding:"required"`
	Questions       []QuestionInput `json:"questions"`
	PDFURL          string          `json:"pdfUrl" binding:"required"`
	PDFObjectKey    string          `json:"pdfObjectKey"`
	Type            string          `json:"type" binding:"required"`
	Price           *float64        `json:"price"`
}

type TestService struct {
	TestRepo *repository.TestRepository
}

func NewTestService(testRepo *repository.TestRepository) *TestService {
	return &TestService{TestRepo: testRepo}
}

// ValidationError carries a caller-facing message for malformed test input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (s *TestService) validate(in *TestInput) (model.TestCategory, model.TestType, *float64, error) {
	category := model.TestCategory(strings.ToUpper(strings.TrimSpace(in.Category)))
	if !model.ValidCategory(category) {
		return "", "", nil, validationErrorf("invalid category %q, expected CA, INTER or FINAL", in.Category)
	}

	if in.DurationMinutes < 1 {
		return "", "", nil, validationErrorf("duration must be at least 1 minute")
	}

	testType := model.TestType(strings.ToUpper(strings.TrimSpace(in.Type)))
	switch testType {
	case model.TestFree, model.TestPaid:
	default:
		return "", "", nil, validationErrorf("invalid type %q, expected FREE or PAID", in.Type)
	}

	var price *float64
	if testType == model.TestPaid {
		if in.Price == nil || *in.Price < 0 {
			return "", "", nil, validationErrorf("paid tests require a non-negative price")
		}
		p := *in.Price
		price = &p
	}

	for i, q := range in.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return "", "", nil, validationErrorf("question %d: prompt is required", i+1)
		}
		if len(q.Options) < 2 {
			return "", "", nil, validationErrorf("question %d: at least two options required", i+1)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return "", "", nil, validationErrorf("question %d: correct answer must match one of the options", i+1)
		}
	}

	return category, testType, price, nil
}

func buildQuestions(inputs []QuestionInput) []model.Question {
	questions := make([]model.Question, 0, len(inputs))
	for i, q := range inputs {
		questions = append(questions, model.Question{
			Position:      i,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return questions
}

func (s *TestService) CreateTest(in *TestInput, createdByID uint) (*model.Test, error) {
	category, testType, price, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		Title:           in.Title,
		Description:     in.Description,
		Category:        category,
		DurationMinutes: in.DurationMinutes,
		Questions:       buildQuestions(in.Questions),
		PDFURL:          in.PDFURL,
		PDFObjectKey:    in.PDFObjectKey,
		Type:            testType,
		Price:           price,
		CreatedByID:     createdByID,
	}

	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

// UpdateTest replaces the test's fields and, when questions are supplied,
// the entire question list. Omitting questions keeps the existing ones so
// historical result positions stay valid.
func (s *TestService) UpdateTest(id uint, in *TestInput) (*model.Test, error) {
	category, testType, price, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	test, err := s.TestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	test.Title = in.Title
	test.Description = in.Description
	test.Category = category
	test.DurationMinutes = in.DurationMinutes
	test.PDFURL = in.PDFURL
	test.PDFObjectKey = in.PDFObjectKey
	test.Type = testType
	test.Price = price

	var questions []model.Question
	if in.Questions != nil {
		questions = buildQuestions(in.Questions)
	}

	if err := s.TestRepo.Update(test, questions); err != nil {
		return nil, err
	}

	return s.TestRepo.FindByID(id)
}

func (s *TestService) DeleteTest(id uint) error {
	if _, err := s.TestRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTestNotFound
		}
		return err
	}
	return s.TestRepo.Delete(id)
}

func (s *TestService) GetTest(id uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *TestService) ListTests() ([]model.Test, error) {
	return s.TestRepo.FindAll()
}

func (s *TestService) ListTestsByCategory(key string) ([]model.Test, error) {
	category := model.TestCategory(strings.ToUpper(strings.TrimSpace(key)))
	if !model.ValidCategory(category) {
		return nil, validationErrorf("invalid category %q, expected CA, INTER or FINAL", key)
	}
	return s.TestRepo.FindByCategory(category)
}
