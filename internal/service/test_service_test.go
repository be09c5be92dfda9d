package service

import (
	"testing"

	"testhub_backend/internal/model"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(db *gorm.DB) *TestService {
	return NewTestService(repository.NewTestRepository(db))
}

func validTestInput() *TestInput {
	price := 499.0
	return &TestInput{
		Title:           "CA Final Mock 1",
		Description:     "Paper 1",
		Category:        "final",
		DurationMinutes: 180,
		Questions: []QuestionInput{
			{Prompt: "Q1", Options: []string{"A", "B", "C"}, CorrectAnswer: "B"},
			{Prompt: "Q2", Options: []string{"Yes", "No"}, CorrectAnswer: "Yes"},
		},
		PDFURL: "http://example.com/mock1.pdf",
		Type:   "PAID",
		Price:  &price,
	}
}

func TestCreateTest(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	test, err := svc.CreateTest(validTestInput(), 1)
	require.NoError(t, err)

	assert.Equal(t, model.CategoryFinal, test.Category, "category is uppercased")
	assert.Equal(t, model.TestPaid, test.Type)
	assert.Equal(t, 499.0, test.PriceValue())
	require.Len(t, test.Questions, 2)
	assert.Equal(t, 0, test.Questions[0].Position)
	assert.Equal(t, 1, test.Questions[1].Position)
}

func TestCreateTestValidation(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	cases := []struct {
		name   string
		mutate func(*TestInput)
	}{
		{"unknown category", func(in *TestInput) { in.Category = "UPSC" }},
		{"zero duration", func(in *TestInput) { in.DurationMinutes = 0 }},
		{"unknown type", func(in *TestInput) { in.Type = "PREMIUM" }},
		{"paid without price", func(in *TestInput) { in.Price = nil }},
		{"negative price", func(in *TestInput) { p := -1.0; in.Price = &p }},
		{"single option", func(in *TestInput) {
			in.Questions[0].Options = []string{"A"}
			in.Questions[0].CorrectAnswer = "A"
		}},
		{"answer not an option", func(in *TestInput) { in.Questions[0].CorrectAnswer = "Z" }},
		{"blank prompt", func(in *TestInput) { in.Questions[0].Prompt = "  " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validTestInput()
			tc.mutate(in)

			var ve *ValidationError
			_, err := svc.CreateTest(in, 1)
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestCreateFreeTestIgnoresPrice(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	in := validTestInput()
	in.Type = "free"

	test, err := svc.CreateTest(in, 1)
	require.NoError(t, err)
	assert.Equal(t, model.TestFree, test.Type)
	assert.Nil(t, test.Price)
}

func TestUpdateTestReplacesQuestions(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	created, err := svc.CreateTest(validTestInput(), 1)
	require.NoError(t, err)

	in := validTestInput()
	in.Title = "CA Final Mock 1 (revised)"
	in.Questions = []QuestionInput{
		{Prompt: "New Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
	}

	updated, err := svc.UpdateTest(created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "CA Final Mock 1 (revised)", updated.Title)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "New Q1", updated.Questions[0].Prompt)
	assert.Equal(t, 0, updated.Questions[0].Position)
}

func TestUpdateTestKeepsQuestionsWhenOmitted(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	created, err := svc.CreateTest(validTestInput(), 1)
	require.NoError(t, err)

	in := validTestInput()
	in.Title = "Renamed"
	in.Questions = nil

	updated, err := svc.UpdateTest(created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Len(t, updated.Questions, 2)
}

func TestUpdateTestNotFound(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	_, err := svc.UpdateTest(42, validTestInput())
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestDeleteTest(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	created, err := svc.CreateTest(validTestInput(), 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTest(created.ID))

	_, err = svc.GetTest(created.ID)
	assert.ErrorIs(t, err, util.ErrTestNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Question{}).Count(&count).Error)
	assert.Zero(t, count, "questions go with the test")

	assert.ErrorIs(t, svc.DeleteTest(created.ID), util.ErrTestNotFound)
}

func TestListTestsByCategory(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	in := validTestInput()
	in.Category = "CA"
	_, err := svc.CreateTest(in, 1)
	require.NoError(t, err)
	_, err = svc.CreateTest(validTestInput(), 1)
	require.NoError(t, err)

	tests, err := svc.ListTestsByCategory("ca")
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, model.CategoryCA, tests[0].Category)

	var ve *ValidationError
	_, err = svc.ListTestsByCategory("NEET")
	assert.ErrorAs(t, err, &ve)
}
