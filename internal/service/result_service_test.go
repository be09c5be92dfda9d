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

func newResultService(db *gorm.DB) *ResultService {
	return NewResultService(
		repository.NewTestRepository(db),
		repository.NewResultRepository(db),
	)
}

func TestSubmitResultScoring(t *testing.T) {
	db := setupDB(t)
	svc := newResultService(db)
	// Answer key by position: A, B, C.
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	result, err := svc.SubmitResult(user.ID, test.ID, []SubmittedAnswer{
		{Position: 0, SelectedOption: "A"},
		{Position: 1, SelectedOption: "X"},
		{Position: 2, SelectedOption: "C"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Score)
	require.Len(t, result.Answers, 3)
	assert.True(t, result.Answers[0].Correct)
	assert.False(t, result.Answers[1].Correct)
	assert.True(t, result.Answers[2].Correct)
}

func TestSubmitResultOutOfRangePosition(t *testing.T) {
	db := setupDB(t)
	svc := newResultService(db)
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	result, err := svc.SubmitResult(user.ID, test.ID, []SubmittedAnswer{
		{Position: 0, SelectedOption: "A"},
		{Position: 99, SelectedOption: "A"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	require.Len(t, result.Answers, 2)
	assert.False(t, result.Answers[1].Correct, "unknown positions count as incorrect")
}

func TestSubmitResultExactStringMatch(t *testing.T) {
	db := setupDB(t)
	svc := newResultService(db)
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	result, err := svc.SubmitResult(user.ID, test.ID, []SubmittedAnswer{
		{Position: 0, SelectedOption: "a"},
		{Position: 0, SelectedOption: " A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score, "comparison is case and whitespace sensitive")
}

func TestSubmitResultEmptySubmission(t *testing.T) {
	db := setupDB(t)
	svc := newResultService(db)
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	result, err := svc.SubmitResult(user.ID, test.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Answers)
}

func TestSubmitResultUnknownTest(t *testing.T) {
	db := setupDB(t)
	svc := newResultService(db)
	user := createUser(t, db, "student@real.com", model.Student, true)

	_, err := svc.SubmitResult(user.ID, 404, nil)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestListResultsNewestFirst(t *testing.T) {
	db := setupDB(t)
	svc := newResultService(db)
	test := createTestRecord(t, db, model.TestFree, 0)
	user := createUser(t, db, "student@real.com", model.Student, true)

	first, err := svc.SubmitResult(user.ID, test.ID, []SubmittedAnswer{{Position: 0, SelectedOption: "A"}})
	require.NoError(t, err)
	second, err := svc.SubmitResult(user.ID, test.ID, []SubmittedAnswer{{Position: 0, SelectedOption: "B"}})
	require.NoError(t, err)

	results, err := svc.ListResults(user.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].ID)
	assert.Equal(t, first.ID, results[1].ID)
}
