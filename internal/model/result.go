package model

// ResultAnswer records one submitted answer. Position refers to the question
// position within the test at submission time.
// swagger:model ResultAnswer
type ResultAnswer struct {
	BaseModel
	ResultID       uint   `gorm:"index;not null" json:"-"`
	Position       int    `gorm:"not null" json:"questionId"`
	SelectedOption string `gorm:"size:500;not null" json:"selectedOption"`
	Correct        bool   `gorm:"not null" json:"isCorrect"`
}

func (ResultAnswer) TableName() string {
	return "result_answers"
}

// Result is one scored test attempt. Rows are written once and never updated.
// swagger:model Result
type Result struct {
	BaseModel
	UserID  uint           `gorm:"index;not null" json:"userId"`
	TestID  uint           `gorm:"index;not null" json:"testId"`
	Test    Test           `gorm:"foreignKey:TestID" json:"test,omitempty"`
	Score   int            `gorm:"not null" json:"score"`
	Answers []ResultAnswer `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"answers"`
}

func (Result) TableName() string {
	return "results"
}
