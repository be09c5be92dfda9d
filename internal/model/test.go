package model

type TestCategory string

const (
	CategoryCA    TestCategory = "CA"
	CategoryInter TestCategory = "INTER"
	CategoryFinal TestCategory = "FINAL"
)

func ValidCategory(c TestCategory) bool {
	switch c {
	case CategoryCA, CategoryInter, CategoryFinal:
		return true
	}
	return false
}

type TestType string

const (
	TestFree TestType = "FREE"
	TestPaid TestType = "PAID"
)

// Question belongs to exactly one test. Position is assigned at creation and
// is the key submitted answers reference, so an edit replaces the whole
// question list instead of mutating rows in place.
// swagger:model Question
type Question struct {
	BaseModel
	TestID        uint     `gorm:"index;not null" json:"-"`
	Position      int      `gorm:"not null" json:"position"`
	Prompt        string   `gorm:"type:text;not null" json:"question"`
	Options       []string `gorm:"serializer:json;not null" json:"options"`
	CorrectAnswer string   `gorm:"size:500;not null" json:"correctAnswer"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Test
type Test struct {
	BaseModel
	Title           string       `gorm:"size:200;not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	Category        TestCategory `gorm:"size:20;index;not null" json:"category"`
	DurationMinutes int          `gorm:"not null" json:"duration"`
	Questions       []Question   `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"questions"`

	// Every test carries a PDF with the full paper.
	PDFURL       string `gorm:"size:500;not null" json:"pdfUrl"`
	PDFObjectKey string `gorm:"size:255" json:"pdfObjectKey"`

	Type TestType `gorm:"size:10;default:'FREE';not null" json:"type"`
	// Rupees. Meaningful only when Type is PAID.
	Price *float64 `json:"price,omitempty"`

	CreatedByID uint `gorm:"index;not null" json:"createdBy"`
}

func (Test) TableName() string {
	return "tests"
}

func (t *Test) IsPaid() bool {
	return t.Type == TestPaid
}

// PriceValue returns the price or 0 for free tests.
func (t *Test) PriceValue() float64 {
	if t.Price == nil {
		return 0
	}
	return *t.Price
}
