package intake

import "gorm.io/gorm"

// ContactMessage is a contact form submission. Submissions are write-once sink
// records for internal follow-up; there is no update or delete path.
type ContactMessage struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Email       string `gorm:"size:255;not null"`
	PhoneNumber string `gorm:"size:64"`
	Message     string `gorm:"type:text;not null"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// QuoteRequest is a "get started" wizard submission.
type QuoteRequest struct {
	gorm.Model
	Name     string   `gorm:"size:255;not null"`
	Email    string   `gorm:"size:255;not null"`
	Company  string   `gorm:"size:255"`
	Services []string `gorm:"serializer:json;type:text;not null"`
	Details  string   `gorm:"type:text;not null"`
	Budget   string   `gorm:"size:64"`
}

func (QuoteRequest) TableName() string {
	return "quote_requests"
}

// JobApplication is a careers form submission.
type JobApplication struct {
	gorm.Model
	Name         string   `gorm:"size:255;not null"`
	Email        string   `gorm:"size:255;not null"`
	Phone        string   `gorm:"size:32;not null"`
	Gender       string   `gorm:"size:16;not null"`
	Position     string   `gorm:"size:128;not null"`
	Resume       string   `gorm:"size:512"`
	LinkedIn     string   `gorm:"size:512"`
	GitHub       string   `gorm:"size:512"`
	Portfolio    string   `gorm:"size:512"`
	ExpectedCTC  string   `gorm:"size:64"`
	NoticePeriod string   `gorm:"size:64"`
	Skills       []string `gorm:"serializer:json;type:text"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
