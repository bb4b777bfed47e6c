package intake

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FieldErrors maps input field names to user-correctable validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ContactInput carries a contact form submission.
type ContactInput struct {
	Name        string `json:"name,omitempty" validate:"required,min=2"`
	Email       string `json:"email,omitempty" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	Message     string `json:"message,omitempty" validate:"required,min=10"`
}

// QuoteInput carries a "get started" wizard submission.
type QuoteInput struct {
	Name     string   `json:"name,omitempty" validate:"required,min=2"`
	Email    string   `json:"email,omitempty" validate:"required,email"`
	Company  string   `json:"company,omitempty" validate:"omitempty,max=255"`
	Services []string `json:"services,omitempty" validate:"required,min=1,dive,required"`
	Details  string   `json:"details,omitempty" validate:"required,min=20"`
	Budget   string   `json:"budget,omitempty" validate:"omitempty,max=64"`
}

// ApplicationInput carries a job application submission.
type ApplicationInput struct {
	Name         string   `json:"name,omitempty" validate:"required,min=2"`
	Email        string   `json:"email,omitempty" validate:"required,email"`
	Phone        string   `json:"phone,omitempty" validate:"required,min=10,max=15"`
	Gender       string   `json:"gender,omitempty" validate:"required,oneof=male female other"`
	Position     string   `json:"position,omitempty" validate:"required"`
	Resume       string   `json:"resume,omitempty" validate:"omitempty,url"`
	LinkedIn     string   `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub       string   `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio    string   `json:"portfolio,omitempty" validate:"omitempty,url"`
	ExpectedCTC  string   `json:"expectedCTC,omitempty" validate:"required"`
	NoticePeriod string   `json:"noticePeriod,omitempty" validate:"required"`
	Skills       []string `json:"skills,omitempty" validate:"required,min=1,dive,required"`
}

// Service validates and persists write-once submission records.
type Service struct {
	db       *gorm.DB
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewService wires the intake service with its database connection.
func NewService(db *gorm.DB, logger *logrus.Logger) (*Service, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &Service{db: db, validate: validate, logger: logger}, nil
}

// SubmitContact validates and stores a contact message.
func (s *Service) SubmitContact(ctx context.Context, input ContactInput) (*ContactMessage, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}

	record := ContactMessage{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Message:     strings.TrimSpace(input.Message),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(logrus.Fields{"email": record.Email}, err, "saving contact message")
		return nil, eris.Wrap(err, "saving contact message")
	}

	return &record, nil
}

// SubmitQuote validates and stores a quote request.
func (s *Service) SubmitQuote(ctx context.Context, input QuoteInput) (*QuoteRequest, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}

	record := QuoteRequest{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Company:  strings.TrimSpace(input.Company),
		Services: input.Services,
		Details:  strings.TrimSpace(input.Details),
		Budget:   strings.TrimSpace(input.Budget),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(logrus.Fields{"email": record.Email}, err, "saving quote request")
		return nil, eris.Wrap(err, "saving quote request")
	}

	return &record, nil
}

// SubmitApplication validates and stores a job application.
func (s *Service) SubmitApplication(ctx context.Context, input ApplicationInput) (*JobApplication, error) {
	if err := s.check(input); err != nil {
		return nil, err
	}

	record := JobApplication{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Gender:       input.Gender,
		Position:     strings.TrimSpace(input.Position),
		Resume:       strings.TrimSpace(input.Resume),
		LinkedIn:     strings.TrimSpace(input.LinkedIn),
		GitHub:       strings.TrimSpace(input.GitHub),
		Portfolio:    strings.TrimSpace(input.Portfolio),
		ExpectedCTC:  strings.TrimSpace(input.ExpectedCTC),
		NoticePeriod: strings.TrimSpace(input.NoticePeriod),
		Skills:       input.Skills,
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(logrus.Fields{"email": record.Email}, err, "saving job application")
		return nil, eris.Wrap(err, "saving job application")
	}

	return &record, nil
}

// CountContacts reports how many contact messages have been received.
func (s *Service) CountContacts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ContactMessage{}).Count(&count).Error; err != nil {
		return 0, eris.Wrap(err, "counting contact messages")
	}
	return count, nil
}

func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !eris.As(err, &invalid) {
		return eris.Wrap(err, "validating input")
	}

	fields := FieldErrors{}
	for _, fieldErr := range invalid {
		fields[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return fields
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fieldErr.Field())
	case "email":
		return "A valid email is required."
	case "url":
		return "Please provide a valid URL."
	case "min":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("Select at least %s entry.", fieldErr.Param())
		}
		return fmt.Sprintf("Must be at least %s characters.", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return "Invalid value."
	}
}

func (s *Service) logError(fields logrus.Fields, err error, message string) {
	if s.logger == nil {
		return
	}

	entry := s.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
