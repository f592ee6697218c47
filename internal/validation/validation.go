package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"blogcms/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// UserCreateInput is the field set accepted when creating a user.
// Password and its confirmation are both mandatory on this path.
type UserCreateInput struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Role                 string `json:"role" validate:"omitempty,oneof=ADMIN AUTHOR SUBSCRIBER"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	Image                string `json:"image" validate:"omitempty,url"`
}

// UserUpdateInput is the field set accepted when updating a user. The
// password pair is optional: leaving both empty keeps the stored
// credential, supplying either requires both to be present and equal.
type UserUpdateInput struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Role                 string `json:"role" validate:"omitempty,oneof=ADMIN AUTHOR SUBSCRIBER"`
	Password             string `json:"password" validate:"omitempty,min=6"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required_with=Password,eqfield=Password"`
	Image                string `json:"image" validate:"omitempty,url"`
}

// ArticleCreateInput is the field set accepted when creating an article.
type ArticleCreateInput struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required,slug"`
	Image       string     `json:"image" validate:"omitempty,url"`
	Description string     `json:"description" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	CategoryID  string     `json:"category_id" validate:"required"`
	Tags        []string   `json:"tags"`
	AuthorID    string     `json:"author_id" validate:"required"`
	Robots      string     `json:"robots" validate:"required,robots"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// ArticleUpdateInput mirrors ArticleCreateInput; updates must resubmit
// the full field set.
type ArticleUpdateInput struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug" validate:"required,slug"`
	Image       string     `json:"image" validate:"omitempty,url"`
	Description string     `json:"description" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	CategoryID  string     `json:"category_id" validate:"required"`
	Tags        []string   `json:"tags"`
	Robots      string     `json:"robots" validate:"required,robots"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// CategoryInput is the field set accepted when creating a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,slug"`
}

// Validator classifies raw input data against the declarative schemas
// above. It performs no I/O and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom slug and robots rules registered.
func New() *Validator {
	v := validator.New()
	// Registration only fails for empty tag names, so errors are ignored here.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("robots", func(fl validator.FieldLevel) bool {
		return models.Robots(fl.Field().String()).Valid()
	})
	return &Validator{validate: v}
}

// Check validates input against its schema tags and returns a map of
// field name to error message, or nil when the input is valid.
func (v *Validator) Check(input interface{}) map[string]string {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"input": err.Error()}
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
