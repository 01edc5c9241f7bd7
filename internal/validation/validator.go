package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/blog-cms-api/internal/models"
)

// Field limits for admin and public forms
const (
	MaxTitleLength   = 200
	MaxAliasLength   = 100
	MaxSubjectLength = 200
	MaxMessageWords  = 2000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is the list of field errors of one input. It matches
// models.ErrValidation with errors.Is.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Field + ": " + v.Message
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return models.ErrValidation
}

// Err returns nil when there are no field errors
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Title validates an article title
func Title(title string) Errors {
	var errors Errors
	title = strings.TrimSpace(title)
	if title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds %d characters", MaxTitleLength),
		})
	}
	return errors
}

// Article validates the admin article form. An empty alias is allowed; a
// non-empty one must be usable as the :id path segment without being
// mistaken for a numeric id.
func Article(in *models.ArticleInput) Errors {
	errors := Title(in.Title)

	alias := strings.TrimSpace(in.Alias)
	if alias != "" {
		if _, err := strconv.ParseInt(alias, 10, 64); err == nil {
			errors = append(errors, ValidationError{Field: "alias", Message: "alias must not be numeric", Value: alias})
		} else if strings.ContainsAny(alias, "/?#") {
			errors = append(errors, ValidationError{Field: "alias", Message: "alias must not contain '/', '?' or '#'", Value: alias})
		} else if utf8.RuneCountInString(alias) > MaxAliasLength {
			errors = append(errors, ValidationError{
				Field:   "alias",
				Message: fmt.Sprintf("alias exceeds %d characters", MaxAliasLength),
			})
		}
	}

	if in.UpdatedAt != nil && *in.UpdatedAt < 0 {
		errors = append(errors, ValidationError{Field: "updated_at", Message: "updated_at must not be negative", Value: *in.UpdatedAt})
	}

	return errors
}

// Paragraph validates the paragraph form. The article reference is only
// checked on creation since updates never move a paragraph.
func Paragraph(in *models.ParagraphInput, create bool) Errors {
	var errors Errors

	if create && in.ArticleID <= 0 {
		errors = append(errors, ValidationError{Field: "article_id", Message: "article_id is required"})
	}
	if strings.TrimSpace(in.Type) != "" {
		if _, err := models.ParseParagraphType(in.Type); err != nil {
			errors = append(errors, ValidationError{
				Field:   "paragraph_type",
				Message: "paragraph_type must be one of: markdown, html",
				Value:   in.Type,
			})
		}
	}
	if in.Position < 0 {
		errors = append(errors, ValidationError{Field: "position", Message: "position must not be negative", Value: in.Position})
	}

	return errors
}

// Contact validates the public contact form
func Contact(in *models.ContactInput) Errors {
	var errors Errors

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: email})
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Subject)) > MaxSubjectLength {
		errors = append(errors, ValidationError{
			Field:   "subject",
			Message: fmt.Sprintf("subject exceeds %d characters", MaxSubjectLength),
		})
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		errors = append(errors, ValidationError{Field: "message", Message: "message is required"})
	} else if words := len(strings.Fields(message)); words > MaxMessageWords {
		errors = append(errors, ValidationError{
			Field:   "message",
			Message: fmt.Sprintf("message exceeds maximum of %d words (has %d)", MaxMessageWords, words),
		})
	}

	return errors
}
