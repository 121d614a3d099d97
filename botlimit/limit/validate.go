package limit

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ExceedsLimitError reports a value longer than its field allows.
type ExceedsLimitError struct {
	Field  Field
	Limit  int
	Length int
}

func (e *ExceedsLimitError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters (got %d)", e.Field, e.Limit, e.Length)
}

// Rule returns a validation rule checking string values against the current
// limit of field. Nil and empty values pass.
func (s *Service) Rule(field Field) validation.Rule {
	return fieldRule{svc: s, field: field}
}

type fieldRule struct {
	svc   *Service
	field Field
}

func (r fieldRule) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}

	str, err := validation.EnsureString(value)
	if err != nil {
		return err
	}

	over, max, ok := r.svc.Exceeds(str, r.field)
	if !ok || over == 0 {
		return nil
	}
	return &ExceedsLimitError{Field: r.field, Limit: max, Length: max + over}
}

// ValidateOnboarding checks the prologue and every suggested question against
// their limits. Errors are keyed by JSON field name and question index.
func (s *Service) ValidateOnboarding(content OnboardingContent) error {
	contentRule := s.Rule(OnboardingSuggestion)
	return validation.ValidateStruct(&content,
		validation.Field(&content.Prologue, s.Rule(Onboarding)),
		validation.Field(&content.SuggestedQuestions, validation.Each(validation.By(func(value interface{}) error {
			q, ok := value.(SuggestedQuestion)
			if !ok {
				return nil
			}
			return validation.ValidateStruct(&q,
				validation.Field(&q.Content, contentRule),
			)
		}))),
	)
}
