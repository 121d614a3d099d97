package limit

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Limits holds the maximum grapheme length for each field.
// A value of zero or below means the field has no configured limit.
type Limits struct {
	BotName              int `json:"botName,omitempty" yaml:"botName,omitempty"`
	BotDescription       int `json:"botDescription,omitempty" yaml:"botDescription,omitempty"`
	Onboarding           int `json:"onboarding,omitempty" yaml:"onboarding,omitempty"`
	OnboardingSuggestion int `json:"onboardingSuggestion,omitempty" yaml:"onboardingSuggestion,omitempty"`
	SuggestionPrompt     int `json:"suggestionPrompt,omitempty" yaml:"suggestionPrompt,omitempty"`
	ProjectName          int `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	ProjectDescription   int `json:"projectDescription,omitempty" yaml:"projectDescription,omitempty"`
}

// Get returns the limit for f. ok is false when the field is unlimited.
func (l Limits) Get(f Field) (max int, ok bool) {
	max = l.Raw(f)
	if max <= 0 {
		return 0, false
	}
	return max, true
}

// Set stores the raw limit value for f; unknown fields are ignored.
func (l *Limits) Set(f Field, v int) {
	if p := l.slot(f); p != nil {
		*p = v
	}
}

// Raw returns the stored value for f without interpreting it.
func (l Limits) Raw(f Field) int {
	if p := l.slot(f); p != nil {
		return *p
	}
	return 0
}

func (l *Limits) slot(f Field) *int {
	switch f {
	case BotName:
		return &l.BotName
	case BotDescription:
		return &l.BotDescription
	case Onboarding:
		return &l.Onboarding
	case OnboardingSuggestion:
		return &l.OnboardingSuggestion
	case SuggestionPrompt:
		return &l.SuggestionPrompt
	case ProjectName:
		return &l.ProjectName
	case ProjectDescription:
		return &l.ProjectDescription
	}
	return nil
}

// Validate rejects values below -1; -1 explicitly disables a field's limit.
func (l Limits) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.BotName, validation.Min(-1)),
		validation.Field(&l.BotDescription, validation.Min(-1)),
		validation.Field(&l.Onboarding, validation.Min(-1)),
		validation.Field(&l.OnboardingSuggestion, validation.Min(-1)),
		validation.Field(&l.SuggestionPrompt, validation.Min(-1)),
		validation.Field(&l.ProjectName, validation.Min(-1)),
		validation.Field(&l.ProjectDescription, validation.Min(-1)),
	)
}
