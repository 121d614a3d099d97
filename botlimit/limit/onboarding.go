package limit

import (
	"github.com/go-analyze/bulk"
)

// ShowMode controls how suggested questions are presented. The value is
// carried through truncation untouched.
type ShowMode int

const (
	ShowModeRandom ShowMode = 0
	ShowModeAll    ShowMode = 1
)

// SuggestedQuestion is a single onboarding suggestion.
type SuggestedQuestion struct {
	ID        string `json:"id" yaml:"id"`
	Content   string `json:"content" yaml:"content"`
	Highlight *bool  `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// OnboardingContent is the opening message of a bot along with its suggested questions.
type OnboardingContent struct {
	Prologue           string              `json:"prologue" yaml:"prologue"`
	SuggestedQuestions []SuggestedQuestion `json:"suggested_questions" yaml:"suggested_questions"`
	ShowMode           ShowMode            `json:"suggested_questions_show_mode" yaml:"suggested_questions_show_mode"`
}

// TruncateOnboardingContent bounds the prologue by the Onboarding limit and
// each question by the OnboardingSuggestion limit. Question order, count,
// ids and highlight flags are preserved and content is not modified in place.
// All fields are cut against a single read of the limits.
func (s *Service) TruncateOnboardingContent(content OnboardingContent) OnboardingContent {
	return s.limits().TruncateOnboardingContent(content)
}

// TruncateOnboardingContent applies the onboarding limits of l to content.
func (l Limits) TruncateOnboardingContent(content OnboardingContent) OnboardingContent {
	out := content
	out.Prologue = l.Truncate(content.Prologue, Onboarding)
	if len(content.SuggestedQuestions) > 0 {
		out.SuggestedQuestions = bulk.SliceTransform(func(q SuggestedQuestion) SuggestedQuestion {
			q.Content = l.Truncate(q.Content, OnboardingSuggestion)
			return q
		}, content.SuggestedQuestions)
	}
	return out
}
