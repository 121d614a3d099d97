package limit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-harden/botlimit/botlimit/suggest"
)

// ErrUnknownField is returned when a field name is not one of the known form fields.
var ErrUnknownField = errors.New("unknown field")

// Field identifies a form slot with its own maximum length policy.
type Field uint8

const (
	BotName Field = iota + 1
	BotDescription
	Onboarding
	OnboardingSuggestion
	SuggestionPrompt
	ProjectName
	ProjectDescription
)

var fieldNames = [...]string{
	BotName:              "botName",
	BotDescription:       "botDescription",
	Onboarding:           "onboarding",
	OnboardingSuggestion: "onboardingSuggestion",
	SuggestionPrompt:     "suggestionPrompt",
	ProjectName:          "projectName",
	ProjectDescription:   "projectDescription",
}

// Fields returns every known field in declaration order.
func Fields() []Field {
	return []Field{
		BotName,
		BotDescription,
		Onboarding,
		OnboardingSuggestion,
		SuggestionPrompt,
		ProjectName,
		ProjectDescription,
	}
}

// FieldNames returns the wire names of every known field in declaration order.
func FieldNames() []string {
	fields := Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}

// ParseField resolves a wire name such as "botName" to its Field. The error
// for an unknown name suggests the closest field, or lists the valid ones.
func ParseField(name string) (Field, error) {
	for _, f := range Fields() {
		if fieldNames[f] == name {
			return f, nil
		}
	}
	if s := suggest.Closest(name, FieldNames()); s != "" {
		return 0, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownField, name, s)
	}
	return 0, fmt.Errorf("%w %q (valid: %s)", ErrUnknownField, name, strings.Join(FieldNames(), ", "))
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	return f >= BotName && f <= ProjectDescription
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
	return fieldNames[f]
}

func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, uint8(f))
	}
	return []byte(fieldNames[f]), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
