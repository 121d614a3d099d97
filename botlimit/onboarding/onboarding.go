package onboarding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-yaml"

	"github.com/go-harden/botlimit/botlimit/cliutil"
	"github.com/go-harden/botlimit/botlimit/limit"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type mode int

const (
	modeTruncate mode = iota
	modeCheck
	modeDiff
)

// ErrOverLimit is returned by a check run when any field exceeds its limit.
var ErrOverLimit = errors.New("onboarding content exceeds limits")

// Decode parses an onboarding document in the given format.
func Decode(data []byte, format string) (limit.OnboardingContent, error) {
	var content limit.OnboardingContent
	var err error
	if format == formatYAML {
		err = yaml.Unmarshal(data, &content)
	} else {
		err = json.Unmarshal(data, &content)
	}
	if err != nil {
		return content, fmt.Errorf("decoding %s: %w", format, err)
	}
	return content, nil
}

func run(w io.Writer, svc *limit.Service, data []byte, format string, m mode) error {
	content, err := Decode(data, format)
	if err != nil {
		return err
	}

	switch m {
	case modeCheck:
		return report(w, svc.ValidateOnboarding(content))
	case modeDiff:
		printDiff(w, content, svc.TruncateOnboardingContent(content))
		return nil
	}

	out, err := json.MarshalIndent(svc.TruncateOnboardingContent(content), "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, string(out))
	return nil
}

func report(w io.Writer, err error) error {
	if err == nil {
		_, _ = fmt.Fprintln(w, cliutil.Success("ok"))
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, line := range flatten("", errs) {
		_, _ = fmt.Fprintf(w, "%s %s\n", cliutil.Error("✗"), line)
	}
	return ErrOverLimit
}

// flatten renders nested validation errors as sorted "path: message" lines.
func flatten(prefix string, errs validation.Errors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			lines = append(lines, flatten(path, nested)...)
			continue
		}
		lines = append(lines, path+": "+errs[k].Error())
	}
	return lines
}
