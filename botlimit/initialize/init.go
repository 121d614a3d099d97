package initialize

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/limit"
)

const guideFileName = "LIMITS.md"

//go:embed templates/limits-guide.md
var limitsGuide string

type fieldLimit struct {
	Field     string
	Limit     int
	Unlimited bool
}

type templateData struct {
	Cmd    string
	Limits []fieldLimit
}

func run(baseDir string, reset, force bool, w io.Writer) error {
	dir := filepath.Join(baseDir, config.DirName)
	if reset {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	switch {
	case err == nil && !force:
		_, _ = fmt.Fprintf(w, "Kept existing config `%s`\n", relativeOrAbsPath(cfgPath))
	case err == nil, errors.Is(err, os.ErrNotExist), force:
		preserve := err == nil && cfg.PreserveGuides
		cfg = config.DefaultConfig()
		cfg.PreserveGuides = preserve
		defaults := config.DefaultLimits()
		cfg.Limits = &defaults
		if err := cfg.Save(cfgPath); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Wrote config `%s`\n", relativeOrAbsPath(cfgPath))
	default:
		return fmt.Errorf("existing config is invalid (use --force to overwrite): %w", err)
	}

	content, err := renderTemplate(limitsGuide, templateData{
		Cmd:    commandName(),
		Limits: fieldLimits(cfg.GetLimits()),
	})
	if err != nil {
		return err
	}

	guidePath := filepath.Join(dir, guideFileName)
	written, err := writeGuideIfNeeded(guidePath, content, cfg.PreserveGuides)
	if err != nil {
		return err
	}
	if written {
		_, _ = fmt.Fprintf(w, "Wrote guide `%s`\n", relativeOrAbsPath(guidePath))
	} else {
		_, _ = fmt.Fprintf(w, "Preserved guide `%s`\n", relativeOrAbsPath(guidePath))
	}
	return nil
}

func fieldLimits(l limit.Limits) []fieldLimit {
	out := make([]fieldLimit, 0, len(limit.Fields()))
	for _, f := range limit.Fields() {
		max, ok := l.Get(f)
		out = append(out, fieldLimit{Field: f.String(), Limit: max, Unlimited: !ok})
	}
	return out
}

// writeGuideIfNeeded writes content to path unless preserve is set and the file exists.
func writeGuideIfNeeded(path, content string, preserve bool) (bool, error) {
	if preserve {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("writing guide: %w", err)
	}
	return true, nil
}

func renderTemplate(tmpl string, data templateData) (string, error) {
	t, err := template.New("guide").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

func commandName() string {
	exe, err := os.Executable()
	if err != nil {
		return "botlimit"
	}
	return relativeOrAbsPath(exe)
}

// relativeOrAbsPath returns path relative to the working directory with a
// "./" prefix, or the absolute path when it lies outside of it.
func relativeOrAbsPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return "./" + rel
}
