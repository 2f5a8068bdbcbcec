// Package content holds the portfolio's project records: loading them from
// YAML, validating them, and following a projects file as it changes.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProject is wrapped by every validation failure.
var ErrInvalidProject = errors.New("invalid project")

// Project is one showcase entry. URL is empty for internal work.
type Project struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url,omitempty"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Details     string   `yaml:"details"`
	TechStack   []string `yaml:"techStack,omitempty"`
}

// Href returns the project's link with a scheme, or "" when it has none.
func (p Project) Href() string {
	if p.URL == "" {
		return ""
	}
	if strings.Contains(p.URL, "://") {
		return p.URL
	}
	return "https://" + p.URL
}

type file struct {
	Projects []Project `yaml:"projects"`
}

// Load decodes a projects document and validates it.
func Load(r io.Reader) ([]Project, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse projects: empty document")
		}
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	if err := Validate(f.Projects); err != nil {
		return nil, err
	}
	return f.Projects, nil
}

// LoadFile reads and validates the projects file at path.
func LoadFile(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Validate checks that every project has its required fields and that ids
// are unique. All problems are reported together.
func Validate(projects []Project) error {
	if len(projects) == 0 {
		return fmt.Errorf("%w: no projects", ErrInvalidProject)
	}
	var errs []error
	seen := make(map[string]int, len(projects))
	for i, p := range projects {
		name := p.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		for _, req := range [...]struct{ field, value string }{
			{"id", p.ID},
			{"title", p.Title},
			{"description", p.Description},
			{"image", p.Image},
			{"details", p.Details},
		} {
			if strings.TrimSpace(req.value) == "" {
				errs = append(errs, fmt.Errorf("%w: %s: missing %s", ErrInvalidProject, name, req.field))
			}
		}
		if p.ID == "" {
			continue
		}
		if j, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s: duplicate id (also #%d)", ErrInvalidProject, p.ID, j))
			continue
		}
		seen[p.ID] = i
	}
	return errors.Join(errs...)
}

//go:embed projects.yaml
var defaultProjects []byte

// Default returns the bundled project list. Each call returns a fresh copy.
func Default() []Project {
	ps, err := Load(bytes.NewReader(defaultProjects))
	if err != nil {
		panic("content: bundled projects: " + err.Error())
	}
	return ps
}
