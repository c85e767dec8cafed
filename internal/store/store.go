package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/inovacc/craft-stats/internal/encoding"
	"github.com/inovacc/craft-stats/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrStoreCorrupt is matched by every error describing an unusable data file
var ErrStoreCorrupt = errors.New("issue store is corrupt")

// CorruptError describes why the data file at Path could not be used
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("issue store %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

func (e *CorruptError) Is(target error) bool {
	return target == ErrStoreCorrupt
}

// Store is the in-memory issue snapshot bound to its file
type Store struct {
	path string
	data *model.Projects
}

// New returns an empty store that will be saved to path.
func New(path string) *Store {
	return &Store{path: path, data: model.NewProjects()}
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	raw, err := encoding.ReadFile(path)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	if raw == nil {
		return New(path), nil
	}

	data, err := Decode(raw)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	return &Store{path: path, data: data}, nil
}

// Path returns the file the store is saved to.
func (s *Store) Path() string {
	return s.path
}

// Projects returns the owned collection. Callers mutate it in place.
func (s *Store) Projects() *model.Projects {
	return s.data
}

// Project returns the issues of a project, or nil if it is not tracked.
func (s *Store) Project(name string) *model.ProjectIssues {
	return s.data.Projects[name]
}

// EnsureProject returns the issues of a project, creating an empty entry
// the first time the project is seen.
func (s *Store) EnsureProject(name string) *model.ProjectIssues {
	project, ok := s.data.Projects[name]
	if !ok || project == nil {
		project = model.NewProjectIssues()
		s.data.Projects[name] = project
	}

	return project
}

// Save writes the whole store, replacing the previous file atomically.
func (s *Store) Save() error {
	raw, err := Encode(s.data)
	if err != nil {
		return err
	}

	return encoding.WriteFile(s.path, raw)
}

// Encode serialises projects to the YAML data file format.
func Encode(projects *model.Projects) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(projects); err != nil {
		return nil, fmt.Errorf("failed to encode issue store: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode issue store: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode parses and validates the YAML data file format.
func Decode(raw []byte) (*model.Projects, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	projects := model.NewProjects()
	if err := dec.Decode(projects); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if projects.Projects == nil {
		projects.Projects = make(map[string]*model.ProjectIssues)
	}

	if err := normalize(projects); err != nil {
		return nil, err
	}

	return projects, nil
}

// normalize fills record ids from their map keys and checks every record.
func normalize(projects *model.Projects) error {
	names := make([]string, 0, len(projects.Projects))
	for name := range projects.Projects {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error

	for _, name := range names {
		if name == "" {
			errs = append(errs, errors.New("project with an empty name"))
			continue
		}

		project := projects.Projects[name]
		if project == nil || project.Issues == nil {
			projects.Projects[name] = model.NewProjectIssues()
			continue
		}

		ids := make([]int, 0, len(project.Issues))
		for id := range project.Issues {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			issue := project.Issues[id]
			if issue == nil {
				errs = append(errs, fmt.Errorf("%s #%d: empty record", name, id))
				continue
			}

			issue.ID = id
			if err := issue.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s #%d: %w", name, id, err))
			}
		}
	}

	return errors.Join(errs...)
}
