package model

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes plain issues from pull requests. GitHub numbers both
// in the same sequence per repository.
type Kind int

const (
	KindIssue Kind = iota
	KindPullRequest
)

func (k Kind) String() string {
	switch k {
	case KindIssue:
		return "issue"
	case KindPullRequest:
		return "pr"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts the persisted form back to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "issue":
		return KindIssue, nil
	case "pr":
		return KindPullRequest, nil
	default:
		return 0, fmt.Errorf("unknown issue type %q", s)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	if k != KindIssue && k != KindPullRequest {
		return nil, fmt.Errorf("unknown issue kind %d", int(k))
	}

	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// Issue is one issue or pull request as last seen on GitHub
type Issue struct {
	// ID is the issue number; the map key in ProjectIssues, not persisted in the record
	ID int `yaml:"-"`

	Kind        Kind       `yaml:"type"`
	OpenedAt    time.Time  `yaml:"date_opened"`
	ClosedAt    *time.Time `yaml:"date_closed"`
	RefreshedAt time.Time  `yaml:"refresh_date"`
}

// IsOpen reports whether the issue was open at asOf. Both bounds are
// exclusive: an issue is not open at the instant it was opened nor at the
// instant it was closed.
func (i *Issue) IsOpen(asOf time.Time) bool {
	return i.OpenedAt.Before(asOf) && (i.ClosedAt == nil || i.ClosedAt.After(asOf))
}

// ClosedOn reports whether the issue was closed on the UTC calendar day of day.
func (i *Issue) ClosedOn(day time.Time) bool {
	if i.ClosedAt == nil {
		return false
	}

	cy, cm, cd := i.ClosedAt.UTC().Date()
	dy, dm, dd := day.UTC().Date()

	return cy == dy && cm == dm && cd == dd
}

// Validate checks the record invariants.
func (i *Issue) Validate() error {
	var errs []error

	if i.ID <= 0 {
		errs = append(errs, fmt.Errorf("issue id %d is not positive", i.ID))
	}

	if i.Kind != KindIssue && i.Kind != KindPullRequest {
		errs = append(errs, fmt.Errorf("unknown issue kind %d", int(i.Kind)))
	}

	if i.OpenedAt.IsZero() {
		errs = append(errs, errors.New("date_opened is missing"))
	}

	if i.RefreshedAt.IsZero() {
		errs = append(errs, errors.New("refresh_date is missing"))
	}

	if i.ClosedAt != nil && !i.ClosedAt.After(i.OpenedAt) {
		errs = append(errs, fmt.Errorf("date_closed %s is not after date_opened %s",
			i.ClosedAt.Format(time.RFC3339), i.OpenedAt.Format(time.RFC3339)))
	}

	return errors.Join(errs...)
}

func (i *Issue) String() string {
	closed := ""
	if i.ClosedAt != nil {
		closed = " closed: " + i.ClosedAt.Format(time.RFC3339)
	}

	return fmt.Sprintf("type: %s opened: %s%s", i.Kind, i.OpenedAt.Format(time.RFC3339), closed)
}

// ProjectIssues holds every known issue of one project, keyed by number
type ProjectIssues struct {
	Issues map[int]*Issue `yaml:"issues"`
}

// NewProjectIssues returns an empty collection.
func NewProjectIssues() *ProjectIssues {
	return &ProjectIssues{Issues: make(map[int]*Issue)}
}

// MaxID returns the highest known issue number, or 0 when empty.
func (p *ProjectIssues) MaxID() int {
	maxID := 0
	for id := range p.Issues {
		if id > maxID {
			maxID = id
		}
	}

	return maxID
}

// List returns the issues as a slice in unspecified order.
func (p *ProjectIssues) List() []*Issue {
	issues := make([]*Issue, 0, len(p.Issues))
	for _, issue := range p.Issues {
		issues = append(issues, issue)
	}

	return issues
}

// Projects maps project name to its issues
type Projects struct {
	Projects map[string]*ProjectIssues `yaml:"projects"`
}

// NewProjects returns an empty collection.
func NewProjects() *Projects {
	return &Projects{Projects: make(map[string]*ProjectIssues)}
}

// AllIssues pools the issues of every project.
func (p *Projects) AllIssues() []*Issue {
	var issues []*Issue
	for _, project := range p.Projects {
		issues = append(issues, project.List()...)
	}

	return issues
}
