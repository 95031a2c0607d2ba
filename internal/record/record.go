// Package record defines the records drawn on the helix and loads them
// from TOML, YAML or JSON files.
package record

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Record is one question (strand A) or objective (strand B).
type Record struct {
	ID        string    `toml:"id" yaml:"id" json:"id" validate:"omitempty,max=128"`
	Title     string    `toml:"title" yaml:"title" json:"title" validate:"required,max=512"`
	Content   string    `toml:"content" yaml:"content" json:"content,omitempty"`
	CreatedAt time.Time `toml:"created_at" yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time `toml:"updated_at" yaml:"updated_at" json:"updated_at"`
	Links     []string  `toml:"links" yaml:"links" json:"links,omitempty" validate:"dive,required"`
	SubItems  []SubItem `toml:"sub_items" yaml:"sub_items" json:"sub_items,omitempty" validate:"dive"`
}

// SubItem is a key result of an objective.
type SubItem struct {
	Title string `toml:"title" yaml:"title" json:"title" validate:"required"`
	Done  bool   `toml:"done" yaml:"done" json:"done"`
}

// LastUpdated returns UpdatedAt, falling back to CreatedAt.
func (r Record) LastUpdated() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

// HasCompleted reports whether any sub-item is done.
func (r Record) HasCompleted() bool {
	for _, s := range r.SubItems {
		if s.Done {
			return true
		}
	}
	return false
}

// Dataset is the pair of collections the helix draws.
type Dataset struct {
	Questions  []Record `toml:"questions" yaml:"questions" json:"questions"`
	Objectives []Record `toml:"objectives" yaml:"objectives" json:"objectives"`
}

// Len returns the total number of records.
func (d *Dataset) Len() int {
	return len(d.Questions) + len(d.Objectives)
}

// Merge appends the records of other datasets.
func (d *Dataset) Merge(others ...*Dataset) {
	for _, o := range others {
		if o == nil {
			continue
		}
		d.Questions = append(d.Questions, o.Questions...)
		d.Objectives = append(d.Objectives, o.Objectives...)
	}
}

// Normalize assigns ids to records that lack one and orders both
// collections newest first.
func (d *Dataset) Normalize() {
	for _, rs := range [][]Record{d.Questions, d.Objectives} {
		for i := range rs {
			if strings.TrimSpace(rs[i].ID) == "" {
				rs[i].ID = uuid.NewString()
			}
		}
	}
	SortNewestFirst(d.Questions)
	SortNewestFirst(d.Objectives)
}

// SortNewestFirst orders records by LastUpdated, newest first. Equal
// timestamps keep their input order.
func SortNewestFirst(rs []Record) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].LastUpdated().After(rs[j].LastUpdated())
	})
}

var validate = validator.New()

// Validate checks field constraints on every record and rejects ids
// that appear more than once.
func (d *Dataset) Validate() error {
	var problems []string
	seen := make(map[string]string)

	check := func(kind string, rs []Record) {
		for i, r := range rs {
			if err := validate.Struct(r); err != nil {
				problems = append(problems, fmt.Sprintf("%s[%d]: %s", kind, i, formatValidationError(err)))
			}
			if r.ID == "" {
				continue
			}
			if prev, ok := seen[r.ID]; ok {
				problems = append(problems, fmt.Sprintf("%s[%d]: id %q already used by %s", kind, i, r.ID, prev))
				continue
			}
			seen[r.ID] = fmt.Sprintf("%s[%d]", kind, i)
		}
	}
	check("questions", d.Questions)
	check("objectives", d.Objectives)

	if len(problems) > 0 {
		return fmt.Errorf("invalid records: %s", strings.Join(problems, "; "))
	}
	return nil
}

func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var msgs []string
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
