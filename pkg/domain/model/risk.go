package model

import (
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
)

// ErrEmptyTitle is returned when a risk is created without a title
var ErrEmptyTitle = goerr.New("risk title is required")

// Risk is a single entry of the risk register
type Risk struct {
	ID         types.RiskID     `json:"id"`
	Title      string           `json:"title"`
	Category   types.Category   `json:"category"`
	Owner      string           `json:"owner"`
	Likelihood types.Likelihood `json:"likelihood"`
	Impact     types.Impact     `json:"impact"`
	Score      int              `json:"score"`
	Level      types.Level      `json:"level"`
	Status     types.Status     `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	Notes      string           `json:"notes"`
}

// RiskDraft holds the user supplied fields of a new risk
type RiskDraft struct {
	Title      string
	Likelihood types.Likelihood
	Impact     types.Impact
	Category   string
	Owner      string
	Notes      string
}

// Validate checks the user supplied fields before anything is stored
func (d *RiskDraft) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if err := d.Likelihood.Validate(); err != nil {
		return err
	}
	if err := d.Impact.Validate(); err != nil {
		return err
	}
	return nil
}

// NewRisk builds an open risk from a draft, deriving score and level.
// The draft must have been validated.
func NewRisk(id types.RiskID, d RiskDraft, now time.Time) *Risk {
	score := types.Score(d.Likelihood, d.Impact)
	return &Risk{
		ID:         id,
		Title:      d.Title,
		Category:   types.NewCategory(d.Category),
		Owner:      d.Owner,
		Likelihood: d.Likelihood,
		Impact:     d.Impact,
		Score:      score,
		Level:      types.LevelFromScore(score),
		Status:     types.StatusOpen,
		CreatedAt:  now.UTC().Truncate(time.Microsecond),
		Notes:      d.Notes,
	}
}

// AppendNotes adds text to the notes. Existing notes are kept and joined by a newline.
func (r *Risk) AppendNotes(text string) {
	if r.Notes == "" {
		r.Notes = text
		return
	}
	r.Notes = r.Notes + "\n" + text
}

// Copy returns a deep copy of the risk
func (r *Risk) Copy() *Risk {
	copied := *r
	return &copied
}

// RiskFilter selects risks for listing. Empty fields match everything.
type RiskFilter struct {
	Category string
	Owner    string
}

// Match reports whether the risk passes every non-empty criterion.
// Category is compared exactly after lowercasing the filter, owner case-insensitively.
func (f RiskFilter) Match(r *Risk) bool {
	if f.Category != "" && r.Category != types.NewCategory(f.Category) {
		return false
	}
	if f.Owner != "" && !strings.EqualFold(r.Owner, f.Owner) {
		return false
	}
	return true
}

// Apply returns the risks matching the filter, preserving order
func (f RiskFilter) Apply(risks []*Risk) []*Risk {
	matched := make([]*Risk, 0, len(risks))
	for _, r := range risks {
		if f.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// SortByScore sorts risks by score, highest first. Equal scores keep their stored order.
func SortByScore(risks []*Risk) {
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Score > risks[j].Score
	})
}

// FindRisk returns the risk with the given ID, or nil
func FindRisk(risks []*Risk, id types.RiskID) *Risk {
	for _, r := range risks {
		if r.ID == id {
			return r
		}
	}
	return nil
}
