package goals

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/models"
	"golang.org/x/exp/slices"
)

// StorageKey is the fixed key the goal list is persisted under.
const StorageKey = "SpendWiseGoals"

var (
	ErrGoalNotFound            = errors.New("there is no goal with this ID")
	ErrContributionNotPositive = errors.New("contributions must be larger than zero")
	ErrMalformedGoalData       = errors.New("the stored goal list could not be decoded")
)

// Blob is the key-value persistence the goal list is serialized into.
type Blob interface {
	GetBlob(key string) ([]byte, error)
	SetBlob(key string, value []byte) error
}

// Service holds the goal list and persists every mutation as a JSON array.
type Service struct {
	store Blob

	mu    sync.Mutex
	goals []models.Goal
}

// NewService loads the persisted goal list. A malformed stored list yields an
// empty service and ErrMalformedGoalData; the service stays usable.
func NewService(store Blob) (*Service, error) {
	s := &Service{store: store}

	data, err := store.GetBlob(StorageKey)
	if err != nil {
		return s, err
	}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.goals); err != nil {
		log.Error().Err(err).Msg("resetting goal list to empty")
		s.goals = nil
		return s, fmt.Errorf("%w: %s", ErrMalformedGoalData, err)
	}

	return s, nil
}

// Goals returns a copy of the goal list in insertion order.
func (s *Service) Goals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.goals)
}

// Sorted returns the goals ordered by deadline, earliest first. Goals with
// the same deadline are ordered by creation time.
func (s *Service) Sorted() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := slices.Clone(s.goals)
	slices.SortStableFunc(sorted, func(a, b models.Goal) int {
		if c := a.Deadline.Compare(b.Deadline); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return sorted
}

// Get returns the goal with the given ID.
func (s *Service) Get(id uuid.UUID) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, goal := range s.goals {
		if goal.ID == id {
			return goal, nil
		}
	}

	return models.Goal{}, ErrGoalNotFound
}

// Add creates a new goal. Titles are trimmed; negative amounts are raised to
// zero.
func (s *Service) Add(title string, targetAmount, savedAmount decimal.Decimal, deadline time.Time, note string) (models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Goal{}, models.ErrGoalTitleEmpty
	}

	if targetAmount.IsNegative() {
		targetAmount = decimal.Zero
	}
	if savedAmount.IsNegative() {
		savedAmount = decimal.Zero
	}

	goal := models.Goal{
		Title:        title,
		TargetAmount: targetAmount,
		SavedAmount:  savedAmount,
		Deadline:     deadline,
		Note:         strings.TrimSpace(note),
	}
	goal.ID = uuid.New()
	goal.CreatedAt = time.Now().In(time.UTC)
	goal.UpdatedAt = goal.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = append(s.goals, goal)
	return goal, s.persist()
}

// Update replaces the goal with the same ID.
func (s *Service) Update(goal models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == goal.ID })
	if index < 0 {
		return ErrGoalNotFound
	}

	goal.UpdatedAt = time.Now().In(time.UTC)
	s.goals[index] = goal
	return s.persist()
}

// Delete removes the goal with the given ID.
func (s *Service) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
	if index < 0 {
		return ErrGoalNotFound
	}

	s.goals = slices.Delete(s.goals, index, index+1)
	return s.persist()
}

// Contribute adds a strictly positive amount to the goal's saved amount.
// Non-positive amounts are rejected without touching the goal.
func (s *Service) Contribute(id uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrContributionNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.goals, func(g models.Goal) bool { return g.ID == id })
	if index < 0 {
		return ErrGoalNotFound
	}

	s.goals[index].SavedAmount = s.goals[index].SavedAmount.Add(amount)
	s.goals[index].UpdatedAt = time.Now().In(time.UTC)
	return s.persist()
}

// TotalTarget returns the sum of all target amounts.
func (s *Service) TotalTarget() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, goal := range s.goals {
		total = total.Add(goal.TargetAmount)
	}
	return total
}

// TotalSaved returns the sum of all saved amounts.
func (s *Service) TotalSaved() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, goal := range s.goals {
		total = total.Add(goal.SavedAmount)
	}
	return total
}

// OverallProgress returns the saved fraction over all goals, clamped to
// [0, 1].
func (s *Service) OverallProgress() decimal.Decimal {
	target := s.TotalTarget()
	if !target.IsPositive() {
		return decimal.Zero
	}

	progress := s.TotalSaved().Div(target)
	if progress.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return progress
}

// persist writes the goal list. Callers must hold s.mu.
func (s *Service) persist() error {
	data, err := json.Marshal(s.goals)
	if err != nil {
		return err
	}

	return s.store.SetBlob(StorageKey, data)
}
