package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/HerbHall/collegefinder/internal/match"
	"github.com/HerbHall/collegefinder/internal/services"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// BracketsKey is the core_settings key holding admin bracket overrides.
const BracketsKey = "budget_brackets"

// BracketStore resolves the active budget brackets: the admin override when
// one is stored, otherwise the embedded defaults.
type BracketStore struct {
	repo services.SettingsRepository
}

// NewBracketStore returns a BracketStore backed by repo.
func NewBracketStore(repo services.SettingsRepository) *BracketStore {
	return &BracketStore{repo: repo}
}

// Brackets returns the active brackets and whether they are the defaults.
func (s *BracketStore) Brackets(ctx context.Context) ([]college.BudgetBracket, bool, error) {
	var stored []college.BudgetBracket
	ok, err := services.LoadJSON(ctx, s.repo, BracketsKey, &stored)
	if err != nil {
		return nil, false, err
	}
	if ok && match.ValidateBrackets(stored) == nil {
		return stored, false, nil
	}
	defaults, err := match.DefaultBrackets()
	if err != nil {
		return nil, false, err
	}
	return defaults, true, nil
}

// Set validates and stores an override.
func (s *BracketStore) Set(ctx context.Context, brackets []college.BudgetBracket) error {
	if err := match.ValidateBrackets(brackets); err != nil {
		return err
	}
	for i := range brackets {
		if brackets[i].Unbounded {
			brackets[i].Max = 0
		}
	}
	if err := services.StoreJSON(ctx, s.repo, BracketsKey, brackets); err != nil {
		return fmt.Errorf("store brackets: %w", err)
	}
	return nil
}

// Reset removes the override so the defaults apply again.
func (s *BracketStore) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, BracketsKey); err != nil && !errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("reset brackets: %w", err)
	}
	return nil
}
