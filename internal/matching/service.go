// Package matching suggests a category for a transaction from its bank
// description, using learned substring rules.
package matching

import (
	"context"
	"errors"
	"strings"
)

// Fallback is the category given to descriptions no rule matches.
const Fallback = "Uncategorized"

var ErrEmptyRule = errors.New("pattern and category are required")

type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
	CreateMapping(ctx context.Context, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category for description, or Fallback.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	category, err := s.repo.FindMatch(ctx, description)
	if err != nil {
		return "", err
	}

	if category == "" {
		return Fallback, nil
	}

	return category, nil
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern, category string) error {
	pattern = strings.TrimSpace(pattern)
	category = strings.TrimSpace(category)

	if pattern == "" || category == "" {
		return ErrEmptyRule
	}

	return s.repo.CreateMapping(ctx, pattern, category)
}
