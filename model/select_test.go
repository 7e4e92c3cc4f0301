package model

import (
	"context"
	"testing"

	"github.com/rushteam/scorekit/core"
)

func TestSelectDefaultsToHashing(t *testing.T) {
	s := Select(SelectConfig{})
	if s.Name() != "hashing" {
		t.Fatalf("scorer = %q, want hashing", s.Name())
	}
}

func TestSelectTower(t *testing.T) {
	s := Select(SelectConfig{EnableTower: true})
	if s.Name() != "two_tower" {
		t.Fatalf("scorer = %q, want two_tower", s.Name())
	}

	seeded := Select(SelectConfig{EnableTower: true, TowerSeed: 42})
	if seeded.Name() != "two_tower" {
		t.Fatalf("scorer = %q, want two_tower", seeded.Name())
	}
}

func TestHashingScorerRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewHashingScorer()

	user, err := s.UserVector(ctx, testContext())
	if err != nil {
		t.Fatal(err)
	}

	item := core.NewItem(core.CategoryMusic, map[string]any{"title": "Blue Train", "genre": "jazz"})
	sim, err := s.Score(ctx, user, item)
	if err != nil {
		t.Fatal(err)
	}
	if sim < -1 || sim > 1 {
		t.Fatalf("similarity %v out of range", sim)
	}
}
