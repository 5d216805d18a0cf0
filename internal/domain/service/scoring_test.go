package service

import (
	"context"
	"testing"

	"github.com/thalyssonDEV/EventSync/internal/domain/dto"
)

func TestComputeXP(t *testing.T) {
	tests := []struct {
		name  string
		stats dto.OrganizerStats
		want  uint
	}{
		{
			name:  "no activity",
			stats: dto.OrganizerStats{},
			want:  0,
		},
		{
			name:  "one finished event with two ratings and one check-in",
			stats: dto.OrganizerStats{AvgRating: 4, TotalCheckins: 1, FinishedEvents: 1},
			want:  455,
		},
		{
			name:  "fractional average floors",
			stats: dto.OrganizerStats{AvgRating: 4.333, TotalCheckins: 2, FinishedEvents: 1},
			want:  493,
		},
		{
			name:  "finish bonus scales with finished events",
			stats: dto.OrganizerStats{FinishedEvents: 3},
			want:  150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeXP(tt.stats); got != tt.want {
				t.Errorf("ComputeXP(%+v) = %d, want %d", tt.stats, got, tt.want)
			}
		})
	}
}

func TestLeagueFor(t *testing.T) {
	tests := []struct {
		xp   uint
		want string
	}{
		{0, LeagueNovato},
		{199, LeagueNovato},
		{200, LeagueAgitador},
		{455, LeagueAgitador},
		{799, LeagueAgitador},
		{800, LeagueCelebridade},
		{1999, LeagueCelebridade},
		{2000, LeagueLendaViva},
		{50000, LeagueLendaViva},
	}

	for _, tt := range tests {
		if got := LeagueFor(tt.xp); got != tt.want {
			t.Errorf("LeagueFor(%d) = %q, want %q", tt.xp, got, tt.want)
		}
	}
}

func TestScoreRoundsRating(t *testing.T) {
	got := Score(dto.OrganizerStats{AvgRating: 4.666666, TotalCheckins: 0, FinishedEvents: 0})
	if got.Rating != 4.67 {
		t.Errorf("rating = %v, want 4.67", got.Rating)
	}
}

func TestRecomputeOrganizerScore(t *testing.T) {
	storage := &fixedScoringStorage{
		stats: dto.OrganizerStats{AvgRating: 4, TotalCheckins: 1, FinishedEvents: 1},
	}
	svc := NewScoringService(testLogger(), storage)

	if err := svc.RecomputeOrganizerScore(context.Background(), 1); err != nil {
		t.Fatalf("RecomputeOrganizerScore: %v", err)
	}

	if storage.score.XP != 455 {
		t.Errorf("xp = %d, want 455", storage.score.XP)
	}
	if storage.score.League != LeagueAgitador {
		t.Errorf("league = %q, want %q", storage.score.League, LeagueAgitador)
	}
	if storage.score.Rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", storage.score.Rating)
	}
}
