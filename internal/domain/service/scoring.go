package service

import (
	"context"
	"math"

	"github.com/thalyssonDEV/EventSync/internal/domain/dto"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

// Scoring policy: xp = floor(avg_rating*100 + total_checkins*5) plus a
// flat 50 XP per finished event. The league follows from XP alone.
const finishBonusXP = 50

const (
	LeagueNovato      = "🌱 Novato"
	LeagueAgitador    = "🔥 Agitador"
	LeagueCelebridade = "🌟 Celebridade"
	LeagueLendaViva   = "👑 Lenda Viva"
)

type ScoringStorage interface {
	RecomputeScore(ctx context.Context, organizerID uint, compute func(stats dto.OrganizerStats) dto.OrganizerScore) error
}

type ScoringService struct {
	logger  *logger.Logger
	storage ScoringStorage
}

func NewScoringService(log *logger.Logger, storage ScoringStorage) *ScoringService {
	return &ScoringService{
		logger:  log,
		storage: storage,
	}
}

// ComputeXP derives the organizer's XP from finished-event aggregates.
func ComputeXP(stats dto.OrganizerStats) uint {
	xp := int64(math.Floor(stats.AvgRating*100+float64(stats.TotalCheckins)*5)) +
		finishBonusXP*stats.FinishedEvents
	if xp < 0 {
		return 0
	}
	return uint(xp)
}

// LeagueFor maps XP onto the league label, highest qualifying band wins.
func LeagueFor(xp uint) string {
	switch {
	case xp >= 2000:
		return LeagueLendaViva
	case xp >= 800:
		return LeagueCelebridade
	case xp >= 200:
		return LeagueAgitador
	default:
		return LeagueNovato
	}
}

// Score is the pure scoring function applied to fresh aggregates.
func Score(stats dto.OrganizerStats) dto.OrganizerScore {
	xp := ComputeXP(stats)
	return dto.OrganizerScore{
		XP:     xp,
		League: LeagueFor(xp),
		Rating: math.Round(stats.AvgRating*100) / 100,
	}
}

// RecomputeOrganizerScore rebuilds the organizer's XP, league and rating
// from the current aggregates. Safe to call concurrently for the same
// organizer: the storage re-reads aggregates in the transaction that
// writes them back, so the result only depends on the committed state.
func (s *ScoringService) RecomputeOrganizerScore(ctx context.Context, organizerID uint) error {
	if err := s.storage.RecomputeScore(ctx, organizerID, Score); err != nil {
		return err
	}
	s.logger.Debugf("recomputed score for organizer %d", organizerID)
	return nil
}
