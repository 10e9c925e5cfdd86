package service

import (
	"context"
	"log"

	"github.com/harlowdev/imposter-arena/internal/domain"
	"github.com/harlowdev/imposter-arena/internal/repository"
)

// StatsRecorder adapts the context-taking, error-returning
// repository.StatsRepository to the room package's fire-and-forget
// StatsRecorder collaborator interface. Persistence failures are logged
// and swallowed here, not propagated: a stats write must never affect
// gameplay.
type StatsRecorder struct {
	repo repository.StatsRepository
}

func NewStatsRecorder(repo repository.StatsRepository) *StatsRecorder {
	return &StatsRecorder{repo: repo}
}

func (s *StatsRecorder) RecordGameEnd(summary domain.MatchSummary) {
	if err := s.repo.RecordGameEnd(context.Background(), summary); err != nil {
		log.Printf("ERROR [service.StatsRecorder] recordGameEnd game=%s: %v", summary.GameID, err)
	}
}
