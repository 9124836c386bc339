package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/femora/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	insightCycleLimit     = 6
	insightDischargeLimit = 5
)

type InsightService struct {
	cycles     CycleRepository
	discharges DischargeRepository
	engine     *InsightEngine
}

func NewInsightService(cycles CycleRepository, discharges DischargeRepository, engine *InsightEngine) *InsightService {
	return &InsightService{cycles: cycles, discharges: discharges, engine: engine}
}

// Generate loads both recent histories concurrently; either failure fails the call.
func (service *InsightService) Generate(ctx context.Context, userID uint) ([]Insight, error) {
	var (
		cycles     []models.Cycle
		discharges []models.Discharge
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loaded, err := service.cycles.ListRecentByUser(groupCtx, userID, insightCycleLimit)
		if err != nil {
			return fmt.Errorf("load recent cycles: %w", err)
		}
		cycles = loaded
		return nil
	})
	group.Go(func() error {
		loaded, err := service.discharges.ListRecentByUser(groupCtx, userID, insightDischargeLimit)
		if err != nil {
			return fmt.Errorf("load recent discharges: %w", err)
		}
		discharges = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return service.engine.Generate(cycles, discharges), nil
}
