package usecase

import (
	"context"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/logger"
)

type MaintenanceUseCase struct {
	hairdresserRepo repository.HairdresserRepository
}

func NewMaintenanceUseCase(hairdresserRepo repository.HairdresserRepository) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		hairdresserRepo: hairdresserRepo,
	}
}

type NormalizeReport struct {
	Scanned   int `json:"scanned"`
	Rewritten int `json:"rewritten"`
	Failed    int `json:"failed"`
}

// NormalizeStoredServices rewrites every profile whose stored services are
// not already a flat, trimmed, deduplicated string list. A failed write is
// counted and skipped.
func (uc *MaintenanceUseCase) NormalizeStoredServices(ctx context.Context) (*NormalizeReport, error) {
	stored, err := uc.hairdresserRepo.ListStoredServices(ctx)
	if err != nil {
		return nil, err
	}

	report := &NormalizeReport{}
	for id, raw := range stored {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		normalized := entity.NormalizeServices(raw)
		if current, ok := flatStrings(raw); ok && entity.ServicesEqual(current, normalized) {
			continue
		}

		if err := uc.hairdresserRepo.Merge(ctx, id, map[string]interface{}{"services": normalized}); err != nil {
			logger.Warn("Failed to normalize services for %s: %v", id, err)
			report.Failed++
			continue
		}
		report.Rewritten++
	}

	logger.Info("Services normalization: scanned=%d rewritten=%d failed=%d", report.Scanned, report.Rewritten, report.Failed)
	return report, nil
}

// flatStrings reports raw as a []string when every element is a string.
func flatStrings(raw interface{}) ([]string, bool) {
	switch t := raw.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, v := range t {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
