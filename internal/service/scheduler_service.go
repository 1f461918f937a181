package service

import (
	"context"
	"log"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/model"
	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/repository"
)

// SchedulerService drives the periodic refresh: it finds organizations
// whose next execution date has arrived, advances their schedules and
// hands them to the rate pipeline.
type SchedulerService struct {
	orgRepo     *repository.OrganizationRepository
	rateService *RateService
}

// NewSchedulerService creates a new SchedulerService with the provided dependencies.
func NewSchedulerService(orgRepo *repository.OrganizationRepository, rateService *RateService) *SchedulerService {
	return &SchedulerService{
		orgRepo:     orgRepo,
		rateService: rateService,
	}
}

// NextExecutionDate computes the next scheduled refresh date after `from`
// for a cadence. Monthly intervals follow calendar months, so the day of
// month may clamp (Jan 31 + 1 month = Mar 2 per time.AddDate semantics).
// The manual cadence has no next date and returns nil.
func NextExecutionDate(intervalUnit string, from time.Time) *time.Time {
	var next time.Time

	switch intervalUnit {
	case model.IntervalDaily:
		next = from.AddDate(0, 0, 1)
	case model.IntervalWeekly:
		next = from.AddDate(0, 0, 7)
	case model.IntervalMonthly:
		next = from.AddDate(0, 1, 0)
	default:
		return nil
	}

	return &next
}

// RunScheduledRefresh executes one scheduler tick: every organization due
// as of today gets its schedule advanced and its rates refreshed.
// Schedules advance before fetching so a failing provider cannot pin an
// organization to a permanently-due state and hammer the provider on
// every tick; the missed day is simply picked up by the next cycle.
func (s *SchedulerService) RunScheduledRefresh(ctx context.Context) (model.RefreshSummary, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	due, err := s.orgRepo.GetDue(today)
	if err != nil {
		return model.RefreshSummary{Success: false}, err
	}
	if len(due) == 0 {
		return model.RefreshSummary{Success: true}, nil
	}

	toRefresh := make([]model.Organization, 0, len(due))
	for _, org := range due {
		next := NextExecutionDate(org.IntervalUnit, today)
		if err := s.orgRepo.UpdateNextExecution(org.ID, next); err != nil {
			return model.RefreshSummary{Success: false}, err
		}
		if next == nil {
			// Stale schedule on a manual-cadence organization: cleared, not refreshed.
			continue
		}
		toRefresh = append(toRefresh, org)
	}

	log.Printf("scheduled refresh: %d organization(s) due", len(toRefresh))

	return s.rateService.RefreshOrganizations(ctx, toRefresh)
}
