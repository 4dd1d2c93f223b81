package jobs

import (
	"context"
	"errors"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/offer"
)

// WarmProductCache loads every published product into the product cache
func (jr *JobRunner) WarmProductCache() {
	jr.runWithRecovery("WarmProductCache", func() {
		n, err := jr.services.Storefront.WarmProductCache(context.Background())
		if err != nil {
			logger.Error("Failed to warm product cache", "error", err)
			return
		}
		logger.Info("Warmed product cache", "count", n)
	})
}

// AuditReport summarizes a drone configuration audit
type AuditReport struct {
	Checked int
	// Drone IDs whose marketing method cannot be resolved
	InvalidMethod []string
	// Rentable drone IDs missing a daily rate for a store currency
	MissingRates map[string][]domain.CurrencyCode
	// Drone IDs not linked to any product
	Unlinked []string
}

// Clean reports whether the audit found nothing to fix
func (r *AuditReport) Clean() bool {
	return len(r.InvalidMethod) == 0 && len(r.MissingRates) == 0 && len(r.Unlinked) == 0
}

// AuditDroneConfig logs drones whose stored configuration would make every
// offer evaluation on their product fail
func (jr *JobRunner) AuditDroneConfig() {
	jr.runWithRecovery("AuditDroneConfig", func() {
		report, err := jr.auditDroneConfig(context.Background())
		if err != nil {
			logger.Error("Failed to audit drone configuration", "error", err)
			return
		}
		logger.Info("Audited drone configuration",
			"checked", report.Checked,
			"invalid_method", len(report.InvalidMethod),
			"missing_rates", len(report.MissingRates),
			"unlinked", len(report.Unlinked))
	})
}

func (jr *JobRunner) auditDroneConfig(ctx context.Context) (*AuditReport, error) {
	drones, err := jr.repos.Drones.List(ctx)
	if err != nil {
		return nil, err
	}
	currencies, err := jr.repos.Currencies.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{MissingRates: make(map[string][]domain.CurrencyCode)}
	for i := range drones {
		d := &drones[i]
		report.Checked++

		if d.ProductID == "" {
			report.Unlinked = append(report.Unlinked, d.ID)
			logger.Warn("Drone is not linked to a product", "drone_id", d.ID)
		}

		mode, err := offer.ResolveMode(d)
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			report.InvalidMethod = append(report.InvalidMethod, d.ID)
			logger.Warn("Drone has an invalid marketing method", "drone_id", d.ID, "method", d.MarketingMethod)
			continue
		}
		if !mode.CanRent {
			continue
		}

		for _, c := range currencies {
			if _, ok := d.RentalRate(c.CurrencyCode); !ok {
				report.MissingRates[d.ID] = append(report.MissingRates[d.ID], c.CurrencyCode)
			}
		}
		if missing, ok := report.MissingRates[d.ID]; ok {
			logger.Warn("Rentable drone is missing daily rates", "drone_id", d.ID, "currencies", missing)
		}
	}
	return report, nil
}
