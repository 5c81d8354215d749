package app

import (
	"fmt"
	"sync"

	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
	privacyRepository "github.com/jdai-ca/atticus-privacy/internal/privacy/repository"
	privacyService "github.com/jdai-ca/atticus-privacy/internal/privacy/service"
	privacyUseCase "github.com/jdai-ca/atticus-privacy/internal/privacy/usecase"
)

// privacyComponents holds the privacy scanning dependencies embedded in Container.
type privacyComponents struct {
	scanner            *privacyService.Scanner
	scanLogRepo        privacyUseCase.ScanLogRepository
	privacyUseCase     privacyUseCase.UseCase
	scannerInit        sync.Once
	scanLogRepoInit    sync.Once
	privacyUseCaseInit sync.Once
}

// Scanner returns the detection engine configured with the default rule
// registry and the configured sensitivity threshold.
func (c *Container) Scanner() *privacyService.Scanner {
	c.scannerInit.Do(func() {
		threshold := privacyDomain.SensitivityThreshold(c.config.SensitivityThreshold)
		c.scanner = privacyService.NewScanner(privacyService.DefaultRegistry(), threshold)
	})
	return c.scanner
}

// ScanLogRepository returns the scan log repository instance.
func (c *Container) ScanLogRepository() (privacyUseCase.ScanLogRepository, error) {
	var err error
	c.scanLogRepoInit.Do(func() {
		c.scanLogRepo, err = c.initScanLogRepository()
		if err != nil {
			c.initErrors["scanLogRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["scanLogRepo"]; exists {
		return nil, storedErr
	}
	return c.scanLogRepo, nil
}

// PrivacyUseCase returns the privacy use case instance.
func (c *Container) PrivacyUseCase() (privacyUseCase.UseCase, error) {
	var err error
	c.privacyUseCaseInit.Do(func() {
		c.privacyComponents.privacyUseCase, err = c.initPrivacyUseCase()
		if err != nil {
			c.initErrors["privacyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["privacyUseCase"]; exists {
		return nil, storedErr
	}
	return c.privacyComponents.privacyUseCase, nil
}

// Jurisdictions returns the configured active jurisdictions as domain values.
func (c *Container) Jurisdictions() []privacyDomain.Jurisdiction {
	list := c.config.JurisdictionList()
	if len(list) == 0 {
		return nil
	}
	regions := make([]privacyDomain.Jurisdiction, len(list))
	for i, j := range list {
		regions[i] = privacyDomain.Jurisdiction(j)
	}
	return regions
}

// initScanLogRepository creates the scan log repository instance.
func (c *Container) initScanLogRepository() (privacyUseCase.ScanLogRepository, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for scan log repository: %w", err)
	}
	return privacyRepository.NewScanLogRepository(store), nil
}

// initPrivacyUseCase creates the privacy use case with all its dependencies.
func (c *Container) initPrivacyUseCase() (privacyUseCase.UseCase, error) {
	scanLogRepo, err := c.ScanLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get scan log repository for privacy use case: %w", err)
	}

	auditRecorder, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for privacy use case: %w", err)
	}

	baseUseCase := privacyUseCase.NewPrivacyUseCase(
		c.Scanner(),
		c.Jurisdictions(),
		scanLogRepo,
		auditRecorder,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for privacy use case: %w", err)
		}
		return privacyUseCase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
