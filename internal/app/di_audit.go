package app

import (
	"fmt"
	"sync"

	auditRepository "github.com/jdai-ca/atticus-privacy/internal/audit/repository"
	auditService "github.com/jdai-ca/atticus-privacy/internal/audit/service"
	auditUseCase "github.com/jdai-ca/atticus-privacy/internal/audit/usecase"
)

// auditComponents holds the audit trail dependencies embedded in Container.
type auditComponents struct {
	signer           auditService.Signer
	chainVerifier    *auditService.ChainVerifier
	entryRepo        auditUseCase.EntryRepository
	chainStateRepo   auditUseCase.ChainStateRepository
	auditUseCase     auditUseCase.UseCase
	signerInit       sync.Once
	verifierInit     sync.Once
	entryRepoInit    sync.Once
	chainRepoInit    sync.Once
	auditUseCaseInit sync.Once
}

// Signer returns the audit entry signer.
func (c *Container) Signer() (auditService.Signer, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initSigner()
		if err != nil {
			c.initErrors["signer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signer"]; exists {
		return nil, storedErr
	}
	return c.signer, nil
}

// ChainVerifier returns the audit chain verifier.
func (c *Container) ChainVerifier() (*auditService.ChainVerifier, error) {
	var err error
	c.verifierInit.Do(func() {
		var signer auditService.Signer
		signer, err = c.Signer()
		if err != nil {
			c.initErrors["chainVerifier"] = err
			return
		}
		c.chainVerifier = auditService.NewChainVerifier(signer)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["chainVerifier"]; exists {
		return nil, storedErr
	}
	return c.chainVerifier, nil
}

// AuditEntryRepository returns the audit entry repository instance.
func (c *Container) AuditEntryRepository() (auditUseCase.EntryRepository, error) {
	var err error
	c.entryRepoInit.Do(func() {
		c.entryRepo, err = c.initAuditEntryRepository()
		if err != nil {
			c.initErrors["auditEntryRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditEntryRepo"]; exists {
		return nil, storedErr
	}
	return c.entryRepo, nil
}

// ChainStateRepository returns the chain state repository instance.
func (c *Container) ChainStateRepository() (auditUseCase.ChainStateRepository, error) {
	var err error
	c.chainRepoInit.Do(func() {
		c.chainStateRepo, err = c.initChainStateRepository()
		if err != nil {
			c.initErrors["chainStateRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["chainStateRepo"]; exists {
		return nil, storedErr
	}
	return c.chainStateRepo, nil
}

// AuditUseCase returns the audit trail use case instance.
func (c *Container) AuditUseCase() (auditUseCase.UseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditComponents.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditComponents.auditUseCase, nil
}

// initSigner creates the signer backed by the application store.
func (c *Container) initSigner() (auditService.Signer, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for signer: %w", err)
	}
	return auditService.NewSigner(store), nil
}

// initAuditEntryRepository creates the audit entry repository instance.
func (c *Container) initAuditEntryRepository() (auditUseCase.EntryRepository, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for audit entry repository: %w", err)
	}
	return auditRepository.NewEntryRepository(store), nil
}

// initChainStateRepository creates the chain state repository instance.
func (c *Container) initChainStateRepository() (auditUseCase.ChainStateRepository, error) {
	store, err := c.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to get store for chain state repository: %w", err)
	}
	return auditRepository.NewChainStateRepository(store), nil
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUseCase.UseCase, error) {
	entryRepo, err := c.AuditEntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for audit use case: %w", err)
	}

	chainRepo, err := c.ChainStateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get chain state repository for audit use case: %w", err)
	}

	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for audit use case: %w", err)
	}

	verifier, err := c.ChainVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get chain verifier for audit use case: %w", err)
	}

	baseUseCase := auditUseCase.NewAuditLogUseCase(entryRepo, chainRepo, signer, verifier, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
		}
		return auditUseCase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
