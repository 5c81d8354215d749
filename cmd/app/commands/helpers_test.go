package commands

import (
	"io"
	"log/slog"
	"testing"

	auditRepository "github.com/jdai-ca/atticus-privacy/internal/audit/repository"
	auditService "github.com/jdai-ca/atticus-privacy/internal/audit/service"
	auditUseCase "github.com/jdai-ca/atticus-privacy/internal/audit/usecase"
	"github.com/jdai-ca/atticus-privacy/internal/kv"
	privacyDomain "github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
	privacyRepository "github.com/jdai-ca/atticus-privacy/internal/privacy/repository"
	privacyService "github.com/jdai-ca/atticus-privacy/internal/privacy/service"
	privacyUseCase "github.com/jdai-ca/atticus-privacy/internal/privacy/usecase"
)

// newTestUseCases wires privacy and audit use cases over an in-memory store.
func newTestUseCases(t *testing.T) (privacyUseCase.UseCase, auditUseCase.UseCase) {
	t.Helper()
	store := kv.NewMemStore()
	t.Cleanup(func() { _ = store.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	signer := auditService.NewSigner(store)
	auditUC := auditUseCase.NewAuditLogUseCase(
		auditRepository.NewEntryRepository(store),
		auditRepository.NewChainStateRepository(store),
		signer,
		auditService.NewChainVerifier(signer),
		logger,
	)

	scanner := privacyService.NewScanner(privacyService.DefaultRegistry(), privacyDomain.ThresholdStrict)
	privacyUC := privacyUseCase.NewPrivacyUseCase(
		scanner,
		[]privacyDomain.Jurisdiction{privacyDomain.JurisdictionUS, privacyDomain.JurisdictionCA},
		privacyRepository.NewScanLogRepository(store),
		auditUC,
		logger,
	)

	return privacyUC, auditUC
}
