package service

import (
	"context"
	"time"

	"sacco-backend/internal/config"
	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type eligibilityService struct {
	accountRepo repository.AccountRepository
	savingsRepo repository.SavingsRepository
	cfg         config.LedgerConfig
}

func NewEligibilityService(accountRepo repository.AccountRepository, savingsRepo repository.SavingsRepository, cfg config.LedgerConfig) EligibilityService {
	return &eligibilityService{accountRepo: accountRepo, savingsRepo: savingsRepo, cfg: cfg}
}

// LoanEligible reports whether the account saved at least the weekly minimum
// in enough distinct weeks within the trailing window.
func (s *eligibilityService) LoanEligible(ctx context.Context, accountID int32) (bool, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return false, err
	}
	since := time.Now().AddDate(0, 0, -s.cfg.EligibilityWindowDays)
	weeks, err := s.savingsRepo.CountQualifyingWeeks(ctx, accountID, since, s.cfg.EligibilityMinWeeklyAmount)
	if err != nil {
		return false, err
	}
	return weeks >= s.cfg.EligibilityWeeks, nil
}

// GuarantorCandidates lists accounts able to vouch for the applicant: savings
// at least the applicant's, and no live guarantee already committed.
func (s *eligibilityService) GuarantorCandidates(ctx context.Context, applicantAccountID int32) ([]domain.Account, error) {
	applicant, err := s.accountRepo.GetByID(ctx, applicantAccountID)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.ListGuarantorCandidates(ctx, applicantAccountID, applicant.TotalSavings)
}
