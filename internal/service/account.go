package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

type accountService struct {
	accountRepo repository.AccountRepository
	savingsRepo repository.SavingsRepository
	welfareRepo repository.WelfareRepository
}

func NewAccountService(accountRepo repository.AccountRepository, savingsRepo repository.SavingsRepository, welfareRepo repository.WelfareRepository) AccountService {
	return &accountService{accountRepo: accountRepo, savingsRepo: savingsRepo, welfareRepo: welfareRepo}
}

func (s *accountService) CreateAccount(ctx context.Context, ownerName, ownerEmail string, accountType domain.AccountType, parentAccountID *int32) (*domain.Account, error) {
	if strings.TrimSpace(ownerName) == "" {
		return nil, domain.NewValidationError("owner name is required")
	}
	switch accountType {
	case domain.AccountTypeMain:
		if parentAccountID != nil {
			return nil, domain.NewValidationError("main accounts cannot have a parent account")
		}
	case domain.AccountTypeSub:
		if parentAccountID == nil {
			return nil, domain.NewValidationError("sub accounts require a parent account")
		}
		parent, err := s.accountRepo.GetByID(ctx, *parentAccountID)
		if err != nil {
			return nil, err
		}
		if parent.AccountType != domain.AccountTypeMain {
			return nil, domain.NewValidationError("parent account must be a main account")
		}
	default:
		return nil, domain.NewValidationError("account type must be main or sub")
	}

	account := &domain.Account{
		OwnerName:       ownerName,
		OwnerEmail:      ownerEmail,
		AccountNumber:   generateAccountNumber(),
		AccountType:     accountType,
		ParentAccountID: parentAccountID,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id int32) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if strings.TrimSpace(accountNumber) == "" {
		return nil, domain.NewValidationError("account number is required")
	}
	return s.accountRepo.GetByNumber(ctx, accountNumber)
}

func (s *accountService) SavingsHistory(ctx context.Context, accountID int32, since time.Time) ([]domain.SavingsRecord, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.savingsRepo.ListByAccount(ctx, accountID, since)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.List(ctx)
}

func (s *accountService) RecordWeeklySavings(ctx context.Context, record *domain.SavingsRecord) error {
	if record.Amount <= 0 {
		return domain.NewValidationError("savings amount must be positive")
	}
	if !record.WeekStart.Before(record.WeekEnd) {
		return domain.NewValidationError("week start must be before week end")
	}
	if _, err := s.accountRepo.GetByID(ctx, record.AccountID); err != nil {
		return err
	}
	return s.savingsRepo.Create(ctx, record)
}

func (s *accountService) WelfareHistory(ctx context.Context, accountID int32) ([]domain.WelfareEntry, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.welfareRepo.ListByAccount(ctx, accountID)
}

func generateAccountNumber() string {
	return "SAC-" + strings.ToUpper(uuid.NewString()[:8])
}
