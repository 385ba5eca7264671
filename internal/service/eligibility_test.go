package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sacco-backend/internal/domain"
)

func TestEligibilityService_LoanEligible(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		weeks int32
		want  bool
	}{
		{"ExactlyEnoughWeeks", 4, true},
		{"MoreThanEnough", 6, true},
		{"OneWeekShort", 3, false},
		{"NoSavings", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := new(MockAccountRepo)
			savingsRepo := new(MockSavingsRepo)
			svc := NewEligibilityService(accountRepo, savingsRepo, testLedgerConfig())

			accountRepo.On("GetByID", ctx, int32(1)).Return(testAccount(1), nil)
			savingsRepo.On("CountQualifyingWeeks", ctx, int32(1), mock.Anything, int64(10000)).
				Return(tt.weeks, nil)

			eligible, err := svc.LoanEligible(ctx, 1)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, eligible)
		})
	}

	t.Run("AccountNotFound", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		svc := NewEligibilityService(accountRepo, new(MockSavingsRepo), testLedgerConfig())

		accountRepo.On("GetByID", ctx, int32(9)).Return(nil, domain.ErrNotFound)

		_, err := svc.LoanEligible(ctx, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEligibilityService_GuarantorCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("UsesApplicantSavingsAsFloor", func(t *testing.T) {
		accountRepo := new(MockAccountRepo)
		svc := NewEligibilityService(accountRepo, new(MockSavingsRepo), testLedgerConfig())

		applicant := testAccount(1) // TotalSavings 80,000
		candidates := []domain.Account{*testAccount(2), *testAccount(3)}
		accountRepo.On("GetByID", ctx, int32(1)).Return(applicant, nil)
		accountRepo.On("ListGuarantorCandidates", ctx, int32(1), int64(80000)).Return(candidates, nil)

		got, err := svc.GuarantorCandidates(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		accountRepo.AssertExpectations(t)
	})
}
