package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sacco-backend/internal/domain"
	"sacco-backend/internal/repository"
)

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepo) ListGuarantorCandidates(ctx context.Context, applicantID int32, minSavings int64) ([]domain.Account, error) {
	args := m.Called(ctx, applicantID, minSavings)
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) ListByAccount(ctx context.Context, accountID int32, filter repository.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, accountID, filter, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) SumApprovedRepayments(ctx context.Context, loanID int32) (int64, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTransactionRepo) Approve(ctx context.Context, id, approverID int32) error {
	args := m.Called(ctx, id, approverID)
	return args.Error(0)
}
func (m *MockTransactionRepo) Reject(ctx context.Context, id, approverID int32) error {
	args := m.Called(ctx, id, approverID)
	return args.Error(0)
}
func (m *MockTransactionRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) ListByAccount(ctx context.Context, accountID int32) ([]domain.Loan, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByStatus(ctx context.Context, statuses ...domain.LoanStatus) ([]domain.Loan, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListActiveWithBalance(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) AddOverduePenalty(ctx context.Context, loanID int32, periodMonth string, amount int64) (bool, error) {
	args := m.Called(ctx, loanID, periodMonth, amount)
	return args.Bool(0), args.Error(1)
}

// MockSavingsRepo
type MockSavingsRepo struct {
	mock.Mock
}

func (m *MockSavingsRepo) Create(ctx context.Context, record *domain.SavingsRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *MockSavingsRepo) ListByAccount(ctx context.Context, accountID int32, since time.Time) ([]domain.SavingsRecord, error) {
	args := m.Called(ctx, accountID, since)
	return args.Get(0).([]domain.SavingsRecord), args.Error(1)
}
func (m *MockSavingsRepo) CountQualifyingWeeks(ctx context.Context, accountID int32, since time.Time, minAmount int64) (int32, error) {
	args := m.Called(ctx, accountID, since, minAmount)
	return args.Get(0).(int32), args.Error(1)
}

// MockWelfareRepo
type MockWelfareRepo struct {
	mock.Mock
}

func (m *MockWelfareRepo) ListByAccount(ctx context.Context, accountID int32) ([]domain.WelfareEntry, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.WelfareEntry), args.Error(1)
}
func (m *MockWelfareRepo) ChargeAccount(ctx context.Context, accountID int32, amount int64, weekDate time.Time, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, weekDate, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, accountID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, accountID int32) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) LoanStatusChanged(ctx context.Context, ev domain.LoanStatusEvent) {
	m.Called(ctx, ev)
}
func (m *MockNotifier) ReminderCreated(ctx context.Context, ev domain.ReminderEvent) {
	m.Called(ctx, ev)
}

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}
