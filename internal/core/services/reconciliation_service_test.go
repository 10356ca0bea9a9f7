package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/core/services"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockFloatRepo *MockFloatAccountReader
	mockMappings  *MockMappingResolver
	service       portssvc.ReconciliationSvcFacade

	branchID string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockFloatRepo = new(MockFloatAccountReader)
	suite.mockMappings = new(MockMappingResolver)
	suite.service = services.NewReconciliationService(
		suite.mockFloatRepo, suite.mockMappings, decimal.New(1, -2)) // epsilon 0.01
	suite.branchID = "BR-ACCRA-01"
}

func (suite *ReconciliationServiceTestSuite) floatWithBalance(id string, balance decimal.Decimal) domain.FloatAccount {
	return domain.FloatAccount{
		FloatAccountID: id,
		BranchID:       suite.branchID,
		AccountType:    domain.FloatMomo,
		CurrentBalance: balance,
		IsActive:       true,
	}
}

func (suite *ReconciliationServiceTestSuite) mainWithBalance(balance decimal.Decimal) *domain.GLAccount {
	return &domain.GLAccount{
		AccountID: uuid.NewString(),
		Category:  domain.Asset,
		Balance:   balance,
		IsActive:  true,
	}
}

func (suite *ReconciliationServiceTestSuite) TestVariance_SignedDelta() {
	ctx := context.Background()
	floatAccount := suite.floatWithBalance("flt-mtn-001", decimal.NewFromInt(100))
	mainAcct := suite.mainWithBalance(decimal.NewFromInt(90))

	suite.mockFloatRepo.On("FindFloatAccountByID", ctx, "flt-mtn-001").Return(&floatAccount, nil).Once()
	suite.mockMappings.On("Resolve", ctx, "flt-mtn-001", domain.RoleMain).Return(mainAcct, nil).Once()

	report, err := suite.service.Variance(ctx, "flt-mtn-001")

	suite.Require().NoError(err)
	suite.Equal(mainAcct.AccountID, report.GLAccountID)
	suite.True(report.FloatBalance.Equal(decimal.NewFromInt(100)))
	suite.True(report.GLBalance.Equal(decimal.NewFromInt(90)))
	suite.True(report.Delta.Equal(decimal.NewFromInt(10)), "delta is float minus GL")
}

func (suite *ReconciliationServiceTestSuite) TestVariance_NoMainMapping() {
	ctx := context.Background()
	floatAccount := suite.floatWithBalance("flt-mtn-001", decimal.NewFromInt(100))

	suite.mockFloatRepo.On("FindFloatAccountByID", ctx, "flt-mtn-001").Return(&floatAccount, nil).Once()
	suite.mockMappings.On("Resolve", ctx, "flt-mtn-001", domain.RoleMain).Return(nil, apperrors.ErrMappingNotFound).Once()

	_, err := suite.service.Variance(ctx, "flt-mtn-001")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMappingNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestReport_FiltersAndSkips() {
	ctx := context.Background()
	balanced := suite.floatWithBalance("flt-balanced", decimal.NewFromInt(500))
	noisy := suite.floatWithBalance("flt-noise", decimal.RequireFromString("500.005"))
	variant := suite.floatWithBalance("flt-variant", decimal.NewFromInt(480))
	unmapped := suite.floatWithBalance("flt-unmapped", decimal.NewFromInt(50))

	suite.mockFloatRepo.On("ListFloatAccounts", ctx, suite.branchID).
		Return([]domain.FloatAccount{balanced, noisy, variant, unmapped}, nil).Once()
	suite.mockMappings.On("Resolve", ctx, "flt-balanced", domain.RoleMain).
		Return(suite.mainWithBalance(decimal.NewFromInt(500)), nil).Once()
	// Sub-epsilon difference is rounding noise, not a variance.
	suite.mockMappings.On("Resolve", ctx, "flt-noise", domain.RoleMain).
		Return(suite.mainWithBalance(decimal.NewFromInt(500)), nil).Once()
	suite.mockMappings.On("Resolve", ctx, "flt-variant", domain.RoleMain).
		Return(suite.mainWithBalance(decimal.NewFromInt(500)), nil).Once()
	// A float with no MAIN mapping is skipped, not a report failure.
	suite.mockMappings.On("Resolve", ctx, "flt-unmapped", domain.RoleMain).
		Return(nil, apperrors.ErrMappingNotFound).Once()

	reports, err := suite.service.Report(ctx, suite.branchID)

	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)
	suite.Equal("flt-variant", reports[0].FloatAccountID)
	suite.True(reports[0].Delta.Equal(decimal.NewFromInt(-20)), "GL ahead of float yields a negative delta")
}

func (suite *ReconciliationServiceTestSuite) TestReport_EmptyBranch() {
	ctx := context.Background()
	suite.mockFloatRepo.On("ListFloatAccounts", ctx, suite.branchID).
		Return([]domain.FloatAccount{}, nil).Once()

	reports, err := suite.service.Report(ctx, suite.branchID)

	suite.Require().NoError(err)
	suite.Empty(reports)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
