package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/parish-dms/parish_ledger_app/internal/apperrors"
	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type ReferenceServiceTestSuite struct {
	suite.Suite
	mockCounterRepo *MockReferenceCounterRepository
	service         portssvc.ReferenceSvcFacade
}

func (suite *ReferenceServiceTestSuite) SetupTest() {
	suite.mockCounterRepo = new(MockReferenceCounterRepository)
	suite.service = services.NewReferenceService(suite.mockCounterRepo, 3)
}

func (suite *ReferenceServiceTestSuite) TestGenerate_Format() {
	ctx := context.Background()
	asOf := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	suite.mockCounterRepo.On("ClaimNext", ctx, "TXN", 2025, time.March).Return(int64(7), nil).Once()

	ref, err := suite.service.Generate(ctx, "TXN", asOf)

	suite.Require().NoError(err)
	suite.Equal("TXN-202503-0007", ref)
	suite.mockCounterRepo.AssertExpectations(suite.T())
}

func (suite *ReferenceServiceTestSuite) TestGenerate_NormalizesScope() {
	ctx := context.Background()
	asOf := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	suite.mockCounterRepo.On("ClaimNext", ctx, "CONTRA", 2025, time.December).Return(int64(42), nil).Once()

	ref, err := suite.service.Generate(ctx, " contra ", asOf)

	suite.Require().NoError(err)
	suite.Equal("CONTRA-202512-0042", ref)
	suite.mockCounterRepo.AssertExpectations(suite.T())
}

func (suite *ReferenceServiceTestSuite) TestGenerate_EmptyScope() {
	ctx := context.Background()

	_, err := suite.service.Generate(ctx, "  ", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCounterRepo.AssertNotCalled(suite.T(), "ClaimNext")
}

func (suite *ReferenceServiceTestSuite) TestGenerate_RetriesThenSucceeds() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	claimErr := errors.New("deadlock detected")

	suite.mockCounterRepo.On("ClaimNext", ctx, "TXN", 2025, time.June).Return(int64(0), claimErr).Twice()
	suite.mockCounterRepo.On("ClaimNext", ctx, "TXN", 2025, time.June).Return(int64(13), nil).Once()

	ref, err := suite.service.Generate(ctx, "TXN", asOf)

	suite.Require().NoError(err)
	suite.Equal("TXN-202506-0013", ref)
	suite.mockCounterRepo.AssertExpectations(suite.T())
}

func (suite *ReferenceServiceTestSuite) TestGenerate_ExhaustedRetries() {
	ctx := context.Background()
	asOf := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	claimErr := errors.New("deadlock detected")

	suite.mockCounterRepo.On("ClaimNext", ctx, "TXN", 2025, time.June).Return(int64(0), claimErr).Times(3)

	_, err := suite.service.Generate(ctx, "TXN", asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrency)
	suite.mockCounterRepo.AssertExpectations(suite.T())
}

func TestReferenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReferenceServiceTestSuite))
}
