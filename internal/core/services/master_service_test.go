package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/core/services"
	"github.com/kicho-app/kicho_backend/internal/dto"
)

type MasterServiceTestSuite struct {
	suite.Suite
	mockMasterRepo *MockMasterRepository
	service        portssvc.MasterSvcFacade
	userID         string
}

func (suite *MasterServiceTestSuite) SetupTest() {
	suite.mockMasterRepo = new(MockMasterRepository)
	suite.service = services.NewMasterService(suite.mockMasterRepo)
	suite.userID = "user-1"
}

func (suite *MasterServiceTestSuite) TestListActiveAccounts() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountCode: "1000", Name: "Cash", IsActive: true},
		{AccountCode: "4000", Name: "Sales", IsActive: true},
	}
	suite.mockMasterRepo.On("FindActiveAccounts", ctx).Return(accounts, nil).Once()

	result, err := suite.service.ListActiveAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(accounts, result)
}

func (suite *MasterServiceTestSuite) TestCanDeleteMaster_Clean() {
	ctx := context.Background()
	suite.mockMasterRepo.On("CountDetailReferences", ctx, domain.MasterPartner, "P001").
		Return(int64(0), nil).Once()

	check, err := suite.service.CanDeleteMaster(ctx, domain.MasterPartner, "P001")

	suite.Require().NoError(err)
	suite.True(check.Deletable)
	suite.Equal(int64(0), check.References)
	suite.Empty(check.Reason)
}

func (suite *MasterServiceTestSuite) TestCanDeleteMaster_Referenced() {
	ctx := context.Background()
	suite.mockMasterRepo.On("CountDetailReferences", ctx, domain.MasterAccount, "1000").
		Return(int64(7), nil).Once()

	check, err := suite.service.CanDeleteMaster(ctx, domain.MasterAccount, "1000")

	suite.Require().NoError(err)
	suite.False(check.Deletable)
	suite.Equal(int64(7), check.References)
	suite.NotEmpty(check.Reason)
}

func (suite *MasterServiceTestSuite) TestDeleteMaster_InUse() {
	ctx := context.Background()
	repoErr := &apperrors.AppError{
		Kind:    apperrors.KindBusiness,
		Message: "account 1000 is referenced by 3 journal detail line(s)",
		Err:     apperrors.ErrMasterInUse,
	}
	suite.mockMasterRepo.On("DeleteMaster", ctx, domain.MasterAccount, "1000").
		Return(repoErr).Once()

	err := suite.service.DeleteMaster(ctx, domain.MasterAccount, "1000", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMasterInUse)
	suite.Equal(apperrors.KindBusiness, apperrors.KindOf(err))
}

func (suite *MasterServiceTestSuite) TestUpdateAccount_PatchesAndBumpsVersion() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountCode: "1000",
		Name:        "Cash",
		IsActive:    true,
		Version:     3,
	}
	newName := "Petty cash"
	inactive := false
	req := dto.UpdateAccountRequest{
		Name:     &newName,
		IsActive: &inactive,
		Version:  3,
	}

	suite.mockMasterRepo.On("FindAccountByCode", ctx, "1000").Return(existing, nil).Once()

	var saved domain.Account
	suite.mockMasterRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account"), int64(3)).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, "1000", req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Petty cash", account.Name)
	suite.False(account.IsActive)
	suite.Equal(int64(4), account.Version)
	suite.Equal("Petty cash", saved.Name)
	suite.Equal(suite.userID, saved.LastUpdatedBy)
	// Fields absent from the request survive the patch
	suite.Nil(saved.DefaultTaxCode)
}

func (suite *MasterServiceTestSuite) TestUpdateAccount_StaleVersion() {
	ctx := context.Background()
	existing := &domain.Account{AccountCode: "1000", Name: "Cash", IsActive: true, Version: 5}
	newName := "Cash v2"
	req := dto.UpdateAccountRequest{Name: &newName, Version: 3}

	suite.mockMasterRepo.On("FindAccountByCode", ctx, "1000").Return(existing, nil).Once()
	suite.mockMasterRepo.On("UpdateAccount", ctx, mock.Anything, int64(3)).
		Return(&apperrors.AppError{
			Kind:    apperrors.KindBusiness,
			Message: "account 1000 was updated concurrently",
			Err:     apperrors.ErrConflict,
		}).Once()

	_, err := suite.service.UpdateAccount(ctx, "1000", req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *MasterServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	suite.mockMasterRepo.On("FindAccountByCode", ctx, "4040").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, "4040", dto.UpdateAccountRequest{Version: 1}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMasterRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func (suite *MasterServiceTestSuite) TestReparentMaster_Success() {
	ctx := context.Background()
	parent := "1000"
	grandparent := &domain.Account{AccountCode: "1000", Name: "Cash", IsActive: true}

	suite.mockMasterRepo.On("FindAccountByCode", ctx, "1000").Return(grandparent, nil).Once()
	suite.mockMasterRepo.On("SetMasterParent", ctx, domain.MasterAccount, "1010", &parent, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.ReparentMaster(ctx, domain.MasterAccount, "1010", &parent, suite.userID)

	suite.Require().NoError(err)
	suite.mockMasterRepo.AssertExpectations(suite.T())
}

func (suite *MasterServiceTestSuite) TestReparentMaster_ToRoot() {
	ctx := context.Background()
	suite.mockMasterRepo.On("SetMasterParent", ctx, domain.MasterAnalysisCode, "AC1", (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.ReparentMaster(ctx, domain.MasterAnalysisCode, "AC1", nil, suite.userID)

	suite.Require().NoError(err)
	suite.mockMasterRepo.AssertNotCalled(suite.T(), "FindAnalysisCodeByCode")
}

func (suite *MasterServiceTestSuite) TestReparentMaster_SelfParent() {
	ctx := context.Background()
	self := "1000"

	err := suite.service.ReparentMaster(ctx, domain.MasterAccount, "1000", &self, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMasterRepo.AssertNotCalled(suite.T(), "SetMasterParent")
}

func (suite *MasterServiceTestSuite) TestReparentMaster_CycleDetected() {
	ctx := context.Background()
	// Moving A under C while C descends from A (C -> B -> A) closes a cycle.
	parentOfC := "B"
	parentOfB := "A"
	newParent := "C"

	suite.mockMasterRepo.On("FindAccountByCode", ctx, "C").
		Return(&domain.Account{AccountCode: "C", ParentCode: &parentOfC}, nil).Once()
	suite.mockMasterRepo.On("FindAccountByCode", ctx, "B").
		Return(&domain.Account{AccountCode: "B", ParentCode: &parentOfB}, nil).Once()

	err := suite.service.ReparentMaster(ctx, domain.MasterAccount, "A", &newParent, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMasterRepo.AssertNotCalled(suite.T(), "SetMasterParent")
}

func (suite *MasterServiceTestSuite) TestReparentMaster_FlatKindRejected() {
	ctx := context.Background()
	parent := "P001"

	err := suite.service.ReparentMaster(ctx, domain.MasterPartner, "P002", &parent, suite.userID)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
}

func (suite *MasterServiceTestSuite) TestReparentMaster_MissingParent() {
	ctx := context.Background()
	parent := "9090"

	suite.mockMasterRepo.On("FindAccountByCode", ctx, "9090").
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReparentMaster(ctx, domain.MasterAccount, "1000", &parent, suite.userID)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
	suite.mockMasterRepo.AssertNotCalled(suite.T(), "SetMasterParent")
}

// --- Run Test Suite ---
func TestMasterService(t *testing.T) {
	suite.Run(t, new(MasterServiceTestSuite))
}
