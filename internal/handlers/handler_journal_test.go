package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/dto"
	"github.com/kicho-app/kicho_backend/internal/handlers"
	"github.com/kicho-app/kicho_backend/internal/middleware"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalHeader, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}
func (m *MockJournalService) UpdateJournal(ctx context.Context, journalNumber string, req dto.UpdateJournalRequest, userID string) (*domain.JournalHeader, error) {
	args := m.Called(ctx, journalNumber, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}
func (m *MockJournalService) DeleteJournal(ctx context.Context, journalNumber string, userID string) error {
	args := m.Called(ctx, journalNumber, userID)
	return args.Error(0)
}
func (m *MockJournalService) GetJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalHeader, error) {
	args := m.Called(ctx, journalNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalHeader), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) PreviewNextNumber(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}
func (m *MockJournalService) CheckSequenceIntegrity(ctx context.Context, date *time.Time) ([]domain.SequenceAnomaly, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SequenceAnomaly), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
	userID             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "kicho-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "user-1"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockJournalService = new(MockJournalService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterJournalRoutes(v1, suite.mockJournalService)
}

func (suite *JournalHandlerTestSuite) authorizedRequest(method, url string, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func taxCodePtr(s string) *string { return &s }

func sampleCreateRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		JournalDate: "2026-03-10",
		Description: "Office rent",
		Lines: []dto.CreateJournalLineRequest{
			{DebitCredit: "DEBIT", AccountCode: "1000", BaseAmount: decimal.NewFromInt(1000), TaxCode: taxCodePtr("00")},
			{DebitCredit: "CREDIT", AccountCode: "4000", BaseAmount: decimal.NewFromInt(1000), TaxCode: taxCodePtr("00")},
		},
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateJournal_Success() {
	createReq := sampleCreateRequest()
	created := &domain.JournalHeader{
		JournalNumber: "202603100000001",
		JournalDate:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		Description:   "Office rent",
		TotalAmount:   decimal.NewFromInt(1000),
	}

	suite.mockJournalService.On("CreateJournal",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.CreateJournalRequest) bool {
			return r.JournalDate == createReq.JournalDate && len(r.Lines) == 2
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/journals", createReq))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("202603100000001", resp.JournalNumber)
	suite.Equal("2026-03-10", resp.JournalDate)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_Unauthorized() {
	payload, _ := json.Marshal(sampleCreateRequest())
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals", bytes.NewReader(payload))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournal")
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_Unbalanced() {
	suite.mockJournalService.On("CreateJournal",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything, suite.userID,
	).Return(nil, apperrors.NewBusinessError("journal does not balance: debit total 500, credit total 1000", apperrors.ErrUnbalanced)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/journals", sampleCreateRequest()))

	suite.Equal(http.StatusConflict, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("business", body["kind"])
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_ValidationFields() {
	suite.mockJournalService.On("CreateJournal",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything, suite.userID,
	).Return(nil, apperrors.NewValidationError("account does not exist", map[string]string{"accountCode": "5555"})).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/journals", sampleCreateRequest()))

	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("validation", body["kind"])
	fields, ok := body["fields"].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("5555", fields["accountCode"])
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_MissingLines() {
	createReq := dto.CreateJournalRequest{JournalDate: "2026-03-10"}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/journals", createReq))

	// Binding rejects a journal with zero lines before the service is reached
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournal")
}

func (suite *JournalHandlerTestSuite) TestGetJournal_NotFound() {
	suite.mockJournalService.On("GetJournalByNumber",
		mock.AnythingOfType("*context.valueCtx"), "202603100000009",
	).Return(nil, apperrors.NewNotFoundError("journal 202603100000009 not found")).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/journals/202603100000009", nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListJournals_Success() {
	expected := &dto.ListJournalsResponse{
		Journals: []dto.JournalResponse{
			{JournalNumber: "202603100000002", JournalDate: "2026-03-10"},
			{JournalNumber: "202603100000001", JournalDate: "2026-03-10"},
		},
	}
	suite.mockJournalService.On("ListJournals",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(p dto.ListJournalsParams) bool { return p.Limit == 10 }),
	).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/journals?limit=10", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Journals, 2)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestUpdateJournal_Success() {
	journalNumber := "202603100000001"
	updated := &domain.JournalHeader{
		JournalNumber: journalNumber,
		JournalDate:   time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:   decimal.NewFromInt(2000),
	}
	newDate := "2026-04-01"
	updateReq := dto.UpdateJournalRequest{
		JournalDate: &newDate,
		Lines: []dto.CreateJournalLineRequest{
			{DebitCredit: "DEBIT", AccountCode: "1000", BaseAmount: decimal.NewFromInt(2000), TaxCode: taxCodePtr("00")},
			{DebitCredit: "CREDIT", AccountCode: "4000", BaseAmount: decimal.NewFromInt(2000), TaxCode: taxCodePtr("00")},
		},
	}

	suite.mockJournalService.On("UpdateJournal",
		mock.AnythingOfType("*context.valueCtx"), journalNumber, mock.Anything, suite.userID,
	).Return(updated, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPut, "/api/v1/journals/"+journalNumber, updateReq))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(journalNumber, resp.JournalNumber)
}

func (suite *JournalHandlerTestSuite) TestDeleteJournal_Success() {
	journalNumber := "202603100000001"
	suite.mockJournalService.On("DeleteJournal",
		mock.AnythingOfType("*context.valueCtx"), journalNumber, suite.userID,
	).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodDelete, "/api/v1/journals/"+journalNumber, nil))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPreviewNextNumber() {
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	suite.mockJournalService.On("PreviewNextNumber",
		mock.AnythingOfType("*context.valueCtx"), date,
	).Return("202603100000042", nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/journals/next-number?date=2026-03-10", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.NextNumberResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("202603100000042", resp.JournalNumber)
}

func (suite *JournalHandlerTestSuite) TestPreviewNextNumber_BadDate() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/journals/next-number?date=tomorrow", nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PreviewNextNumber")
}

func (suite *JournalHandlerTestSuite) TestCheckSequenceIntegrity_Empty() {
	suite.mockJournalService.On("CheckSequenceIntegrity",
		mock.AnythingOfType("*context.valueCtx"), (*time.Time)(nil),
	).Return([]domain.SequenceAnomaly(nil), nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/journals/sequence-integrity", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SequenceIntegrityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotNil(resp.Anomalies)
	suite.Len(resp.Anomalies, 0)
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
