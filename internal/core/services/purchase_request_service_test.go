package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/core/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PurchaseRequestRepository ---
type MockPurchaseRequestRepository struct {
	mock.Mock
}

func (m *MockPurchaseRequestRepository) SaveRequest(ctx context.Context, req domain.PurchaseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPurchaseRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	args := m.Called(ctx, requestID)
	var req *domain.PurchaseRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.PurchaseRequest)
	}
	return req, args.Error(1)
}

func (m *MockPurchaseRequestRepository) ListRequests(ctx context.Context, params portsrepo.ListRequestsParams) ([]domain.PurchaseRequest, *string, error) {
	args := m.Called(ctx, params)
	var reqs []domain.PurchaseRequest
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.PurchaseRequest)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return reqs, token, args.Error(2)
}

func (m *MockPurchaseRequestRepository) UpdateRequest(ctx context.Context, req domain.PurchaseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPurchaseRequestRepository) TransitionStatus(ctx context.Context, requestID string, expected domain.RequestStatus, next domain.RequestStatus, entry domain.WorkflowLogEntry, actorID string, at time.Time) error {
	args := m.Called(ctx, requestID, expected, next, entry, actorID, at)
	return args.Error(0)
}

func (m *MockPurchaseRequestRepository) FindLogEntriesByRequestID(ctx context.Context, requestID string) ([]domain.WorkflowLogEntry, error) {
	args := m.Called(ctx, requestID)
	var entries []domain.WorkflowLogEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.WorkflowLogEntry)
	}
	return entries, args.Error(1)
}

func (m *MockPurchaseRequestRepository) CountRequestsByStatuses(ctx context.Context, statuses []domain.RequestStatus) (int, error) {
	args := m.Called(ctx, statuses)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type PurchaseRequestServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPurchaseRequestRepository
	service  portssvc.PurchaseRequestSvcFacade

	requestor      domain.Actor
	financeActor   domain.Actor
	legalActor     domain.Actor
	executiveActor domain.Actor
}

func (suite *PurchaseRequestServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPurchaseRequestRepository)
	suite.service = services.NewPurchaseRequestService(suite.mockRepo)

	suite.requestor = domain.Actor{EmployeeID: "emp-requestor", Role: domain.RoleEmployee, Department: "Engineering"}
	suite.financeActor = domain.Actor{EmployeeID: "emp-finance", Role: domain.RoleEmployee, Department: domain.DeptFinance}
	suite.legalActor = domain.Actor{EmployeeID: "emp-legal", Role: domain.RoleEmployee, Department: domain.DeptLegal}
	suite.executiveActor = domain.Actor{EmployeeID: "emp-exec", Role: domain.RoleExecutive, Department: "Executive"}
}

func (suite *PurchaseRequestServiceTestSuite) requestAt(status domain.RequestStatus) *domain.PurchaseRequest {
	return &domain.PurchaseRequest{
		RequestID:           uuid.NewString(),
		Title:               "Laptops for the new hires",
		Description:         "Six laptops",
		Category:            "Hardware",
		EstimatedCost:       decimal.NewFromInt(9000),
		CurrencyCode:        "EUR",
		Urgency:             domain.UrgencyNormal,
		Status:              status,
		RequestorID:         suite.requestor.EmployeeID,
		RequestorDepartment: suite.requestor.Department,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().Add(-time.Hour),
			CreatedBy: suite.requestor.EmployeeID,
		},
	}
}

// --- CreateRequest ---

func (suite *PurchaseRequestServiceTestSuite) TestCreateRequest_Success() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequestRequest{
		Title:         "Standing desks",
		Description:   "Four desks for the Berlin office",
		Category:      "Furniture",
		EstimatedCost: decimal.NewFromInt(2400),
		CurrencyCode:  "EUR",
		Urgency:       "normal",
	}

	suite.mockRepo.On("SaveRequest", ctx, mock.MatchedBy(func(r domain.PurchaseRequest) bool {
		return r.Status == domain.StatusDraft &&
			r.RequestorID == suite.requestor.EmployeeID &&
			r.RequestorDepartment == suite.requestor.Department
	})).Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.requestor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.StatusDraft, created.Status)
	suite.NotEmpty(created.RequestID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestCreateRequest_NegativeCost() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequestRequest{
		Title:         "Bad request",
		Description:   "Negative cost",
		Category:      "Misc",
		EstimatedCost: decimal.NewFromInt(-1),
		CurrencyCode:  "EUR",
		Urgency:       "low",
	}

	created, err := suite.service.CreateRequest(ctx, suite.requestor, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

// --- SubmitRequest ---

func (suite *PurchaseRequestServiceTestSuite) TestSubmitRequest_Success() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusDraft)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	// Submission writes no log entry, only the status move.
	suite.mockRepo.On("TransitionStatus", ctx, request.RequestID, domain.StatusDraft, domain.StatusSubmitted,
		mock.MatchedBy(func(e domain.WorkflowLogEntry) bool { return e.LogID == "" }),
		suite.requestor.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	submitted, err := suite.service.SubmitRequest(ctx, request.RequestID, suite.requestor)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSubmitted, submitted.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestSubmitRequest_NotRequestor() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusDraft)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	submitted, err := suite.service.SubmitRequest(ctx, request.RequestID, suite.financeActor)

	suite.Require().Error(err)
	suite.Nil(submitted)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "TransitionStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseRequestServiceTestSuite) TestSubmitRequest_NotDraft() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusFinanceReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	submitted, err := suite.service.SubmitRequest(ctx, request.RequestID, suite.requestor)

	suite.Require().Error(err)
	suite.Nil(submitted)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- ReviewRequest ---

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_ApproveAdvancesStage() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusFinanceReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRepo.On("TransitionStatus", ctx, request.RequestID, domain.StatusFinanceReview, domain.StatusProcurementReview,
		mock.MatchedBy(func(e domain.WorkflowLogEntry) bool {
			return e.LogID != "" &&
				e.Stage == domain.StatusFinanceReview &&
				e.Action == domain.ActionApproved &&
				e.ReviewerID == suite.financeActor.EmployeeID
		}),
		suite.financeActor.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.financeActor,
		dto.ReviewRequestRequest{Action: "approved", Comments: "Budget confirmed"})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusProcurementReview, reviewed.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_WrongDepartment() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusFinanceReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.legalActor,
		dto.ReviewRequestRequest{Action: "approved"})

	suite.Require().Error(err)
	suite.Nil(reviewed)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	// A refused review must leave the request untouched.
	suite.mockRepo.AssertNotCalled(suite.T(), "TransitionStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_TerminalStatus() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusRejected)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.executiveActor,
		dto.ReviewRequestRequest{Action: "approved"})

	suite.Require().Error(err)
	suite.Nil(reviewed)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_RejectTerminates() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusExecutiveApproval)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRepo.On("TransitionStatus", ctx, request.RequestID, domain.StatusExecutiveApproval, domain.StatusRejected,
		mock.MatchedBy(func(e domain.WorkflowLogEntry) bool {
			return e.Stage == domain.StatusExecutiveApproval && e.Action == domain.ActionRejected
		}),
		suite.executiveActor.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.executiveActor,
		dto.ReviewRequestRequest{Action: "rejected", Comments: "Over budget this quarter"})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, reviewed.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_RequestedChangesParks() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusLegalReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	// requested_changes records the decision without moving the request.
	suite.mockRepo.On("TransitionStatus", ctx, request.RequestID, domain.StatusLegalReview, domain.StatusLegalReview,
		mock.MatchedBy(func(e domain.WorkflowLogEntry) bool {
			return e.Action == domain.ActionRequestedChanges && e.Stage == domain.StatusLegalReview
		}),
		suite.legalActor.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.legalActor,
		dto.ReviewRequestRequest{Action: "requested_changes", Comments: "Missing vendor terms"})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusLegalReview, reviewed.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_ConcurrentConflict() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusFinanceReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRepo.On("TransitionStatus", ctx, request.RequestID, domain.StatusFinanceReview, domain.StatusProcurementReview,
		mock.AnythingOfType("domain.WorkflowLogEntry"),
		suite.financeActor.EmployeeID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.financeActor,
		dto.ReviewRequestRequest{Action: "approved"})

	suite.Require().Error(err)
	suite.Nil(reviewed)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestReviewRequest_UnknownAction() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusFinanceReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	reviewed, err := suite.service.ReviewRequest(ctx, request.RequestID, suite.financeActor,
		dto.ReviewRequestRequest{Action: "escalated"})

	suite.Require().Error(err)
	suite.Nil(reviewed)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- CancelRequest ---

func (suite *PurchaseRequestServiceTestSuite) TestCancelRequest_Success() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusProcurementReview)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRepo.On("TransitionStatus", ctx, request.RequestID, domain.StatusProcurementReview, domain.StatusCancelled,
		mock.MatchedBy(func(e domain.WorkflowLogEntry) bool { return e.LogID == "" }),
		suite.requestor.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := suite.service.CancelRequest(ctx, request.RequestID, suite.requestor)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, cancelled.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestCancelRequest_AlreadyTerminal() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusApproved)

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	cancelled, err := suite.service.CancelRequest(ctx, request.RequestID, suite.requestor)

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- GetRequestTimeline ---

func (suite *PurchaseRequestServiceTestSuite) TestGetRequestTimeline_ForbiddenOutsideVisibility() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusExecutiveApproval)
	outsider := domain.Actor{EmployeeID: "emp-outsider", Role: domain.RoleEmployee, Department: "Marketing"}

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	entries, err := suite.service.GetRequestTimeline(ctx, request.RequestID, outsider)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLogEntriesByRequestID", mock.Anything, mock.Anything)
}

func (suite *PurchaseRequestServiceTestSuite) TestGetRequestTimeline_RequestorSeesOwn() {
	ctx := context.Background()
	request := suite.requestAt(domain.StatusFinanceReview)
	expected := []domain.WorkflowLogEntry{
		{LogID: uuid.NewString(), RequestID: request.RequestID, Stage: domain.StatusSubmitted, Action: domain.ActionApproved},
	}

	suite.mockRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockRepo.On("FindLogEntriesByRequestID", ctx, request.RequestID).Return(expected, nil).Once()

	entries, err := suite.service.GetRequestTimeline(ctx, request.RequestID, suite.requestor)

	suite.Require().NoError(err)
	suite.Equal(expected, entries)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- ListRequests ---

func (suite *PurchaseRequestServiceTestSuite) TestListRequests_DepartmentViewerScope() {
	ctx := context.Background()

	suite.mockRepo.On("ListRequests", ctx, mock.MatchedBy(func(p portsrepo.ListRequestsParams) bool {
		return !p.Scope.Unrestricted &&
			p.Scope.ViewerID == suite.financeActor.EmployeeID &&
			p.Scope.ViewerDepartment == domain.DeptFinance &&
			len(p.Scope.VisibleStatuses) == 3
	})).Return([]domain.PurchaseRequest{}, nil, nil).Once()

	_, _, err := suite.service.ListRequests(ctx, suite.financeActor, dto.ListRequestsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestListRequests_ElevatedUnrestricted() {
	ctx := context.Background()

	suite.mockRepo.On("ListRequests", ctx, mock.MatchedBy(func(p portsrepo.ListRequestsParams) bool {
		return p.Scope.Unrestricted
	})).Return([]domain.PurchaseRequest{}, nil, nil).Once()

	_, _, err := suite.service.ListRequests(ctx, suite.executiveActor, dto.ListRequestsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseRequestServiceTestSuite) TestListRequests_InvalidStatusFilter() {
	ctx := context.Background()
	badStatus := "in_limbo"

	_, _, err := suite.service.ListRequests(ctx, suite.financeActor, dto.ListRequestsParams{Status: &badStatus, Limit: 20})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListRequests", mock.Anything, mock.Anything)
}

func (suite *PurchaseRequestServiceTestSuite) TestListRequests_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListRequests", ctx, mock.AnythingOfType("repositories.ListRequestsParams")).Return(nil, nil, expectedErr).Once()

	_, _, err := suite.service.ListRequests(ctx, suite.executiveActor, dto.ListRequestsParams{Limit: 20})

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

func TestPurchaseRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseRequestServiceTestSuite))
}
