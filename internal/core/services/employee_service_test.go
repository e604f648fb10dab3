package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/core/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/sgoap/sgoap-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.Employee, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployees(ctx context.Context, department string, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, department, limit, offset)
	var employees []domain.Employee
	if args.Get(0) != nil {
		employees = args.Get(0).([]domain.Employee)
	}
	return employees, args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdatePassword(ctx context.Context, employeeID string, passwordHash string, mustChange bool, updatedBy string, at time.Time) error {
	args := m.Called(ctx, employeeID, passwordHash, mustChange, updatedBy, at)
	return args.Error(0)
}

func (m *MockEmployeeRepository) MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, employeeID, deletedAt, deletedBy)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SaveResetRequest(ctx context.Context, rr domain.PasswordResetRequest) error {
	args := m.Called(ctx, rr)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindResetRequestByID(ctx context.Context, resetID string) (*domain.PasswordResetRequest, error) {
	args := m.Called(ctx, resetID)
	var rr *domain.PasswordResetRequest
	if args.Get(0) != nil {
		rr = args.Get(0).(*domain.PasswordResetRequest)
	}
	return rr, args.Error(1)
}

func (m *MockEmployeeRepository) MarkResetRequestProcessed(ctx context.Context, resetID string, processedBy string, at time.Time) error {
	args := m.Called(ctx, resetID, processedBy, at)
	return args.Error(0)
}

// --- Mock Mailer ---
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// --- Test Suite ---
type EmployeeServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockEmployeeRepository
	mockMailer *MockMailer
	service    portssvc.EmployeeSvcFacade

	admin    domain.Actor
	employee domain.Actor
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockEmployeeRepository)
	suite.mockMailer = new(MockMailer)
	suite.service = services.NewEmployeeService(suite.mockRepo, suite.mockMailer)

	suite.admin = domain.Actor{EmployeeID: "emp-admin", Role: domain.RoleAdmin, Department: "IT"}
	suite.employee = domain.Actor{EmployeeID: "emp-1", Role: domain.RoleEmployee, Department: "Engineering"}
}

func (suite *EmployeeServiceTestSuite) activeEmployee(password string) *domain.Employee {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.Employee{
		EmployeeID:         uuid.NewString(),
		Name:               "Marta Nowak",
		Email:              "marta.nowak@example.com",
		Role:               domain.RoleEmployee,
		Department:         "Engineering",
		Position:           "Engineer",
		HireDate:           time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:             domain.EmployeeActive,
		PasswordHash:       hash,
		MustChangePassword: false,
		AuthProvider:       domain.ProviderLocal,
	}
}

// --- CreateEmployee ---

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_GeneratesBootstrapPassword() {
	ctx := context.Background()
	req := dto.CreateEmployeeRequest{
		Name:       "Jan Kowalski",
		Email:      "jan.kowalski@example.com",
		Role:       "employee",
		Department: "Engineering",
		Position:   "Engineer",
		HireDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindEmployeeByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveEmployee", ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.Email == req.Email &&
			e.Status == domain.EmployeeActive &&
			e.MustChangePassword &&
			e.AuthProvider == domain.ProviderLocal &&
			e.PasswordHash != ""
	})).Return(nil).Once()

	created, password, err := suite.service.CreateEmployee(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Len(password, 8)
	suite.True(utils.CheckPasswordHash(password, created.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_NonAdminForbidden() {
	ctx := context.Background()
	req := dto.CreateEmployeeRequest{Name: "X", Email: "x@example.com", Role: "employee", Department: "Engineering", HireDate: time.Now()}

	created, password, err := suite.service.CreateEmployee(ctx, suite.employee, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.Empty(password)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEmployee", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestCreateEmployee_DuplicateEmail() {
	ctx := context.Background()
	existing := suite.activeEmployee("irrelevant")
	req := dto.CreateEmployeeRequest{
		Name: "Marta Nowak", Email: existing.Email, Role: "employee",
		Department: "Engineering", HireDate: time.Now(),
	}

	suite.mockRepo.On("FindEmployeeByEmail", ctx, existing.Email).Return(existing, nil).Once()

	created, _, err := suite.service.CreateEmployee(ctx, suite.admin, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEmployee", mock.Anything, mock.Anything)
}

// --- Authenticate ---

func (suite *EmployeeServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	employee := suite.activeEmployee("correct-horse")

	suite.mockRepo.On("FindEmployeeByEmail", ctx, employee.Email).Return(employee, nil).Once()

	got, err := suite.service.Authenticate(ctx, employee.Email, "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(employee.EmployeeID, got.EmployeeID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()

	suite.mockRepo.On("FindEmployeeByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	// Indistinguishable from a wrong password.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *EmployeeServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	employee := suite.activeEmployee("correct-horse")

	suite.mockRepo.On("FindEmployeeByEmail", ctx, employee.Email).Return(employee, nil).Once()

	got, err := suite.service.Authenticate(ctx, employee.Email, "wrong-horse")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *EmployeeServiceTestSuite) TestAuthenticate_InactiveAccount() {
	ctx := context.Background()
	employee := suite.activeEmployee("correct-horse")
	employee.Status = domain.EmployeeInactive

	suite.mockRepo.On("FindEmployeeByEmail", ctx, employee.Email).Return(employee, nil).Once()

	got, err := suite.service.Authenticate(ctx, employee.Email, "correct-horse")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- ChangePassword ---

func (suite *EmployeeServiceTestSuite) TestChangePassword_Success() {
	ctx := context.Background()
	employee := suite.activeEmployee("old-password")

	suite.mockRepo.On("FindEmployeeByID", ctx, employee.EmployeeID).Return(employee, nil).Once()
	suite.mockRepo.On("UpdatePassword", ctx, employee.EmployeeID,
		mock.MatchedBy(func(hash string) bool {
			return utils.CheckPasswordHash("new-password-1", hash)
		}),
		false, employee.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.ChangePassword(ctx, employee.EmployeeID, dto.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password-1",
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestChangePassword_WrongCurrentPassword() {
	ctx := context.Background()
	employee := suite.activeEmployee("old-password")

	suite.mockRepo.On("FindEmployeeByID", ctx, employee.EmployeeID).Return(employee, nil).Once()

	err := suite.service.ChangePassword(ctx, employee.EmployeeID, dto.ChangePasswordRequest{
		CurrentPassword: "not-the-old-password",
		NewPassword:     "new-password-1",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePassword",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ProcessPasswordReset ---

func (suite *EmployeeServiceTestSuite) pendingReset(employeeID string) *domain.PasswordResetRequest {
	return &domain.PasswordResetRequest{
		ResetID:     uuid.NewString(),
		EmployeeID:  employeeID,
		Status:      domain.ResetPending,
		RequestedAt: time.Now().Add(-time.Hour),
	}
}

func (suite *EmployeeServiceTestSuite) TestProcessPasswordReset_EmailDelivered() {
	ctx := context.Background()
	employee := suite.activeEmployee("old-password")
	rr := suite.pendingReset(employee.EmployeeID)

	suite.mockRepo.On("FindResetRequestByID", ctx, rr.ResetID).Return(rr, nil).Once()
	suite.mockRepo.On("FindEmployeeByID", ctx, employee.EmployeeID).Return(employee, nil).Once()
	suite.mockRepo.On("MarkResetRequestProcessed", ctx, rr.ResetID, suite.admin.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("UpdatePassword", ctx, employee.EmployeeID, mock.AnythingOfType("string"),
		true, suite.admin.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockMailer.On("Send", ctx, employee.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	resp, err := suite.service.ProcessPasswordReset(ctx, suite.admin, dto.ResetPasswordRequest{RequestID: rr.ResetID})

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.True(resp.EmailSent)
	suite.Empty(resp.NewPassword)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestProcessPasswordReset_EmailFailureReturnsPassword() {
	ctx := context.Background()
	employee := suite.activeEmployee("old-password")
	rr := suite.pendingReset(employee.EmployeeID)

	suite.mockRepo.On("FindResetRequestByID", ctx, rr.ResetID).Return(rr, nil).Once()
	suite.mockRepo.On("FindEmployeeByID", ctx, employee.EmployeeID).Return(employee, nil).Once()
	suite.mockRepo.On("MarkResetRequestProcessed", ctx, rr.ResetID, suite.admin.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("UpdatePassword", ctx, employee.EmployeeID, mock.AnythingOfType("string"),
		true, suite.admin.EmployeeID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockMailer.On("Send", ctx, employee.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(assert.AnError).Once()

	resp, err := suite.service.ProcessPasswordReset(ctx, suite.admin, dto.ResetPasswordRequest{RequestID: rr.ResetID})

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.False(resp.EmailSent)
	suite.Len(resp.NewPassword, 8)
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestProcessPasswordReset_AlreadyProcessed() {
	ctx := context.Background()
	rr := suite.pendingReset("emp-x")
	rr.Status = domain.ResetProcessed

	suite.mockRepo.On("FindResetRequestByID", ctx, rr.ResetID).Return(rr, nil).Once()

	resp, err := suite.service.ProcessPasswordReset(ctx, suite.admin, dto.ResetPasswordRequest{RequestID: rr.ResetID})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkResetRequestProcessed",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestProcessPasswordReset_NonAdminForbidden() {
	ctx := context.Background()

	resp, err := suite.service.ProcessPasswordReset(ctx, suite.employee, dto.ResetPasswordRequest{RequestID: "reset-1"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindResetRequestByID", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestProcessPasswordReset_ConcurrentClaimConflict() {
	ctx := context.Background()
	employee := suite.activeEmployee("old-password")
	rr := suite.pendingReset(employee.EmployeeID)

	suite.mockRepo.On("FindResetRequestByID", ctx, rr.ResetID).Return(rr, nil).Once()
	suite.mockRepo.On("FindEmployeeByID", ctx, employee.EmployeeID).Return(employee, nil).Once()
	suite.mockRepo.On("MarkResetRequestProcessed", ctx, rr.ResetID, suite.admin.EmployeeID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	resp, err := suite.service.ProcessPasswordReset(ctx, suite.admin, dto.ResetPasswordRequest{RequestID: rr.ResetID})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// A lost claim must not rotate the credential.
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePassword",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- FindOrLinkEmployeeByGoogleDetails ---

func (suite *EmployeeServiceTestSuite) TestGoogleLink_AlreadyLinked() {
	ctx := context.Background()
	employee := suite.activeEmployee("pw")
	employee.AuthProvider = domain.ProviderGoogle
	employee.ProviderUserID = "google-sub-1"

	suite.mockRepo.On("FindEmployeeByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-1").Return(employee, nil).Once()

	got, err := suite.service.FindOrLinkEmployeeByGoogleDetails(ctx, &domain.GoogleUserInfo{ID: "google-sub-1", Email: employee.Email, VerifiedEmail: true})

	suite.Require().NoError(err)
	suite.Equal(employee.EmployeeID, got.EmployeeID)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEmployee", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestGoogleLink_LinksByVerifiedEmail() {
	ctx := context.Background()
	employee := suite.activeEmployee("pw")

	suite.mockRepo.On("FindEmployeeByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindEmployeeByEmail", ctx, employee.Email).Return(employee, nil).Once()
	suite.mockRepo.On("UpdateEmployee", ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.AuthProvider == domain.ProviderGoogle && e.ProviderUserID == "google-sub-2"
	})).Return(nil).Once()

	got, err := suite.service.FindOrLinkEmployeeByGoogleDetails(ctx, &domain.GoogleUserInfo{ID: "google-sub-2", Email: employee.Email, VerifiedEmail: true})

	suite.Require().NoError(err)
	suite.Equal(domain.ProviderGoogle, got.AuthProvider)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestGoogleLink_UnknownIdentityRefused() {
	ctx := context.Background()

	suite.mockRepo.On("FindEmployeeByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindEmployeeByEmail", ctx, "stranger@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.FindOrLinkEmployeeByGoogleDetails(ctx, &domain.GoogleUserInfo{ID: "google-sub-3", Email: "stranger@example.com", VerifiedEmail: true})

	suite.Require().Error(err)
	suite.Nil(got)
	// Unknown identities are refused, never self-provisioned.
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEmployee", mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestGoogleLink_UnverifiedEmailRefused() {
	ctx := context.Background()

	suite.mockRepo.On("FindEmployeeByProviderDetails", ctx, domain.ProviderGoogle, "google-sub-4").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.FindOrLinkEmployeeByGoogleDetails(ctx, &domain.GoogleUserInfo{ID: "google-sub-4", Email: "someone@example.com", VerifiedEmail: false})

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindEmployeeByEmail", mock.Anything, mock.Anything)
}

// --- DeactivateEmployee ---

func (suite *EmployeeServiceTestSuite) TestDeactivateEmployee_SelfRefused() {
	ctx := context.Background()

	err := suite.service.DeactivateEmployee(ctx, suite.admin.EmployeeID, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkEmployeeDeleted",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}
