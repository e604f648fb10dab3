package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
	"github.com/sgoap/sgoap-backend/internal/middleware"
	"github.com/sgoap/sgoap-backend/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	employeeService portssvc.EmployeeSvcFacade
	tokenService    portssvc.TokenSvcFacade
	googleService   portssvc.GoogleOAuthHandlerSvcFacade
	frontendBaseURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		employeeService: services.Employee,
		tokenService:    services.TokenService,
		googleService:   services.GoogleOAuthHandler,
		frontendBaseURL: cfg.FrontendBaseURL,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

const oauthStateCookie = "sgoap_oauth_state"

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	// Credential endpoints take 5 attempts per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/google", limitMiddleware, h.GoogleTokenLogin)
		auth.GET("/google/login", h.GoogleLoginRedirect)
		auth.GET("/google/callback", h.GoogleCallback)
	}
}

// registerCredentialRoutes sets up the authenticated credential management routes.
func registerCredentialRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := &credentialHandler{employeeService: employeeService}

	auth := rg.Group("/auth")
	{
		auth.POST("/change-password", h.changePassword)
		auth.POST("/reset-requests", h.createResetRequest)
		auth.POST("/reset-password", h.resetPassword)
	}
}

// Login godoc
// @Summary Employee login
// @Description Authenticates an employee with email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	employee, err := h.employeeService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	h.respondWithToken(c, employee)
}

// GoogleTokenLogin godoc
// @Summary Login with a Google ID token
// @Description Validates a Google ID token obtained by the frontend and signs the matching employee in. Unknown identities are refused; SSO never creates accounts.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "No employee record for this identity"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleTokenLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := googleUserInfoFromClaims(payload.Subject, payload.Claims)
	employee, err := h.employeeService.FindOrLinkEmployeeByGoogleDetails(c.Request.Context(), info)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "No employee record for this identity"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to resolve Google identity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}

	h.respondWithToken(c, employee)
}

// GoogleLoginRedirect godoc
// @Summary Begin the Google OAuth redirect flow
// @Description Issues a CSRF state cookie and redirects to Google's consent screen.
// @Tags auth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLoginRedirect(c *gin.Context) {
	state, err := h.googleService.GenerateStateString(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.GetGoogleLoginURL(c.Request.Context(), state))
}

// GoogleCallback godoc
// @Summary Complete the Google OAuth redirect flow
// @Description Verifies the state cookie, exchanges the code, resolves the employee and redirects back to the frontend with a token.
// @Tags auth
// @Success 307 "Redirect to the portal frontend"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	token, err := h.googleService.ExchangeCodeForToken(c.Request.Context(), c.Query("code"))
	if err != nil {
		logger.Warn("Failed to exchange OAuth code", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	info, err := h.googleService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch Google profile"})
		return
	}

	employee, err := h.employeeService.FindOrLinkEmployeeByGoogleDetails(c.Request.Context(), info)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "No employee record for this identity"})
			return
		}
		logger.Error("Failed to resolve Google identity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}

	signed, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), employee)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendBaseURL+"/auth/callback?token="+signed)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, employee *domain.Employee) {
	signed, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), employee)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:              signed,
		MustChangePassword: employee.MustChangePassword,
		Employee:           dto.ToEmployeeResponse(employee),
	})
}

func googleUserInfoFromClaims(subject string, claims map[string]any) *domain.GoogleUserInfo {
	info := &domain.GoogleUserInfo{ID: subject}
	if v, ok := claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := claims["email_verified"].(bool); ok {
		info.VerifiedEmail = v
	}
	if v, ok := claims["name"].(string); ok {
		info.Name = v
	}
	if v, ok := claims["picture"].(string); ok {
		info.Picture = v
	}
	return info
}

// credentialHandler handles authenticated credential management requests.
type credentialHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// changePassword godoc
// @Summary Change own password
// @Description Verifies the current password, stores the new one and clears the must-change flag.
// @Tags auth
// @Accept json
// @Produce json
// @Param change body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *credentialHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.employeeService.ChangePassword(c.Request.Context(), actor.EmployeeID, req); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Current password is incorrect"})
			return
		}
		logger.Error("Failed to change password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to change password"})
		return
	}

	c.Status(http.StatusNoContent)
}

// createResetRequest godoc
// @Summary Open a password reset request
// @Description Records a pending reset request for an employee, to be processed by an administrator.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.CreateResetRequestRequest true "Employee to reset"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/reset-requests [post]
func (h *credentialHandler) createResetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resetReq, err := h.employeeService.CreateResetRequest(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Employee not found"})
			return
		}
		logger.Error("Failed to create reset request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create reset request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"requestId": resetReq.ResetID})
}

// resetPassword godoc
// @Summary Process a password reset request
// @Description Regenerates the employee's credentials for a pending reset request and emails the new password. If email delivery fails the reset still stands and the password is returned in the response.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset request to process"
// @Success 200 {object} dto.ResetPasswordResponse
// @Failure 400 {object} dto.APIError "ALREADY_PROCESSED"
// @Failure 404 {object} dto.APIError "NOT_FOUND"
// @Failure 500 {object} dto.APIError "AUTH_ERROR or DATABASE_ERROR"
// @Security BearerAuth
// @Router /auth/reset-password [post]
func (h *credentialHandler) resetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIError{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_ERROR"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.APIError{Error: "Unauthorized", Code: "AUTH_ERROR"})
		return
	}

	resp, err := h.employeeService.ProcessPasswordReset(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.APIError{Error: "Reset request not found", Code: "NOT_FOUND"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusBadRequest, dto.APIError{Error: "Reset request already processed", Code: "ALREADY_PROCESSED"})
		case errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusInternalServerError, dto.APIError{Error: "Not permitted to process reset requests", Code: "AUTH_ERROR"})
		default:
			logger.Error("Failed to process password reset", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.APIError{Error: "Failed to process reset request", Code: "DATABASE_ERROR"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
