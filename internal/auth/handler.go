package auth

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/offiswap/internal/httputil"
	"github.com/redmonkez12/offiswap/internal/logging"
	"github.com/redmonkez12/offiswap/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	rateLimiter RateLimiter
}

func NewHandler(service *Service, rateLimiter RateLimiter) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Location *string `json:"location,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles user registration
// @Summary      Register a new company account
// @Description  Create a new account with name, email, password and optional location
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} UserResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(w, r, "register") {
		return
	}

	var req RegisterRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Register(r.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Location: req.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("registration failed: email already exists")
			httputil.RespondErrorWithCode(w, "User with this email already exists.", httputil.CodeConflict, http.StatusConflict)
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrEmailRequired), errors.Is(err, ErrPasswordRequired):
			httputil.RespondErrorWithCode(w, "Name, email, and password are required.", httputil.CodeInvalidInput, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			httputil.RespondErrorWithCode(w, "Invalid email format.", httputil.CodeInvalidInput, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			httputil.RespondErrorWithCode(w, "Password must be at least 8 characters.", httputil.CodeInvalidInput, http.StatusBadRequest)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "Server error during registration.", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID.String())

	httputil.RespondJSON(w, toUserResponse(newUser), http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate and receive a signed token, valid for one hour. Send it back in the x-auth-token header.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing email or password"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			httputil.RespondErrorWithCode(w, "Email and password are required.", httputil.CodeInvalidInput, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "Invalid credentials.", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "Server error during login.", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	h.resetLimit(r, "login")
	httputil.RespondJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

// allow applies the per-IP limit for purpose. Limiter failures are logged
// and the request proceeds.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, purpose string) bool {
	if h.rateLimiter == nil {
		return true
	}

	logger := logging.GetLoggerFromContext(r.Context())
	ip := getClientIP(r)

	ok, err := h.rateLimiter.Allow(r.Context(), purpose+":"+ip)
	if err != nil {
		logger.Error("failed to check IP rate limit", "purpose", purpose, "error", err.Error())
		return true
	}
	if !ok {
		logger.Warn("IP rate limit exceeded", "purpose", purpose, "ip", ip)
		httputil.RespondErrorWithCode(w, "Too many requests, please try again later.", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return false
	}
	return true
}

// resetLimit clears the per-IP bucket for purpose after a successful attempt
func (h *Handler) resetLimit(r *http.Request, purpose string) {
	if h.rateLimiter == nil {
		return
	}
	if err := h.rateLimiter.Reset(r.Context(), purpose+":"+getClientIP(r)); err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to reset IP rate limit", "purpose", purpose, "error", err.Error())
	}
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Location:  u.Location,
		CreatedAt: u.CreatedAt,
	}
}

// getClientIP extracts the client IP address from RemoteAddr, which chi's
// RealIP middleware has already rewritten from proxy headers.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
