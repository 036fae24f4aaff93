package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velora/commerce-system/internal/api/middleware"
	"github.com/velora/commerce-system/internal/core/domain"
	"github.com/velora/commerce-system/internal/core/ports"
	"github.com/velora/commerce-system/internal/session"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Signup creates a new storefront account and authenticates the caller's
// user-namespace session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		RequestedRole: req.Role,
	})
	if err != nil {
		return err
	}

	sess, err := middleware.SessionFromContext(c)
	if err != nil {
		return err
	}
	sess.Record.Authenticate(user.ID)

	// The session write must be durable before the success response goes
	// out; a cookie that does not yet resolve to an authenticated session
	// on the very next request is the documented failure mode here.
	if err := h.sessions.Save(c.Request().Context(), c.Response(), sess); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login authenticates credentials against the namespace the classifier
// resolved for this exchange. The same handler serves /auth/login and
// /auth/admin/login; the path decides the namespace.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ns := middleware.NamespaceFromContext(c)
	sess, err := middleware.SessionFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, ns)
	if err != nil {
		if errors.Is(err, domain.ErrWrongNamespace) {
			// Terminate whatever session was being established; a 403 must
			// not leave an authenticated record behind.
			_ = h.sessions.Destroy(c.Request().Context(), c.Response(), sess)
		}
		return err
	}

	sess.Record.Authenticate(user.ID)
	if err := h.sessions.Save(c.Request().Context(), c.Response(), sess); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout destroys the caller's session for the classified namespace and
// clears its cookie. The other namespace's session is untouched.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := middleware.SessionFromContext(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Destroy(c.Request().Context(), c.Response(), sess); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the current principal, re-fetched from the user store.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := middleware.SessionFromContext(c)
	if err != nil {
		return err
	}
	if !sess.Record.Authenticated() {
		return domain.ErrUnauthenticated
	}

	user, err := h.authService.CurrentPrincipal(c.Request().Context(), sess.Record.AuthIdentity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Status reports the authentication state of the caller's namespace. The
// probe always answers 200: a corrupted or expired session reads as
// anonymous, never as an error. Admin principals are suppressed from the
// user-namespace probe.
//
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.Status
// @Router       /auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	ns := middleware.NamespaceFromContext(c)

	principalID := ""
	if sess, err := middleware.SessionFromContext(c); err == nil {
		principalID = sess.Record.AuthIdentity
	}

	return c.JSON(http.StatusOK, h.authService.Status(c.Request().Context(), principalID, ns))
}
