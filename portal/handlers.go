package portal

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/campus-portal/auth"
	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/contact"
	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/navigation"
	reqctx "github.com/octabyte/campus-portal/utils/context"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
	Name      string `json:"name" form:"name"`
	Role      string `json:"role" form:"role"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordRequest struct {
	Token     string `json:"token" form:"token"`
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
}

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.respond(c, s.auth.Login(c.Request().Context(), req.Email, req.Password))
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.respond(c, s.auth.Register(c.Request().Context(), auth.RegistrationRequest{
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		Name:      req.Name,
		Role:      roleOf(req.Role),
	}))
}

func (s *Server) logout(c echo.Context) error {
	return s.respond(c, s.auth.Logout(c.Request().Context()))
}

func (s *Server) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.respond(c, s.auth.ForgotPassword(c.Request().Context(), req.Email))
}

func (s *Server) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.respond(c, s.auth.ResetPassword(c.Request().Context(), req.Token, req.Password, req.Password2))
}

func (s *Server) submitContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.respond(c, s.contact.Submit(c.Request().Context(), contact.Submission(req)))
}

func (s *Server) completeSetup(c echo.Context) error {
	var req auth.SetupRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.respond(c, s.auth.CompleteSetup(c.Request().Context(), req))
}

func (s *Server) profile(c echo.Context) error {
	user, err := s.auth.FetchProfile(c.Request().Context())
	if err != nil {
		r := client.Failure(err)
		return c.JSON(statusFor(r), r)
	}
	return c.JSON(http.StatusOK, client.Result{Success: true, User: user})
}

func (s *Server) page(target navigation.Target) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := reqctx.GetUserFromContext(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]interface{}{
			"page": s.routes.URL(target),
			"user": user,
		})
	}
}

func roleOf(raw string) enums.Role {
	return enums.Role(strings.ToLower(strings.TrimSpace(raw)))
}

// respond follows the result's intent with a redirect for form posts and
// writes the result as JSON otherwise.
func (s *Server) respond(c echo.Context, result client.Result) error {
	if result.Intent != nil && isFormPost(c) {
		return c.Redirect(http.StatusSeeOther, result.Intent.URL)
	}
	return c.JSON(statusFor(result), result)
}

func isFormPost(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm)
}

func statusFor(r client.Result) int {
	if r.Success {
		return http.StatusOK
	}
	if r.StatusCode != 0 {
		return r.StatusCode
	}
	switch r.Kind {
	case client.KindTransport:
		return http.StatusBadGateway
	case client.KindSessionInvalid:
		return http.StatusUnauthorized
	case client.KindAuthDenied:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
