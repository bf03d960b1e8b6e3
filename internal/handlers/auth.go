package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"blogpost/internal/forms"
	"blogpost/internal/models"
	"blogpost/internal/services"
	"blogpost/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// rememberMaxAge extends the session cookie past the browser session.
const rememberMaxAge = 30 * 24 * 60 * 60 // 30 days in seconds

type AuthHandler struct {
	users   *store.UserStore
	tokens  *services.ResetTokenService
	mail    *services.MailService
	siteURL string
}

func NewAuthHandler(users *store.UserStore, tokens *services.ResetTokenService, mail *services.MailService, siteURL string) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, mail: mail, siteURL: siteURL}
}

// redirectIfAuthenticated short-circuits register/login/reset pages for
// users who already hold a session.
func redirectIfAuthenticated(c *gin.Context) bool {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/home")
		c.Abort()
		return true
	}
	return false
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Title": "Register", "Error": "Invalid input"})
		return
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Title": "Register", "Errors": errs, "Form": form})
		return
	}

	_, err := h.users.Create(form.Username, form.Email, form.Password)
	if err != nil {
		errs := forms.Errors{}
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			errs["Username"] = "Username is taken. Please choose another one."
		case errors.Is(err, store.ErrDuplicateEmail):
			errs["Email"] = "Email is taken. Please choose another one."
		default:
			Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Title": "Register", "Error": "Registration failed", "Form": form})
			return
		}
		Render(c, http.StatusConflict, "auth/register.html", gin.H{"Title": "Register", "Errors": errs, "Form": form})
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title":   "Login",
		"Success": "Your account has been created! You are now able to log in.",
	})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Title": "Login", "Error": "Invalid input"})
		return
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Title": "Login", "Errors": errs, "Form": form})
		return
	}

	user, err := h.users.FindByEmail(form.Email)
	if err != nil || !h.users.VerifyPassword(user, form.Password) {
		// One generic message for unknown email and wrong password alike
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Login",
			"Error": "Login unsuccessful. Please check email and password.",
			"Form":  form,
		})
		return
	}

	session := sessions.Default(c)
	opts := sessions.Options{Path: "/", HttpOnly: true}
	if form.Remember {
		opts.MaxAge = rememberMaxAge
	}
	session.Options(opts)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/home")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) ShowResetRequest(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}
	Render(c, http.StatusOK, "auth/reset_request.html", gin.H{"Title": "Reset Password"})
}

func (h *AuthHandler) ResetRequest(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	var form forms.ResetRequestForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/reset_request.html", gin.H{"Title": "Reset Password", "Error": "Invalid input"})
		return
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "auth/reset_request.html", gin.H{"Title": "Reset Password", "Errors": errs, "Form": form})
		return
	}

	// Same response whether or not the account exists
	if user, err := h.users.FindByEmail(form.Email); err == nil {
		if token, err := h.tokens.Issue(user.ID); err == nil {
			link := fmt.Sprintf("%s/reset_password/%s", h.siteURL, token)
			h.mail.SendPasswordReset(user.Email, link)
		}
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title":   "Login",
		"Success": "Check your inbox for instructions to reset your password.",
	})
}

func (h *AuthHandler) ShowResetToken(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	token := c.Param("token")
	if _, ok := h.verifyToken(token); !ok {
		Render(c, http.StatusBadRequest, "auth/reset_request.html", gin.H{
			"Title": "Reset Password",
			"Error": "That is an invalid or expired token.",
		})
		return
	}
	Render(c, http.StatusOK, "auth/reset_token.html", gin.H{"Title": "Reset Password", "Token": token})
}

func (h *AuthHandler) ResetToken(c *gin.Context) {
	if redirectIfAuthenticated(c) {
		return
	}

	token := c.Param("token")
	user, ok := h.verifyToken(token)
	if !ok {
		Render(c, http.StatusBadRequest, "auth/reset_request.html", gin.H{
			"Title": "Reset Password",
			"Error": "That is an invalid or expired token.",
		})
		return
	}

	var form forms.ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/reset_token.html", gin.H{"Title": "Reset Password", "Token": token, "Error": "Invalid input"})
		return
	}
	if errs := form.Validate(); errs.Any() {
		Render(c, http.StatusBadRequest, "auth/reset_token.html", gin.H{"Title": "Reset Password", "Token": token, "Errors": errs})
		return
	}

	if err := h.users.UpdatePassword(user, form.Password); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not reset password.")
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title":   "Login",
		"Success": "Your password has been reset! You are now able to log in.",
	})
}

// verifyToken resolves a reset token to its user. Token failures and a
// user id that no longer resolves look identical to the caller.
func (h *AuthHandler) verifyToken(token string) (*models.User, bool) {
	userID, ok := h.tokens.Verify(token)
	if !ok {
		return nil, false
	}
	u, err := h.users.FindByID(userID)
	if err != nil {
		return nil, false
	}
	return u, true
}
