package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devfolio-auth/internal/auth"
	"devfolio-auth/internal/store"
)

// Authenticator is the slice of the auth service the HTTP layer needs.
type Authenticator interface {
	Register(ctx context.Context, name, email, password, phone string) error
	VerifyEmail(ctx context.Context, email, code string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) error
	VerifyLoginOTP(ctx context.Context, email, code string) (*auth.Session, error)
}

type AuthController struct {
	auth  Authenticator
	store store.Store
	log   *zap.Logger
}

func NewAuthController(a Authenticator, st store.Store, log *zap.Logger) *AuthController {
	return &AuthController{auth: a, store: st, log: log}
}

type registerPayload struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// Register starts the registration flow: store the unverified account, email
// the verification code.
func (a *AuthController) Register(c *gin.Context) {
	var p registerPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": auth.ErrValidation.Error()})
		return
	}

	err := a.auth.Register(c.Request.Context(), p.Name, p.Email, p.Password, p.PhoneNumber)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "otp sent to your email, please verify"})
	case errors.Is(err, auth.ErrValidation),
		errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, auth.ErrPhoneTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		a.serverError(c, err)
	}
}

type otpPayload struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// VerifyOTP completes registration: check the emailed code, mark the account
// verified and log the user in.
func (a *AuthController) VerifyOTP(c *gin.Context) {
	var p otpPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": auth.ErrValidation.Error()})
		return
	}

	sess, err := a.auth.VerifyEmail(c.Request.Context(), p.Email, p.OTP)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "email verified successfully, you are now logged in",
			"token":   sess.Token,
			"user":    userSummary(sess),
		})
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, auth.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		a.serverError(c, err)
	}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is step one of login: password check, SMS code dispatch, no token.
func (a *AuthController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": auth.ErrValidation.Error()})
		return
	}

	err := a.auth.Login(c.Request.Context(), p.Email, p.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "password correct, an otp has been sent to your mobile number"})
	case errors.Is(err, auth.ErrUnverified):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrMissingPhone):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		a.serverError(c, err)
	}
}

// VerifyLoginOTP is step two of login: check the SMS code, issue the token.
func (a *AuthController) VerifyLoginOTP(c *gin.Context) {
	var p otpPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": auth.ErrValidation.Error()})
		return
	}

	sess, err := a.auth.VerifyLoginOTP(c.Request.Context(), p.Email, p.OTP)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": "login successful",
			"token":   sess.Token,
			"user":    userSummary(sess),
		})
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, auth.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		a.serverError(c, err)
	}
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(c *gin.Context) {
	uid, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "no user in context"})
		return
	}
	u, err := a.store.FindByID(c.Request.Context(), uid.(uint))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": auth.ErrNotFound.Error()})
		return
	}
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (a *AuthController) serverError(c *gin.Context, err error) {
	a.log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
}

func userSummary(sess *auth.Session) gin.H {
	return gin.H{
		"id":    sess.User.ID,
		"name":  sess.User.Name,
		"email": sess.User.Email,
	}
}
