package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"devfolio-auth/internal/models"
	"devfolio-auth/internal/otp"
	"devfolio-auth/internal/store"
	"devfolio-auth/internal/utils"
)

// EmailSender delivers a verification code to an inbox. Delivery failure is
// fatal to the registration request because the response promises the mail
// was sent.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSSender delivers a login code to a phone. Delivery is best effort: the
// challenge is already persisted when Send runs, and a failure is logged but
// not returned.
type SMSSender interface {
	Send(to, message string) error
}

// TokenIssuer mints the session credential handed out after a completed
// registration or login.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

// Session is the result of a completed verification step.
type Session struct {
	Token string
	User  *models.User
}

// Service is the account state machine. Registration moves an account from
// unregistered through pending email verification to verified; login moves a
// verified account through a password check and an SMS code to a session
// token. One challenge slot per account is shared by both flows, so starting
// either flow invalidates whatever code was pending before.
type Service struct {
	store  store.Store
	email  EmailSender
	sms    SMSSender
	tokens TokenIssuer
	log    *zap.Logger

	otpTTL   time.Duration
	now      func() time.Time
	generate func() (string, error)
}

func NewService(st store.Store, email EmailSender, sms SMSSender, tokens TokenIssuer, log *zap.Logger, otpTTL time.Duration) *Service {
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &Service{
		store:    st,
		email:    email,
		sms:      sms,
		tokens:   tokens,
		log:      log,
		otpTTL:   otpTTL,
		now:      time.Now,
		generate: otp.Generate,
	}
}

// Register creates, or overwrites, an unverified account and emails it a
// verification code. A verified account blocks its email for good; an
// unverified one is replaced wholesale, which also invalidates any code it
// was still holding.
func (s *Service) Register(ctx context.Context, name, email, password, phone string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || password == "" || phone == "" {
		return ErrValidation
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if existing != nil && existing.Verified {
		return ErrEmailTaken
	}

	byPhone, err := s.store.FindByPhone(ctx, phone)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	// The phone may stay with the same in-progress record being overwritten;
	// anyone else holding it, verified or not, blocks the registration.
	if byPhone != nil && byPhone.Email != email {
		return ErrPhoneTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	code, err := s.generate()
	if err != nil {
		return err
	}

	u := existing
	if u == nil {
		u = &models.User{Email: email}
	}
	u.Name = name
	u.Password = hash
	u.PhoneNumber = phone
	u.SetChallenge(code, s.now().Add(s.otpTTL))

	if err := s.store.Save(ctx, u); err != nil {
		return err
	}

	body := fmt.Sprintf("Welcome!\n\nYour OTP for email verification is: %s\nIt expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.email.Send(u.Email, "Verify Your Email Address", body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// VerifyEmail consumes the registration challenge and logs the user straight
// in.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (*Session, error) {
	u, err := s.consumeChallenge(ctx, email, code)
	if err != nil {
		return nil, err
	}
	u.Verified = true
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login is step one of the two-step login: password check, then a fresh SMS
// code. No token is returned here.
func (s *Service) Login(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)

	u, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	if !u.Verified {
		return ErrUnverified
	}
	if err := utils.CheckPasswordHash(u.Password, password); err != nil {
		return ErrInvalidCredentials
	}
	if u.PhoneNumber == "" {
		return ErrMissingPhone
	}

	code, err := s.generate()
	if err != nil {
		return err
	}
	u.SetChallenge(code, s.now().Add(s.otpTTL))
	if err := s.store.Save(ctx, u); err != nil {
		return err
	}

	// The challenge is committed at this point; a failed send leaves the
	// user to retry login, it does not roll anything back.
	if err := s.sms.Send(u.PhoneNumber, fmt.Sprintf("Your login OTP is: %s", code)); err != nil {
		s.log.Warn("sms dispatch failed",
			zap.String("email", u.Email),
			zap.Error(err))
	}
	return nil
}

// VerifyLoginOTP is step two of the login: consume the SMS challenge and
// issue the session token.
func (s *Service) VerifyLoginOTP(ctx context.Context, email, code string) (*Session, error) {
	u, err := s.consumeChallenge(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *Service) consumeChallenge(ctx context.Context, email, code string) (*models.User, error) {
	email = normalizeEmail(email)

	u, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !u.ChallengeMatches(code, s.now()) {
		return nil, ErrInvalidCode
	}
	u.ClearChallenge()
	return u, nil
}

func (s *Service) issue(u *models.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
