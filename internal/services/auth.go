package services

import (
  "context"
  "crypto/rand"
  "fmt"
  "math/big"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/normalization"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/requestdata"
  "github.com/excollo/aipersona-backend/internal/types"
  "github.com/excollo/aipersona-backend/internal/utils"
)

const resetCodeTTL = 15 * time.Minute

type JWTClaims struct {
  jwt.RegisteredClaims
  Name  string `json:"name,omitempty"`
  Email string `json:"email,omitempty"`
}

type AuthService interface {
  Register(ctx context.Context, user *types.User) error
  Login(ctx context.Context, email, password string) (string, *types.User, error)
  ForgotPassword(ctx context.Context, email string) error
  ResetPassword(ctx context.Context, email, code, newPassword string) error

  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  oneTimeCodeRepo repos.OneTimeCodeRepo
  emailService    EmailService
  jwtSecretKey    string
  accessTTL       time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  oneTimeCodeRepo repos.OneTimeCodeRepo,
  emailService EmailService,
  jwtSecretKey string,
  accessTTL time.Duration,
) AuthService {
  return &authService{
    db:              db,
    log:             log.With("service", "AuthService"),
    userRepo:        userRepo,
    oneTimeCodeRepo: oneTimeCodeRepo,
    emailService:    emailService,
    jwtSecretKey:    jwtSecretKey,
    accessTTL:       accessTTL,
  }
}

func (as *authService) Register(ctx context.Context, user *types.User) error {
  //1) Normalize User Fields
  if user != nil {
    user.Name = normalization.ParseInputString(user.Name)
    user.Email = normalization.NormalizeEmail(user.Email)
  }

  //2) Checks on user fields
  if vErr := utils.ValidateRegistration(user); vErr != nil {
    return vErr
  }
  emailExists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return apperr.Store("failed checking email existence", err)
  }
  if emailExists {
    return apperr.Conflict("Email already registered")
  }

  //3) Hash Password
  if hErr := utils.HashPassword(user); hErr != nil {
    return hErr
  }

  //4) Create
  created, err := as.userRepo.Create(ctx, nil, []*types.User{user})
  if err != nil {
    return apperr.Store("failed to create user", err)
  }
  if len(created) == 0 {
    return apperr.Store("failed to create user", nil)
  }
  as.log.Info("User registered", "userID", created[0].ID)
  return nil
}

// Login deliberately reports the same generic message for an unknown email
// and for a wrong password.
func (as *authService) Login(ctx context.Context, userEmail, userPassword string) (string, *types.User, error) {
  //1) Normalize Input
  email := normalization.NormalizeEmail(userEmail)
  password := normalization.ParseInputString(userPassword)

  //2) Input Validations
  if vErr := utils.ValidateLogin(email, password); vErr != nil {
    return "", nil, vErr
  }

  //3) Find User By Email
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return "", nil, apperr.Store("error retrieving user by email", err)
  }
  if len(users) == 0 {
    return "", nil, apperr.Auth("Invalid email or password")
  }
  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", nil, apperr.Auth("Invalid email or password")
  }

  //4) Issue Token
  token, err := as.generateAccessToken(user)
  if err != nil {
    return "", nil, apperr.Store("failed to generate access token", err)
  }
  return token, user, nil
}

// ForgotPassword answers identically whether or not the email exists so the
// endpoint cannot be used to enumerate accounts.
func (as *authService) ForgotPassword(ctx context.Context, userEmail string) error {
  email := normalization.NormalizeEmail(userEmail)
  if email == "" {
    return apperr.Validation("an email is required.")
  }
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return apperr.Store("error retrieving user by email", err)
  }
  if len(users) == 0 {
    as.log.Debug("Forgot password requested for unknown email", "email", email)
    return nil
  }
  user := users[0]

  code, err := newResetCode()
  if err != nil {
    return apperr.Store("failed to generate reset code", err)
  }
  // A fresh request invalidates any earlier unused codes.
  if err := as.oneTimeCodeRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{user.ID}); err != nil {
    return apperr.Store("failed to clear previous reset codes", err)
  }
  otc := &types.OneTimeCode{
    UserID:    user.ID,
    Code:      code,
    ExpiresAt: time.Now().Add(resetCodeTTL),
  }
  if _, err := as.oneTimeCodeRepo.Create(ctx, nil, []*types.OneTimeCode{otc}); err != nil {
    return apperr.Store("failed to store reset code", err)
  }
  if as.emailService == nil {
    as.log.Warn("No email service configured; reset code not sent", "userID", user.ID)
    return nil
  }
  subject := "Your password reset code"
  plain := fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.", code)
  html := fmt.Sprintf("<p>Your password reset code is <strong>%s</strong>. It expires in 15 minutes.</p>", code)
  if err := as.emailService.SendEmail(ctx, user.Email, subject, plain, html, "authorization"); err != nil {
    as.log.Warn("Failed to send reset code email", "error", err, "userID", user.ID)
  }
  return nil
}

func (as *authService) ResetPassword(ctx context.Context, userEmail, code, newPassword string) error {
  email := normalization.NormalizeEmail(userEmail)
  code = normalization.ParseInputString(code)
  newPassword = normalization.ParseInputString(newPassword)
  if email == "" || code == "" || newPassword == "" {
    return apperr.Validation("email, code and new password are required.")
  }
  if len(newPassword) < 8 {
    return apperr.Validation("password must be at least 8 characters.")
  }

  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    codes, err := as.oneTimeCodeRepo.GetByCodes(ctx, tx, []string{code})
    if err != nil {
      return apperr.Store("error retrieving reset code", err)
    }
    if len(codes) == 0 {
      return apperr.Auth("Invalid or expired reset code")
    }
    otc := codes[0]
    if otc.Used || otc.ExpiresAt.Before(time.Now()) {
      return apperr.Auth("Invalid or expired reset code")
    }
    users, err := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{otc.UserID})
    if err != nil || len(users) == 0 {
      return apperr.Store("error retrieving user for reset code", err)
    }
    if users[0].Email != email {
      return apperr.Auth("Invalid or expired reset code")
    }
    hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
    if err != nil {
      return apperr.Store("failed to hash new password", err)
    }
    if err := as.userRepo.UpdatePassword(ctx, tx, otc.UserID, string(hashed)); err != nil {
      return apperr.Store("failed to update password", err)
    }
    if err := as.oneTimeCodeRepo.MarkUsed(ctx, tx, otc.ID); err != nil {
      return apperr.Store("failed to mark reset code used", err)
    }
    return nil
  })
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
    Name:  user.Name,
    Email: user.Email,
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, nil
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("failed to parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired JWT token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid user ID in token: %w", err)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    Name:        claims.Name,
    Email:       claims.Email,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func newResetCode() (string, error) {
  n, err := rand.Int(rand.Reader, big.NewInt(1000000))
  if err != nil {
    return "", err
  }
  return fmt.Sprintf("%06d", n.Int64()), nil
}
