package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chirp/internal/core/apperr"
	userEntity "chirp/internal/core/user"
	"chirp/internal/metrics"
	userPort "chirp/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const searchLimit = 50

// TokenConfig تنظیمات صدور توکن JWT
type TokenConfig struct {
	Key    []byte
	Issuer string
	TTL    time.Duration
}

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	Metrics        metrics.EventRecorder
	Logger         *zap.Logger
	tokens         TokenConfig
	validate       *validator.Validate
}

func NewUserService(repo userPort.UserRepository, tokens TokenConfig, recorder metrics.EventRecorder, logger *zap.Logger) *UserService {
	if tokens.TTL <= 0 {
		tokens.TTL = 24 * time.Hour
	}
	return &UserService{
		UserRepository: repo,
		Metrics:        recorder,
		Logger:         logger,
		tokens:         tokens,
		validate:       validator.New(),
	}
}

type registerInput struct {
	Username string `validate:"required,min=3,max=50,excludes=@"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=72"`
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*userPort.RegisterResponse, error) {
	in := registerInput{Username: strings.TrimSpace(username), Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	// بررسی یکتایی نام کاربری و ایمیل
	taken, err := s.UserRepository.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("username already taken")
	}
	taken, err = s.UserRepository.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
		Role:     userEntity.RoleUser,
	}
	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	auth, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}
	s.Metrics.RecordEvent(metrics.EventRegister)
	s.Logger.Info("user registered", zap.String("userID", created.ID.String()), zap.String("username", created.Username))
	return &userPort.RegisterResponse{User: userPort.ToUserDTO(created), Auth: auth}, nil
}

// LoginUser ورود کاربر با نام کاربری یا ایمیل و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, usernameOrEmail, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsernameOrEmail(ctx, strings.TrimSpace(usernameOrEmail))
	if errors.Is(err, apperr.ErrNotFound) {
		s.Metrics.RecordEvent(metrics.EventLoginFailed)
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.Metrics.RecordEvent(metrics.EventLoginFailed)
		return nil, invalidCredentials()
	}
	return s.issueToken(u)
}

func invalidCredentials() error {
	return fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
}

// issueToken signs an HS256 token whose subject is the user id; usernames can change.
func (s *UserService) issueToken(u *userEntity.User) (*userPort.LoginResponse, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokens.TTL).Unix()
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    s.tokens.Issuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokens.Key)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	return &userPort.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ResolvePrincipal validates a bearer token and loads the user it names.
func (s *UserService) ResolvePrincipal(ctx context.Context, token string) (userEntity.Principal, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.tokens.Key, nil
	})
	if err != nil || !parsed.Valid {
		return userEntity.Principal{}, fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)
	}
	if s.tokens.Issuer != "" && !claims.VerifyIssuer(s.tokens.Issuer, true) {
		return userEntity.Principal{}, fmt.Errorf("%w: invalid token issuer", apperr.ErrUnauthenticated)
	}

	u, err := s.UserRepository.FindByID(ctx, claims.Subject)
	if errors.Is(err, apperr.ErrNotFound) {
		return userEntity.Principal{}, fmt.Errorf("%w: unknown user", apperr.ErrUnauthenticated)
	}
	if err != nil {
		return userEntity.Principal{}, err
	}
	return u.Principal(), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}

// SearchUsers matches query against usernames and emails.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]*userPort.UserDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("search query must not be blank")
	}
	users, err := s.UserRepository.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userPort.ToUserDTO(u))
	}
	return out, nil
}

// UpdateUser is allowed to the user themself and to admins; only admins may change roles.
func (s *UserService) UpdateUser(ctx context.Context, id string, in userPort.UpdateUserDTO, actor userEntity.Principal) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(u.ID) && !actor.IsAdmin() {
		return nil, apperr.Unauthorized("you cannot modify this user")
	}

	if in.Username != nil && *in.Username != u.Username {
		name := strings.TrimSpace(*in.Username)
		if err := s.validate.Var(name, "required,min=3,max=50,excludes=@"); err != nil {
			return nil, apperr.Validation("username is invalid")
		}
		taken, err := s.UserRepository.ExistsByUsername(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("username already taken")
		}
		u.Username = name
	}
	if in.Email != nil && *in.Email != u.Email {
		email := strings.TrimSpace(*in.Email)
		if err := s.validate.Var(email, "required,email,max=255"); err != nil {
			return nil, apperr.Validation("email is invalid")
		}
		taken, err := s.UserRepository.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("email already registered")
		}
		u.Email = email
	}
	if in.Password != nil && *in.Password != "" {
		if err := s.validate.Var(*in.Password, "min=6,max=72"); err != nil {
			return nil, apperr.Validation("password must be between 6 and 72 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hashed)
	}
	if in.Role != nil && userEntity.Role(*in.Role) != u.Role {
		if !actor.IsAdmin() {
			return nil, apperr.Unauthorized("only an admin can change roles")
		}
		role := userEntity.Role(*in.Role)
		if role != userEntity.RoleUser && role != userEntity.RoleAdmin {
			return nil, apperr.Validation("role must be USER or ADMIN")
		}
		u.Role = role
	}

	updated, err := s.UserRepository.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(updated), nil
}

// DeleteUser is allowed to the user themself and to admins.
func (s *UserService) DeleteUser(ctx context.Context, id string, actor userEntity.Principal) error {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(u.ID) && !actor.IsAdmin() {
		return apperr.Unauthorized("you cannot delete this user")
	}
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("user deleted", zap.String("userID", id), zap.String("by", actor.ID))
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperr.Validation(err.Error())
}
