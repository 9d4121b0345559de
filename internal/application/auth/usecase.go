package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
	"github.com/jhoicas/smart-inventory-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Options reglas de registro.
type Options struct {
	AllowAdminSignup bool
	BcryptCost       int // 0 = bcrypt.DefaultCost
}

// AuthUseCase casos de uso de autenticación: registro, login y validación de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	opts     Options

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, opts Options) *AuthUseCase {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, opts: opts}
}

// RegisterUser crea un usuario: valida, hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si la identidad ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" {
		in.Email = in.Identity
	}
	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	role := entity.RoleStaff
	if in.Role != "" {
		role, _ = entity.ParseRole(in.Role)
	}
	if role == entity.RoleAdmin && !uc.opts.AllowAdminSignup {
		return nil, domain.ErrForbidden
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	username := in.Username
	if username == "" {
		username = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	// La restricción única de la tabla cubre la carrera entre el GetByEmail y el insert.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y genera el JWT.
// Identidad desconocida y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" {
		in.Email = in.Identity
	}
	in.Email = normalizeEmail(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar el costo de una comparación real.
		_ = bcrypt.CompareHashAndPassword(uc.dummy(), []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
		User:        *toUserResponse(user),
	}, nil
}

// Authenticate valida el token y devuelve el Caller embebido.
// ErrUnauthorized si la firma no es válida, expiró, está malformado o trae un rol desconocido.
func (uc *AuthUseCase) Authenticate(token string) (*Caller, error) {
	return Authenticate(uc.jwtCfg.Secret, token)
}

// Authenticate valida un token con el secret dado (usable sin instancia, p. ej. en middleware).
func Authenticate(secret, token string) (*Caller, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(secret, token)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	caller := &Caller{UserID: claims.UserID, Identity: claims.Identity(), Role: role}
	if claims.ExpiresAt != nil {
		caller.ExpiresAt = claims.ExpiresAt.Time
	}
	return caller, nil
}

func (uc *AuthUseCase) dummy() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), uc.opts.BcryptCost)
	})
	return uc.dummyHash
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
