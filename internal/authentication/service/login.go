package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/jwtx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessExpired      = errors.New("client access has expired")
)

// Directory is the slice of the database service the login flow needs.
// *dbsdk.Client implements it.
type Directory interface {
	GetAdminWithPassword(ctx context.Context, email string) (*dbsdk.AdminWithPassword, error)
	GetClienteWithPassword(ctx context.Context, email string) (*dbsdk.ClienteWithPassword, error)
	CreateLog(ctx context.Context, in dbsdk.CreateLogRequest) (*dbsdk.Log, error)
}

// User is the identity carried by an access token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}

type AuthService struct {
	Directory Directory
	Hasher    *cryptox.Hasher
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Login authenticates email/password against administrators first and
// clients second, and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	// 1. Administrators
	admin, err := s.Directory.GetAdminWithPassword(ctx, email)
	switch {
	case err == nil:
		if s.Hasher.Verify(password, admin.PasswordHash) == nil {
			return s.issue(ctx, User{ID: admin.ID, Email: admin.Email, Name: admin.Nome, Role: jwtx.RoleAdmin})
		}
	case !dbsdk.IsNotFound(err):
		log.Error("admin lookup failed", slog.Any("error", err))
		return LoginResult{}, err
	}

	// 2. Clients
	client, err := s.Directory.GetClienteWithPassword(ctx, email)
	if err != nil {
		if dbsdk.IsNotFound(err) {
			log.Info("login failed", slog.String("reason", "unknown email"))
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("client lookup failed", slog.Any("error", err))
		return LoginResult{}, err
	}
	if s.Hasher.Verify(password, client.PasswordHash) != nil {
		log.Info("login failed", slog.String("reason", "password mismatch"), slog.String("client_id", client.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	// 3. Access window
	expiresAt, err := dbsdk.ParseTime(client.DataExpiracao)
	if err != nil || s.now().After(expiresAt) {
		log.Info("login refused", slog.String("reason", "access expired"), slog.String("client_id", client.ID))
		return LoginResult{}, ErrAccessExpired
	}

	res, err := s.issue(ctx, User{ID: client.ID, Email: client.Email, Name: client.Nome, Role: jwtx.RoleClient})
	if err != nil {
		return LoginResult{}, err
	}
	s.audit(ctx, client.ID, dbsdk.LogLogin, "Login efetuado")
	return res, nil
}

// Logout records the logout of a client. Tokens are stateless and stay
// valid until they expire.
func (s *AuthService) Logout(ctx context.Context, claims jwtx.Claims) {
	if claims.Role == jwtx.RoleClient {
		s.audit(ctx, claims.Subject, dbsdk.LogLogout, "Logout efetuado")
	}
}

func (s *AuthService) issue(ctx context.Context, u User) (LoginResult, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Role, u.Email, u.Name, s.Issuer, ttl, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return LoginResult{}, err
	}

	slogx.FromContext(ctx).Info("login succeeded", slog.String("user_id", u.ID), slog.String("role", u.Role))
	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		User:        u,
	}, nil
}

// audit writes a best-effort log entry; failures never fail the caller.
func (s *AuthService) audit(ctx context.Context, clientID, kind, message string) {
	_, err := s.Directory.CreateLog(ctx, dbsdk.CreateLogRequest{
		ClienteID: &clientID,
		Tipo:      kind,
		Mensagem:  &message,
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("audit log failed", slog.String("tipo", kind), slog.Any("error", err))
	}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// UserFromClaims maps verified claims back to the user they describe.
func UserFromClaims(c jwtx.Claims) User {
	return User{ID: c.Subject, Email: c.Email, Name: c.Name, Role: c.Role}
}
