package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/cookmate/cookmate/backend/internal/types"
	"github.com/cookmate/cookmate/backend/pkg/ctxutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Stored field names of a credentials document.
const (
	credUserID       = "userId"
	credEmail        = "email"
	credPasswordHash = "passwordHash"
)

const tokenIssuer = "cookmate"

// AuthService is the identity provider. Password hashes live in the
// credentials collection, separate from the public profile in users.
type AuthService struct {
	store     store.CatalogStore
	jwtSecret []byte
	tokenTTL  time.Duration
	revoker   TokenRevoker
	log       *zap.Logger
	now       func() time.Time
}

var _ IdentityProvider = (*AuthService)(nil)

// NewAuthService creates an AuthService. revoker may be nil, in which case
// sign-out only forgets the token client side.
func NewAuthService(s store.CatalogStore, jwtSecret string, tokenTTL time.Duration, revoker TokenRevoker, log *zap.Logger) *AuthService {
	return &AuthService{
		store:     s,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		revoker:   revoker,
		log:       log.Named("auth"),
		now:       time.Now,
	}
}

// SignUp registers a new account and creates its profile document with the
// default auth level. It returns the new user id.
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if err := catalog.ValidateSignUp(email, password, displayName); err != nil {
		return "", err
	}

	existing, err := s.store.ReadWhere(ctx, store.CollectionCredentials, credEmail, email)
	if err != nil {
		return "", catalog.Collaborator(collabIdentity, err)
	}
	if len(existing) > 0 {
		return "", fmt.Errorf("email %s: %w", email, catalog.ErrAlreadyExists)
	}

	available, err := s.UsernameAvailable(ctx, displayName)
	if err != nil {
		return "", err
	}
	if !available {
		return "", &catalog.ValidationError{Messages: []string{"Username already taken"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New().String()
	credID, err := s.store.Create(ctx, store.CollectionCredentials, map[string]any{
		credUserID:       userID,
		credEmail:        email,
		credPasswordHash: string(hash),
	})
	if err != nil {
		return "", catalog.Collaborator(collabIdentity, err)
	}

	profile := model.User{
		ID:              userID,
		DisplayName:     displayName,
		Email:           email,
		AuthLevel:       model.AuthLevelUser,
		CreatedRecipes:  []string{},
		FavoriteRecipes: []string{},
	}
	if _, err := s.store.Create(ctx, store.CollectionUsers, catalog.UserToStoredFields(profile)); err != nil {
		// Without a profile the account is unusable; drop the credentials so
		// the email can sign up again.
		if derr := s.store.Delete(ctx, store.CollectionCredentials, credID); derr != nil {
			s.log.Error("failed to roll back credentials",
				zap.String("user_id", userID), zap.String("credentials_id", credID), zap.Error(derr))
		}
		return "", storeErr(err)
	}

	s.log.Info("user signed up", zap.String("user_id", userID))
	return userID, nil
}

// SignIn checks the credentials and issues an access token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, string, error) {
	email = normalizeEmail(email)
	if !catalog.ValidateEmail(email) || password == "" {
		return "", "", ErrInvalidCredentials
	}

	docs, err := s.store.ReadWhere(ctx, store.CollectionCredentials, credEmail, email)
	if err != nil {
		return "", "", catalog.Collaborator(collabIdentity, err)
	}
	var userID, hash string
	for _, d := range docs {
		if d.Fields == nil {
			continue
		}
		userID, _ = d.Fields[credUserID].(string)
		hash, _ = d.Fields[credPasswordHash].(string)
		break
	}
	if userID == "" {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	var username string
	if user, err := s.GetUser(ctx, userID); err == nil {
		username = user.DisplayName
	}

	token, err := s.generateToken(userID, username)
	if err != nil {
		return "", "", err
	}
	s.log.Info("user signed in", zap.String("user_id", userID))
	return userID, token, nil
}

// SignOut revokes token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if s.revoker == nil {
		return nil
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return catalog.Collaborator(collabIdentity, err)
	}
	s.log.Info("user signed out", zap.String("user_id", claims.UserID))
	return nil
}

// CurrentUserID returns the user authenticated for the request in ctx.
func (s *AuthService) CurrentUserID(ctx context.Context) (string, bool) {
	return ctxutil.UserIDFromCtx(ctx)
}

// ValidateToken verifies the signature and expiry of token and that it has
// not been revoked. A failing revocation lookup rejects the token.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.log.Warn("token revocation check failed", zap.Error(err))
			return nil, catalog.Collaborator(collabIdentity, err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// UsernameAvailable reports whether no profile uses username. The match is
// exact, as usernames are displayed as typed.
func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if !catalog.ValidateUsername(username) {
		return false, &catalog.ValidationError{Messages: []string{"Username cannot be empty"}}
	}
	docs, err := s.store.ReadWhere(ctx, store.CollectionUsers, catalog.FieldUsername, username)
	if err != nil {
		return false, storeErr(err)
	}
	return len(docs) == 0, nil
}

// GetUser loads the profile of userID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.User, error) {
	doc, err := findUserDoc(ctx, s.store, userID)
	if err != nil {
		return model.User{}, err
	}
	return catalog.UserFromFields(doc.Fields), nil
}

func (s *AuthService) generateToken(userID, username string) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   userID,
		Username: username,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parse(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// findUserDoc returns the first decodable profile document of userID.
func findUserDoc(ctx context.Context, s store.CatalogStore, userID string) (store.Document, error) {
	docs, err := s.ReadWhere(ctx, store.CollectionUsers, catalog.FieldUserID, userID)
	if err != nil {
		return store.Document{}, storeErr(err)
	}
	for _, d := range docs {
		if d.Fields != nil {
			return d, nil
		}
	}
	return store.Document{}, fmt.Errorf("user %s: %w", userID, catalog.ErrNotFound)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
