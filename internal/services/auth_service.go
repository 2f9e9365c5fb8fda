package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelmaintpro/maintenance-backend/internal/database"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
	"github.com/hotelmaintpro/maintenance-backend/pkg/jwt"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotConfirmed is returned when the credential exists but the
	// email address was never confirmed.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrProfileMissing is returned when a credential signs in but no
	// profile row is linked to it.
	ErrProfileMissing = errors.New("no profile found for this user")

	// ErrRemoteOnly is returned when a remote-only operation runs against
	// the local backend.
	ErrRemoteOnly = errors.New("operation requires a remote backend")
)

// sessionSlot is the local store slot holding the active session record.
const sessionSlot = "session"

// sessionRecord is the persisted local session: who is signed in and until
// when. Expired records are evicted lazily on the next read.
type sessionRecord struct {
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"`
}

// AuthService authenticates users against whichever backend is active. In
// local mode credentials live on the user records themselves and the session
// persists in the local store; in remote mode credentials live in the
// identity table and the session is the issued token.
type AuthService struct {
	store  *store.Store
	jwt    *jwt.Service
	logger *logrus.Logger
	cost   int

	sessionExpiry time.Duration

	// local mode only
	kv database.KVStore

	// remote mode only
	auth     *database.AuthRepository
	profiles store.RemoteAPI
}

// NewLocalAuthService creates an auth service over the local backend
func NewLocalAuthService(st *store.Store, kv database.KVStore, jwtService *jwt.Service, logger *logrus.Logger, bcryptCost int, sessionExpiry time.Duration) *AuthService {
	return &AuthService{
		store:         st,
		jwt:           jwtService,
		logger:        logger,
		cost:          bcryptCost,
		sessionExpiry: sessionExpiry,
		kv:            kv,
	}
}

// NewRemoteAuthService creates an auth service over the remote backend
func NewRemoteAuthService(st *store.Store, auth *database.AuthRepository, profiles store.RemoteAPI, jwtService *jwt.Service, logger *logrus.Logger, bcryptCost int, sessionExpiry time.Duration) *AuthService {
	return &AuthService{
		store:         st,
		jwt:           jwtService,
		logger:        logger,
		cost:          bcryptCost,
		sessionExpiry: sessionExpiry,
		auth:          auth,
		profiles:      profiles,
	}
}

func (s *AuthService) remote() bool {
	return s.auth != nil
}

// SignIn authenticates the email/password pair and opens a session. It
// returns the signed-in user and a session token.
func (s *AuthService) SignIn(email, password string) (*models.User, string, error) {
	var user *models.User
	var err error

	if s.remote() {
		user, err = s.signInRemote(email, password)
	} else {
		user, err = s.signInLocal(email, password)
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateSessionToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.store.SetCurrentUser(user); err != nil {
		return nil, "", err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User signed in")
	return user, token, nil
}

// signInLocal matches the email case-insensitively against the stored users
// and verifies the password hash. Users without a usable hash cannot sign in.
func (s *AuthService) signInLocal(email, password string) (*models.User, error) {
	users, err := s.store.GetUsers()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if strings.TrimSpace(u.PasswordHash) == "" {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		user := u
		if err := s.writeSession(user.ID); err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, ErrInvalidCredentials
}

func (s *AuthService) signInRemote(email, password string) (*models.User, error) {
	credential, err := s.auth.GetAuthUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !credential.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	profile, err := s.store.GetUserByID(credential.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileMissing
	}
	return profile, nil
}

// SignUp creates a new account. In remote mode it creates the credential and
// its linked profile; locally the hash lives on the user record itself.
func (s *AuthService) SignUp(email, password string, user models.User) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if !s.remote() {
		user.Email = email
		user.PasswordHash = string(hash)
		added, err := s.store.AddUser(user)
		if err != nil {
			return nil, err
		}
		return &added, nil
	}

	credential, err := s.auth.CreateAuthUser(email, string(hash))
	if err != nil {
		return nil, err
	}

	user.ID = credential.ID
	user.Email = email
	user.PasswordHash = ""
	profile, err := s.profiles.InsertProfile(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// SignOut closes the session and clears the current user and hotel.
func (s *AuthService) SignOut() error {
	if !s.remote() {
		if err := s.kv.DeleteSlot(sessionSlot); err != nil {
			return err
		}
	}
	return s.store.Logout()
}

// IsAuthenticated reports whether a live local session exists. Remote mode
// relies on token validation instead.
func (s *AuthService) IsAuthenticated() (bool, error) {
	if s.remote() {
		return false, ErrRemoteOnly
	}
	session, err := s.readSession()
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

func (s *AuthService) writeSession(userID string) error {
	record := sessionRecord{
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionExpiry).UnixMilli(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.kv.WriteSlot(sessionSlot, data)
}

// readSession returns the stored session, evicting it when expired or
// malformed.
func (s *AuthService) readSession() (*sessionRecord, error) {
	data, err := s.kv.ReadSlot(sessionSlot)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.WithError(err).Warn("Discarding malformed session")
		if delErr := s.kv.DeleteSlot(sessionSlot); delErr != nil {
			return nil, delErr
		}
		return nil, nil
	}
	if record.ExpiresAt < time.Now().UnixMilli() {
		if err := s.kv.DeleteSlot(sessionSlot); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &record, nil
}
