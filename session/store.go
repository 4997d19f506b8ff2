package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/gateway"
	"github.com/roomhub-io/go-booking-client/organizations"
	"github.com/roomhub-io/go-booking-client/users"
	"github.com/rs/zerolog"
)

// Store is the session state machine. Construct one per process, inject it
// wherever session state is needed, and mutate it only through its actions.
//
// Invariant: Authenticated() == true implies User() != nil. Restoring a
// snapshot that violates this degrades to anonymous.
type Store struct {
	gw    *gateway.Client
	users *users.Client
	orgs  *organizations.Client
	repo  Repo
	log   zerolog.Logger

	// onExpired is the application's navigation hook, chained after the
	// store's own cleanup when the gateway reports an unrecoverable
	// authorization failure.
	onExpired func()

	mu            sync.RWMutex
	user          *users.User
	currentOrg    *organizations.Organization
	orgList       []organizations.Organization
	authenticated bool
	otpPending    bool
	otpEmail      string
}

// StoreOption modifies the Store instance.
type StoreOption func(*Store)

// WithLogger sets the structured logger for session transitions.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// WithExpiredHandler registers the application's reaction to session expiry
// (typically navigation to the login entry point). It runs after the store
// has already fallen back to anonymous.
func WithExpiredHandler(handler func()) StoreOption {
	return func(s *Store) {
		s.onExpired = handler
	}
}

// NewStore builds the session store, restores any persisted snapshot, and
// hooks itself into the gateway's session-expired signal.
func NewStore(gw *gateway.Client, repo Repo, options ...StoreOption) (*Store, error) {
	if gw == nil {
		return nil, errors.New("[NewStore] gateway client is required")
	}
	if repo == nil {
		return nil, errors.New("[NewStore] repo is required")
	}

	store := &Store{
		gw:    gw,
		users: users.NewClient(gw),
		orgs:  organizations.NewClient(gw),
		repo:  repo,
		log:   zerolog.Nop(),
	}

	for _, opt := range options {
		opt(store)
	}

	store.restore()
	gw.HandleSessionExpired(store.handleExpired)

	return store, nil
}

// restore loads the persisted snapshot. Anything partial or inconsistent
// leaves the machine anonymous.
func (s *Store) restore() {
	snapshot, err := s.repo.Load()
	if err != nil || snapshot == nil {
		return
	}
	if !snapshot.Authenticated || snapshot.User == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snapshot.User
	s.currentOrg = snapshot.CurrentOrganization
	s.orgList = snapshot.Organizations
	s.authenticated = true
	s.log.Debug().Str("email", snapshot.User.Email).Msg("session restored from storage")
}

// Login submits credentials. Depending on the server's answer the machine
// lands in otp_pending (second factor required, no tokens yet) or
// authenticated (tokens stored, profile and organizations loaded).
// Credential errors propagate untouched; the caller surfaces the message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	result, err := s.gw.LoginCredentials(ctx, email, password)
	if err != nil {
		return err
	}

	if result.OTPRequired {
		challengeEmail := result.Email
		if challengeEmail == "" {
			challengeEmail = email
		}
		s.mu.Lock()
		s.user = nil
		s.currentOrg = nil
		s.orgList = nil
		s.authenticated = false
		s.otpPending = true
		s.otpEmail = challengeEmail
		s.mu.Unlock()
		s.persist()
		s.log.Info().Str("email", challengeEmail).Msg("login requires second factor")
		return nil
	}

	if err := s.gw.Vault().Set(result.Pair()); err != nil {
		return errors.Wrap(err, "[Store.Login] vault.Set")
	}
	return s.completeLogin(ctx)
}

// ConfirmOTP completes a pending second-factor challenge. Valid only in
// otp_pending; a wrong code keeps the machine pending and the code is not
// remembered.
func (s *Store) ConfirmOTP(ctx context.Context, code string) error {
	s.mu.RLock()
	pending, email := s.otpPending, s.otpEmail
	s.mu.RUnlock()
	if !pending {
		return ErrNoPendingOTP
	}

	result, err := s.gw.ConfirmLoginOTP(ctx, email, code)
	if err != nil {
		return err
	}

	if err := s.gw.Vault().Set(result.Pair()); err != nil {
		return errors.Wrap(err, "[Store.ConfirmOTP] vault.Set")
	}
	return s.completeLogin(ctx)
}

// completeLogin runs the post-token steps shared by Login and ConfirmOTP:
// fetch the profile, load organization memberships, pick the active
// organization, then flip to authenticated and persist.
func (s *Store) completeLogin(ctx context.Context) error {
	me, err := s.users.Me(ctx)
	if err != nil {
		return errors.Wrap(err, "[Store.completeLogin] users.Me")
	}

	orgList, err := s.orgs.List(ctx)
	if err != nil {
		return errors.Wrap(err, "[Store.completeLogin] organizations.List")
	}

	var current *organizations.Organization
	for i := range orgList {
		if orgList[i].ID == me.CurrentOrganizationID {
			current = &orgList[i]
			break
		}
	}
	if current == nil && len(orgList) > 0 {
		current = &orgList[0]
	}

	s.mu.Lock()
	s.user = me
	s.currentOrg = current
	s.orgList = orgList
	s.authenticated = true
	s.otpPending = false
	s.otpEmail = ""
	s.mu.Unlock()
	s.persist()

	s.log.Info().Str("email", me.Email).Str("role", string(me.Role)).Msg("authenticated")
	return nil
}

// Logout invalidates the refresh token server-side on a best-effort basis,
// then unconditionally clears local state. It never fails: the user must be
// able to leave an authenticated state even when the server is unreachable,
// and calling it twice is safe.
func (s *Store) Logout(ctx context.Context) {
	if err := s.gw.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("server-side logout failed, clearing locally anyway")
	}
	if err := s.gw.Vault().Clear(); err != nil {
		s.log.Error().Err(err).Msg("clearing token vault on logout")
	}
	s.clearLocal()
	s.log.Info().Msg("logged out")
}

// CurrentUser refreshes the profile from the server. Without an access token
// it is a no-op returning whatever is already held. A 401 here means the
// transport-level refresh already ran and failed to help, so the session is
// treated as invalid rather than retried.
func (s *Store) CurrentUser(ctx context.Context) (*users.User, error) {
	if _, ok := s.gw.Vault().Access(); !ok {
		return s.User(), nil
	}

	me, err := s.users.Me(ctx)
	if err != nil {
		if gateway.IsUnauthorized(err) || errors.Is(err, gateway.ErrSessionExpired) {
			if clearErr := s.gw.Vault().Clear(); clearErr != nil {
				s.log.Error().Err(clearErr).Msg("clearing token vault after 401")
			}
			s.clearLocal()
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = me
	s.mu.Unlock()
	s.persist()
	return me, nil
}

// SwitchOrganization changes the active organization after the server
// confirms membership.
func (s *Store) SwitchOrganization(ctx context.Context, orgID string) error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}

	if err := s.orgs.Switch(ctx, orgID); err != nil {
		return err
	}

	s.mu.Lock()
	var current *organizations.Organization
	for i := range s.orgList {
		if s.orgList[i].ID == orgID {
			current = &s.orgList[i]
			break
		}
	}
	s.currentOrg = current
	if s.user != nil {
		s.user.CurrentOrganizationID = orgID
	}
	s.mu.Unlock()

	if current == nil {
		// Membership was confirmed server-side but the cached list is stale.
		org, err := s.orgs.Get(ctx, orgID)
		if err == nil {
			s.mu.Lock()
			s.currentOrg = org
			s.orgList = append(s.orgList, *org)
			s.mu.Unlock()
		}
	}

	s.persist()
	s.log.Info().Str("organization_id", orgID).Msg("switched organization")
	return nil
}

// handleExpired is the gateway's session-expired signal: tokens are already
// gone, so drop local state and hand control to the application's navigation
// hook.
func (s *Store) handleExpired() {
	s.clearLocal()
	if s.onExpired != nil {
		s.onExpired()
	}
}

func (s *Store) clearLocal() {
	s.mu.Lock()
	s.user = nil
	s.currentOrg = nil
	s.orgList = nil
	s.authenticated = false
	s.otpPending = false
	s.otpEmail = ""
	s.mu.Unlock()
	if err := s.repo.Clear(); err != nil {
		s.log.Error().Err(err).Msg("clearing persisted session")
	}
}

// persist writes the current snapshot. All durable session writes funnel
// through here.
func (s *Store) persist() {
	s.mu.RLock()
	snapshot := &Snapshot{
		User:                s.user,
		CurrentOrganization: s.currentOrg,
		Organizations:       s.orgList,
		Authenticated:       s.authenticated,
	}
	s.mu.RUnlock()
	if err := s.repo.Save(snapshot); err != nil {
		s.log.Error().Err(err).Msg("persisting session snapshot")
	}
}

// State derives the machine's position from the held flags.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.authenticated:
		return StateAuthenticated
	case s.otpPending:
		return StateOTPPending
	default:
		return StateAnonymous
	}
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) OTPPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.otpPending
}

func (s *Store) OTPEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.otpEmail
}

func (s *Store) User() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) CurrentOrganization() *organizations.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentOrg == nil {
		return nil
	}
	org := *s.currentOrg
	return &org
}

func (s *Store) Organizations() []organizations.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]organizations.Organization, len(s.orgList))
	copy(out, s.orgList)
	return out
}
