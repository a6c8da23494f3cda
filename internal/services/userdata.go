package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/dmitrijs2005/ecovate/internal/idx"
	"github.com/dmitrijs2005/ecovate/internal/logging"
	"github.com/dmitrijs2005/ecovate/internal/models"
	"github.com/dmitrijs2005/ecovate/internal/store"
)

// SensorCounter reports how many sensors are currently active.
type SensorCounter interface {
	ActiveCount() int
}

// OffsetInput describes an offset to append. An empty Status means pending
// and a zero Date means now.
type OffsetInput struct {
	ProjectName string
	Amount      decimal.Decimal
	Status      models.VerificationStatus
	Date        time.Time
}

// UserDataService owns the state of the active account.
//
// All mutating methods are silent no-ops returning the in-memory defaults
// when no account is active. Every successful mutation is persisted before
// the method returns; a failed write leaves the in-memory state unchanged.
type UserDataService interface {
	SessionListener
	LoadForAccount(ctx context.Context, accountID string) (models.PerAccountState, error)
	State() models.PerAccountState
	AccountID() string
	AddOffset(ctx context.Context, in OffsetInput) (models.PerAccountState, error)
	UpdateEmissions(ctx context.Context, kg decimal.Decimal) (models.PerAccountState, error)
	UpdateCredits(ctx context.Context, kg decimal.Decimal) (models.PerAccountState, error)
	Reset(ctx context.Context) (models.PerAccountState, error)
}

type userDataService struct {
	store   *store.Store
	sensors SensorCounter
	logger  logging.Logger
	now     func() time.Time

	mu        sync.Mutex
	accountID string
	state     models.PerAccountState
}

// NewUserDataService constructs a UserDataService. The active sensor count
// shown on the dashboard is taken from sensors.
func NewUserDataService(st *store.Store, sensors SensorCounter, logger logging.Logger) UserDataService {
	return &userDataService{
		store:   st,
		sensors: sensors,
		logger:  logger.With("component", "userdata"),
		now:     time.Now,
		state:   models.DefaultState(sensors.ActiveCount()),
	}
}

// LoadForAccount returns the persisted state of accountID, creating and
// persisting defaults when none exists, and makes it the active state.
func (s *userDataService) LoadForAccount(ctx context.Context, accountID string) (models.PerAccountState, error) {
	key := store.StateKey(accountID)

	var st models.PerAccountState
	found, err := s.store.Load(ctx, key, &st)
	if err != nil {
		return models.PerAccountState{}, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	if !found {
		st = models.DefaultState(s.sensors.ActiveCount())
		if err := s.store.Save(ctx, key, st); err != nil {
			return models.PerAccountState{}, fmt.Errorf("failed to save record[%s]: %w", key, err)
		}
		s.logger.Debug(ctx, "created default state", "account_id", accountID)
	}
	if st.CarbonOffsets == nil {
		st.CarbonOffsets = []models.CarbonOffset{}
	}
	st.Dashboard.ActiveSensors = s.sensors.ActiveCount()
	st.Recompute()

	s.mu.Lock()
	s.accountID = accountID
	s.state = st
	s.mu.Unlock()
	return st.Clone(), nil
}

// SessionChanged loads the state of the new account, or resets the
// in-memory state without persisting when account is nil.
func (s *userDataService) SessionChanged(ctx context.Context, account *models.Account) error {
	if account == nil {
		s.mu.Lock()
		s.accountID = ""
		s.state = models.DefaultState(s.sensors.ActiveCount())
		s.mu.Unlock()
		return nil
	}
	_, err := s.LoadForAccount(ctx, account.ID)
	return err
}

func (s *userDataService) State() models.PerAccountState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *userDataService) AccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountID
}

// mutate applies fn to a copy of the active state, persists the result and
// only then publishes it.
func (s *userDataService) mutate(ctx context.Context, fn func(st *models.PerAccountState)) (models.PerAccountState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accountID == "" {
		return s.state.Clone(), nil
	}

	next := s.state.Clone()
	fn(&next)

	key := store.StateKey(s.accountID)
	if err := s.store.Save(ctx, key, next); err != nil {
		return s.state.Clone(), fmt.Errorf("failed to save record[%s]: %w", key, err)
	}
	s.state = next
	return next.Clone(), nil
}

func (s *userDataService) AddOffset(ctx context.Context, in OffsetInput) (models.PerAccountState, error) {
	offset, err := s.buildOffset(in)
	if err != nil {
		return s.State(), err
	}
	return s.mutate(ctx, func(st *models.PerAccountState) {
		st.CarbonOffsets = append(st.CarbonOffsets, offset)
		st.Recompute()
	})
}

func (s *userDataService) buildOffset(in OffsetInput) (models.CarbonOffset, error) {
	name := strings.TrimSpace(in.ProjectName)
	if name == "" {
		return models.CarbonOffset{}, fmt.Errorf("%w: project name is required", common.ErrInvalidOffset)
	}
	if in.Amount.IsNegative() {
		return models.CarbonOffset{}, fmt.Errorf("%w: amount must not be negative", common.ErrInvalidOffset)
	}

	status := models.StatusPending
	if in.Status != "" {
		st, err := models.ParseVerificationStatus(string(in.Status))
		if err != nil {
			return models.CarbonOffset{}, fmt.Errorf("%w: %v", common.ErrInvalidOffset, err)
		}
		status = st
	}

	date := in.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	return models.CarbonOffset{
		ID:                 idx.NewAt(s.now().UTC()),
		Date:               date,
		Amount:             in.Amount,
		ProjectName:        name,
		VerificationStatus: status,
	}, nil
}

// UpdateEmissions replaces the calculated emissions (kg CO2).
func (s *userDataService) UpdateEmissions(ctx context.Context, kg decimal.Decimal) (models.PerAccountState, error) {
	if kg.IsNegative() {
		return s.State(), common.ErrInvalidQuantity
	}
	return s.mutate(ctx, func(st *models.PerAccountState) {
		st.CalculatedEmissions = kg
	})
}

// UpdateCredits replaces the purchased credits (kg CO2).
func (s *userDataService) UpdateCredits(ctx context.Context, kg decimal.Decimal) (models.PerAccountState, error) {
	if kg.IsNegative() {
		return s.State(), common.ErrInvalidQuantity
	}
	return s.mutate(ctx, func(st *models.PerAccountState) {
		st.CreditsPurchased = kg
	})
}

// Reset restores and persists the defaults for the active account.
func (s *userDataService) Reset(ctx context.Context) (models.PerAccountState, error) {
	return s.mutate(ctx, func(st *models.PerAccountState) {
		*st = models.DefaultState(s.sensors.ActiveCount())
	})
}
