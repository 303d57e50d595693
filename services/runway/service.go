package runway

import (
	"context"
	"sync"
	"time"

	"runway/models"
	"runway/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunwayService is the session facade over one Store.
type RunwayService interface {
	Request(ctx context.Context, minute int) (models.Reservation, error)
	Land(ctx context.Context) (models.Reservation, error)
	PeekMax() (models.Reservation, error)
	PeekMin() (models.Reservation, error)
	NextLanding() (models.Reservation, error)
	Contains(minute int) bool
	RankBefore(minute int) (int, error)
	List() models.ReservationList
}

// EventPublisher receives every store decision.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RunwayEvent) error
}

// AuditRecorder journals every store decision.
type AuditRecorder interface {
	Record(ctx context.Context, event models.RunwayEvent) error
}

// ReminderScheduler arranges an announcement at each reserved minute.
type ReminderScheduler interface {
	ScheduleLanding(ctx context.Context, event models.RunwayEvent) error
	CancelLanding(ctx context.Context, minute int) error
}

const sideEffectTimeout = 3 * time.Second

// DefaultRunwayService implements RunwayService. Collaborators are optional.
type DefaultRunwayService struct {
	Publisher EventPublisher
	Audit     AuditRecorder
	Reminders ReminderScheduler

	mu     sync.Mutex
	store  *Store
	logger *zap.Logger
	now    func() time.Time

	// fx is taken before mu is released so side effects run in decision order.
	fx sync.Mutex
}

func NewDefaultRunwayService(store *Store, logger *zap.Logger) *DefaultRunwayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRunwayService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func reservationOf(minute int) models.Reservation {
	return models.Reservation{Minute: minute, Time: utils.FormatTimeOfDay(minute)}
}

// Request reserves minute. Rejections are returned as *ConflictError.
func (s *DefaultRunwayService) Request(ctx context.Context, minute int) (models.Reservation, error) {
	s.mu.Lock()
	err := s.store.Request(minute)
	k := s.store.K()
	s.fx.Lock()
	s.mu.Unlock()
	defer s.fx.Unlock()

	res := reservationOf(minute)
	ev := s.newEvent(models.EventRequestAccepted, res, k)
	if err != nil {
		ev.Type = models.EventRequestRejected
		ev.Reason = ConflictReason(err)
		s.logger.Info("Landing request rejected",
			zap.Int("minute", minute), zap.String("time", res.Time), zap.String("reason", ev.Reason))
		s.dispatch(ctx, ev)
		return models.Reservation{}, err
	}

	s.logger.Info("Landing request accepted", zap.Int("minute", minute), zap.String("time", res.Time))
	s.dispatch(ctx, ev)
	if s.Reminders != nil {
		rctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		if err := s.Reminders.ScheduleLanding(rctx, ev); err != nil {
			s.logger.Warn("Failed to schedule landing reminder", zap.String("time", res.Time), zap.Error(err))
		}
		cancel()
	}
	return res, nil
}

// Land removes the earliest reservation.
func (s *DefaultRunwayService) Land(ctx context.Context) (models.Reservation, error) {
	s.mu.Lock()
	minute, err := s.store.Land()
	k := s.store.K()
	s.fx.Lock()
	s.mu.Unlock()
	defer s.fx.Unlock()
	if err != nil {
		s.logger.Debug("Land requested on empty runway")
		return models.Reservation{}, err
	}

	res := reservationOf(minute)
	s.logger.Info("Plane landed", zap.Int("minute", minute), zap.String("time", res.Time))
	s.dispatch(ctx, s.newEvent(models.EventLanded, res, k))
	if s.Reminders != nil {
		rctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		if err := s.Reminders.CancelLanding(rctx, minute); err != nil {
			s.logger.Warn("Failed to cancel landing reminder", zap.String("time", res.Time), zap.Error(err))
		}
		cancel()
	}
	return res, nil
}

func (s *DefaultRunwayService) PeekMax() (models.Reservation, error) {
	return s.peek(s.store.PeekMax)
}

func (s *DefaultRunwayService) PeekMin() (models.Reservation, error) {
	return s.peek(s.store.PeekMin)
}

func (s *DefaultRunwayService) NextLanding() (models.Reservation, error) {
	return s.peek(s.store.NextLanding)
}

func (s *DefaultRunwayService) peek(fn func() (int, error)) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	minute, err := fn()
	if err != nil {
		return models.Reservation{}, err
	}
	return reservationOf(minute), nil
}

func (s *DefaultRunwayService) Contains(minute int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Contains(minute)
}

func (s *DefaultRunwayService) RankBefore(minute int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RankBefore(minute)
}

func (s *DefaultRunwayService) List() models.ReservationList {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := models.ReservationList{
		K:            s.store.K(),
		Reservations: make([]models.Reservation, 0, s.store.Len()),
	}
	s.store.Ascend(func(minute int) bool {
		list.Reservations = append(list.Reservations, reservationOf(minute))
		return true
	})
	list.Count = len(list.Reservations)
	return list
}

func (s *DefaultRunwayService) newEvent(typ string, res models.Reservation, k int) models.RunwayEvent {
	return models.RunwayEvent{
		ID:     uuid.New().String(),
		Type:   typ,
		Minute: res.Minute,
		Time:   res.Time,
		K:      k,
		At:     s.now().UTC(),
	}
}

// dispatch hands ev to the publisher and the audit journal. Failures are
// logged; they never change the decision already taken.
func (s *DefaultRunwayService) dispatch(ctx context.Context, ev models.RunwayEvent) {
	if s.Publisher != nil {
		pctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		if err := s.Publisher.Publish(pctx, ev); err != nil {
			s.logger.Warn("Failed to publish runway event", zap.String("type", ev.Type), zap.Error(err))
		}
		cancel()
	}
	if s.Audit != nil {
		actx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
		if err := s.Audit.Record(actx, ev); err != nil {
			s.logger.Error("Failed to record runway event", zap.String("type", ev.Type), zap.Error(err))
		}
		cancel()
	}
}
