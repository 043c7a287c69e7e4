// Package memstore keeps events, participations, proofs and share tokens in
// process memory. It is intended for development and test environments where
// PostgreSQL is not available, and honours the same atomicity contracts as
// the postgres adapter by serialising every write behind one mutex.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"moa/internal/domain"
)

type participationKey struct {
	eventID string
	userID  string
}

type followKey struct {
	follower string
	target   string
}

// Store implements every repository and collaborator interface of the domain
// package.
type Store struct {
	mu sync.RWMutex

	events         map[string]*domain.Event
	participations map[participationKey]*domain.Participation
	byEvent        map[string][]participationKey
	proofs         map[string]*domain.PurchaseProof
	tokens         map[string]*domain.ShareToken

	users   map[string]domain.User
	follows map[followKey]struct{}
	letters map[participationKey]struct{}
}

// New returns an empty store.
func New() *Store {
	return &Store{
		events:         make(map[string]*domain.Event),
		participations: make(map[participationKey]*domain.Participation),
		byEvent:        make(map[string][]participationKey),
		proofs:         make(map[string]*domain.PurchaseProof),
		tokens:         make(map[string]*domain.ShareToken),
		users:          make(map[string]domain.User),
		follows:        make(map[followKey]struct{}),
		letters:        make(map[participationKey]struct{}),
	}
}

// PutUser adds or replaces a profile.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Follow records that follower follows target.
func (s *Store) Follow(follower, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[followKey{follower: follower, target: target}] = struct{}{}
}

// MarkLetterWritten records that userID has written a letter for eventID.
func (s *Store) MarkLetterWritten(userID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.letters[participationKey{eventID: eventID, userID: userID}] = struct{}{}
}

// PutEvent stores ev as-is, bypassing the single-active guard. Seeding only.
func (s *Store) PutEvent(ev domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := ev
	s.events[ev.ID] = &cp
}

func (s *Store) CreateActiveEvent(_ context.Context, ev *domain.Event, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stale []*domain.Event
	for _, existing := range s.events {
		if existing.OwnerID != ev.OwnerID {
			continue
		}
		if existing.Deadline.Equal(ev.Deadline) {
			return domain.ErrEventAlreadyOpened
		}
		if existing.Status != domain.EventStatusActive {
			continue
		}
		if !existing.Deadline.Before(now) {
			return domain.ErrActiveEventExists
		}
		stale = append(stale, existing)
	}
	// Nothing is mutated until every check has passed.
	for _, existing := range stale {
		existing.Status = domain.EventStatusClosed
		existing.UpdatedAt = now
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.Status = domain.EventStatusActive
	ev.CreatedAt = now
	ev.UpdatedAt = now
	cp := *ev
	s.events[ev.ID] = &cp
	return nil
}

func (s *Store) HasActiveEvent(_ context.Context, ownerID string, now time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if ev.OwnerID == ownerID && ev.Status == domain.EventStatusActive && !ev.Deadline.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (s *Store) FindActiveEventByOwner(_ context.Context, ownerID string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if ev.OwnerID == ownerID && ev.Status == domain.EventStatusActive {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) TransitionStatus(_ context.Context, eventID string, from, to domain.EventStatus, now time.Time) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if ev.Status != from {
		return nil, domain.ErrStatusConflict
	}
	ev.Status = to
	ev.UpdatedAt = now
	cp := *ev
	return &cp, nil
}

func (s *Store) CloseExpiredEvents(_ context.Context, now time.Time) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var closed []domain.Event
	for _, ev := range s.events {
		if ev.Status == domain.EventStatusActive && now.After(ev.Deadline) {
			ev.Status = domain.EventStatusClosed
			ev.UpdatedAt = now
			closed = append(closed, *ev)
		}
	}
	sort.Slice(closed, func(i, j int) bool { return closed[i].Deadline.Before(closed[j].Deadline) })
	return closed, nil
}

func (s *Store) Join(_ context.Context, p *domain.Participation, now time.Time) (*domain.EventAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[p.EventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !ev.Joinable(now) {
		return nil, domain.ErrEventNotActive
	}
	key := participationKey{eventID: p.EventID, userID: p.UserID}
	if _, exists := s.participations[key]; exists {
		return nil, domain.ErrDuplicateParticipation
	}
	if p.Type == domain.ParticipationWithMoney && !domain.PoolFits(ev.PooledAmount, p.Amount) {
		return nil, domain.ErrPoolOverflow
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.ParticipatedAt = now
	cp := *p
	s.participations[key] = &cp
	s.byEvent[p.EventID] = append(s.byEvent[p.EventID], key)
	if p.Type == domain.ParticipationWithMoney {
		ev.PooledAmount += p.Amount
		ev.UpdatedAt = now
	}
	return &domain.EventAggregate{
		EventID:          ev.ID,
		PooledAmount:     ev.PooledAmount,
		ParticipantCount: len(s.byEvent[p.EventID]),
	}, nil
}

func (s *Store) GetParticipation(_ context.Context, eventID, userID string) (*domain.Participation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participations[participationKey{eventID: eventID, userID: userID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// ListParticipations returns the ledger of eventID in join order.
func (s *Store) ListParticipations(_ context.Context, eventID string) ([]domain.Participation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.byEvent[eventID]
	out := make([]domain.Participation, 0, len(keys))
	for _, key := range keys {
		out = append(out, *s.participations[key])
	}
	return out, nil
}

func (s *Store) CountParticipations(_ context.Context, eventID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEvent[eventID]), nil
}

func (s *Store) CreateProof(_ context.Context, proof *domain.PurchaseProof) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.proofs[proof.EventID]; exists {
		return domain.ErrDuplicateProof
	}
	if proof.ID == "" {
		proof.ID = uuid.NewString()
	}
	cp := *proof
	cp.Images = append([]string(nil), proof.Images...)
	s.proofs[proof.EventID] = &cp
	return nil
}

func (s *Store) GetProofByEvent(_ context.Context, eventID string) (*domain.PurchaseProof, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proof, ok := s.proofs[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *proof
	cp.Images = append([]string(nil), proof.Images...)
	return &cp, nil
}

func (s *Store) CreateShareToken(_ context.Context, token *domain.ShareToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *token
	s.tokens[token.Token] = &cp
	return nil
}

func (s *Store) GetShareToken(_ context.Context, token string) (*domain.ShareToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) PurgeShareTokens(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key, t := range s.tokens {
		if !t.Usable(now) {
			delete(s.tokens, key)
			n++
		}
	}
	return n, nil
}

func (s *Store) FindUsersWithBirthday(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.User
	for _, u := range s.users {
		if u.Birthday != nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindUsersByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) IsFollowing(_ context.Context, followerID, targetID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.follows[followKey{follower: followerID, target: targetID}]
	return ok, nil
}

func (s *Store) FollowersOf(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for key := range s.follows {
		if key.target == userID {
			out = append(out, key.follower)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) HasWrittenLetter(_ context.Context, userID, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.letters[participationKey{eventID: eventID, userID: userID}]
	return ok, nil
}

var (
	_ domain.EventRepository      = (*Store)(nil)
	_ domain.ProofRepository      = (*Store)(nil)
	_ domain.ShareTokenRepository = (*Store)(nil)
	_ domain.UserDirectory        = (*Store)(nil)
	_ domain.SocialGraph          = (*Store)(nil)
	_ domain.LetterDirectory      = (*Store)(nil)
)
