package mock

import (
	"context"

	"github.com/gigboard/gigboard/pkg/models"
	"github.com/gigboard/gigboard/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo *MockUserRepo
	GigRepo  *MockGigRepo
	BidRepo  *MockBidRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo: &MockUserRepo{},
		GigRepo:  &MockGigRepo{},
		BidRepo:  &MockBidRepo{},
	}
}

type MockUserRepo struct {
	Stored    *models.User
	CreateErr error
}

var _ repository.UserRepo = (*MockUserRepo)(nil)

func (m *MockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

type MockGigRepo struct {
	Gigs      map[int64]*models.Gig
	CreateErr error
	ListErr   error
	nextID    int64
}

var _ repository.GigRepo = (*MockGigRepo)(nil)

func (m *MockGigRepo) CreateGig(ctx context.Context, g *models.Gig) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if m.Gigs == nil {
		m.Gigs = make(map[int64]*models.Gig)
	}
	m.nextID++
	stored := *g
	stored.ID = m.nextID
	m.Gigs[stored.ID] = &stored
	return stored.ID, nil
}

func (m *MockGigRepo) GetGig(ctx context.Context, id int64) (*models.Gig, error) {
	if g, ok := m.Gigs[id]; ok {
		return g, nil
	}
	return nil, nil
}

func (m *MockGigRepo) ListGigs(ctx context.Context, f repository.GigFilter) ([]models.Gig, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Gig
	for _, g := range m.Gigs {
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		out = append(out, *g)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *MockGigRepo) ListGigsByOwner(ctx context.Context, ownerID int64) ([]models.Gig, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Gig
	for _, g := range m.Gigs {
		if g.OwnerID == ownerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *MockGigRepo) ListGigsAssignedTo(ctx context.Context, freelancerID int64) ([]models.Gig, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Gig
	for _, g := range m.Gigs {
		if g.Status == models.GigStatusAssigned && g.HiredFreelancerID != nil &&
			*g.HiredFreelancerID == freelancerID && g.OwnerID != freelancerID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type MockBidRepo struct {
	Bids      map[int64]*models.Bid
	CreateErr error
	nextID    int64
}

var _ repository.BidRepo = (*MockBidRepo)(nil)

func (m *MockBidRepo) CreateBid(ctx context.Context, b *models.Bid) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if m.Bids == nil {
		m.Bids = make(map[int64]*models.Bid)
	}
	m.nextID++
	stored := *b
	stored.ID = m.nextID
	m.Bids[stored.ID] = &stored
	return stored.ID, nil
}

func (m *MockBidRepo) GetBid(ctx context.Context, id int64) (*models.Bid, error) {
	if b, ok := m.Bids[id]; ok {
		return b, nil
	}
	return nil, nil
}

func (m *MockBidRepo) ListBidsByGig(ctx context.Context, gigID int64) ([]models.Bid, error) {
	var out []models.Bid
	for _, b := range m.Bids {
		if b.GigID == gigID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// RecorderNotifier records notifier calls instead of opening connections.
type RecorderNotifier struct {
	Broadcasts []RecordedEvent
	Sends      []RecordedSend
}

type RecordedEvent struct {
	Event   string
	Payload any
}

type RecordedSend struct {
	UserID  int64
	Event   string
	Payload any
}

func (r *RecorderNotifier) Broadcast(event string, payload any) {
	r.Broadcasts = append(r.Broadcasts, RecordedEvent{Event: event, Payload: payload})
}

func (r *RecorderNotifier) SendTo(userID int64, event string, payload any) {
	r.Sends = append(r.Sends, RecordedSend{UserID: userID, Event: event, Payload: payload})
}
