package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/model"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
	pkgerrors "github.com/FarahAbdullah11/NU-CLUBS/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) add(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.UserID] = u
}

func (m *mockUserRepo) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int64
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		u := m.users[id]
		if (u.UniversityID != nil && *u.UniversityID == identifier) || u.Email == identifier {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ── Mock ClubRepository ──

type mockClubRepo struct {
	clubs map[int64]*model.Club
	err   error
}

// newMockClubRepo seeds the four reference clubs
func newMockClubRepo() *mockClubRepo {
	return &mockClubRepo{clubs: map[int64]*model.Club{
		1: {ClubID: 1, Name: "NIMUN", Budget: decimal.NewFromInt(5000), TotalMembers: 45},
		2: {ClubID: 2, Name: "RPM", Budget: decimal.NewFromInt(5000), TotalMembers: 38},
		3: {ClubID: 3, Name: "ICPC", Budget: decimal.NewFromInt(5000), TotalMembers: 52},
		4: {ClubID: 4, Name: "IEEE", Budget: decimal.NewFromInt(5000), TotalMembers: 41},
	}}
}

func (m *mockClubRepo) GetByID(_ context.Context, id int64) (*model.Club, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.clubs[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClubRepo) List(_ context.Context) ([]model.Club, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Club
	for _, c := range m.clubs {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClubRepo) Exists(_ context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.clubs[id]
	return ok, nil
}

func (m *mockClubRepo) Totals(_ context.Context) (*repository.ClubTotals, error) {
	if m.err != nil {
		return nil, m.err
	}
	totals := &repository.ClubTotals{Clubs: int64(len(m.clubs))}
	for _, c := range m.clubs {
		totals.Members += int64(c.TotalMembers)
	}
	return totals, nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms   map[int64]*model.Room
	lookups int
}

func newMockRoomRepo() *mockRoomRepo {
	names := []string{"Auditorium A", "Conference Room B", "Lab 101", "Hall C", "Seminar Room D"}
	m := &mockRoomRepo{rooms: make(map[int64]*model.Room)}
	for i, name := range names {
		id := int64(i + 1)
		m.rooms[id] = &model.Room{RoomID: id, Name: name}
	}
	return m
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RoomID < result[j].RoomID })
	return result, nil
}

func (m *mockRoomRepo) Exists(_ context.Context, id int64) (bool, error) {
	m.lookups++
	_, ok := m.rooms[id]
	return ok, nil
}

// ── Mock RequestRepository ──

// mockRequestRepo keeps the conditional-update semantics of the real store:
// TransitionFromPending checks and writes under one lock
type mockRequestRepo struct {
	mu       sync.Mutex
	requests map[int64]*model.Request
	nextID   int64
	clubs    *mockClubRepo
	rooms    *mockRoomRepo
	err      error
}

func newMockRequestRepo(clubs *mockClubRepo, rooms *mockRoomRepo) *mockRequestRepo {
	return &mockRequestRepo{
		requests: make(map[int64]*model.Request),
		clubs:    clubs,
		rooms:    rooms,
	}
}

// seed stores a request as-is, bypassing the service
func (m *mockRequestRepo) seed(r *model.Request) *model.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.RequestID = m.nextID
	m.requests[r.RequestID] = r
	return r
}

func (m *mockRequestRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// hydrate returns a copy with its associations, like the joined query does
func (m *mockRequestRepo) hydrate(r *model.Request) model.Request {
	c := *r
	if club, ok := m.clubs.clubs[r.ClubID]; ok {
		c.Club = club
	}
	if r.RoomID != nil {
		if room, ok := m.rooms.rooms[*r.RoomID]; ok {
			c.Room = room
		}
	}
	return c
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.Request) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	req.RequestID = m.nextID
	stored := *req
	m.requests[req.RequestID] = &stored
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id int64) (*model.Request, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := m.hydrate(r)
	return &c, nil
}

func (m *mockRequestRepo) List(_ context.Context, filter repository.RequestFilter) ([]model.Request, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Request
	for _, r := range m.requests {
		if filter.ClubID != nil && r.ClubID != *filter.ClubID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		result = append(result, m.hydrate(r))
	}
	sortNewestFirst(result)
	return result, nil
}

func (m *mockRequestRepo) CountByStatus(_ context.Context, clubID *int64, status model.RequestStatus) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, r := range m.requests {
		if clubID != nil && r.ClubID != *clubID {
			continue
		}
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockRequestRepo) CountUpcoming(_ context.Context, clubID *int64, today time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	day := today.Format(time.DateOnly)
	var n int64
	for _, r := range m.requests {
		if clubID != nil && r.ClubID != *clubID {
			continue
		}
		if r.Status != model.StatusApproved || r.EventDate == nil {
			continue
		}
		if strings.Compare(r.EventDate.Format(time.DateOnly), day) >= 0 {
			n++
		}
	}
	return n, nil
}

func (m *mockRequestRepo) Latest(ctx context.Context, clubID *int64) (*model.Request, error) {
	list, err := m.List(ctx, repository.RequestFilter{ClubID: clubID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}

func (m *mockRequestRepo) ListApprovedEvents(ctx context.Context, clubID *int64) ([]model.Request, error) {
	list, err := m.List(ctx, repository.RequestFilter{ClubID: clubID, Status: model.StatusApproved})
	if err != nil {
		return nil, err
	}
	var result []model.Request
	for _, r := range list {
		if r.EventDate != nil {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].EventDate.Before(*result[j].EventDate) })
	return result, nil
}

func (m *mockRequestRepo) TransitionFromPending(_ context.Context, id int64, to model.RequestStatus, decidedBy int64, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok || r.Status != model.StatusPending {
		return pkgerrors.ErrStatusConflict
	}
	r.Status = to
	r.DecidedBy = &decidedBy
	r.DecidedAt = &at
	r.UpdatedAt = at
	return nil
}

func sortNewestFirst(list []model.Request) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].RequestID > list[j].RequestID
	})
}

// ── Mock NotificationReadRepository ──

type mockNotificationReadRepo struct {
	mu    sync.Mutex
	reads map[[2]int64]time.Time
}

func newMockNotificationReadRepo() *mockNotificationReadRepo {
	return &mockNotificationReadRepo{reads: make(map[[2]int64]time.Time)}
}

func (m *mockNotificationReadRepo) MarkRead(_ context.Context, userID, requestID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, requestID}
	if _, ok := m.reads[key]; !ok {
		m.reads[key] = at
	}
	return nil
}

func (m *mockNotificationReadRepo) IsRead(_ context.Context, userID, requestID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.reads[[2]int64{userID, requestID}]
	return ok, nil
}

// ── Test fixture ──

type testRepos struct {
	users    *mockUserRepo
	clubs    *mockClubRepo
	rooms    *mockRoomRepo
	requests *mockRequestRepo
	reads    *mockNotificationReadRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	clubs := newMockClubRepo()
	rooms := newMockRoomRepo()
	tr := &testRepos{
		users:    newMockUserRepo(),
		clubs:    clubs,
		rooms:    rooms,
		requests: newMockRequestRepo(clubs, rooms),
		reads:    newMockNotificationReadRepo(),
	}
	return &repository.Repository{
		User:             tr.users,
		Club:             tr.clubs,
		Room:             tr.rooms,
		Request:          tr.requests,
		NotificationRead: tr.reads,
	}, tr
}

// ── Test sessions ──

func leaderSession(userID, clubID int64) policy.Session {
	return policy.Session{UserID: userID, Role: model.RoleClubLeader, ClubID: &clubID}
}

func suAdminSession() policy.Session {
	return policy.Session{UserID: 100, Role: model.RoleSUAdmin}
}

func studentLifeSession() policy.Session {
	return policy.Session{UserID: 200, Role: model.RoleStudentLifeAdmin}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func strPtr(v string) *string { return &v }
