package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
)

func setupTestClubService() (ClubService, *testRepos) {
	repo, tr := newTestRepos()
	return NewClubService(policy.New(true), repo, zap.NewNop()), tr
}

func TestClubService_Get(t *testing.T) {
	svc, _ := setupTestClubService()
	ctx := context.Background()

	club, err := svc.Get(ctx, leaderSession(10, 1), 1)
	if err != nil {
		t.Fatalf("Get own club: %v", err)
	}
	if club.ClubName != "NIMUN" {
		t.Errorf("expected NIMUN, got %s", club.ClubName)
	}

	if _, err := svc.Get(ctx, leaderSession(10, 1), 2); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, suAdminSession(), 99); !errors.Is(err, ErrClubNotFound) {
		t.Errorf("expected ErrClubNotFound, got %v", err)
	}
}

func TestClubService_Get_BudgetIsExact(t *testing.T) {
	svc, tr := setupTestClubService()
	tr.clubs.clubs[1].Budget = decimal.RequireFromString("1234567.89")

	club, err := svc.Get(context.Background(), leaderSession(10, 1), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if club.Budget != "1234567.89" {
		t.Errorf("expected budget 1234567.89, got %s", club.Budget)
	}

	body, err := json.Marshal(club)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"budget":1234567.89`) {
		t.Errorf("budget must render as an exact JSON number, got %s", body)
	}
}

func TestClubService_List(t *testing.T) {
	svc, _ := setupTestClubService()

	clubs, err := svc.List(context.Background(), studentLifeSession())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clubs) != 4 {
		t.Fatalf("expected 4 clubs, got %d", len(clubs))
	}
	if clubs[0].ClubName != "ICPC" {
		t.Errorf("expected clubs ordered by name, first=%s", clubs[0].ClubName)
	}

	if _, err := svc.List(context.Background(), leaderSession(10, 1)); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestClubService_List_Unavailable(t *testing.T) {
	svc, tr := setupTestClubService()
	tr.clubs.err = context.DeadlineExceeded

	if _, err := svc.List(context.Background(), suAdminSession()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestClubService_ListRooms(t *testing.T) {
	svc, _ := setupTestClubService()

	rooms, err := svc.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 5 || rooms[0].RoomName != "Auditorium A" || rooms[4].RoomName != "Seminar Room D" {
		t.Errorf("unexpected rooms: %+v", rooms)
	}
}
