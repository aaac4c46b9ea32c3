package tickets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
	"github.com/super0605/customer-service-platform-backend/jobs"
)

type stubTicket struct {
	ticket Ticket
	orgID  int64
}

type stubRepo struct {
	tickets    map[int64]*stubTicket
	lotOrg     map[int64]int64
	lotUsers   map[int64][]int64
	managers   map[int64]string
	userEmails map[int64]string
	nextID     int64
}

func (s *stubRepo) visible(t *stubTicket, scope authz.Scope) bool {
	for _, cond := range scope.Conds() {
		switch cond.Field {
		case "org_id":
			if t.orgID != cond.Value {
				return false
			}
		case "issuer_id":
			if t.ticket.IssuerID != cond.Value {
				return false
			}
		}
	}
	return true
}

func (s *stubRepo) List(_ context.Context, scope authz.Scope, filter ListFilter, _ shared.Page) ([]Ticket, int, error) {
	var out []Ticket
	for _, t := range s.tickets {
		if !s.visible(t, scope) {
			continue
		}
		if filter.PrimaryLotID != nil && t.ticket.PrimaryLotID != *filter.PrimaryLotID {
			continue
		}
		out = append(out, t.ticket)
	}
	return out, len(out), nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64, scope authz.Scope) (*Ticket, error) {
	t, ok := s.tickets[id]
	if !ok || !s.visible(t, scope) {
		return nil, shared.NotFound("Ticket", id)
	}
	return &t.ticket, nil
}

func (s *stubRepo) Create(_ context.Context, issuerID int64, input CreateInput) (*Ticket, error) {
	s.nextID++
	t := Ticket{
		ID:           s.nextID,
		PrimaryLotID: input.PrimaryLotID,
		TicketType:   input.TicketType,
		Title:        input.Title,
		IssuerID:     issuerID,
		TicketStatus: StatusOpen,
	}
	s.tickets[t.ID] = &stubTicket{ticket: t, orgID: s.lotOrg[input.PrimaryLotID]}
	return &t, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, scope authz.Scope, input UpdateInput) (*Ticket, error) {
	t, ok := s.tickets[id]
	if !ok || !s.visible(t, scope) {
		return nil, shared.NotFound("Ticket", id)
	}
	if input.Title != nil {
		t.ticket.Title = *input.Title
	}
	if input.TicketStatus != nil {
		t.ticket.TicketStatus = *input.TicketStatus
	}
	return &t.ticket, nil
}

func (s *stubRepo) LotInOrg(_ context.Context, lotID, orgID int64) (bool, error) {
	got, ok := s.lotOrg[lotID]
	return ok && got == orgID, nil
}

func (s *stubRepo) LotOfUser(_ context.Context, lotID, userID int64) (bool, error) {
	for _, u := range s.lotUsers[lotID] {
		if u == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) ManagerEmail(_ context.Context, orgID int64) (string, error) {
	return s.managers[orgID], nil
}

func (s *stubRepo) UserEmail(_ context.Context, userID int64) (string, error) {
	return s.userEmails[userID], nil
}

type stubNotifier struct {
	created []jobs.TicketCreatedPayload
	updated []jobs.TicketUpdatedPayload
}

func (n *stubNotifier) EnqueueTicketCreated(_ context.Context, p jobs.TicketCreatedPayload) (*asynq.TaskInfo, error) {
	n.created = append(n.created, p)
	return &asynq.TaskInfo{}, nil
}

func (n *stubNotifier) EnqueueTicketUpdated(_ context.Context, p jobs.TicketUpdatedPayload) (*asynq.TaskInfo, error) {
	n.updated = append(n.updated, p)
	return &asynq.TaskInfo{}, nil
}

func principalWith(id int64, role authz.Role, orgID *int64) *authz.Principal {
	cat := authz.NewCatalog()
	return &authz.Principal{
		ID:          id,
		OrgID:       orgID,
		Role:        role,
		Permissions: authz.NewPermissionSet(cat.PermissionsFor(role)),
	}
}

func newTestRepo() *stubRepo {
	return &stubRepo{
		tickets: map[int64]*stubTicket{
			1: {ticket: Ticket{ID: 1, PrimaryLotID: 100, Title: "Leaking tap", IssuerID: 5, TicketStatus: StatusOpen}, orgID: 10},
			2: {ticket: Ticket{ID: 2, PrimaryLotID: 200, Title: "Broken gate", IssuerID: 6, TicketStatus: StatusOpen}, orgID: 20},
			3: {ticket: Ticket{ID: 3, PrimaryLotID: 101, Title: "Noisy lift", IssuerID: 7, TicketStatus: StatusOpen}, orgID: 10},
		},
		lotOrg:     map[int64]int64{100: 10, 101: 10, 200: 20},
		lotUsers:   map[int64][]int64{100: {5}},
		managers:   map[int64]string{10: "manager@org10.example"},
		userEmails: map[int64]string{5: "issuer@example.com"},
		nextID:     3,
	}
}

func newTestService(repo *stubRepo) (*Service, *stubNotifier) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := &stubNotifier{}
	return NewService(logger, repo).WithNotifier(notifier), notifier
}

func TestListSuperAdminSeesAll(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	out, _, err := svc.List(context.Background(), principalWith(1, authz.RoleSuperAdmin, nil), nil, ListFilter{}, shared.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(out))
	}
}

func TestListManagerScopedToOrg(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org := int64(10)
	out, _, err := svc.List(context.Background(), principalWith(2, authz.RoleManager, &org), nil, ListFilter{}, shared.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 org 10 tickets, got %d", len(out))
	}
}

func TestListStandardUserSeesOwnIssuedOnly(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org := int64(10)
	out, _, err := svc.List(context.Background(), principalWith(5, authz.RoleStandardUser, &org), nil, ListFilter{}, shared.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].IssuerID != 5 {
		t.Fatalf("expected only tickets issued by 5, got %+v", out)
	}
}

func TestListStandardUserWithoutOrgFailsClosed(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, _, err := svc.List(context.Background(), principalWith(5, authz.RoleStandardUser, nil), nil, ListFilter{}, shared.Page{Number: 1, Size: 20})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if denied.Permission != authz.PermReadTickets {
		t.Fatalf("denial must name READ_TICKETS, got %s", denied.Permission)
	}
}

func TestListConflictingOrgFilterDenied(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org, other := int64(10), int64(20)
	_, _, err := svc.List(context.Background(), principalWith(2, authz.RoleManager, &org), &other, ListFilter{}, shared.Page{Number: 1, Size: 20})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if denied.Permission != authz.PermReadTickets {
		t.Fatalf("denial must name READ_TICKETS, got %s", denied.Permission)
	}
}

func TestGetForeignTicketReadsAsMissing(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org := int64(10)
	_, err := svc.Get(context.Background(), principalWith(2, authz.RoleManager, &org), 2)
	var notFound *shared.EntityNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected EntityNotFoundError, got %v", err)
	}
}

func TestCreateManagerInOwnOrgNotifiesManager(t *testing.T) {
	repo := newTestRepo()
	svc, notifier := newTestService(repo)
	org := int64(10)
	ticket, err := svc.Create(context.Background(), principalWith(2, authz.RoleManager, &org), CreateInput{
		PrimaryLotID: 101, TicketType: "Problem", Title: "Flood",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.TicketStatus != StatusOpen {
		t.Fatalf("new tickets must open, got %s", ticket.TicketStatus)
	}
	if len(notifier.created) != 1 || notifier.created[0].ManagerEmail != "manager@org10.example" {
		t.Fatalf("expected manager notification, got %+v", notifier.created)
	}
}

func TestCreateManagerForeignLotReadsAsMissing(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org := int64(10)
	_, err := svc.Create(context.Background(), principalWith(2, authz.RoleManager, &org), CreateInput{
		PrimaryLotID: 200, TicketType: "Problem", Title: "Flood",
	})
	var notFound *shared.EntityNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected EntityNotFoundError, got %v", err)
	}
	if notFound.Entity != "Lot" {
		t.Fatalf("expected missing Lot, got %s", notFound.Entity)
	}
}

func TestCreateStandardUserNeedsLotRole(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org := int64(10)

	if _, err := svc.Create(context.Background(), principalWith(5, authz.RoleStandardUser, &org), CreateInput{
		PrimaryLotID: 100, TicketType: "Question", Title: "Bins",
	}); err != nil {
		t.Fatalf("create on own lot: %v", err)
	}

	_, err := svc.Create(context.Background(), principalWith(5, authz.RoleStandardUser, &org), CreateInput{
		PrimaryLotID: 101, TicketType: "Question", Title: "Bins",
	})
	var notFound *shared.EntityNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected EntityNotFoundError, got %v", err)
	}
}

func TestCreateWithoutOrgFailsClosed(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, err := svc.Create(context.Background(), principalWith(5, authz.RoleStandardUser, nil), CreateInput{
		PrimaryLotID: 100, TicketType: "Question", Title: "Bins",
	})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if denied.Permission != authz.PermCreateTicket {
		t.Fatalf("denial must name CREATE_TICKET, got %s", denied.Permission)
	}
}

func TestUpdateNotifiesIssuer(t *testing.T) {
	repo := newTestRepo()
	svc, notifier := newTestService(repo)
	org := int64(10)
	closed := StatusClosed
	if err := svc.Update(context.Background(), principalWith(2, authz.RoleManager, &org), 1, UpdateInput{TicketStatus: &closed}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.tickets[1].ticket.TicketStatus != StatusClosed {
		t.Fatalf("expected ticket closed, got %s", repo.tickets[1].ticket.TicketStatus)
	}
	if len(notifier.updated) != 1 || notifier.updated[0].IssuerEmail != "issuer@example.com" {
		t.Fatalf("expected issuer notification, got %+v", notifier.updated)
	}
}

func TestUpdateForeignTicketReadsAsMissing(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	org := int64(10)
	title := "Renamed"
	err := svc.Update(context.Background(), principalWith(2, authz.RoleManager, &org), 2, UpdateInput{Title: &title})
	var notFound *shared.EntityNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected EntityNotFoundError, got %v", err)
	}
}
