package users

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

type stubRepo struct {
	users  map[int64]*User
	hashes map[int64]string
	nextID int64
}

func (s *stubRepo) visible(u *User, scope authz.Scope) bool {
	for _, cond := range scope.Conds() {
		switch cond.Field {
		case "org_id":
			if u.OrgID == nil || *u.OrgID != cond.Value {
				return false
			}
		case "id":
			if u.ID != cond.Value {
				return false
			}
		}
	}
	return true
}

func (s *stubRepo) List(_ context.Context, scope authz.Scope, _ shared.Page) ([]User, int, error) {
	var out []User
	for _, u := range s.users {
		if s.visible(u, scope) {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64, scope authz.Scope) (*User, error) {
	u, ok := s.users[id]
	if !ok || !s.visible(u, scope) {
		return nil, shared.NotFound("User", id)
	}
	copied := *u
	return &copied, nil
}

func (s *stubRepo) Create(_ context.Context, input CreateInput, passwordHash string) (*User, error) {
	s.nextID++
	u := &User{
		ID:           s.nextID,
		FirstName:    input.FirstName,
		Title:        input.Title,
		SurName:      input.SurName,
		PrimaryEmail: input.PrimaryEmail,
		SystemRole:   authz.Role(input.SystemRole),
		OrgID:        input.OrgID,
	}
	s.users[u.ID] = u
	s.hashes[u.ID] = passwordHash
	return u, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, scope authz.Scope, input UpdateInput) error {
	u, ok := s.users[id]
	if !ok || !s.visible(u, scope) {
		return shared.NotFound("User", id)
	}
	if input.SystemRole != nil {
		u.SystemRole = authz.Role(*input.SystemRole)
	}
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.OrgID != nil {
		u.OrgID = input.OrgID
	}
	return nil
}

type stubNotifier struct {
	welcomes []jobs.UserWelcomePayload
}

func (n *stubNotifier) EnqueueUserWelcome(_ context.Context, p jobs.UserWelcomePayload) (*asynq.TaskInfo, error) {
	n.welcomes = append(n.welcomes, p)
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

func orgOf(id int64) *int64 { return &id }

func newTestRepo() *stubRepo {
	admin := "admin@example.com"
	return &stubRepo{
		users: map[int64]*User{
			1: {ID: 1, FirstName: "Sam", Title: "Mx", SurName: "Root", SystemRole: authz.RoleSuperAdmin, PrimaryEmail: &admin},
			2: {ID: 2, FirstName: "Ana", Title: "Ms", SurName: "North", SystemRole: authz.RoleManagerAdmin, OrgID: orgOf(10)},
			3: {ID: 3, FirstName: "Ben", Title: "Mr", SurName: "West", SystemRole: authz.RoleManager, OrgID: orgOf(10)},
			4: {ID: 4, FirstName: "Cai", Title: "Mx", SurName: "East", SystemRole: authz.RoleStandardUser, OrgID: orgOf(10)},
			5: {ID: 5, FirstName: "Dee", Title: "Dr", SurName: "South", SystemRole: authz.RoleStandardUser, OrgID: orgOf(20)},
		},
		hashes: map[int64]string{},
		nextID: 5,
	}
}

func newTestService(repo *stubRepo) (*Service, *stubNotifier) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := &stubNotifier{}
	return NewService(logger, repo).WithNotifier(notifier), notifier
}

func TestListSuperAdminSeesAll(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	out, total, err := svc.List(context.Background(), principalWith(1, authz.RoleSuperAdmin, nil), nil, shared.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 5 || total != 5 {
		t.Fatalf("expected 5 users, got %d", len(out))
	}
}

func TestListManagerScopedToOwnOrg(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	out, _, err := svc.List(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), nil, shared.Page{Number: 1, Size: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 org 10 users, got %d", len(out))
	}
	for _, u := range out {
		if u.OrgID == nil || *u.OrgID != 10 {
			t.Fatalf("user %d leaked from outside org 10", u.ID)
		}
	}
}

func TestListConflictingOrgFilterDenied(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	other := int64(20)
	_, _, err := svc.List(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), &other, shared.Page{Number: 1, Size: 20})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if denied.Permission != authz.PermReadUsers {
		t.Fatalf("denial should name the widest permission, got %s", denied.Permission)
	}
}

func TestListManagerWithoutOrgFailsClosed(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, _, err := svc.List(context.Background(), principalWith(3, authz.RoleManager, nil), nil, shared.Page{Number: 1, Size: 20})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestGetManagerReadsSelf(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	u, err := svc.Get(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.ID != 3 {
		t.Fatalf("expected user 3, got %d", u.ID)
	}
}

func TestGetManagerReadsSameOrg(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	u, err := svc.Get(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 4)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.ID != 4 {
		t.Fatalf("expected user 4, got %d", u.ID)
	}
}

func TestGetForeignUserReadsAsMissing(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, err := svc.Get(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 5)
	var nf *shared.EntityNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	if nf.Entity != "User" || nf.ID != 5 {
		t.Fatalf("unexpected not found: %+v", nf)
	}
}

func TestGetManagerWithoutOrgReadsOthersAsMissing(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, err := svc.Get(context.Background(), principalWith(3, authz.RoleManager, nil), 4)
	var nf *shared.EntityNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetStandardUserDenied(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, err := svc.Get(context.Background(), principalWith(4, authz.RoleStandardUser, orgOf(10)), 3)
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if denied.Permission != authz.PermReadUsers {
		t.Fatalf("denial should name the widest permission, got %s", denied.Permission)
	}
}

func TestCreateReturnsGeneratedPasswordOnce(t *testing.T) {
	repo := newTestRepo()
	svc, notifier := newTestService(repo)
	email := "new@org10.example"
	created, err := svc.Create(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), CreateInput{
		SystemRole: "STANDARD_USER", FirstName: "Eve", Title: "Ms", SurName: "Lot", PrimaryEmail: &email,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Password == "" {
		t.Fatal("expected a generated password")
	}
	if hash := repo.hashes[created.User.ID]; hash == "" || hash == created.Password {
		t.Fatalf("stored credential must be a hash, got %q", hash)
	}
	if len(notifier.welcomes) != 1 || notifier.welcomes[0].Email != email {
		t.Fatalf("expected one welcome notification, got %+v", notifier.welcomes)
	}
	if notifier.welcomes[0].Password != created.Password {
		t.Fatal("welcome notification should carry the generated password")
	}
}

func TestCreateManagerRequiresAdminGrant(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, err := svc.Create(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), CreateInput{
		SystemRole: "MANAGER", FirstName: "Fay", Title: "Ms", SurName: "Hill",
	})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if denied.Permission != authz.PermCreateManagerOfRelatedOrg {
		t.Fatalf("expected CREATE_MANAGER_OF_RELATED_ORG denial, got %s", denied.Permission)
	}
}

func TestCreateInForeignOrgNeedsGlobalGrant(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	other := int64(20)
	_, err := svc.Create(context.Background(), principalWith(2, authz.RoleManagerAdmin, orgOf(10)), CreateInput{
		SystemRole: "STANDARD_USER", OrgID: &other, FirstName: "Gil", Title: "Mr", SurName: "Mead",
	})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if denied.Permission != authz.PermCreateStandardUser {
		t.Fatalf("expected CREATE_STANDARD_USER denial, got %s", denied.Permission)
	}
}

func TestCreateOmittedOrgDefaultsToRelated(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	created, err := svc.Create(context.Background(), principalWith(2, authz.RoleManagerAdmin, orgOf(10)), CreateInput{
		SystemRole: "MANAGER", FirstName: "Hal", Title: "Mr", SurName: "Penn",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.User.SystemRole != authz.RoleManager {
		t.Fatalf("expected MANAGER, got %s", created.User.SystemRole)
	}
}

func TestCreateStandardUserDeniedOutright(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	_, err := svc.Create(context.Background(), principalWith(4, authz.RoleStandardUser, orgOf(10)), CreateInput{
		SystemRole: "STANDARD_USER", FirstName: "Ivo", Title: "Mr", SurName: "Dale",
	})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestUpdateSelfDetails(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo)
	name := "Benedict"
	err := svc.Update(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 3, UpdateInput{FirstName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.users[3].FirstName != "Benedict" {
		t.Fatal("update not applied")
	}
}

func TestUpdateSameOrgStandardUserDetails(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo)
	name := "Caius"
	err := svc.Update(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 4, UpdateInput{FirstName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.users[4].FirstName != "Caius" {
		t.Fatal("update not applied")
	}
}

func TestUpdateCrossOrgRequiresGlobalGrant(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	name := "Delia"
	err := svc.Update(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 5, UpdateInput{FirstName: &name})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if denied.Permission != authz.PermUpdateStandardUsers {
		t.Fatalf("expected UPDATE_STANDARD_USERS denial, got %s", denied.Permission)
	}
}

func TestUpdateRoleChangeAccumulatesBothBuckets(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo)
	role := "MANAGER"
	err := svc.Update(context.Background(), principalWith(2, authz.RoleManagerAdmin, orgOf(10)), 4, UpdateInput{SystemRole: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.users[4].SystemRole != authz.RoleManager {
		t.Fatalf("expected role MANAGER, got %s", repo.users[4].SystemRole)
	}
}

func TestUpdateRoleChangeDeniedForManager(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	role := "MANAGER"
	err := svc.Update(context.Background(), principalWith(3, authz.RoleManager, orgOf(10)), 4, UpdateInput{SystemRole: &role})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestUpdateSuperAdminProtectedFromOthers(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	name := "Hijack"
	err := svc.Update(context.Background(), principalWith(2, authz.RoleManagerAdmin, orgOf(10)), 1, UpdateInput{FirstName: &name})
	var protected *authz.SuperAdminProtectedError
	if !errors.As(err, &protected) {
		t.Fatalf("expected superadmin protection, got %v", err)
	}
}

func TestUpdateSuperAdminBySelf(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo)
	name := "Samuel"
	err := svc.Update(context.Background(), principalWith(1, authz.RoleSuperAdmin, nil), 1, UpdateInput{FirstName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.users[1].FirstName != "Samuel" {
		t.Fatal("update not applied")
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	name := "Nobody"
	err := svc.Update(context.Background(), principalWith(1, authz.RoleSuperAdmin, nil), 99, UpdateInput{FirstName: &name})
	var nf *shared.EntityNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStandardUserDeniedAtGate(t *testing.T) {
	svc, _ := newTestService(newTestRepo())
	name := "Nope"
	err := svc.Update(context.Background(), principalWith(4, authz.RoleStandardUser, orgOf(10)), 4, UpdateInput{FirstName: &name})
	var denied *authz.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}
