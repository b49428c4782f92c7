package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/data/memory"
	"kennel-registry/internal/data/repository"
	"kennel-registry/internal/dto/request"
	"kennel-registry/internal/dto/response"
	"kennel-registry/pkg/blob"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	svc   *Service
	repo  *repository.Repository
	store blob.Store
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, func(*utils.Config) {})
}

func newFixtureWith(t *testing.T, configure func(*utils.Config)) *fixture {
	t.Helper()
	config := &utils.Config{
		Session:  utils.SessionConfig{CookieName: "registry_session", TTLHours: 24},
		Blob:     utils.BlobConfig{Driver: "memory", MaxUploadSize: 1 << 10},
		Registry: utils.RegistryConfig{OffspringLimit: 50, COIGenerations: 6},
	}
	configure(config)
	repo := memory.NewRepository()
	store := blob.NewMemory()
	return &fixture{
		svc:   NewService(repo, store, config, zaptest.NewLogger(t)),
		repo:  repo,
		store: store,
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) dog(t *testing.T, name, sex string, sire, dam *response.DogResponse) *response.DogResponse {
	t.Helper()
	req := &request.DogRequest{RegisteredName: name, Sex: sex}
	if sire != nil {
		req.SireID = ptr(sire.ID)
	}
	if dam != nil {
		req.DamID = ptr(dam.ID)
	}
	d, err := f.svc.Dog.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return d
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	var verrs utils.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation error on %s, got %v", field, err)
	}
	if got := verrs.First().Field; got != field {
		t.Fatalf("expected first failing field %s, got %s", field, got)
	}
}

func TestDogCreateWithParentsPopulatesRelationships(t *testing.T) {
	f := newFixture(t)
	sire := f.dog(t, "Arko vom Haus", "MALE", nil, nil)
	dam := f.dog(t, "Bella vom Haus", "FEMALE", nil, nil)
	pup := f.dog(t, "Cara vom Haus", "FEMALE", sire, dam)

	got, err := f.svc.Dog.Get(context.Background(), pup.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Sire == nil || got.Sire.ID != sire.ID {
		t.Fatalf("expected sire %s, got %+v", sire.ID, got.Sire)
	}
	if got.Dam == nil || got.Dam.ID != dam.ID {
		t.Fatalf("expected dam %s, got %+v", dam.ID, got.Dam)
	}
	if got.Status != entity.DogStatusActive {
		t.Fatalf("expected default status ACTIVE, got %s", got.Status)
	}
}

func TestDogCreateRequiresRegisteredName(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Dog.Create(context.Background(), &request.DogRequest{Sex: "MALE"})
	assertField(t, err, "registeredName")
}

func TestDogParentRules(t *testing.T) {
	f := newFixture(t)
	female := f.dog(t, "Dora", "FEMALE", nil, nil)
	male := f.dog(t, "Emil", "MALE", nil, nil)

	cases := []struct {
		name  string
		req   *request.DogRequest
		field string
	}{
		{"female sire", &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", SireID: &female.ID}, "sireId"},
		{"male dam", &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", DamID: &male.ID}, "damId"},
		{"missing sire", &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", SireID: ptr(uuid.NewString())}, "sireId"},
		{"bad kennel", &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", KennelID: ptr(uuid.NewString())}, "kennelId"},
		{"bad date", &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", DateOfBirth: ptr("2024-13-01")}, "dateOfBirth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Dog.Create(context.Background(), tc.req)
			assertField(t, err, tc.field)
		})
	}
}

func TestDogUpdateRejectsOwnAncestor(t *testing.T) {
	f := newFixture(t)
	grand := f.dog(t, "Grand", "MALE", nil, nil)
	son := f.dog(t, "Son", "MALE", grand, nil)

	_, err := f.svc.Dog.Update(context.Background(), grand.ID, &request.DogRequest{
		RegisteredName: "Grand",
		Sex:            "MALE",
		SireID:         &son.ID,
	})
	assertField(t, err, "sireId")

	_, err = f.svc.Dog.Update(context.Background(), son.ID, &request.DogRequest{
		RegisteredName: "Son",
		Sex:            "MALE",
		SireID:         &son.ID,
	})
	assertField(t, err, "sireId")
}

func TestDogLitterParents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sire := f.dog(t, "Sire", "MALE", nil, nil)
	dam := f.dog(t, "Dam", "FEMALE", nil, nil)
	other := f.dog(t, "Other", "MALE", nil, nil)

	litter, err := f.svc.Litter.Create(ctx, &request.LitterRequest{
		SireID: &sire.ID, DamID: &dam.ID, DateOfBirth: "2024-03-01", NumberOfPups: 4,
	})
	if err != nil {
		t.Fatalf("create litter: %v", err)
	}

	pup, err := f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Pup One", Sex: "FEMALE", LitterID: &litter.ID})
	if err != nil {
		t.Fatalf("create pup: %v", err)
	}
	if pup.Sire == nil || pup.Sire.ID != sire.ID || pup.Dam == nil || pup.Dam.ID != dam.ID {
		t.Fatalf("expected parents inherited from litter, got sire=%+v dam=%+v", pup.Sire, pup.Dam)
	}

	_, err = f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Pup Two", Sex: "MALE", LitterID: &litter.ID, SireID: &other.ID})
	assertField(t, err, "sireId")

	detail, err := f.svc.Litter.Get(ctx, litter.ID)
	if err != nil {
		t.Fatalf("get litter: %v", err)
	}
	if len(detail.Puppies) != 1 || detail.Puppies[0].ID != pup.ID {
		t.Fatalf("expected one puppy, got %+v", detail.Puppies)
	}
}

func TestLitterUpdateKeepsPuppyParentsConsistent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sire := f.dog(t, "Sire", "MALE", nil, nil)
	dam := f.dog(t, "Dam", "FEMALE", nil, nil)
	other := f.dog(t, "Other", "MALE", nil, nil)

	litter, err := f.svc.Litter.Create(ctx, &request.LitterRequest{
		SireID: &sire.ID, DamID: &dam.ID, DateOfBirth: "2024-03-01", NumberOfPups: 2,
	})
	if err != nil {
		t.Fatalf("create litter: %v", err)
	}
	pup, err := f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", LitterID: &litter.ID})
	if err != nil {
		t.Fatalf("create pup: %v", err)
	}

	_, err = f.svc.Litter.Update(ctx, litter.ID, &request.LitterRequest{
		SireID: &other.ID, DamID: &dam.ID, DateOfBirth: "2024-03-01", NumberOfPups: 2,
	})
	assertField(t, err, "sireId")

	stored, err := f.svc.Litter.Get(ctx, litter.ID)
	if err != nil {
		t.Fatalf("get litter: %v", err)
	}
	if stored.SireID == nil || *stored.SireID != sire.ID {
		t.Fatalf("expected litter sire unchanged, got %v", stored.SireID)
	}

	// the unchanged puppy still saves
	if _, err := f.svc.Dog.Update(ctx, pup.ID, &request.DogRequest{RegisteredName: "Pup", Sex: "MALE", LitterID: &litter.ID}); err != nil {
		t.Fatalf("re-save pup: %v", err)
	}

	// changing fields that do not touch the parents is fine
	if _, err := f.svc.Litter.Update(ctx, litter.ID, &request.LitterRequest{
		SireID: &sire.ID, DamID: &dam.ID, DateOfBirth: "2024-03-02", NumberOfPups: 3,
	}); err != nil {
		t.Fatalf("update litter: %v", err)
	}
}

func TestBlankOptionalFieldsMeanNotSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	blank := ""

	d, err := f.svc.Dog.Create(ctx, &request.DogRequest{
		RegisteredName: "Blank Fields",
		Sex:            "FEMALE",
		SireID:         &blank,
		DamID:          ptr("  "),
		KennelID:       &blank,
		LitterID:       &blank,
		DateOfBirth:    &blank,
		Microchip:      &blank,
	})
	if err != nil {
		t.Fatalf("create with blank optionals: %v", err)
	}
	if d.SireID != nil || d.DamID != nil || d.KennelID != nil || d.DateOfBirth != nil || d.Microchip != nil {
		t.Fatalf("expected blank optionals stored as unset, got %+v", d)
	}

	if _, err := f.svc.Litter.Create(ctx, &request.LitterRequest{
		SireID: &blank, DamID: &blank, KennelID: &blank, DateOfBirth: "2024-01-01", NumberOfPups: 1,
	}); err != nil {
		t.Fatalf("litter with blank ids: %v", err)
	}
	if _, err := f.svc.Kennel.Create(ctx, &request.KennelRequest{
		Name: "Blank Kennel", ContactEmail: &blank, Website: &blank,
	}); err != nil {
		t.Fatalf("kennel with blank contact: %v", err)
	}

	_, err = f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Bad Id", Sex: "MALE", SireID: ptr("nope")})
	assertField(t, err, "sireId")
}

func TestOffspringOrderingAndLimit(t *testing.T) {
	f := newFixtureWith(t, func(c *utils.Config) { c.Registry.OffspringLimit = 3 })
	ctx := context.Background()
	dam := f.dog(t, "Dam", "FEMALE", nil, nil)

	for _, pup := range []struct{ name, born string }{
		{"Zed", "2020-05-01"},
		{"Amy", "2021-05-01"},
		{"Bob", "2020-05-01"},
		{"Cat", ""},
	} {
		req := &request.DogRequest{RegisteredName: pup.name, Sex: "MALE", DamID: &dam.ID}
		if pup.born != "" {
			req.DateOfBirth = ptr(pup.born)
		}
		if _, err := f.svc.Dog.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", pup.name, err)
		}
	}

	offspring, err := f.svc.Pedigree.Offspring(ctx, dam.ID)
	if err != nil {
		t.Fatalf("offspring: %v", err)
	}
	var names []string
	for _, o := range offspring {
		names = append(names, o.RegisteredName)
	}
	if strings.Join(names, ",") != "Bob,Zed,Amy" {
		t.Fatalf("expected Bob,Zed,Amy, got %v", names)
	}
}

func TestKennelReplaceResetsActiveFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	k, err := f.svc.Kennel.Create(ctx, &request.KennelRequest{Name: "vom Tal", IsActive: ptr(false)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if k.IsActive {
		t.Fatalf("expected inactive kennel")
	}

	k, err = f.svc.Kennel.Update(ctx, k.ID, &request.KennelRequest{Name: "vom Tal"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !k.IsActive {
		t.Fatalf("expected omitted isActive to reset to true")
	}
}

func TestDogUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "First", Sex: "MALE", RegistrationNumber: ptr("REG-1"), Microchip: ptr("CHIP-1")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Second", Sex: "MALE", RegistrationNumber: ptr("REG-1")})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on registration number, got %v", err)
	}
	_, err = f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Third", Sex: "MALE", Microchip: ptr(" CHIP-1 ")})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on microchip, got %v", err)
	}
}

func TestDogDeleteKeepsOffspringAndRemovesFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sire := f.dog(t, "Sire", "MALE", nil, nil)
	pup := f.dog(t, "Pup", "MALE", sire, nil)

	att, err := f.svc.Attachment.Upload(ctx, sire.ID, entity.AttachmentPhoto, Upload{
		Filename: "sire.png", ContentType: "image/png", Size: 4, Body: strings.NewReader("\x89PNG"),
	}, &request.AttachmentUploadRequest{})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := f.svc.Dog.Delete(ctx, sire.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := f.svc.Dog.Get(ctx, pup.ID)
	if err != nil {
		t.Fatalf("get pup: %v", err)
	}
	if got.SireID != nil {
		t.Fatalf("expected sire cleared, got %v", *got.SireID)
	}
	if _, _, err := f.svc.Attachment.Open(ctx, att.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected attachment gone, got %v", err)
	}
	if _, err := f.svc.Dog.Get(ctx, sire.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected dog not found, got %v", err)
	}
}

func TestPedigreeServiceInbreedingOfFullSiblingMating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gs := f.dog(t, "Grandsire", "MALE", nil, nil)
	gd := f.dog(t, "Granddam", "FEMALE", nil, nil)
	brother := f.dog(t, "Brother", "MALE", gs, gd)
	sister := f.dog(t, "Sister", "FEMALE", gs, gd)
	pup := f.dog(t, "Inbred", "MALE", brother, sister)

	coi, err := f.svc.Pedigree.Inbreeding(ctx, pup.ID)
	if err != nil {
		t.Fatalf("inbreeding: %v", err)
	}
	if math.Abs(coi.Coefficient-0.25) > 1e-9 {
		t.Fatalf("expected 0.25, got %v", coi.Coefficient)
	}
	if len(coi.CommonAncestors) != 2 {
		t.Fatalf("expected 2 common ancestors, got %d", len(coi.CommonAncestors))
	}
	if coi.Stored != nil {
		t.Fatalf("expected no stored coefficient before save")
	}

	saved, err := f.svc.Pedigree.SaveInbreeding(ctx, pup.ID)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Stored == nil || math.Abs(*saved.Stored-0.25) > 1e-9 {
		t.Fatalf("expected stored 0.25, got %v", saved.Stored)
	}

	offspring, err := f.svc.Pedigree.Offspring(ctx, gs.ID)
	if err != nil {
		t.Fatalf("offspring: %v", err)
	}
	if len(offspring) != 2 {
		t.Fatalf("expected 2 offspring, got %d", len(offspring))
	}
}

func TestPedigreeTreeWithOnlySire(t *testing.T) {
	f := newFixture(t)
	gs := f.dog(t, "Grandsire", "MALE", nil, nil)
	sire := f.dog(t, "Sire", "MALE", gs, nil)
	pup := f.dog(t, "Pup", "FEMALE", sire, nil)

	tree, err := f.svc.Pedigree.Pedigree(context.Background(), pup.ID)
	if err != nil {
		t.Fatalf("pedigree: %v", err)
	}
	if tree.Tree.Dam == nil || tree.Tree.Dam.Known || tree.Tree.Dam.RegisteredName != "Unknown" {
		t.Fatalf("expected unknown dam, got %+v", tree.Tree.Dam)
	}
	if !tree.Tree.Sire.Known || tree.Tree.Sire.Sire == nil || tree.Tree.Sire.Sire.RegisteredName != "Grandsire" {
		t.Fatalf("expected sire branch with grandsire, got %+v", tree.Tree.Sire)
	}
}

func TestSiblingsExcludeSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	litter, err := f.svc.Litter.Create(ctx, &request.LitterRequest{DateOfBirth: "2023-05-05", NumberOfPups: 3})
	if err != nil {
		t.Fatalf("litter: %v", err)
	}
	var ids []string
	for _, name := range []string{"Ann", "Ben", "Cid"} {
		d, err := f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: name, Sex: "MALE", LitterID: &litter.ID})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, d.ID)
	}

	siblings, err := f.svc.Pedigree.Siblings(ctx, ids[0])
	if err != nil {
		t.Fatalf("siblings: %v", err)
	}
	if len(siblings) != 2 {
		t.Fatalf("expected 2 siblings, got %d", len(siblings))
	}
	for _, s := range siblings {
		if s.ID == ids[0] {
			t.Fatalf("dog listed as its own sibling")
		}
	}
}

func TestLitterRejectsFemaleSire(t *testing.T) {
	f := newFixture(t)
	dam := f.dog(t, "Dam", "FEMALE", nil, nil)
	_, err := f.svc.Litter.Create(context.Background(), &request.LitterRequest{
		SireID: &dam.ID, DateOfBirth: "2024-01-01", NumberOfPups: 2,
	})
	assertField(t, err, "sireId")
}

func TestKennelNameConflictAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	k, err := f.svc.Kennel.Create(ctx, &request.KennelRequest{Name: "vom Haus"})
	if err != nil {
		t.Fatalf("create kennel: %v", err)
	}
	if _, err := f.svc.Kennel.Create(ctx, &request.KennelRequest{Name: "vom Haus"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	d, err := f.svc.Dog.Create(ctx, &request.DogRequest{RegisteredName: "Kennel Dog", Sex: "MALE", KennelID: &k.ID})
	if err != nil {
		t.Fatalf("create dog: %v", err)
	}
	detail, err := f.svc.Kennel.Get(ctx, k.ID)
	if err != nil {
		t.Fatalf("get kennel: %v", err)
	}
	if len(detail.Dogs) != 1 {
		t.Fatalf("expected 1 kennel dog, got %d", len(detail.Dogs))
	}

	if err := f.svc.Kennel.Delete(ctx, k.ID); err != nil {
		t.Fatalf("delete kennel: %v", err)
	}
	got, err := f.svc.Dog.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get dog: %v", err)
	}
	if got.KennelID != nil {
		t.Fatalf("expected kennel cleared on dog")
	}
}

func TestLoginRequiresActiveAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.svc.Auth.Register(ctx, &request.RegisterRequest{Email: "New@Example.com", Name: "New Member", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.IsActive || user.Role != entity.RoleMember {
		t.Fatalf("expected inactive MEMBER, got %+v", user)
	}

	login := &request.LoginRequest{Email: "new@example.com", Password: "password123"}
	if _, err := f.svc.Auth.Login(ctx, login, ClientInfo{}); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected inactive error, got %v", err)
	}
	if _, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "new@example.com", Password: "wrong-pass"}, ClientInfo{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	admin := uuid.New()
	if _, err := f.svc.Member.Update(ctx, admin, user.ID, &request.MemberUpdateRequest{IsActive: ptr(true)}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	auth, err := f.svc.Auth.Login(ctx, login, ClientInfo{UserAgent: "test"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.Token == "" {
		t.Fatalf("expected session token")
	}
}

func TestMemberProtections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root, err := SeedSuperAdmin(ctx, f.repo, utils.SeedConfig{AdminEmail: "root@example.com", AdminPassword: "rootpassword"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	admin, err := f.svc.Member.Create(ctx, &request.MemberCreateRequest{Email: "admin@example.com", Name: "Admin", Password: "password123", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	adminID := uuid.MustParse(admin.ID)

	if err := f.svc.Member.Delete(ctx, adminID, root.ID.String()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden deleting super admin, got %v", err)
	}
	if _, err := f.svc.Member.Update(ctx, adminID, root.ID.String(), &request.MemberUpdateRequest{Name: ptr("Renamed")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden updating super admin, got %v", err)
	}
	if err := f.svc.Member.Delete(ctx, adminID, admin.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden deleting self, got %v", err)
	}
	_, err = f.svc.Member.Create(ctx, &request.MemberCreateRequest{Email: "x@example.com", Name: "Xavier", Password: "password123", Role: "SUPER_ADMIN"})
	assertField(t, err, "role")
	if _, err := f.svc.Member.Create(ctx, &request.MemberCreateRequest{Email: "ADMIN@example.com", Name: "Dup", Password: "password123", Role: "MEMBER"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestSeedSuperAdminResetsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	log := zaptest.NewLogger(t)
	seed := utils.SeedConfig{AdminEmail: "root@example.com", AdminPassword: "first-password"}

	first, err := SeedSuperAdmin(ctx, f.repo, seed, log)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	seed.AdminPassword = "second-password"
	second, err := SeedSuperAdmin(ctx, f.repo, seed, log)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same account to be reset")
	}
	if _, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "root@example.com", Password: "second-password"}, ClientInfo{}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := SeedSuperAdmin(ctx, f.repo, utils.SeedConfig{}, log); !errors.Is(err, ErrSeedNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestAttachmentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.dog(t, "Photo Dog", "FEMALE", nil, nil)

	upload := func(name string, primary bool) *response.AttachmentResponse {
		t.Helper()
		att, err := f.svc.Attachment.Upload(ctx, d.ID, entity.AttachmentPhoto, Upload{
			Filename: name, ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("jpg"),
		}, &request.AttachmentUploadRequest{IsPrimary: primary})
		if err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
		return att
	}
	first := upload("a.jpg", true)
	second := upload("b.jpg", false)

	if _, err := f.svc.Attachment.Update(ctx, second.ID, &request.AttachmentUpdateRequest{IsPrimary: ptr(true), Title: ptr("Show photo")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, err := f.svc.Attachment.List(ctx, d.ID, entity.AttachmentPhoto)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || !list[0].IsPrimary || list[1].IsPrimary {
		t.Fatalf("expected second photo as the only primary, got %+v", list)
	}
	if list[0].Title == nil || *list[0].Title != "Show photo" {
		t.Fatalf("expected title updated")
	}

	att, rc, err := f.svc.Attachment.Open(ctx, first.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "jpg" || att.ContentType != "image/jpeg" {
		t.Fatalf("unexpected content %q %s", body, att.ContentType)
	}

	if err := f.svc.Attachment.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := f.svc.Attachment.Open(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestAttachmentUploadLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.dog(t, "Cert Dog", "MALE", nil, nil)

	_, err := f.svc.Attachment.Upload(ctx, d.ID, entity.AttachmentPhoto, Upload{
		Filename: "doc.pdf", ContentType: "application/pdf", Size: 3, Body: strings.NewReader("pdf"),
	}, &request.AttachmentUploadRequest{})
	assertField(t, err, "file")

	big := bytes.Repeat([]byte("x"), 2<<10)
	_, err = f.svc.Attachment.Upload(ctx, d.ID, entity.AttachmentCertificate, Upload{
		Filename: "big.pdf", ContentType: "application/pdf", Size: -1, Body: bytes.NewReader(big),
	}, &request.AttachmentUploadRequest{})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}

	cert, err := f.svc.Attachment.Upload(ctx, d.ID, entity.AttachmentCertificate, Upload{
		Filename: "hips.pdf", ContentType: "application/pdf", Size: 3, Body: strings.NewReader("pdf"),
	}, &request.AttachmentUploadRequest{CertificateType: ptr("HD"), IssuedAt: ptr("2024-02-02")})
	if err != nil {
		t.Fatalf("upload certificate: %v", err)
	}
	if cert.IssuedAt == nil || *cert.IssuedAt != "2024-02-02" || cert.CertificateType == nil {
		t.Fatalf("expected certificate metadata, got %+v", cert)
	}
}

func TestDashboardCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.dog(t, "One", "MALE", nil, nil)
	f.dog(t, "Two", "FEMALE", nil, nil)
	if _, err := f.svc.Auth.Register(ctx, &request.RegisterRequest{Email: "p@example.com", Name: "Pending", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	counts, err := f.svc.Dashboard.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Dogs != 2 || counts.Members != 1 || counts.PendingMembers != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}
