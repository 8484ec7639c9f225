package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/internal/models"
)

type fakeUserRepo struct {
	byEmail *models.User
	created *models.User
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmail == nil {
		return nil, models.ErrNotFound
	}
	return f.byEmail, nil
}

func (f *fakeUserRepo) FindByFilter(ctx context.Context, filter map[string]string) (*models.User, error) {
	if f.byEmail == nil {
		return nil, models.ErrNotFound
	}
	return f.byEmail, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.created = user
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestRegister_FirstSignInCreatesUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, nil)

	user, created, err := svc.Register(context.Background(), &models.User{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if !created {
		t.Error("created = false on first sign-in")
	}
	if repo.created == nil || user.ID.IsZero() {
		t.Error("user was not stored")
	}
}

func TestRegister_KnownEmailIsIdempotent(t *testing.T) {
	existing := &models.User{ID: primitive.NewObjectID(), Email: "known@example.com"}
	repo := &fakeUserRepo{byEmail: existing}
	svc := NewUserService(repo, nil)

	user, created, err := svc.Register(context.Background(), &models.User{Email: "known@example.com"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if created {
		t.Error("created = true for a known email")
	}
	if user.ID != existing.ID {
		t.Errorf("returned user %s, want existing %s", user.ID.Hex(), existing.ID.Hex())
	}
	if repo.created != nil {
		t.Error("duplicate user was stored")
	}
}

func TestRegister_NewUserInvalidatesCounts(t *testing.T) {
	cache := newFakeCache()
	svc := NewUserService(&fakeUserRepo{}, cache)

	_, _, err := svc.Register(context.Background(), &models.User{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if !cache.deletedKey(countsCacheKey) {
		t.Error("counts cache entry was not invalidated on first sign-in")
	}
}

func TestRegister_KnownEmailKeepsCounts(t *testing.T) {
	cache := newFakeCache()
	existing := &models.User{ID: primitive.NewObjectID(), Email: "known@example.com"}
	svc := NewUserService(&fakeUserRepo{byEmail: existing}, cache)

	_, _, err := svc.Register(context.Background(), &models.User{Email: "known@example.com"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if cache.deletedKey(countsCacheKey) {
		t.Error("counts cache entry was invalidated, but no user was created")
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, nil)

	_, _, err := svc.Register(context.Background(), &models.User{Email: "not-an-email"})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("Register = %v, want ErrValidation", err)
	}
}

type fixedCounter int64

func (f fixedCounter) Count(ctx context.Context) (int64, error) {
	return int64(f), nil
}

func TestCounts_ReportsAllCollections(t *testing.T) {
	svc := NewCountsService(fixedCounter(3), fixedCounter(12), fixedCounter(5), nil)

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}

	if counts.ServiceCount != 3 || counts.ReviewCount != 12 || counts.UserCount != 5 {
		t.Errorf("counts = %+v, want services 3, reviews 12, users 5", counts)
	}
}

func TestCounts_ServedFromCache(t *testing.T) {
	cache := newFakeCache()
	cache.store[countsCacheKey] = `{"reviewCount":12,"userCount":5,"serviceCount":3}`

	// Counters disagree with the cache on purpose: a hit must not touch them.
	svc := NewCountsService(fixedCounter(99), fixedCounter(99), fixedCounter(99), cache)

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}

	if counts.ServiceCount != 3 || counts.ReviewCount != 12 || counts.UserCount != 5 {
		t.Errorf("counts = %+v, want the cached values", counts)
	}
}

func TestCounts_PopulatesCacheOnMiss(t *testing.T) {
	cache := newFakeCache()
	svc := NewCountsService(fixedCounter(3), fixedCounter(12), fixedCounter(5), cache)

	if _, err := svc.Counts(context.Background()); err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}

	cached, ok := cache.store[countsCacheKey]
	if !ok {
		t.Fatal("counts were not written to the cache")
	}
	if cached != `{"reviewCount":12,"userCount":5,"serviceCount":3}` {
		t.Errorf("cached counts = %s, want the computed totals", cached)
	}
}
