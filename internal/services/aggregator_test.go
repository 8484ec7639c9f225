package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"service-review-backend/internal/models"
)

type fakeRatingSource struct {
	sum   float64
	count int64
	err   error

	inFlight int32
	overlap  int32
}

func (f *fakeRatingSource) RatingSummary(ctx context.Context, serviceID string) (float64, int64, error) {
	if atomic.AddInt32(&f.inFlight, 1) > 1 {
		atomic.StoreInt32(&f.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&f.inFlight, -1)

	return f.sum, f.count, f.err
}

type fakeRatingWriter struct {
	mu     sync.Mutex
	id     primitive.ObjectID
	rating float64
	count  int
	calls  int
	err    error
}

func (f *fakeRatingWriter) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	f.rating = rating
	f.count = reviewCount
	f.calls++
	return f.err
}

func TestRecompute_AveragesAndCounts(t *testing.T) {
	// two reviews rated 5 and 3
	source := &fakeRatingSource{sum: 8, count: 2}
	writer := &fakeRatingWriter{}
	agg := NewAggregator(writer, source)

	serviceID := primitive.NewObjectID()
	if err := agg.Recompute(context.Background(), serviceID.Hex()); err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if writer.id != serviceID {
		t.Errorf("wrote to service %s, want %s", writer.id.Hex(), serviceID.Hex())
	}
	if writer.rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", writer.rating)
	}
	if writer.count != 2 {
		t.Errorf("reviewCount = %d, want 2", writer.count)
	}
}

func TestRecompute_RoundsToOneDecimal(t *testing.T) {
	// ratings 1, 2, 2: average 1.666... must be stored as 1.7
	source := &fakeRatingSource{sum: 5, count: 3}
	writer := &fakeRatingWriter{}
	agg := NewAggregator(writer, source)

	if err := agg.Recompute(context.Background(), primitive.NewObjectID().Hex()); err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if writer.rating != 1.7 {
		t.Errorf("rating = %v, want 1.7", writer.rating)
	}
}

func TestRecompute_ZeroReviewsResetsAggregate(t *testing.T) {
	source := &fakeRatingSource{sum: 0, count: 0}
	writer := &fakeRatingWriter{}
	agg := NewAggregator(writer, source)

	if err := agg.Recompute(context.Background(), primitive.NewObjectID().Hex()); err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if writer.rating != 0 {
		t.Errorf("rating = %v, want 0", writer.rating)
	}
	if writer.count != 0 {
		t.Errorf("reviewCount = %d, want 0", writer.count)
	}
}

func TestRecompute_InvalidServiceID(t *testing.T) {
	writer := &fakeRatingWriter{}
	agg := NewAggregator(writer, &fakeRatingSource{})

	err := agg.Recompute(context.Background(), "not-a-hex-id")
	if !errors.Is(err, models.ErrInvalidID) {
		t.Fatalf("Recompute = %v, want ErrInvalidID", err)
	}
	if writer.calls != 0 {
		t.Errorf("UpdateRating called %d times for an invalid id", writer.calls)
	}
}

func TestRecompute_SerializedPerService(t *testing.T) {
	source := &fakeRatingSource{sum: 10, count: 2}
	writer := &fakeRatingWriter{}
	agg := NewAggregator(writer, source)

	serviceID := primitive.NewObjectID().Hex()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := agg.Recompute(context.Background(), serviceID); err != nil {
				t.Errorf("Recompute returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&source.overlap) != 0 {
		t.Error("concurrent recomputations for the same service overlapped")
	}
	if writer.calls != 20 {
		t.Errorf("UpdateRating called %d times, want 20", writer.calls)
	}
}
