package repository

import "testing"

func TestFeaturedSort_ReviewCountThenRating(t *testing.T) {
	if len(featuredSort) != 2 {
		t.Fatalf("featured sort has %d keys, want 2", len(featuredSort))
	}

	if featuredSort[0].Key != "reviewCount" || featuredSort[0].Value != -1 {
		t.Errorf("primary sort = %s:%v, want reviewCount descending", featuredSort[0].Key, featuredSort[0].Value)
	}
	if featuredSort[1].Key != "rating" || featuredSort[1].Value != -1 {
		t.Errorf("tiebreak sort = %s:%v, want rating descending", featuredSort[1].Key, featuredSort[1].Value)
	}
}
