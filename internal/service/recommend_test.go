package service

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommendations_DeterministicPerUser(t *testing.T) {
	r := NewRecommendationService()

	out1 := r.ForUser(42)
	out2 := r.ForUser(42)

	if !reflect.DeepEqual(out1, out2) {
		t.Fatalf("recommendations differ across calls for the same user\nout1=%+v\nout2=%+v", out1, out2)
	}
}

func TestRecommendations_CountAndScoreBounds(t *testing.T) {
	r := NewRecommendationService()

	for userID := 1; userID <= 50; userID++ {
		out := r.ForUser(userID)

		n := len(out.Recommendations)
		if n < 3 || n > 5 {
			t.Fatalf("user %d: got %d recommendations, want 3..5", userID, n)
		}
		if out.PersonalizationScore < 0.7 || out.PersonalizationScore > 0.95 {
			t.Fatalf("user %d: score %v out of [0.7, 0.95]", userID, out.PersonalizationScore)
		}
	}
}

func TestRecommendations_NoDuplicateProducts(t *testing.T) {
	r := NewRecommendationService()

	out := r.ForUser(7)
	seen := make(map[int]bool)
	for _, p := range out.Recommendations {
		require.False(t, seen[p.ID], "product %d recommended twice", p.ID)
		seen[p.ID] = true
	}
}

func TestRecommendations_Metadata(t *testing.T) {
	r := NewRecommendationService()

	out := r.ForUser(1)
	require.Equal(t, 1, out.UserID)
	require.Equal(t, "mock_content_based", out.Algorithm)
	require.Equal(t, len(mockCatalog), out.TotalProducts)
}
