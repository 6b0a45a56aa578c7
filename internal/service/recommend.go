package service

import "math/rand"

type RecommendedProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Category string  `json:"category"`
}

type RecommendationSet struct {
	Recommendations      []RecommendedProduct `json:"recommendations"`
	PersonalizationScore float64              `json:"personalization_score"`
	UserID               int                  `json:"user_id"`
	Algorithm            string               `json:"algorithm"`
	TotalProducts        int                  `json:"total_products"`
}

// catalog used until recommendations are backed by embeddings + a vector DB.
var mockCatalog = []RecommendedProduct{
	{ID: 1, Name: "Classic White T-Shirt", Price: 29.99, ImageURL: "https://example.com/tshirt.jpg", Category: "tops"},
	{ID: 2, Name: "Blue Jeans", Price: 79.99, ImageURL: "https://example.com/jeans.jpg", Category: "bottoms"},
	{ID: 3, Name: "Black Sneakers", Price: 129.99, ImageURL: "https://example.com/sneakers.jpg", Category: "shoes"},
	{ID: 4, Name: "Red Dress", Price: 89.99, ImageURL: "https://example.com/dress.jpg", Category: "dresses"},
	{ID: 5, Name: "Leather Jacket", Price: 199.99, ImageURL: "https://example.com/jacket.jpg", Category: "outerwear"},
	{ID: 6, Name: "Striped Sweater", Price: 59.99, ImageURL: "https://example.com/sweater.jpg", Category: "tops"},
	{ID: 7, Name: "Black Pants", Price: 69.99, ImageURL: "https://example.com/pants.jpg", Category: "bottoms"},
	{ID: 8, Name: "White Sneakers", Price: 119.99, ImageURL: "https://example.com/white-sneakers.jpg", Category: "shoes"},
	{ID: 9, Name: "Summer Dress", Price: 79.99, ImageURL: "https://example.com/summer-dress.jpg", Category: "dresses"},
	{ID: 10, Name: "Denim Jacket", Price: 89.99, ImageURL: "https://example.com/denim-jacket.jpg", Category: "outerwear"},
}

// RecommendationService returns synthetic, deterministic per-user product
// recommendations. Seeding by user ID keeps a user's set stable across calls.
type RecommendationService struct{}

func NewRecommendationService() *RecommendationService {
	return &RecommendationService{}
}

func (r *RecommendationService) ForUser(userID int) RecommendationSet {
	rng := rand.New(rand.NewSource(int64(userID)))

	n := 3 + rng.Intn(3) // 3 to 5 picks
	picks := rng.Perm(len(mockCatalog))[:n]

	out := make([]RecommendedProduct, 0, n)
	for _, i := range picks {
		out = append(out, mockCatalog[i])
	}
	score := 0.7 + rng.Float64()*0.25

	return RecommendationSet{
		Recommendations:      out,
		PersonalizationScore: round2(score),
		UserID:               userID,
		Algorithm:            "mock_content_based",
		TotalProducts:        len(mockCatalog),
	}
}

func round2(v float64) float64 { return float64(int(v*100+0.5)) / 100 }
