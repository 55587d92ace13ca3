package search

// combine blends the two channel scores with the request weights.
// Inputs are already bounded to [0,1]; the result is capped at 1 so weight
// sums above 1 cannot push the combined score off the percentage scale.
func combine(keywordScore, semanticScore, keywordWeight, semanticWeight float64) float64 {
	score := keywordWeight*keywordScore + semanticWeight*semanticScore
	if score > 1 {
		return 1
	}
	return score
}
