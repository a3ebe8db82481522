package trigram

// Similarity returns the dot product of two profiles over their shared keys.
// For unit-normalized profiles this equals the cosine similarity. Keys
// present in only one profile contribute zero, so the smaller map is
// iterated and the larger probed, bounding cost at O(min(|a|,|b|)).
// Either profile being empty yields 0.
func Similarity(a, b Profile) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for k, v := range a {
		if w, ok := b[k]; ok {
			dot += v * w
		}
	}
	return dot
}
