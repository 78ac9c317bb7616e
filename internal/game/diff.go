package game

// IndexSet is a set of rune offsets.
type IndexSet map[int]struct{}

// Has reports whether i is in the set.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// ComputeMistakes compares input against target over their overlapping prefix.
// Runes typed past the end of target are never compared.
func ComputeMistakes(target, input []rune) (int, IndexSet) {
	n := len(input)
	if len(target) < n {
		n = len(target)
	}
	indices := IndexSet{}
	for i := 0; i < n; i++ {
		if input[i] != target[i] {
			indices[i] = struct{}{}
		}
	}
	return len(indices), indices
}
