package projection

// memo is a single-slot cache: it remembers the last key and value and recomputes only
// when the key changes. Errors are never cached.
type memo[K comparable, V any] struct {
	key   K
	value V
	valid bool
}

func (m *memo[K, V]) lookup(key K, compute func() (V, error)) (V, bool, error) {
	if m.valid && m.key == key {
		return m.value, true, nil
	}
	value, err := compute()
	if err != nil {
		var zero V
		return zero, false, err
	}
	m.key = key
	m.value = value
	m.valid = true
	return value, false, nil
}

func (m *memo[K, V]) reset() {
	var (
		zeroK K
		zeroV V
	)
	m.key = zeroK
	m.value = zeroV
	m.valid = false
}
