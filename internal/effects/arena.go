package effects

// pool is a growable arena of short-lived items. Items are advanced in place
// and expired ones are compacted away without disturbing the order of the
// survivors.
type pool[T any] struct {
	items []T
}

func (p *pool[T]) add(v T) {
	p.items = append(p.items, v)
}

// advance runs step on every item and keeps those for which it returns true.
func (p *pool[T]) advance(step func(*T) bool) {
	live := p.items[:0]
	for i := range p.items {
		if step(&p.items[i]) {
			live = append(live, p.items[i])
		}
	}
	var zero T
	for i := len(live); i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = live
}

func (p *pool[T]) snapshot() []T {
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *pool[T]) clear() {
	clear(p.items)
	p.items = p.items[:0]
}
