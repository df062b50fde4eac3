package render

// Entry is one numbered reference.
type Entry struct {
	Ordinal int
	Key     string
}

// registry numbers keys in first-encounter order, starting at 1.
type registry struct {
	ords map[string]int
	keys []string
}

func (r *registry) ordinal(key string) int {
	if n, ok := r.ords[key]; ok {
		return n
	}
	if r.ords == nil {
		r.ords = make(map[string]int)
	}
	r.keys = append(r.keys, key)
	r.ords[key] = len(r.keys)
	return len(r.keys)
}

func (r *registry) entries() []Entry {
	out := make([]Entry, len(r.keys))
	for i, k := range r.keys {
		out[i] = Entry{Ordinal: i + 1, Key: k}
	}
	return out
}

// LinkRegistry numbers the link destinations of one link-block scope.
type LinkRegistry struct {
	r registry
}

// Ordinal returns the ordinal of key, assigning the next one on first use.
func (l *LinkRegistry) Ordinal(key string) int { return l.r.ordinal(key) }

// Lookup returns the ordinal of key if it was seen.
func (l *LinkRegistry) Lookup(key string) (int, bool) {
	n, ok := l.r.ords[key]
	return n, ok
}

// Entries lists the registered keys in ordinal order.
func (l *LinkRegistry) Entries() []Entry { return l.r.entries() }

// Len returns the number of registered keys.
func (l *LinkRegistry) Len() int { return len(l.r.keys) }

// Reset forgets every key so numbering restarts at 1.
func (l *LinkRegistry) Reset() {
	clear(l.r.ords)
	l.r.keys = l.r.keys[:0]
}

// ImageRegistry numbers image sources for the whole document.
type ImageRegistry struct {
	r registry
}

// Ordinal returns the ordinal of src, assigning the next one on first use.
func (i *ImageRegistry) Ordinal(src string) int { return i.r.ordinal(src) }

// Entries lists the registered sources in ordinal order.
func (i *ImageRegistry) Entries() []Entry { return i.r.entries() }

// Len returns the number of registered sources.
func (i *ImageRegistry) Len() int { return len(i.r.keys) }
