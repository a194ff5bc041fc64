package tetris

import "github.com/kamstrup/intmap"

// Stats counts spawned pieces per kind for one run.
type Stats struct {
	spawned *intmap.Map[Kind, int]
	total   int
}

func newStats() *Stats {
	return &Stats{spawned: intmap.New[Kind, int](len(catalog))}
}

func (s *Stats) record(k Kind) {
	n, _ := s.spawned.Get(k)
	s.spawned.Put(k, n+1)
	s.total++
}

// Spawned returns how many pieces of kind k have spawned.
func (s *Stats) Spawned(k Kind) int {
	n, _ := s.spawned.Get(k)
	return n
}

// Total returns the number of spawned pieces of any kind.
func (s *Stats) Total() int {
	return s.total
}

// ByName returns the non-zero counters keyed by kind name.
func (s *Stats) ByName() map[string]int {
	out := make(map[string]int, len(catalog))
	for _, k := range Kinds() {
		if n := s.Spawned(k); n > 0 {
			out[k.String()] = n
		}
	}
	return out
}
