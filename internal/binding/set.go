package binding

// DefaultName is the arrangement every Set contains and the fallback that
// topology matching resolves to when nothing else matches.
const DefaultName = "default"

// Set owns all arrangements, keyed by name and iterated in insertion
// order. A "default" arrangement exists from construction; even if the
// caller deletes it, matching still falls back to the literal name.
type Set struct {
	order  []string
	byName map[string]*SpaceBinding
}

// NewSet builds a Set containing an empty "default" arrangement.
func NewSet() *Set {
	s := &Set{byName: make(map[string]*SpaceBinding)}
	s.Add(NewSpaceBinding(DefaultName, nil))
	return s
}

// Add registers an arrangement, replacing any existing arrangement with
// the same name while keeping its original position in match order.
func (s *Set) Add(sb *SpaceBinding) {
	if _, exists := s.byName[sb.Name()]; !exists {
		s.order = append(s.order, sb.Name())
	}
	s.byName[sb.Name()] = sb
}

// Remove deletes an arrangement by name.
func (s *Set) Remove(name string) {
	if _, exists := s.byName[name]; !exists {
		return
	}
	delete(s.byName, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Binding looks up an arrangement by name.
func (s *Set) Binding(name string) (*SpaceBinding, bool) {
	sb, ok := s.byName[name]
	return sb, ok
}

// Match returns the name of the first arrangement (insertion order) whose
// signature matches the given per-screen space counts, or "default" when
// none do. Overlapping signatures are a configuration-author concern;
// first-inserted wins.
func (s *Set) Match(screenSpaces []int) string {
	for _, name := range s.order {
		if s.byName[name].Match(screenSpaces) {
			return name
		}
	}
	return DefaultName
}

// Names returns all arrangement names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Signatures maps every arrangement name to its topology signature, used
// for the mismatch diagnostic surfaced when no arrangement matches.
func (s *Set) Signatures() map[string][]int {
	out := make(map[string][]int, len(s.byName))
	for name, sb := range s.byName {
		out[name] = sb.ScreenSpaces()
	}
	return out
}
