package domain

// TransitionTable is a closed-world graph of allowed state changes.
// States absent from the table, or mapped to an empty set, are terminal.
type TransitionTable[S comparable] struct {
	edges map[S]map[S]bool
}

// NewTransitionTable builds a table from a from -> allowed-to adjacency list.
func NewTransitionTable[S comparable](adj map[S][]S) TransitionTable[S] {
	edges := make(map[S]map[S]bool, len(adj))
	for from, tos := range adj {
		set := make(map[S]bool, len(tos))
		for _, to := range tos {
			set[to] = true
		}
		edges[from] = set
	}
	return TransitionTable[S]{edges: edges}
}

// Allows reports whether from -> to is an edge of the table.
func (t TransitionTable[S]) Allows(from, to S) bool {
	return t.edges[from][to]
}

// IsTerminal reports whether s has no outgoing edges.
func (t TransitionTable[S]) IsTerminal(s S) bool {
	return len(t.edges[s]) == 0
}

// Next returns the states reachable from s in one step. Order is unspecified.
func (t TransitionTable[S]) Next(s S) []S {
	out := make([]S, 0, len(t.edges[s]))
	for to := range t.edges[s] {
		out = append(out, to)
	}
	return out
}
