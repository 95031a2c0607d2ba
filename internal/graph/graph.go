// Package graph assembles the two record collections into the ladder of
// steps, the flat node list and the cross-links drawn on the helix.
package graph

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/msalah0e/helix/internal/helix"
	"github.com/msalah0e/helix/internal/record"
)

// LinkKind distinguishes record links from generated noise.
type LinkKind uint8

const (
	// Structural links come from a record's link list.
	Structural LinkKind = iota
	// Synthetic links are random long-range "mutations".
	Synthetic
)

func (k LinkKind) String() string {
	if k == Synthetic {
		return "synthetic"
	}
	return "structural"
}

// Node is a record (or ghost placeholder) placed at a rank on a strand.
type Node struct {
	ID           string
	Strand       helix.Strand
	Rank         int
	Label        string
	Content      string
	Crystallized bool
	Ghost        bool
	LastUpdated  time.Time
	Links        []string
}

// Link connects two nodes by id. SourceID sorts before TargetID.
type Link struct {
	SourceID string
	TargetID string
	Kind     LinkKind
}

// Step is one rank of the ladder. Slots hold node indexes per strand,
// -1 when the slot is empty.
type Step struct {
	Rank  int
	Slots [2]int
}

// Options tunes assembly.
type Options struct {
	// MinSlots is the minimum number of steps.
	MinSlots int
	// GhostBuffer extends ghost placeholders past the denser list.
	GhostBuffer int
	// RecentCount is the size of the recent set.
	RecentCount int
	// SyntheticLinks is how many mutation links to draw.
	SyntheticLinks int
	// Rand drives synthetic links. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// DefaultOptions returns the stock assembly settings.
func DefaultOptions() Options {
	return Options{
		MinSlots:       12,
		GhostBuffer:    0,
		RecentCount:    3,
		SyntheticLinks: 2,
	}
}

// Snapshot is one assembly pass. It is never mutated after Assemble
// returns.
type Snapshot struct {
	Steps  []Step
	Nodes  []Node
	Links  []Link
	Recent map[string]bool

	index map[string]int
}

// GhostID is the visual key of a placeholder. It is not a record id.
func GhostID(s helix.Strand, rank int) string {
	return fmt.Sprintf("ghost:%s:%d", s, rank)
}

// Assemble builds a snapshot. Both collections are ordered newest first
// before ranks are assigned; the inputs are not modified.
func Assemble(questions, objectives []record.Record, opts Options) *Snapshot {
	qs := append([]record.Record(nil), questions...)
	obs := append([]record.Record(nil), objectives...)
	record.SortNewestFirst(qs)
	record.SortNewestFirst(obs)

	completed := make(map[string]bool)
	for _, o := range obs {
		if o.HasCompleted() {
			completed[o.ID] = true
		}
	}

	n := max(len(qs), len(obs), opts.MinSlots)
	extent := max(len(qs), len(obs)) + opts.GhostBuffer

	snap := &Snapshot{
		Steps:  make([]Step, 0, n),
		Nodes:  make([]Node, 0, 2*n),
		Recent: make(map[string]bool),
		index:  make(map[string]int, 2*n),
	}

	lists := [2][]record.Record{qs, obs}
	for i := 0; i < n; i++ {
		step := Step{Rank: i, Slots: [2]int{-1, -1}}
		for _, s := range helix.Strands {
			list := lists[s]
			var node Node
			switch {
			case i < len(list):
				node = recordNode(list[i], s, i, completed)
			case i < extent:
				node = Node{ID: GhostID(s, i), Strand: s, Rank: i, Ghost: true}
			default:
				continue
			}
			step.Slots[s] = len(snap.Nodes)
			snap.index[node.ID] = len(snap.Nodes)
			snap.Nodes = append(snap.Nodes, node)
		}
		snap.Steps = append(snap.Steps, step)
	}

	snap.Links = snap.structuralLinks()
	snap.Links = append(snap.Links, snap.syntheticLinks(opts)...)
	snap.markRecent(opts.RecentCount)
	return snap
}

func recordNode(r record.Record, s helix.Strand, rank int, completed map[string]bool) Node {
	node := Node{
		ID:          r.ID,
		Strand:      s,
		Rank:        rank,
		Label:       r.Title,
		Content:     r.Content,
		LastUpdated: r.LastUpdated(),
		Links:       r.Links,
	}
	switch s {
	case helix.StrandA:
		for _, id := range r.Links {
			if completed[id] {
				node.Crystallized = true
				break
			}
		}
	case helix.StrandB:
		node.Crystallized = r.HasCompleted()
	}
	return node
}

func orderedPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// structuralLinks emits one link per unordered pair, whichever side
// declared it.
func (s *Snapshot) structuralLinks() []Link {
	var links []Link
	seen := make(map[[2]string]bool)
	for _, n := range s.Nodes {
		if n.Ghost {
			continue
		}
		for _, tid := range n.Links {
			if tid == n.ID {
				continue
			}
			target, ok := s.Lookup(tid)
			if !ok || target.Ghost {
				continue
			}
			src, dst := orderedPair(n.ID, tid)
			key := [2]string{src, dst}
			if seen[key] {
				continue
			}
			seen[key] = true
			links = append(links, Link{SourceID: src, TargetID: dst, Kind: Structural})
		}
	}
	return links
}

// syntheticLinks pairs a node from the first half of the list with one
// from the second half. Draws are bounded so ghost-heavy lists
// terminate.
func (s *Snapshot) syntheticLinks(opts Options) []Link {
	if len(s.Nodes) <= 5 || opts.SyntheticLinks <= 0 {
		return nil
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	half := len(s.Nodes) / 2
	var links []Link
	seen := make(map[[2]string]bool)
	for attempts := 0; len(links) < opts.SyntheticLinks && attempts < opts.SyntheticLinks*16; attempts++ {
		a := s.Nodes[rng.Intn(half)]
		b := s.Nodes[half+rng.Intn(len(s.Nodes)-half)]
		if a.Ghost || b.Ghost || a.ID == b.ID {
			continue
		}
		src, dst := orderedPair(a.ID, b.ID)
		key := [2]string{src, dst}
		if seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, Link{SourceID: src, TargetID: dst, Kind: Synthetic})
	}
	return links
}

func (s *Snapshot) markRecent(k int) {
	if k <= 0 {
		return
	}
	var ranked []int
	for i, n := range s.Nodes {
		if !n.Ghost {
			ranked = append(ranked, i)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := s.Nodes[ranked[i]], s.Nodes[ranked[j]]
		if !a.LastUpdated.Equal(b.LastUpdated) {
			return a.LastUpdated.After(b.LastUpdated)
		}
		return a.ID < b.ID
	})
	for _, idx := range ranked[:min(k, len(ranked))] {
		s.Recent[s.Nodes[idx].ID] = true
	}
}

// Lookup resolves a node by id, ghosts included.
func (s *Snapshot) Lookup(id string) (*Node, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.Nodes[i], true
}

// SlotNode returns the node in a step's slot, or nil.
func (s *Snapshot) SlotNode(step Step, strand helix.Strand) *Node {
	i := step.Slots[strand]
	if i < 0 || i >= len(s.Nodes) {
		return nil
	}
	return &s.Nodes[i]
}

// IsRecent reports whether id is in the recent set.
func (s *Snapshot) IsRecent(id string) bool {
	return s != nil && s.Recent[id]
}

// Stats holds summary counts.
type Stats struct {
	Steps        int
	Questions    int
	Objectives   int
	Ghosts       int
	Structural   int
	Synthetic    int
	Crystallized int
	Recent       int
}

// Stats counts the snapshot's contents.
func (s *Snapshot) Stats() Stats {
	st := Stats{Steps: len(s.Steps), Recent: len(s.Recent)}
	for _, n := range s.Nodes {
		switch {
		case n.Ghost:
			st.Ghosts++
		case n.Strand == helix.StrandA:
			st.Questions++
		default:
			st.Objectives++
		}
		if n.Crystallized {
			st.Crystallized++
		}
	}
	for _, l := range s.Links {
		if l.Kind == Synthetic {
			st.Synthetic++
		} else {
			st.Structural++
		}
	}
	return st
}

// ExportDOT renders the snapshot as a Graphviz digraph, one cluster
// per strand.
func (s *Snapshot) ExportDOT() string {
	var b strings.Builder
	b.WriteString("digraph helix {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=circle, style=filled];\n\n")

	for _, strand := range helix.Strands {
		fmt.Fprintf(&b, "  subgraph cluster_%s {\n", strand)
		fmt.Fprintf(&b, "    label=%q;\n", "strand "+strand.String())
		for _, n := range s.Nodes {
			if n.Strand != strand {
				continue
			}
			label := fmt.Sprintf("%d", n.Rank)
			fill := "white"
			switch {
			case n.Ghost:
				fill = "gray90"
			case n.Crystallized:
				fill = "gold"
			default:
				label += "\\n" + n.Label
			}
			fmt.Fprintf(&b, "    %q [label=%q, fillcolor=%q];\n", n.ID, label, fill)
		}
		b.WriteString("  }\n")
	}

	b.WriteString("\n")
	for _, l := range s.Links {
		style := "solid"
		if l.Kind == Synthetic {
			style = "dashed"
		}
		fmt.Fprintf(&b, "  %q -> %q [dir=none, style=%s];\n", l.SourceID, l.TargetID, style)
	}
	b.WriteString("}\n")
	return b.String()
}
