package graph

import (
	"fmt"
	"strings"
	"time"
)

// Node is an opaque network node identity. Nodes are created on first
// reference by id and never mutated afterward; lifetime tracks the Storage
// that interned them.
type Node struct {
	id string
}

// ID returns the node's human-readable identifier.
func (n *Node) ID() string { return n.id }

// String implements fmt.Stringer.
func (n *Node) String() string { return n.id }

// Link is a directed edge from Src to Dst carrying a port pair, a delay, and
// a bandwidth. Multiple links between the same (Src, Dst) pair are allowed
// as long as their port pairs differ.
type Link struct {
	src, dst         *Node
	srcPort, dstPort uint32
	delay            time.Duration
	bandwidthBps     uint64

	// index is this link's position in the Storage's linear link indexing,
	// used by the dfs package's array-graph representation.
	index int
}

// Src returns the link's source node.
func (l *Link) Src() *Node { return l.src }

// Dst returns the link's destination node.
func (l *Link) Dst() *Node { return l.dst }

// SrcPort returns the link's source port.
func (l *Link) SrcPort() uint32 { return l.srcPort }

// DstPort returns the link's destination port.
func (l *Link) DstPort() uint32 { return l.dstPort }

// Delay returns the link's propagation delay.
func (l *Link) Delay() time.Duration { return l.delay }

// BandwidthBps returns the link's bandwidth, in bits per second.
func (l *Link) BandwidthBps() uint64 { return l.bandwidthBps }

// Index returns this link's stable 0-based position in its Storage's linear
// link indexing. Used internally by the dfs package.
func (l *Link) Index() int { return l.index }

// String renders the link as "A:sport->B:dport".
func (l *Link) String() string {
	return fmt.Sprintf("%s:%d->%s:%d", l.src.id, l.srcPort, l.dst.id, l.dstPort)
}

// Links is an ordered collection of links, not necessarily contiguous.
type Links []*Link

// TotalDelay sums the delay of every link in ls.
func TotalDelay(ls Links) time.Duration {
	var total time.Duration
	for _, l := range ls {
		total += l.delay
	}
	return total
}

// LinkSequence is an ordered, contiguous, loop-free list of links along with
// its derived total delay. Two LinkSequence values are not deduplicated —
// that is PathStorage's job.
type LinkSequence struct {
	links Links
	delay time.Duration
}

// NewLinkSequence validates and constructs a LinkSequence from links. An
// empty slice yields the empty sequence. Validation enforces: no link
// appears twice, and consecutive links are contiguous (dst of link i == src
// of link i+1).
func NewLinkSequence(links Links) (LinkSequence, error) {
	if len(links) == 0 {
		return LinkSequence{}, nil
	}

	seen := make(map[*Link]bool, len(links))
	var total time.Duration
	for i, l := range links {
		if seen[l] {
			return LinkSequence{}, fmt.Errorf("%w: %s", ErrDuplicateLink, l)
		}
		seen[l] = true

		if i > 0 && links[i-1].dst != l.src {
			return LinkSequence{}, fmt.Errorf("%w: %s -> %s", ErrDiscontiguousLinks, links[i-1], l)
		}
		total += l.delay
	}

	out := make(Links, len(links))
	copy(out, links)
	return LinkSequence{links: out, delay: total}, nil
}

// Links returns the links of the sequence. Callers must not mutate the
// returned slice.
func (ls LinkSequence) Links() Links { return ls.links }

// Delay returns the sum of the delay of every link in the sequence.
func (ls LinkSequence) Delay() time.Duration { return ls.delay }

// Size returns the number of links in the sequence.
func (ls LinkSequence) Size() int { return len(ls.links) }

// Empty reports whether the sequence has no links.
func (ls LinkSequence) Empty() bool { return len(ls.links) == 0 }

// Contains reports whether link appears anywhere in the sequence.
func (ls LinkSequence) Contains(link *Link) bool {
	for _, l := range ls.links {
		if l == link {
			return true
		}
	}
	return false
}

// String renders the sequence as "[A:sp->B:dp, B:sp->C:dp]".
func (ls LinkSequence) String() string {
	if ls.Empty() {
		return "[]"
	}
	parts := make([]string, len(ls.links))
	for i, l := range ls.links {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StringNoPorts renders the sequence as "[A->B->C]".
func (ls LinkSequence) StringNoPorts() string {
	if ls.Empty() {
		return "[]"
	}
	parts := make([]string, 0, len(ls.links)+1)
	parts = append(parts, ls.links[0].src.id)
	for _, l := range ls.links {
		parts = append(parts, l.dst.id)
	}
	return "[" + strings.Join(parts, "->") + "]"
}

// Path is an interned LinkSequence with a stable tag and a cookie-scoped
// identity, owned by the Storage that produced it.
type Path struct {
	seq     LinkSequence
	tag     uint32
	storage *Storage
}

// LinkSequence returns the underlying link sequence.
func (p *Path) LinkSequence() LinkSequence { return p.seq }

// Delay returns the path's total delay.
func (p *Path) Delay() time.Duration { return p.seq.Delay() }

// Empty reports whether this is the empty path.
func (p *Path) Empty() bool { return p.seq.Empty() }

// Size returns the number of links on the path.
func (p *Path) Size() int { return p.seq.Size() }

// Tag returns the path's stable identifier. The empty path's tag is 0.
func (p *Path) Tag() uint32 { return p.tag }

// Storage returns the PathStorage that owns this path.
func (p *Path) Storage() *Storage { return p.storage }

// FirstHop returns the path's first node, or nil if the path is empty.
func (p *Path) FirstHop() *Node {
	if p.seq.Empty() {
		return nil
	}
	return p.seq.links[0].src
}

// LastHop returns the path's last node, or nil if the path is empty.
func (p *Path) LastHop() *Node {
	if p.seq.Empty() {
		return nil
	}
	return p.seq.links[len(p.seq.links)-1].dst
}

// String renders the path in the same form as LinkSequence.String.
func (p *Path) String() string { return p.seq.String() }

// StringNoPorts renders the path in the same form as LinkSequence.StringNoPorts.
func (p *Path) StringNoPorts() string { return p.seq.StringNoPorts() }
