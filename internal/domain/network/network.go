// Package network aggregates completed passes into a pass network: one node
// per player placed at the mean of their passing and receiving locations, and
// one undirected edge per pair of players weighted by exchanged passes.
package network

import (
	"fmt"
	"sort"

	"github.com/okian/pitchmap/internal/domain/model"
)

// PairKey is an unordered pair of player keys. A <= B always holds for keys
// built with NewPairKey.
type PairKey struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewPairKey orders the two keys so that (x, y) and (y, x) are equal.
func NewPairKey(x, y string) PairKey {
	if y < x {
		x, y = y, x
	}
	return PairKey{A: x, B: y}
}

// String joins the pair as "A_B".
func (k PairKey) String() string { return k.A + "_" + k.B }

// SelfPass reports whether both ends are the same player.
func (k PairKey) SelfPass() bool { return k.A == k.B }

// Node summarizes one player's passing involvement.
type Node struct {
	Player     string         `json:"player_name"`
	Position   model.Location `json:"position"`
	PassCount  int            `json:"pass_count"`
	MarkerSize float64        `json:"marker_size"`
}

// Edge summarizes the passes exchanged by a pair of players.
type Edge struct {
	Pair      PairKey `json:"pair_key"`
	PassCount int     `json:"pass_count"`
	LineWidth float64 `json:"line_width"`
}

// Network is the aggregation result. Nodes are in order of first appearance,
// edges are sorted by pair.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node for a player key.
func (n Network) Node(player string) (Node, bool) {
	for _, node := range n.Nodes {
		if node.Player == player {
			return node, true
		}
	}
	return Node{}, false
}

// Aggregator builds pass networks. It holds configuration only and is safe
// for concurrent use.
type Aggregator struct {
	maxMarkerSize float64
	maxLineWidth  float64
	key           KeyFunc
}

// NewAggregator creates an aggregator with configuration options.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		maxMarkerSize: DefaultMaxMarkerSize,
		maxLineWidth:  DefaultMaxLineWidth,
		key:           Surname,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// accumulator collects one player's pooled coordinates.
type accumulator struct {
	sumX, sumY float64
	points     int
	passes     int
}

// Aggregate builds the network for passes, which the caller has already
// narrowed to one team's completed passes. Every event must name a passer and
// a recipient and carry both locations; the first one that does not aborts
// the whole aggregation with model.ErrMalformedRecord.
func (a *Aggregator) Aggregate(passes []model.Event) (Network, error) {
	const op = "network.aggregate"

	var (
		order  []string
		byName = make(map[string]*accumulator)
		pairs  = make(map[PairKey]int)
	)
	touch := func(name string) *accumulator {
		acc, ok := byName[name]
		if !ok {
			acc = &accumulator{}
			byName[name] = acc
			order = append(order, name)
		}
		return acc
	}

	for _, e := range passes {
		from, to, err := a.endpoints(e)
		if err != nil {
			return Network{}, model.WrapKind(op, model.ErrMalformedRecord, err)
		}

		passer := touch(from)
		passer.sumX += e.Location.X
		passer.sumY += e.Location.Y
		passer.points++
		passer.passes++

		receiver := touch(to)
		receiver.sumX += e.End.X
		receiver.sumY += e.End.Y
		receiver.points++

		pairs[NewPairKey(from, to)]++
	}

	out := Network{
		Nodes: make([]Node, 0, len(order)),
		Edges: make([]Edge, 0, len(pairs)),
	}

	maxPasses := 0
	for _, name := range order {
		acc := byName[name]
		out.Nodes = append(out.Nodes, Node{
			Player:    name,
			Position:  model.Location{X: acc.sumX / float64(acc.points), Y: acc.sumY / float64(acc.points)},
			PassCount: acc.passes,
		})
		maxPasses = max(maxPasses, acc.passes)
	}
	for i := range out.Nodes {
		out.Nodes[i].MarkerSize = Scale(out.Nodes[i].PassCount, maxPasses, a.maxMarkerSize)
	}

	maxPair := 0
	for pair, count := range pairs {
		out.Edges = append(out.Edges, Edge{Pair: pair, PassCount: count})
		maxPair = max(maxPair, count)
	}
	sort.Slice(out.Edges, func(i, j int) bool {
		pi, pj := out.Edges[i].Pair, out.Edges[j].Pair
		if pi.A != pj.A {
			return pi.A < pj.A
		}
		return pi.B < pj.B
	})
	for i := range out.Edges {
		out.Edges[i].LineWidth = Scale(out.Edges[i].PassCount, maxPair, a.maxLineWidth)
	}

	return out, nil
}

func (a *Aggregator) endpoints(e model.Event) (string, string, error) {
	switch {
	case !e.HasLocation:
		return "", "", fmt.Errorf("event %s: pass has no location", e.ID)
	case !e.HasEnd:
		return "", "", fmt.Errorf("event %s: pass has no end location", e.ID)
	}
	from := a.key(e.Player)
	if from == "" {
		return "", "", fmt.Errorf("event %s: pass has no passer", e.ID)
	}
	to := a.key(e.Recipient)
	if to == "" {
		return "", "", fmt.Errorf("event %s: pass has no recipient", e.ID)
	}
	return from, to, nil
}

// Scale maps count linearly onto [0, upper] so that maxCount maps to upper.
// It returns 0 when maxCount is not positive.
func Scale(count, maxCount int, upper float64) float64 {
	if maxCount <= 0 {
		return 0
	}
	return float64(count) / float64(maxCount) * upper
}
