package network_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/internal/domain/network"
)

var squad = []string{
	"Jordan Pickford", "Kyle Walker", "John Stones", "Harry Maguire", "Luke Shaw",
	"Declan Rice", "Jude Bellingham", "Mason Mount", "Bukayo Saka", "Raheem Sterling", "Harry Kane",
}

// genPass draws a pass between two squad members at arbitrary pitch points.
func genPass() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(squad)-1),
		gen.IntRange(0, len(squad)-1),
		gen.Float64Range(0, 120),
		gen.Float64Range(0, 80),
		gen.Float64Range(0, 120),
		gen.Float64Range(0, 80),
	).Map(func(v []any) model.Event {
		return pass(squad[v[0].(int)], squad[v[1].(int)], v[2].(float64), v[3].(float64), v[4].(float64), v[5].(float64))
	})
}

func TestNetworkProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	agg := network.NewAggregator()

	properties.Property("every pass is attributed to exactly one passer", prop.ForAll(
		func(passes []model.Event) bool {
			net, err := agg.Aggregate(passes)
			if err != nil {
				return false
			}
			total := 0
			for _, n := range net.Nodes {
				total += n.PassCount
			}
			return total == len(passes)
		},
		gen.SliceOf(genPass()),
	))

	properties.Property("edge counts add up to the number of passes", prop.ForAll(
		func(passes []model.Event) bool {
			net, err := agg.Aggregate(passes)
			if err != nil {
				return false
			}
			total := 0
			for _, e := range net.Edges {
				total += e.PassCount
			}
			return total == len(passes)
		},
		gen.SliceOf(genPass()),
	))

	properties.Property("pair keys are symmetric", prop.ForAll(
		func(a, b string) bool {
			return network.NewPairKey(a, b) == network.NewPairKey(b, a)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("reversing every pass leaves the edges unchanged", prop.ForAll(
		func(passes []model.Event) bool {
			reversed := make([]model.Event, len(passes))
			for i, p := range passes {
				r := p
				r.Player, r.Recipient = p.Recipient, p.Player
				reversed[i] = r
			}
			fwd, err1 := agg.Aggregate(passes)
			rev, err2 := agg.Aggregate(reversed)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(fwd.Edges, rev.Edges)
		},
		gen.SliceOf(genPass()),
	))

	properties.Property("sizes are bounded, monotonic and the maximum hits the bound", prop.ForAll(
		func(passes []model.Event) bool {
			net, err := agg.Aggregate(passes)
			if err != nil {
				return false
			}
			return monotonic(net.Nodes, network.DefaultMaxMarkerSize) && monotonicEdges(net.Edges, network.DefaultMaxLineWidth)
		},
		gen.SliceOf(genPass()).SuchThat(func(p []model.Event) bool { return len(p) > 0 }),
	))

	properties.Property("aggregation is idempotent", prop.ForAll(
		func(passes []model.Event) bool {
			first, err1 := agg.Aggregate(passes)
			second, err2 := agg.Aggregate(passes)
			return err1 == nil && err2 == nil && reflect.DeepEqual(first, second)
		},
		gen.SliceOf(genPass()),
	))

	properties.TestingRun(t)
}

func monotonic(nodes []network.Node, upper float64) bool {
	hitBound := false
	for _, a := range nodes {
		if a.MarkerSize < 0 || a.MarkerSize > upper {
			return false
		}
		if a.MarkerSize == upper {
			hitBound = true
		}
		for _, b := range nodes {
			if a.PassCount < b.PassCount && a.MarkerSize > b.MarkerSize {
				return false
			}
		}
	}
	return hitBound
}

func monotonicEdges(edges []network.Edge, upper float64) bool {
	hitBound := false
	for _, a := range edges {
		if a.LineWidth < 0 || a.LineWidth > upper {
			return false
		}
		if a.LineWidth == upper {
			hitBound = true
		}
		for _, b := range edges {
			if a.PassCount < b.PassCount && a.LineWidth > b.LineWidth {
				return false
			}
		}
	}
	return hitBound
}
