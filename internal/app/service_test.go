package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	service "github.com/okian/pitchmap/internal/app"
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/internal/domain/network"
	"github.com/okian/pitchmap/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fakeSource serves a fixed season from memory.
type fakeSource struct {
	matches []model.Match
	events  map[int][]model.Event
	err     error
	calls   atomic.Int64
}

func (f *fakeSource) Matches(_ context.Context, _, _ int) ([]model.Match, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func (f *fakeSource) Events(_ context.Context, matchID int) ([]model.Event, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	ev, ok := f.events[matchID]
	if !ok {
		return nil, model.NewKind("fake.events", model.ErrNotFound)
	}
	return ev, nil
}

func at(x, y float64) model.Location { return model.Location{X: x, Y: y} }

func ref(name string) model.PlayerRef { return model.PlayerRef{Name: name} }

func passEv(idx int, team, from, to string, o, e model.Location) model.Event {
	return model.Event{
		Index: idx, Type: model.TypePass, Team: team,
		Player: ref(from), Recipient: ref(to),
		Location: o, HasLocation: true, End: e, HasEnd: true,
	}
}

func shotEv(idx int, team, player string, o model.Location, outcome string) model.Event {
	return model.Event{
		Index: idx, Type: model.TypeShot, Team: team, Player: ref(player),
		Location: o, HasLocation: true, End: at(120, 40), HasEnd: true, Outcome: outcome,
	}
}

func subEv(idx int, team, off, on string) model.Event {
	return model.Event{Index: idx, Type: model.TypeSubstitution, Team: team, Player: ref(off), Replacement: ref(on)}
}

func newFake() *fakeSource {
	throwIn := passEv(5, "England", "Luke Shaw", "Declan Rice", at(30, 79), at(40, 70))
	throwIn.SubType = model.SubTypeThrowIn
	incomplete := passEv(6, "England", "Declan Rice", "", at(65, 40), at(100, 20))
	incomplete.Outcome = "Incomplete"

	return &fakeSource{
		matches: []model.Match{
			{ID: 10, HomeTeam: "England", AwayTeam: "Iran"},
			{ID: 30, HomeTeam: "Argentina", AwayTeam: "Saudi Arabia"},
			{ID: 20, HomeTeam: "Wales", AwayTeam: "England"},
		},
		events: map[int][]model.Event{
			10: {
				{Index: 1, Type: "Starting XI", Team: "England"},
				{Index: 2, Type: "Starting XI", Team: "Iran"},
				passEv(3, "England", "Declan Rice", "Harry Kane", at(60, 40), at(80, 30)),
				passEv(4, "England", "Harry Kane", "Declan Rice", at(70, 30), at(50, 50)),
				throwIn,
				incomplete,
				shotEv(7, "England", "Harry Kane", at(108, 38), model.OutcomeGoal),
				shotEv(8, "Iran", "Mehdi Taremi", at(100, 30), "Saved"),
				subEv(9, "England", "Harry Kane", "Callum Wilson"),
				passEv(10, "England", "Declan Rice", "Callum Wilson", at(60, 40), at(90, 40)),
				passEv(11, "Iran", "Mehdi Taremi", "Sardar Azmoun", at(60, 40), at(70, 40)),
				subEv(12, "Iran", "Sardar Azmoun", "Ali Gholizadeh"),
			},
			20: {
				passEv(1, "England", "Declan Rice", "Harry Kane", at(60, 40), at(80, 30)),
				shotEv(2, "Wales", "Gareth Bale", at(90, 40), model.OutcomeGoal),
			},
		},
	}
}

func TestService_Locator(t *testing.T) {
	Convey("Given a service over a fixed season", t, func() {
		src := newFake()
		svc := service.New(src, service.WithLogger(logger.Get()))
		ctx := context.Background()

		Convey("When locating a team's matches", func() {
			ids, err := svc.MatchIDs(ctx, "England")

			Convey("Then home and away fixtures come back in listing order", func() {
				So(err, ShouldBeNil)
				So(ids, ShouldResemble, []int{10, 20})
			})
		})

		Convey("When the team played no fixture", func() {
			ids, err := svc.MatchIDs(ctx, "Brazil")

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(ids, ShouldNotBeNil)
				So(ids, ShouldBeEmpty)
			})
		})

		Convey("When the team name is blank", func() {
			_, err := svc.MatchIDs(ctx, "")
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})

		Convey("When the source is down", func() {
			src.err = model.NewKind("fake", model.ErrUpstreamUnavailable)
			_, err := svc.Matches(ctx, "England")
			So(errors.Is(err, model.ErrUpstreamUnavailable), ShouldBeTrue)
		})
	})
}

func TestService_Fetcher(t *testing.T) {
	Convey("Given a service over a fixed season", t, func() {
		svc := service.New(newFake())
		ctx := context.Background()

		Convey("Then shots, passes and substitutions are narrowed by type", func() {
			shots, err := svc.Shots(ctx, 10)
			So(err, ShouldBeNil)
			So(shots, ShouldHaveLength, 2)

			passes, err := svc.Passes(ctx, 10)
			So(err, ShouldBeNil)
			So(passes, ShouldHaveLength, 5)
			for _, p := range passes {
				So(p.SubType, ShouldNotEqual, model.SubTypeThrowIn)
			}

			subs, err := svc.Substitutions(ctx, 10)
			So(err, ShouldBeNil)
			So(subs, ShouldHaveLength, 2)
		})

		Convey("Then an unknown match is not found", func() {
			_, err := svc.Passes(ctx, 99)
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then a non-positive match id is rejected before fetching", func() {
			_, err := svc.Shots(ctx, 0)
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})
	})
}

func TestService_ShotMap(t *testing.T) {
	Convey("Given a team with two matches", t, func() {
		svc := service.New(newFake())

		Convey("When building its shot map", func() {
			m, err := svc.ShotMap(context.Background(), "England")
			So(err, ShouldBeNil)

			Convey("Then every shot of both matches is present", func() {
				So(m.Team, ShouldEqual, "England")
				So(m.Shots, ShouldHaveLength, 3)
			})

			Convey("Then own shots keep their coordinates", func() {
				So(m.Shots[0].Own, ShouldBeTrue)
				So(m.Shots[0].Goal, ShouldBeTrue)
				So(m.Shots[0].Location, ShouldResemble, at(108, 38))
			})

			Convey("Then opponent shots are mirrored", func() {
				So(m.Shots[1].Own, ShouldBeFalse)
				So(m.Shots[1].Goal, ShouldBeFalse)
				So(m.Shots[1].Location, ShouldResemble, at(20, 50))
				So(m.Shots[2].Location, ShouldResemble, at(30, 40))
				So(m.Shots[2].Goal, ShouldBeTrue)
			})
		})

		Convey("When the team played no fixture the map is empty", func() {
			m, err := svc.ShotMap(context.Background(), "Brazil")
			So(err, ShouldBeNil)
			So(m.Shots, ShouldBeEmpty)
		})

		Convey("When the pitch is resized opponent shots mirror through its centre", func() {
			m, err := service.New(newFake(), service.WithPitch(100, 60)).ShotMap(context.Background(), "England")
			So(err, ShouldBeNil)
			So(m.Shots[1].Location, ShouldResemble, at(0, 30))
		})
	})
}

func TestService_PlayerPasses(t *testing.T) {
	Convey("Given a match", t, func() {
		svc := service.New(newFake())
		ctx := context.Background()

		Convey("When asking for a player's passes", func() {
			m, err := svc.PlayerPasses(ctx, 10, "Declan Rice")

			Convey("Then all of their passes are returned with the opponent", func() {
				So(err, ShouldBeNil)
				So(m.Opponent, ShouldEqual, "Iran")
				So(m.Passes, ShouldHaveLength, 3)
				So(m.Title(), ShouldEqual, "Declan Rice passes against Iran")
			})
		})

		Convey("When the player did not play", func() {
			_, err := svc.PlayerPasses(ctx, 10, "Lionel Messi")
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})

		Convey("When no player is given", func() {
			_, err := svc.PlayerPasses(ctx, 10, "")
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})
	})
}

func TestService_PassGrid(t *testing.T) {
	Convey("Given a match", t, func() {
		ctx := context.Background()

		Convey("When building the default grid", func() {
			g, err := service.New(newFake()).PassGrid(ctx, 10, "England")
			So(err, ShouldBeNil)

			Convey("Then there is one panel per passer in first-pass order", func() {
				So(g.Opponent, ShouldEqual, "Iran")
				So(g.Columns, ShouldEqual, service.DefaultGridColumns)
				So(g.Panels, ShouldHaveLength, 2)
				So(g.Panels[0].Player, ShouldEqual, "Declan Rice")
				So(g.Panels[0].Passes, ShouldHaveLength, 3)
				So(g.Panels[1].Player, ShouldEqual, "Harry Kane")
			})
		})

		Convey("When the grid is smaller than the squad", func() {
			g, err := service.New(newFake(), service.WithGrid(1, 1)).PassGrid(ctx, 10, "England")
			So(err, ShouldBeNil)
			So(g.Panels, ShouldHaveLength, 1)
		})

		Convey("When the team did not play", func() {
			_, err := service.New(newFake()).PassGrid(ctx, 10, "Brazil")
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_PassNetwork(t *testing.T) {
	Convey("Given a match where the team substituted", t, func() {
		src := newFake()
		svc := service.New(src)
		ctx := context.Background()

		Convey("When aggregating the network", func() {
			f, err := svc.PassNetwork(ctx, 10, "England")
			So(err, ShouldBeNil)
			net := f.Network

			Convey("Then only completed passes before the first substitution count", func() {
				So(net.Edges, ShouldHaveLength, 1)
				So(net.Edges[0].Pair, ShouldResemble, network.NewPairKey("Rice", "Kane"))
				So(net.Edges[0].PassCount, ShouldEqual, 2)
				_, hasWilson := net.Node("Wilson")
				So(hasWilson, ShouldBeFalse)
			})

			Convey("Then positions pool origins and receptions", func() {
				rice, ok := net.Node("Rice")
				So(ok, ShouldBeTrue)
				So(rice.Position, ShouldResemble, at(55, 45))
				So(rice.PassCount, ShouldEqual, 1)
			})

			Convey("Then the figure names the opponent", func() {
				So(f.Title(), ShouldEqual, "England Passing Network against Iran")
			})
		})

		Convey("When the team made no substitution", func() {
			_, err := svc.PassNetwork(ctx, 20, "England")

			Convey("Then a precondition error is returned", func() {
				So(errors.Is(err, model.ErrNoSubstitution), ShouldBeTrue)
				So(errors.Is(err, model.ErrPrecondition), ShouldBeTrue)
			})
		})

		Convey("When asked twice the source is queried twice", func() {
			before := src.calls.Load()
			_, err1 := svc.PassNetwork(ctx, 10, "England")
			_, err2 := svc.PassNetwork(ctx, 10, "England")
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(src.calls.Load()-before, ShouldEqual, 2)
		})

		Convey("When the aggregator keys players by id", func() {
			custom := service.New(src, service.WithAggregator(network.NewAggregator(
				network.WithPlayerKey(func(p model.PlayerRef) string { return p.Name }),
			)))
			f, err := custom.PassNetwork(ctx, 10, "England")
			So(err, ShouldBeNil)
			_, ok := f.Network.Node("Declan Rice")
			So(ok, ShouldBeTrue)
		})
	})
}

func TestService_Options(t *testing.T) {
	Convey("Invalid options keep the defaults", t, func() {
		svc := service.New(newFake(),
			service.WithCompetition(0, 106),
			service.WithGrid(0, 4),
			service.WithPitch(-1, 80),
			service.WithAggregator(nil),
			service.WithLogger(nil),
		)
		So(svc.GridColumns(), ShouldEqual, service.DefaultGridColumns)

		_, err := svc.PassNetwork(context.Background(), 10, "England")
		So(err, ShouldBeNil)
	})
}
