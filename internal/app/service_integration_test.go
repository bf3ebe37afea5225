package service_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/pitchmap/internal/adapters/provider"
	"github.com/okian/pitchmap/internal/adapters/render"
	service "github.com/okian/pitchmap/internal/app"
	"github.com/okian/pitchmap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service over the provider fixtures", t, func() {
		src := provider.NewDirSource(filepath.Join("..", "adapters", "provider", "testdata"))
		svc := service.New(src)
		r := render.New()
		ctx := context.Background()

		Convey("When locating England's matches", func() {
			ids, err := svc.MatchIDs(ctx, "England")
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []int{3857256, 3869151})
		})

		Convey("When drawing Iran's shot map", func() {
			m, err := svc.ShotMap(ctx, "Iran")
			So(err, ShouldBeNil)
			So(m.Shots, ShouldHaveLength, 1)
			So(m.Shots[0].Location, ShouldResemble, model.Location{X: 12, Y: 42})

			var buf bytes.Buffer
			So(r.ShotMap(ctx, &buf, m), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "Iran (red) and others (blue) shots")
		})

		Convey("When a match in the listing has no event file", func() {
			_, err := svc.ShotMap(ctx, "England")
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})

		Convey("When drawing England's pass network", func() {
			f, err := svc.PassNetwork(ctx, 3857256, "England")
			So(err, ShouldBeNil)
			So(f.Opponent, ShouldEqual, "Iran")
			So(f.Network.Nodes, ShouldHaveLength, 2)
			So(f.Network.Edges, ShouldHaveLength, 1)
			So(f.Network.Edges[0].Pair.String(), ShouldEqual, "Kane_Rice")

			var buf bytes.Buffer
			So(r.PassNetwork(ctx, &buf, f), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, ">Kane</text>")
		})

		Convey("When drawing a pass grid", func() {
			g, err := svc.PassGrid(ctx, 3857256, "England")
			So(err, ShouldBeNil)
			So(g.Panels, ShouldHaveLength, 1)

			var buf bytes.Buffer
			So(r.PassGrid(ctx, &buf, g), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "England passes against Iran")
		})

		Convey("When Iran made no substitution", func() {
			f, err := svc.PassNetwork(ctx, 3857256, "Iran")
			So(errors.Is(err, model.ErrPrecondition), ShouldBeTrue)
			So(f.Network.Nodes, ShouldBeEmpty)
		})
	})
}
