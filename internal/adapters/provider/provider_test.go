package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/pitchmap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// sourceContract runs the behaviour every Source must share against the
// fixtures under testdata/.
func sourceContract(newSource func() Source) {
	ctx := context.Background()

	Convey("When listing the World Cup season", func() {
		matches, err := newSource().Matches(ctx, 43, 106)
		So(err, ShouldBeNil)

		Convey("Then matches come back in listing order with teams and stage", func() {
			So(matches, ShouldHaveLength, 3)
			So(matches[0].ID, ShouldEqual, 3857256)
			So(matches[0].HomeTeam, ShouldEqual, "England")
			So(matches[0].AwayTeam, ShouldEqual, "Iran")
			So(matches[0].HomeScore, ShouldEqual, 6)
			So(matches[0].Stage, ShouldEqual, "Group Stage")
			So(matches[0].Date.Format("2006-01-02"), ShouldEqual, "2022-11-21")
			So(matches[2].Stage, ShouldEqual, "Round of 16")
		})
	})

	Convey("When reading an event log", func() {
		events, err := newSource().Events(ctx, 3857256)
		So(err, ShouldBeNil)
		So(events, ShouldHaveLength, 6)

		Convey("Then events without a location are kept without one", func() {
			So(events[0].Type, ShouldEqual, model.EventType("Starting XI"))
			So(events[0].HasLocation, ShouldBeFalse)
			So(events[0].Player.IsZero(), ShouldBeTrue)
		})

		Convey("Then passes carry recipient, end and sub-type", func() {
			p := events[1]
			So(p.Type, ShouldEqual, model.TypePass)
			So(p.ID.String(), ShouldEqual, "9f4a1c3e-1b2d-4c5e-8f70-0a1b2c3d4e02")
			So(p.Index, ShouldEqual, 2)
			So(p.Player, ShouldResemble, model.PlayerRef{ID: 3205, Name: "Declan Rice"})
			So(p.Recipient.Name, ShouldEqual, "Harry Kane")
			So(p.Location, ShouldResemble, model.Location{X: 60, Y: 40})
			So(p.End, ShouldResemble, model.Location{X: 80, Y: 30})
			So(p.HasEnd, ShouldBeTrue)
			So(p.Completed(), ShouldBeTrue)

			So(events[2].SubType, ShouldEqual, model.SubTypeThrowIn)
			So(events[5].Outcome, ShouldEqual, "Incomplete")
			So(events[5].Recipient.IsZero(), ShouldBeTrue)
		})

		Convey("Then shots keep their outcome and drop the height", func() {
			s := events[3]
			So(s.IsGoal(), ShouldBeTrue)
			So(s.SubType, ShouldEqual, "Open Play")
			So(s.End, ShouldResemble, model.Location{X: 120, Y: 39.5})
		})

		Convey("Then substitutions carry the replacement", func() {
			s := events[4]
			So(s.Type, ShouldEqual, model.TypeSubstitution)
			So(s.Replacement.Name, ShouldEqual, "Callum Wilson")
			So(s.Outcome, ShouldEqual, "Tactical")
		})
	})

	Convey("When the match does not exist", func() {
		_, err := newSource().Events(ctx, 999)

		Convey("Then the error is not found", func() {
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("When identifiers are not positive", func() {
		_, err := newSource().Events(ctx, 0)
		So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		_, err = newSource().Matches(ctx, 43, -1)
		So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
	})
}

func TestDirSource(t *testing.T) {
	Convey("Given a directory source over the fixtures", t, func() {
		sourceContract(func() Source { return NewDirSource("testdata") })
	})

	Convey("Given a directory source over broken fixtures", t, func() {
		src := NewDirSource(filepath.Join("testdata", "bad"))

		Convey("Then a listing that is not an array is malformed", func() {
			_, err := src.Matches(context.Background(), 43, 106)
			So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
		})

		Convey("Then a pass without an end location is malformed", func() {
			_, err := src.Events(context.Background(), 1)
			So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "EndLocation")
		})
	})

	Convey("Given an unreadable data path", t, func() {
		dir := t.TempDir()
		So(os.MkdirAll(filepath.Join(dir, "events", "5.json"), 0o755), ShouldBeNil)

		Convey("Then reading fails as upstream unavailable", func() {
			_, err := NewDirSource(dir).Events(context.Background(), 5)
			So(errors.Is(err, model.ErrUpstreamUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewDirSource("testdata").Events(ctx, 3857256)
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestHTTPSource(t *testing.T) {
	Convey("Given an HTTP source over a file server", t, func() {
		srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
		Reset(srv.Close)

		sourceContract(func() Source {
			return NewHTTPSource(WithBaseURL(srv.URL+"/"), WithTimeout(5*time.Second))
		})
	})

	Convey("Given a provider that fails", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		Reset(srv.Close)
		src := NewHTTPSource(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

		Convey("Then a non-success status is upstream unavailable", func() {
			_, err := src.Matches(context.Background(), 43, 106)
			So(errors.Is(err, model.ErrUpstreamUnavailable), ShouldBeTrue)
			So(errors.Is(err, ErrBadStatus), ShouldBeTrue)
		})
	})

	Convey("Given a provider that cannot be reached", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then the transport error is upstream unavailable", func() {
			_, err := NewHTTPSource(WithBaseURL(url)).Events(context.Background(), 1)
			So(errors.Is(err, model.ErrUpstreamUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a provider that serves garbage", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id": "not-a-uuid", "index": 1, "type": {"name": "Pass"}, "team": {"name": "England"}}]`))
		}))
		Reset(srv.Close)

		Convey("Then decoding fails as malformed", func() {
			_, err := NewHTTPSource(WithBaseURL(srv.URL)).Events(context.Background(), 1)
			So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
		})
	})

	Convey("Given a body larger than the cap", t, func() {
		srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
		Reset(srv.Close)

		Convey("Then the truncated payload is malformed", func() {
			_, err := NewHTTPSource(WithBaseURL(srv.URL), WithMaxBodyBytes(64)).Events(context.Background(), 3857256)
			So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
		})
	})

	Convey("Given default options", t, func() {
		src := NewHTTPSource(WithBaseURL("  "), WithTimeout(0), WithHTTPClient(nil), WithLogger(nil), WithMaxBodyBytes(0))

		Convey("Then invalid values are ignored", func() {
			So(src.baseURL, ShouldEqual, DefaultBaseURL)
			So(src.timeout, ShouldEqual, DefaultTimeout)
			So(src.maxBody, ShouldEqual, DefaultMaxBodyBytes)
			So(src.client.Timeout, ShouldEqual, DefaultTimeout)
		})
	})
}
