package provider

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/okian/pitchmap/internal/domain/model"
)

const matchDateLayout = "2006-01-02"

// validate is a singleton validator instance
var validate = validator.New() //nolint:gochecknoglobals // validator caches struct metadata

type named struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

type wireMatch struct {
	MatchID   int    `json:"match_id" validate:"required,min=1"`
	MatchDate string `json:"match_date" validate:"required"`
	HomeTeam  struct {
		ID   int    `json:"home_team_id"`
		Name string `json:"home_team_name" validate:"required"`
	} `json:"home_team"`
	AwayTeam struct {
		ID   int    `json:"away_team_id"`
		Name string `json:"away_team_name" validate:"required"`
	} `json:"away_team"`
	HomeScore        int    `json:"home_score"`
	AwayScore        int    `json:"away_score"`
	CompetitionStage *named `json:"competition_stage"`
}

type wirePass struct {
	Recipient   *named    `json:"recipient"`
	EndLocation []float64 `json:"end_location" validate:"required,min=2"`
	Type        *named    `json:"type"`
	Outcome     *named    `json:"outcome"`
}

type wireShot struct {
	EndLocation []float64 `json:"end_location" validate:"required,min=2"`
	Type        *named    `json:"type"`
	Outcome     *named    `json:"outcome"`
}

type wireSubstitution struct {
	Replacement *named `json:"replacement"`
	Outcome     *named `json:"outcome"`
}

type wireEvent struct {
	ID           string            `json:"id" validate:"required,uuid"`
	Index        int               `json:"index" validate:"min=1"`
	Period       int               `json:"period"`
	Minute       int               `json:"minute"`
	Second       int               `json:"second"`
	Type         named             `json:"type"`
	Team         named             `json:"team"`
	Player       *named            `json:"player"`
	Location     []float64         `json:"location" validate:"omitempty,min=2"`
	Pass         *wirePass         `json:"pass"`
	Shot         *wireShot         `json:"shot"`
	Substitution *wireSubstitution `json:"substitution"`
}

// decodeMatches parses and validates a match listing.
func decodeMatches(raw []byte) ([]model.Match, error) {
	var recs []wireMatch
	if err := jsoniter.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	out := make([]model.Match, 0, len(recs))
	for i := range recs {
		m, err := recs[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// decodeEvents parses and validates an event log.
func decodeEvents(raw []byte) ([]model.Event, error) {
	var recs []wireEvent
	if err := jsoniter.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	out := make([]model.Event, 0, len(recs))
	for i := range recs {
		e, err := recs[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (w *wireMatch) toModel() (model.Match, error) {
	if err := validate.Struct(w); err != nil {
		return model.Match{}, err
	}
	date, err := time.Parse(matchDateLayout, w.MatchDate)
	if err != nil {
		return model.Match{}, fmt.Errorf("match_date: %w", err)
	}

	m := model.Match{
		ID:        w.MatchID,
		Date:      date,
		HomeTeam:  w.HomeTeam.Name,
		AwayTeam:  w.AwayTeam.Name,
		HomeScore: w.HomeScore,
		AwayScore: w.AwayScore,
	}
	if w.CompetitionStage != nil {
		m.Stage = w.CompetitionStage.Name
	}
	return m, nil
}

func (w *wireEvent) toModel() (model.Event, error) {
	if err := validate.Struct(w); err != nil {
		return model.Event{}, err
	}
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return model.Event{}, fmt.Errorf("id: %w", err)
	}

	e := model.Event{
		ID:     id,
		Index:  w.Index,
		Period: w.Period,
		Minute: w.Minute,
		Second: w.Second,
		Type:   model.EventType(w.Type.Name),
		Team:   w.Team.Name,
		Player: ref(w.Player),
	}
	if len(w.Location) >= 2 {
		e.Location = model.Location{X: w.Location[0], Y: w.Location[1]}
		e.HasLocation = true
	}

	switch e.Type {
	case model.TypePass:
		if w.Pass == nil {
			return model.Event{}, fmt.Errorf("%s %s: %w", e.Type, w.ID, ErrMissingSection)
		}
		e.End = model.Location{X: w.Pass.EndLocation[0], Y: w.Pass.EndLocation[1]}
		e.HasEnd = true
		e.Recipient = ref(w.Pass.Recipient)
		e.SubType = name(w.Pass.Type)
		e.Outcome = name(w.Pass.Outcome)
	case model.TypeShot:
		if w.Shot == nil {
			return model.Event{}, fmt.Errorf("%s %s: %w", e.Type, w.ID, ErrMissingSection)
		}
		e.End = model.Location{X: w.Shot.EndLocation[0], Y: w.Shot.EndLocation[1]}
		e.HasEnd = true
		e.SubType = name(w.Shot.Type)
		e.Outcome = name(w.Shot.Outcome)
	case model.TypeSubstitution:
		if w.Substitution == nil {
			return model.Event{}, fmt.Errorf("%s %s: %w", e.Type, w.ID, ErrMissingSection)
		}
		e.Replacement = ref(w.Substitution.Replacement)
		e.Outcome = name(w.Substitution.Outcome)
	}
	return e, nil
}

func ref(n *named) model.PlayerRef {
	if n == nil {
		return model.PlayerRef{}
	}
	return model.PlayerRef{ID: n.ID, Name: n.Name}
}

func name(n *named) string {
	if n == nil {
		return ""
	}
	return n.Name
}
