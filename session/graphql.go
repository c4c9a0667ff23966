package session

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/peragwin/spacerobot/deck"
)

// Status is a snapshot of the show for remote inspection.
type Status struct {
	Visualizer   string
	PostShader   string
	PostEnabled  bool
	Blur         float64
	Waveform     bool
	Kaleidoscope bool
	Delay        bool
	Slice        bool
	Palette      int
	Color        int
	BeatSync     bool
	Monochrome   bool
	Word         string
	FPS          float64
	Frames       int
	Decks        []deck.State
}

// Status snapshots the session.
func (s *Session) Status() Status {
	fl := s.flags()
	palette, color := s.Palette.Index()
	return Status{
		Visualizer:   s.Visualizers.Name(),
		PostShader:   s.Post.Info(),
		PostEnabled:  s.Post.Enabled(),
		Blur:         s.Mixer.FilterIntensity(),
		Waveform:     fl.waveform,
		Kaleidoscope: fl.kaleidoscope,
		Delay:        fl.delay,
		Slice:        fl.slice,
		Palette:      palette,
		Color:        color,
		BeatSync:     s.Palette.BeatSync(),
		Monochrome:   s.Palette.BlackOrWhite(),
		Word:         s.Words.Word(),
		FPS:          s.FPS(),
		Frames:       s.Frames(),
		Decks:        s.Mixer.States(),
	}
}

func field(typ graphql.Output, get func(Status) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			st, ok := p.Source.(Status)
			if !ok {
				return nil, errors.New("unexpected source")
			}
			return get(st), nil
		},
	}
}

func deckField(typ graphql.Output, get func(deck.State) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			st, ok := p.Source.(deck.State)
			if !ok {
				return nil, errors.New("unexpected source")
			}
			return get(st), nil
		},
	}
}

// Schema builds the GraphQL schema: the query "status" reports the show
// state, and the mutation "cc" injects a control change on the session's
// channel as if it came from MIDI.
func (s *Session) Schema() (graphql.Schema, error) {
	deckType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Deck",
		Fields: graphql.Fields{
			"id":      deckField(graphql.String, func(d deck.State) interface{} { return d.ID.String() }),
			"volume":  deckField(graphql.Int, func(d deck.State) interface{} { return d.Volume }),
			"playing": deckField(graphql.Boolean, func(d deck.State) interface{} { return d.Playing }),
			"filter":  deckField(graphql.Float, func(d deck.State) interface{} { return d.Filter }),
			"pack":    deckField(graphql.Int, func(d deck.State) interface{} { return d.Pack }),
			"hotcue":  deckField(graphql.Int, func(d deck.State) interface{} { return d.Hotcue }),
			"blur":    deckField(graphql.Boolean, func(d deck.State) interface{} { return d.BlurEngaged }),
			"status":  deckField(graphql.String, func(d deck.State) interface{} { return d.Status() }),
		},
	})

	statusType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Status",
		Fields: graphql.Fields{
			"visualizer":   field(graphql.String, func(st Status) interface{} { return st.Visualizer }),
			"postShader":   field(graphql.String, func(st Status) interface{} { return st.PostShader }),
			"postEnabled":  field(graphql.Boolean, func(st Status) interface{} { return st.PostEnabled }),
			"blur":         field(graphql.Float, func(st Status) interface{} { return st.Blur }),
			"waveform":     field(graphql.Boolean, func(st Status) interface{} { return st.Waveform }),
			"kaleidoscope": field(graphql.Boolean, func(st Status) interface{} { return st.Kaleidoscope }),
			"delay":        field(graphql.Boolean, func(st Status) interface{} { return st.Delay }),
			"slice":        field(graphql.Boolean, func(st Status) interface{} { return st.Slice }),
			"palette":      field(graphql.Int, func(st Status) interface{} { return st.Palette }),
			"color":        field(graphql.Int, func(st Status) interface{} { return st.Color }),
			"beatSync":     field(graphql.Boolean, func(st Status) interface{} { return st.BeatSync }),
			"monochrome":   field(graphql.Boolean, func(st Status) interface{} { return st.Monochrome }),
			"word":         field(graphql.String, func(st Status) interface{} { return st.Word }),
			"fps":          field(graphql.Float, func(st Status) interface{} { return st.FPS }),
			"frames":       field(graphql.Int, func(st Status) interface{} { return st.Frames }),
			"decks": field(graphql.NewList(deckType), func(st Status) interface{} {
				return st.Decks
			}),
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"status": &graphql.Field{
				Type: statusType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return s.Status(), nil
				},
			},
		},
	})

	rootMut := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMut",
		Fields: graphql.Fields{
			"cc": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"number": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"value":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cc, _ := p.Args["number"].(int)
					v, _ := p.Args["value"].(int)
					return s.Router.Handle(s.Router.Channel(), cc, v), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: rootMut,
	})
}

// Query runs a GraphQL request against schema.
func Query(schema graphql.Schema, query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
	})
}
