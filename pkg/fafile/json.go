package fafile

import (
	"encoding/json"
	"fmt"
)

// wireDefinition is the JSON and YAML representation of a Definition.
// Initial and a transition's To are written as a string when they hold one
// state and as a list otherwise.
type wireDefinition struct {
	Type        string           `json:"type" yaml:"type"`
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	States      []string         `json:"states" yaml:"states"`
	Alphabet    []string         `json:"alphabet" yaml:"alphabet"`
	Initial     stateList        `json:"initial" yaml:"initial"`
	Accepting   []string         `json:"accepting" yaml:"accepting"`
	Transitions []wireTransition `json:"transitions" yaml:"transitions"`
}

type wireTransition struct {
	From  string    `json:"from" yaml:"from"`
	Input *string   `json:"input" yaml:"input"` // null for epsilon
	To    stateList `json:"to" yaml:"to"`
}

// stateList is one state or a list of states on the wire. A single state
// is written without the list.
type stateList []string

// UnmarshalJSON accepts a string, a number or a list of them.
func (l *stateList) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	states, err := stringOrList(v)
	if err != nil {
		return err
	}
	*l = states
	return nil
}

func (l stateList) MarshalJSON() ([]byte, error) {
	return json.Marshal(listValue(l))
}

// UnmarshalYAML decodes into string targets so that plain scalars such as
// on, 01 or 1.0 keep their text.
func (l *stateList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var one string
	if err := unmarshal(&one); err == nil {
		*l = stateList{one}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("expected a state or a list of states: %w", err)
	}
	*l = many
	return nil
}

func (l stateList) MarshalYAML() (interface{}, error) {
	return listValue(l), nil
}

// stringOrList decodes a value that is either one scalar or a list of them.
func stringOrList(v interface{}) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch item := item.(type) {
			case string:
				out = append(out, item)
			case int, int64, float64, bool:
				out = append(out, fmt.Sprint(item))
			default:
				return nil, fmt.Errorf("unexpected %T in state list", item)
			}
		}
		return out, nil
	case int, int64, float64, bool:
		return []string{fmt.Sprint(v)}, nil
	}
	return nil, fmt.Errorf("expected a state or a list of states, got %T", v)
}

func listValue(states stateList) interface{} {
	if len(states) == 1 {
		return states[0]
	}
	return []string(states)
}

func (w *wireDefinition) definition() (*Definition, error) {
	def := &Definition{
		Type:        Type(w.Type),
		Name:        w.Name,
		Description: w.Description,
		States:      w.States,
		Alphabet:    w.Alphabet,
		Initial:     w.Initial,
		Accepting:   w.Accepting,
	}
	if def.Type == "" {
		def.Type = TypeDFA
	}
	for _, wt := range w.Transitions {
		def.Transitions = append(def.Transitions, Transition{From: wt.From, Input: wt.Input, To: wt.To})
	}
	return def, nil
}

func wire(def *Definition) wireDefinition {
	w := wireDefinition{
		Type:        string(def.Type),
		Name:        def.Name,
		Description: def.Description,
		States:      def.States,
		Alphabet:    def.Alphabet,
		Initial:     def.Initial,
		Accepting:   def.Accepting,
	}
	if w.Accepting == nil {
		w.Accepting = []string{}
	}
	for _, t := range def.Transitions {
		w.Transitions = append(w.Transitions, wireTransition{
			From:  t.From,
			Input: t.Input,
			To:    t.To,
		})
	}
	return w
}

// ParseJSON parses a definition from JSON. A missing type means dfa.
func ParseJSON(data []byte) (*Definition, error) {
	var w wireDefinition
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return w.definition()
}

// ToJSON encodes a definition as JSON.
func ToJSON(def *Definition, pretty bool) ([]byte, error) {
	w := wire(def)
	if pretty {
		return json.MarshalIndent(w, "", "  ")
	}
	return json.Marshal(w)
}
