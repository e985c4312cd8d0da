// Package snapshot loads a league from a YAML file: teams with their
// prestige, records and rosters, and every coach under contract.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// idNamespace seeds name-derived coach ids.
var idNamespace = uuid.MustParse("3f1c9a64-5b1e-4c59-8a0e-2b8f1d1c7e42")

type document struct {
	HumanTeam string  `yaml:"human_team"`
	Teams     []team  `yaml:"teams"`
	Coaches   []coach `yaml:"coaches"`
}

type team struct {
	Name       string   `yaml:"name"`
	Prestige   float64  `yaml:"prestige"`
	Conference string   `yaml:"conference"`
	Record     record   `yaml:"record"`
	Fired      []string `yaml:"fired"`
	Roster     []player `yaml:"roster"`
}

type record struct {
	Wins   int `yaml:"wins"`
	Losses int `yaml:"losses"`
}

type player struct {
	Name    string  `yaml:"name"`
	Unit    string  `yaml:"unit"`
	Overall float64 `yaml:"overall"`
}

type coach struct {
	ID             string           `yaml:"id"`
	Name           string           `yaml:"name"`
	Team           string           `yaml:"team"`
	Role           string           `yaml:"role"`
	Overall        float64          `yaml:"overall"`
	Classification string           `yaml:"classification"`
	HCMeter        float64          `yaml:"hc_meter"`
	AlmaMater      string           `yaml:"alma_mater"`
	Attributes     model.Attributes `yaml:"attributes"`
	Career         model.Career     `yaml:"career"`
	Salary         string           `yaml:"salary"`
	YearsRemaining int              `yaml:"years_remaining"`
}

// League is a decoded snapshot ready to feed a market.
type League struct {
	Registry  *repository.Registry
	Staffs    model.Staffs
	Records   map[string]model.Record
	Fired     map[string][]model.Role
	Context   model.TeamContext
	HumanTeam string
}

// Load reads and decodes the snapshot at path.
func Load(path string) (*League, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode parses a snapshot. Unknown keys are rejected.
func Decode(r io.Reader) (*League, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSnapshot)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return doc.league()
}

func (d *document) league() (*League, error) {
	l := &League{
		Registry:  repository.NewRegistry(repository.WithCapacity(len(d.Coaches))),
		Staffs:    model.Staffs{},
		Records:   make(map[string]model.Record, len(d.Teams)),
		Fired:     make(map[string][]model.Role),
		HumanTeam: d.HumanTeam,
		Context: model.TeamContext{
			Prestige:    make(map[string]float64, len(d.Teams)),
			Rosters:     make(map[string][]model.Player),
			Conferences: make(map[string]string),
		},
	}

	for _, t := range d.Teams {
		if err := l.addTeam(t); err != nil {
			return nil, err
		}
	}
	if l.HumanTeam != "" {
		if _, ok := l.Context.Prestige[l.HumanTeam]; !ok {
			return nil, fmt.Errorf("%w: human team %q is not a team", ErrInvalidSnapshot, l.HumanTeam)
		}
	}
	for _, c := range d.Coaches {
		if err := l.addCoach(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *League) addTeam(t team) error {
	if t.Name == "" {
		return fmt.Errorf("%w: team without a name", ErrInvalidSnapshot)
	}
	if _, dup := l.Context.Prestige[t.Name]; dup {
		return fmt.Errorf("%w: team %q listed twice", ErrInvalidSnapshot, t.Name)
	}
	l.Context.Prestige[t.Name] = t.Prestige
	l.Records[t.Name] = model.Record{Wins: t.Record.Wins, Losses: t.Record.Losses}
	if t.Conference != "" {
		l.Context.Conferences[t.Name] = t.Conference
	}
	l.Staffs[t.Name] = make(map[model.Role]model.CoachID, len(model.Roles))

	for _, name := range t.Fired {
		role, err := model.ParseRole(name)
		if err != nil {
			return fmt.Errorf("%w: team %q fired: %w", ErrInvalidSnapshot, t.Name, err)
		}
		l.Fired[t.Name] = append(l.Fired[t.Name], role)
	}

	for _, p := range t.Roster {
		unit, err := model.ParseUnit(p.Unit)
		if err != nil {
			return fmt.Errorf("%w: team %q player %q: %w", ErrInvalidSnapshot, t.Name, p.Name, err)
		}
		l.Context.Rosters[t.Name] = append(l.Context.Rosters[t.Name], model.Player{Name: p.Name, Unit: unit, Overall: p.Overall})
	}
	return nil
}

func (l *League) addCoach(c coach) error {
	role, err := model.ParseRole(c.Role)
	if err != nil {
		return fmt.Errorf("%w: coach %q: %w", ErrInvalidSnapshot, c.Name, err)
	}
	var class model.Classification
	if c.Classification != "" {
		if class, err = model.ParseClassification(c.Classification); err != nil {
			return fmt.Errorf("%w: coach %q: %w", ErrInvalidSnapshot, c.Name, err)
		}
	}
	salary := decimal.Zero
	if c.Salary != "" {
		if salary, err = decimal.NewFromString(c.Salary); err != nil {
			return fmt.Errorf("%w: coach %q salary: %w", ErrInvalidSnapshot, c.Name, err)
		}
	}

	id := model.CoachID(c.ID)
	if id == "" {
		id = model.CoachID(uuid.NewSHA1(idNamespace, []byte(c.Team+"/"+c.Role+"/"+c.Name)).String())
	}

	if c.Team != "" {
		if _, ok := l.Staffs[c.Team]; !ok {
			return fmt.Errorf("%w: coach %q works for unknown team %q", ErrInvalidSnapshot, c.Name, c.Team)
		}
		if seated, taken := l.Staffs.Get(c.Team, role); taken {
			return fmt.Errorf("%w: %s/%s held by both %s and %q", ErrInvalidSnapshot, c.Team, role, seated, c.Name)
		}
	}

	err = l.Registry.Add(model.Coach{
		ID:             id,
		Name:           c.Name,
		Role:           role,
		Overall:        c.Overall,
		Attributes:     c.Attributes,
		Classification: class,
		HCMeter:        c.HCMeter,
		AlmaMater:      c.AlmaMater,
		Career:         c.Career,
		Contract: model.Contract{Team: c.Team, Salary: salary, YearsRemaining: c.YearsRemaining},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if c.Team != "" {
		l.Staffs.Set(c.Team, role, id)
	}
	return nil
}
