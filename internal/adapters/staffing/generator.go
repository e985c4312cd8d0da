package staffing

import (
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/shopspring/decimal"
)

// Rating bounds for generated coaches.
const (
	ratingFloor      = 25.0
	ratingCeiling    = 99.0
	attributeSpread  = 12.0
	overallSpread    = 6.0
	headCoachMeterLo = 40.0
	headCoachMeterHi = 80.0
	assistantMeterLo = 20.0
	assistantMeterHi = 95.0
	pedigreeDivisor  = 20.0
)

var defaultFirstNames = []string{
	"Avery", "Blake", "Casey", "Dana", "Emery", "Frankie", "Gale", "Harper",
	"Jordan", "Kendall", "Logan", "Morgan", "Quinn", "Reese", "Sawyer", "Taylor",
}

var defaultLastNames = []string{
	"Abbott", "Brennan", "Calloway", "Dunbar", "Ellison", "Fairchild", "Garrity",
	"Holloway", "Kincaid", "Lockhart", "McCall", "Pruitt", "Renfro", "Stallings",
	"Thibodeaux", "Whitlock",
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithAlmaMaters sets the schools generated coaches may have attended.
func WithAlmaMaters(schools []string) GeneratorOption {
	return func(g *Generator) {
		if len(schools) > 0 {
			g.almaMaters = append([]string(nil), schools...)
		}
	}
}

// Generator builds coaches whose ratings cluster around a prestige level.
type Generator struct {
	firstNames []string
	lastNames  []string
	almaMaters []string
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		firstNames: defaultFirstNames,
		lastNames:  defaultLastNames,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate creates an unsigned coach for role.
func (g *Generator) Generate(src *random.Source, role model.Role, prestige float64) (model.Coach, error) {
	if !role.Valid() {
		return model.Coach{}, fmt.Errorf("generate coach: %w: %d", model.ErrUnknownRole, int(role))
	}
	id, err := model.NewCoachID(src)
	if err != nil {
		return model.Coach{}, err
	}

	base := clamp(prestige, ratingFloor, ratingCeiling)
	attr := func() float64 {
		return clamp(base+src.Noise(attributeSpread), ratingFloor, ratingCeiling)
	}

	c := model.Coach{
		ID:   id,
		Name: g.firstNames[src.Intn(len(g.firstNames))] + " " + g.lastNames[src.Intn(len(g.lastNames))],
		Role: role,
		Attributes: model.Attributes{
			Leadership:  attr(),
			Composure:   attr(),
			Instincts:   attr(),
			Rotations:   attr(),
			Development: attr(),
			Recruiting:  attr(),
		},
		Classification: model.Classifications[src.Intn(len(model.Classifications))],
		Overall:        clamp(base+src.Noise(overallSpread), ratingFloor, ratingCeiling),
		Contract:       model.Contract{Salary: decimal.Zero},
	}

	if role == model.RoleHeadCoach {
		c.HCMeter = src.Uniform(headCoachMeterLo, headCoachMeterHi)
	} else {
		c.HCMeter = src.Uniform(assistantMeterLo, assistantMeterHi)
	}

	pedigree := int(base / pedigreeDivisor)
	c.Career = model.Career{
		PlayoffWins:             src.Intn(pedigree + 1),
		ChampionshipAppearances: src.Intn(pedigree/2 + 1),
	}
	if c.Career.ChampionshipAppearances > 0 {
		c.Career.Titles = src.Intn(c.Career.ChampionshipAppearances + 1)
	}

	if len(g.almaMaters) > 0 {
		c.AlmaMater = g.almaMaters[src.Intn(len(g.almaMaters))]
	}
	return c, nil
}
