package staffing_test

import (
	"errors"
	"testing"

	"github.com/quarterback/viperball-sub000/internal/adapters/staffing"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a generator with alma maters", t, func() {
		gen := staffing.NewGenerator(staffing.WithAlmaMaters([]string{"Aces", "Bears"}))

		Convey("When generating a defensive coordinator", func() {
			c, err := gen.Generate(random.New(11), model.RoleDefensiveCoordinator, 60)

			Convey("Then the coach should be an unsigned coordinator", func() {
				So(err, ShouldBeNil)
				So(c.ID, ShouldNotBeEmpty)
				So(c.Role, ShouldEqual, model.RoleDefensiveCoordinator)
				So(c.Employed(), ShouldBeFalse)
				So(c.Overall, ShouldBeBetweenOrEqual, 25, 99)
				So(c.Attributes.Instincts, ShouldBeBetweenOrEqual, 25, 99)
				So(c.HCMeter, ShouldBeBetweenOrEqual, 20, 95)
				So([]string{"Aces", "Bears"}, ShouldContain, c.AlmaMater)
				So(c.Career.Titles, ShouldBeLessThanOrEqualTo, c.Career.ChampionshipAppearances)
			})
		})

		Convey("When generating with the same seed twice", func() {
			a, _ := gen.Generate(random.New(5), model.RoleHeadCoach, 70)
			b, _ := gen.Generate(random.New(5), model.RoleHeadCoach, 70)

			Convey("Then the coaches should be identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When generating for an invalid role", func() {
			_, err := gen.Generate(random.New(1), model.Role(0), 50)

			Convey("Then it should fail", func() {
				So(errors.Is(err, model.ErrUnknownRole), ShouldBeTrue)
			})
		})
	})
}

func TestRecordSalary(t *testing.T) {
	Convey("Given the record-based salary calculator", t, func() {
		calc := staffing.RecordSalary{}
		coach := model.Coach{Overall: 70}

		Convey("Then head coaches should earn more than coordinators", func() {
			hc := calc.Salary(coach, model.RoleHeadCoach, model.Record{})
			oc := calc.Salary(coach, model.RoleOffensiveCoordinator, model.Record{})
			stc := calc.Salary(coach, model.RoleSpecialTeamsCoordinator, model.Record{})
			So(hc.GreaterThan(oc), ShouldBeTrue)
			So(oc.GreaterThan(stc), ShouldBeTrue)
		})

		Convey("Then an even record should price a head coach from rating alone", func() {
			// 1.5M * (0.6 + 0.7) = 1.95M
			got := calc.Salary(coach, model.RoleHeadCoach, model.Record{Wins: 6, Losses: 6})
			So(got.Equal(decimal.NewFromInt(1_950_000)), ShouldBeTrue)
		})

		Convey("Then a winning record and titles should raise the price", func() {
			decorated := model.Coach{Overall: 70, Career: model.Career{Titles: 2}}
			plain := calc.Salary(coach, model.RoleHeadCoach, model.Record{})
			rich := calc.Salary(decorated, model.RoleHeadCoach, model.Record{Wins: 10, Losses: 2})
			So(rich.GreaterThan(plain), ShouldBeTrue)
		})

		Convey("Then salaries should be whole thousands", func() {
			got := calc.Salary(model.Coach{Overall: 63.37}, model.RoleDefensiveCoordinator, model.Record{Wins: 7, Losses: 5})
			So(got.Mod(decimal.NewFromInt(1000)).IsZero(), ShouldBeTrue)
		})
	})
}

func TestStandardRoles(t *testing.T) {
	Convey("Given the standard role deriver", t, func() {
		roles := staffing.StandardRoles{}

		Convey("Then a head coach should only take head-coach jobs", func() {
			got := roles.AcceptableRoles(model.Coach{Role: model.RoleHeadCoach, HCMeter: 99}, model.ReasonFired)
			So(got, ShouldResemble, []model.Role{model.RoleHeadCoach})
		})

		Convey("Then an ambitious coordinator should also chase head-coach jobs", func() {
			got := roles.AcceptableRoles(model.Coach{Role: model.RoleOffensiveCoordinator, HCMeter: 80}, model.ReasonContractExpired)
			So(got, ShouldResemble, []model.Role{model.RoleOffensiveCoordinator, model.RoleHeadCoach})
		})

		Convey("Then a content coordinator should keep their role", func() {
			got := roles.AcceptableRoles(model.Coach{Role: model.RoleSpecialTeamsCoordinator, HCMeter: 30}, model.ReasonFreeAgent)
			So(got, ShouldResemble, []model.Role{model.RoleSpecialTeamsCoordinator})
		})
	})
}

func TestPrestigeRetention(t *testing.T) {
	Convey("Given the prestige retention decider", t, func() {
		ret := staffing.PrestigeRetention{}

		Convey("When ambition fits the program", func() {
			years, keep := ret.Decide(model.Coach{}, 60, 55, model.Record{Wins: 6, Losses: 6})

			Convey("Then the coach should be extended", func() {
				So(keep, ShouldBeTrue)
				So(years, ShouldEqual, 3)
			})
		})

		Convey("When ambition outgrows the program", func() {
			_, keep := ret.Decide(model.Coach{}, 90, 50, model.Record{Wins: 6, Losses: 6})

			Convey("Then the coach should be released", func() {
				So(keep, ShouldBeFalse)
			})
		})

		Convey("When the program is winning", func() {
			years, keep := ret.Decide(model.Coach{}, 70, 52, model.Record{Wins: 10, Losses: 2})

			Convey("Then tolerance widens and the extension is longer", func() {
				So(keep, ShouldBeTrue)
				So(years, ShouldEqual, 4)
			})
		})
	})
}

func TestMeterAmbition(t *testing.T) {
	Convey("Then ambition should follow the meter and stay bounded", t, func() {
		amb := staffing.MeterAmbition{}
		So(amb.Ambition(model.Coach{HCMeter: 60}), ShouldEqual, 60)
		So(amb.Ambition(model.Coach{HCMeter: 60, Career: model.Career{Titles: 2}}), ShouldEqual, 64)
		So(amb.Ambition(model.Coach{HCMeter: 99, Career: model.Career{Titles: 5}}), ShouldEqual, 100)
	})
}

func TestDefaults(t *testing.T) {
	Convey("Then the default set should be complete", t, func() {
		So(staffing.Defaults().Validate(), ShouldBeNil)
	})
}
