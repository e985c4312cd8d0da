package settlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/adapters/staffing"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/quarterback/viperball-sub000/internal/domain/settlement"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	vacAHC = model.Vacancy{Team: "A", Role: model.RoleHeadCoach}
	vacCDC = model.Vacancy{Team: "C", Role: model.RoleDefensiveCoordinator}
	vacDHC = model.Vacancy{Team: "D", Role: model.RoleHeadCoach}
)

type fixture struct {
	reg *repository.Registry
	in  settlement.Input
}

func newFixture() fixture {
	reg := repository.NewRegistry()
	add := func(id string, role model.Role, team string) {
		if err := reg.Add(model.Coach{
			ID: model.CoachID(id), Name: id, Role: role, Overall: 70,
			Contract: model.Contract{Team: team, YearsRemaining: 1},
		}); err != nil {
			panic(err)
		}
	}
	add("fired-hc", model.RoleHeadCoach, "A")
	add("oc-b", model.RoleOffensiveCoordinator, "B")
	add("fa", model.RoleDefensiveCoordinator, "")

	staffs := model.Staffs{}
	staffs.Set("B", model.RoleOffensiveCoordinator, "oc-b")

	return fixture{
		reg: reg,
		in: settlement.Input{
			Entries: []model.MarketEntry{
				{CoachID: "fired-hc", OriginTeam: "A", Reason: model.ReasonFired, AcceptedRoles: []model.Role{model.RoleHeadCoach}},
				{CoachID: "oc-b", OriginTeam: "B", Reason: model.ReasonSeekingPromotion, AcceptedRoles: []model.Role{model.RoleHeadCoach}},
				{CoachID: "fa", Reason: model.ReasonFreeAgent, AcceptedRoles: []model.Role{model.RoleDefensiveCoordinator}},
			},
			Vacancies: []model.Vacancy{vacAHC, vacCDC, vacDHC},
			Matches:   map[model.Vacancy]model.CoachID{vacAHC: "oc-b", vacCDC: "fa"},
			Staffs:    staffs,
			Prestige:  map[string]float64{"A": 70, "C": 55, "D": 60},
		},
	}
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	Convey("Given two matches and one open vacancy", t, func() {
		f := newFixture()
		settler := settlement.NewSettler(f.reg, staffing.Defaults())

		Convey("When settling", func() {
			out, err := settler.Settle(ctx, f.in, random.New(7))
			So(err, ShouldBeNil)

			Convey("Then every vacancy should be seated exactly once", func() {
				seen := map[model.CoachID]bool{}
				for _, v := range f.in.Vacancies {
					id, ok := f.in.Staffs.Get(v.Team, v.Role)
					So(ok, ShouldBeTrue)
					So(seen[id], ShouldBeFalse)
					seen[id] = true
					So(out.Changes[v.Team][v.Role].ID, ShouldEqual, id)
				}
				So(out.Hires, ShouldHaveLength, 3)
			})

			Convey("Then the promoted coordinator should sign a head-coach deal", func() {
				c, _ := f.reg.Get("oc-b")
				So(c.Role, ShouldEqual, model.RoleHeadCoach)
				So(c.Contract.Team, ShouldEqual, "A")
				So(c.Contract.YearsRemaining, ShouldBeBetweenOrEqual, 4, 6)
				So(c.Contract.Salary.IsPositive(), ShouldBeTrue)
				So(out.Hires[0].FromTeam, ShouldEqual, "B")
				So(out.Hires[0].Reason, ShouldEqual, model.ReasonSeekingPromotion)
			})

			Convey("Then the coordinator's old seat should open", func() {
				_, seated := f.in.Staffs.Get("B", model.RoleOffensiveCoordinator)
				So(seated, ShouldBeFalse)
				So(out.OpenedSeats, ShouldResemble, []model.Vacancy{{Team: "B", Role: model.RoleOffensiveCoordinator}})
			})

			Convey("Then the emptied seat should be left out of the changes", func() {
				_, changed := out.Changes["B"][model.RoleOffensiveCoordinator]
				So(changed, ShouldBeFalse)
			})

			Convey("Then the free agent should sign a coordinator deal", func() {
				c, _ := f.reg.Get("fa")
				So(c.Contract.Team, ShouldEqual, "C")
				So(c.Contract.YearsRemaining, ShouldBeBetweenOrEqual, 2, 4)
				So(f.in.Entries[2].MatchedTo, ShouldResemble, &vacCDC)
			})

			Convey("Then the open vacancy should be back-filled with a short deal", func() {
				So(out.Backfilled, ShouldResemble, []model.Vacancy{vacDHC})
				So(f.reg.Count(), ShouldEqual, 4)
				c := out.Changes["D"][model.RoleHeadCoach]
				So(c.Role, ShouldEqual, model.RoleHeadCoach)
				So(c.Contract.YearsRemaining, ShouldBeBetweenOrEqual, 1, 3)
				So(out.Hires[2].Reason, ShouldEqual, model.ReasonBackfill)
				So(out.Hires[2].FromTeam, ShouldBeEmpty)
			})

			Convey("Then the unhired fired coach should be released", func() {
				So(out.Released, ShouldResemble, []model.CoachID{"fired-hc"})
				c, _ := f.reg.Get("fired-hc")
				So(c.Contract.Team, ShouldBeEmpty)
				So(c.Contract.YearsRemaining, ShouldEqual, 0)
				So(f.in.Entries[0].MatchedTo, ShouldBeNil)
			})
		})

		Convey("When a match points at an unknown coach", func() {
			f.in.Matches[vacAHC] = "ghost"
			out, err := settler.Settle(ctx, f.in, random.New(7))

			Convey("Then the vacancy should be back-filled instead", func() {
				So(err, ShouldBeNil)
				So(out.Backfilled, ShouldResemble, []model.Vacancy{vacAHC, vacDHC})
				_, seated := f.in.Staffs.Get("B", model.RoleOffensiveCoordinator)
				So(seated, ShouldBeTrue)
			})
		})

		Convey("When a vacancy is listed twice", func() {
			f.in.Vacancies = append(f.in.Vacancies, vacDHC)
			out, err := settler.Settle(ctx, f.in, random.New(7))

			Convey("Then it should be filled once", func() {
				So(err, ShouldBeNil)
				So(out.Backfilled, ShouldHaveLength, 1)
				So(out.Hires, ShouldHaveLength, 3)
			})
		})

		Convey("When no random source is given", func() {
			_, err := settler.Settle(ctx, f.in, nil)

			Convey("Then it should fail", func() {
				So(errors.Is(err, settlement.ErrNilSource), ShouldBeTrue)
			})
		})
	})

	Convey("Given two identical markets", t, func() {
		a, b := newFixture(), newFixture()

		Convey("When both settle with one seed", func() {
			outA, _ := settlement.NewSettler(a.reg, staffing.Defaults()).Settle(ctx, a.in, random.New(3))
			outB, _ := settlement.NewSettler(b.reg, staffing.Defaults()).Settle(ctx, b.in, random.New(3))

			Convey("Then the hires should match", func() {
				So(outA.Hires, ShouldResemble, outB.Hires)
			})
		})
	})
}
