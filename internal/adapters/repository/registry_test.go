package repository_test

import (
	"errors"
	"testing"

	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given a new registry", t, func() {
		reg := repository.NewRegistry(repository.WithCapacity(4))

		Convey("When adding coaches", func() {
			So(reg.Add(model.Coach{ID: "b", Name: "Bo", Role: model.RoleHeadCoach}), ShouldBeNil)
			So(reg.Add(model.Coach{ID: "a", Name: "Al", Role: model.RoleDefensiveCoordinator}), ShouldBeNil)

			Convey("Then they should be retrievable in registration order", func() {
				So(reg.Count(), ShouldEqual, 2)
				So(reg.IDs(), ShouldResemble, []model.CoachID{"b", "a"})
				c, ok := reg.Get("a")
				So(ok, ShouldBeTrue)
				So(c.Name, ShouldEqual, "Al")
			})

			Convey("Then a duplicate id should be rejected", func() {
				err := reg.Add(model.Coach{ID: "a", Role: model.RoleHeadCoach})
				So(errors.Is(err, repository.ErrDuplicateCoach), ShouldBeTrue)
			})

			Convey("Then reads should be copies", func() {
				c, _ := reg.Get("b")
				c.Name = "changed"
				again, _ := reg.Get("b")
				So(again.Name, ShouldEqual, "Bo")
			})

			Convey("Then updates should write through and keep the id", func() {
				err := reg.Update("b", func(c *model.Coach) {
					c.Contract.Team = "Aces"
					c.ID = "hijack"
				})
				So(err, ShouldBeNil)
				c, ok := reg.Get("b")
				So(ok, ShouldBeTrue)
				So(c.Contract.Team, ShouldEqual, "Aces")
				So(c.ID, ShouldEqual, model.CoachID("b"))
			})
		})

		Convey("When updating an unknown coach", func() {
			err := reg.Update("ghost", func(*model.Coach) {})

			Convey("Then it should return ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When adding invalid coaches", func() {
			Convey("Then empty ids and unknown roles should be rejected", func() {
				So(errors.Is(reg.Add(model.Coach{Role: model.RoleHeadCoach}), repository.ErrInvalidCoach), ShouldBeTrue)
				err := reg.Add(model.Coach{ID: "x"})
				So(errors.Is(err, repository.ErrInvalidCoach), ShouldBeTrue)
				So(errors.Is(err, model.ErrUnknownRole), ShouldBeTrue)
			})
		})
	})
}

// zeros yields the same bytes forever, so every id drawn from it is equal.
type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestAddUnique(t *testing.T) {
	Convey("Given a registry that already holds a coach", t, func() {
		reg := repository.NewRegistry()
		So(reg.Add(model.Coach{ID: "a", Name: "Al", Role: model.RoleHeadCoach}), ShouldBeNil)

		Convey("When adding a coach under a free id", func() {
			stored, err := repository.AddUnique(reg, model.Coach{ID: "b", Role: model.RoleHeadCoach}, random.New(3))

			Convey("Then the id should be kept", func() {
				So(err, ShouldBeNil)
				So(stored.ID, ShouldEqual, model.CoachID("b"))
				So(reg.Count(), ShouldEqual, 2)
			})
		})

		Convey("When adding a coach whose id is taken", func() {
			stored, err := repository.AddUnique(reg, model.Coach{ID: "a", Name: "New", Role: model.RoleHeadCoach}, random.New(3))

			Convey("Then a fresh id should be drawn and the original left alone", func() {
				So(err, ShouldBeNil)
				So(stored.ID, ShouldNotEqual, model.CoachID("a"))
				So(reg.Count(), ShouldEqual, 2)
				c, ok := reg.Get(stored.ID)
				So(ok, ShouldBeTrue)
				So(c.Name, ShouldEqual, "New")
				old, _ := reg.Get("a")
				So(old.Name, ShouldEqual, "Al")
			})

			Convey("Then the same seed should draw the same id", func() {
				again := repository.NewRegistry()
				So(again.Add(model.Coach{ID: "a", Role: model.RoleHeadCoach}), ShouldBeNil)
				twin, err := repository.AddUnique(again, model.Coach{ID: "a", Role: model.RoleHeadCoach}, random.New(3))
				So(err, ShouldBeNil)
				So(twin.ID, ShouldEqual, stored.ID)
			})
		})

		Convey("When every drawn id is taken", func() {
			id, err := model.NewCoachID(zeros{})
			So(err, ShouldBeNil)
			So(reg.Add(model.Coach{ID: id, Role: model.RoleHeadCoach}), ShouldBeNil)

			_, err = repository.AddUnique(reg, model.Coach{ID: id, Role: model.RoleHeadCoach}, zeros{})

			Convey("Then it should give up with ErrDuplicateCoach", func() {
				So(errors.Is(err, repository.ErrDuplicateCoach), ShouldBeTrue)
				So(reg.Count(), ShouldEqual, 2)
			})
		})

		Convey("When the coach is invalid", func() {
			_, err := repository.AddUnique(reg, model.Coach{ID: "a"}, random.New(3))

			Convey("Then it should fail without drawing", func() {
				So(errors.Is(err, repository.ErrInvalidCoach), ShouldBeTrue)
			})
		})
	})
}
