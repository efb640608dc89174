package models

import (
	"math"
	"testing"
	"time"
)

func validFood() Food {
	return Food{Name: "Egg", BaseAmount: 1, Unit: UnitPiece,
		Nutrients: Nutrients{Calories: 78, ProteinG: 6.3, FatG: 5.3, SatFatG: 1.6}}
}

func TestFoodValidate(t *testing.T) {
	if err := validFood().Validate(); err != nil {
		t.Fatalf("valid food rejected: %v", err)
	}

	cases := map[string]func(*Food){
		"empty name":         func(f *Food) { f.Name = "" },
		"unknown unit":       func(f *Food) { f.Unit = "cups" },
		"zero base amount":   func(f *Food) { f.BaseAmount = 0 },
		"negative base":      func(f *Food) { f.BaseAmount = -100 },
		"infinite base":      func(f *Food) { f.BaseAmount = math.Inf(1) },
		"negative calories":  func(f *Food) { f.Calories = -1 },
		"NaN protein":        func(f *Food) { f.ProteinG = math.NaN() },
		"infinite saturated": func(f *Food) { f.SatFatG = math.Inf(1) },
	}
	for name, mutate := range cases {
		f := validFood()
		mutate(&f)
		if err := f.Validate(); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}

func TestFoodZeroNutrientsAreValid(t *testing.T) {
	f := Food{Name: "Water", BaseAmount: 100, Unit: UnitMl}
	if err := f.Validate(); err != nil {
		t.Fatalf("all-zero nutrients rejected: %v", err)
	}
}

func TestGoalsValidate(t *testing.T) {
	good := Goals{Calories: 1800, ProteinG: 120, SatFatG: 20}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid goals rejected: %v", err)
	}

	for _, g := range []Goals{
		{Calories: 0, ProteinG: 120, SatFatG: 20},
		{Calories: 1800, ProteinG: -1, SatFatG: 20},
		{Calories: 1800, ProteinG: 120, SatFatG: math.NaN()},
		{Calories: math.Inf(1), ProteinG: 120, SatFatG: 20},
	} {
		if err := g.Validate(); err == nil {
			t.Errorf("invalid goals accepted: %+v", g)
		}
	}
}

func TestNutrientsAddScale(t *testing.T) {
	a := Nutrients{Calories: 100, ProteinG: 10, FatG: 5, SatFatG: 2}
	b := Nutrients{Calories: 50, ProteinG: 5, FatG: 2, SatFatG: 1}

	sum := a.Add(b)
	if sum != (Nutrients{Calories: 150, ProteinG: 15, FatG: 7, SatFatG: 3}) {
		t.Fatalf("Add = %+v", sum)
	}
	if got := a.Scale(0.5); got != (Nutrients{Calories: 50, ProteinG: 5, FatG: 2.5, SatFatG: 1}) {
		t.Fatalf("Scale = %+v", got)
	}
}

func TestDayTruncates(t *testing.T) {
	in := time.Date(2026, 8, 29, 23, 59, 59, 999, time.FixedZone("X", 3600))
	got := Day(in)
	if got != time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("Day = %v", got)
	}
	// Already-truncated days map to themselves.
	if again := Day(got); !again.Equal(got) {
		t.Fatalf("Day not idempotent: %v", again)
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-08-29")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !got.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v", got)
	}

	for _, bad := range []string{"", "29-08-2026", "2026/08/29", "2026-13-01"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) accepted", bad)
		}
	}
}
