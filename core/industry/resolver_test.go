package industry

import (
	"testing"

	"energy-quote/core/types"
	"energy-quote/internal/errors"
)

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		input string
		slug  types.IndustrySlug
	}{
		{"hotel", "hotel"},
		{"Hotels", "hotel"},
		{"  HOSPITALITY  ", "hotel"},
		{"gas_station", "gas_station"},
		{"Gas Station", "gas_station"},
		{"c-store", "gas_station"},
		{"DATA CENTERS", "data_center"},
		{"datacenter", "data_center"},
		{"factory", "manufacturing"},
		{"grocery store", "grocery"},
		{"other", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctx, err := Default.Resolve(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ctx.CanonicalSlug != tt.slug {
				t.Errorf("expected %s, got %s", tt.slug, ctx.CanonicalSlug)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Default.Resolve("lunar outpost")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsType(err, errors.TypeState) {
		t.Errorf("expected STATE error, got %v", err)
	}
}

func TestBorrowedTemplate(t *testing.T) {
	gas, err := Default.Resolve("gas_station")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gas.Borrowed() {
		t.Error("gas_station should borrow its template")
	}
	if gas.TemplateKey != "hotel" {
		t.Errorf("expected donor key hotel, got %s", gas.TemplateKey)
	}
	if gas.CalculatorID != "gas_station_load_v1" {
		t.Errorf("borrowing must not change the calculator: %s", gas.CalculatorID)
	}

	hotel, err := Default.Resolve("hotel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hotel.Borrowed() {
		t.Error("hotel owns its template")
	}
}

func TestSizingDefaultsAreOwn(t *testing.T) {
	// The borrower keeps its own sizing even though the template is the donor's
	gas, _ := Default.Resolve("gas_station")
	hotel, _ := Default.Resolve("hotel")

	if gas.SizingDefaults.DurationHours != 2 {
		t.Errorf("expected gas_station duration 2h, got %.1f", gas.SizingDefaults.DurationHours)
	}
	if hotel.SizingDefaults.DurationHours != 4 {
		t.Errorf("expected hotel duration 4h, got %.1f", hotel.SizingDefaults.DurationHours)
	}
	if gas.SizingDefaults.Source != "industry_defaults:gas_station" {
		t.Errorf("sizing source mislabeled: %s", gas.SizingDefaults.Source)
	}
}

func TestRegisterAndResolveCustom(t *testing.T) {
	r := NewResolver()
	r.Register(Profile{Slug: "car_wash", CalculatorID: "generic_load_v1", StorageToPeakRatio: 0.4, DurationHours: 1})
	r.Alias("carwash", "car_wash")

	ctx, err := r.Resolve("CarWash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.CanonicalSlug != "car_wash" || ctx.TemplateKey != "car_wash" {
		t.Errorf("unexpected context: %+v", ctx)
	}
}
