package pipeline

import (
	"testing"

	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/pattern"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"txt", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateGridFormats(t *testing.T) {
	if err := ValidateGridFormats([]string{"svg", "png", "pdf"}); err != nil {
		t.Errorf("grid formats should pass: %v", err)
	}
	for _, f := range []string{"json", "txt"} {
		if err := ValidateGridFormats([]string{f}); err == nil {
			t.Errorf("%s should not be available for grids", f)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" svg , ,pdf ", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Columns != DefaultColumns {
		t.Errorf("Columns should be %d, got %d", DefaultColumns, opts.Columns)
	}
	if opts.Palette != pattern.DefaultPalette {
		t.Errorf("Palette should default, got %+v", opts.Palette)
	}
	if opts.BaseURL != location.DefaultBaseURL {
		t.Errorf("BaseURL should be %s, got %s", location.DefaultBaseURL, opts.BaseURL)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"negative scale", Options{Scale: -1}, true},
		{"huge scale", Options{Scale: 100}, true},
		{"negative columns", Options{Columns: -3}, true},
		{"bad base url", Options{BaseURL: "circlet.example"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"png"}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	scale, columns := opts.Scale, opts.Columns

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Scale != scale || opts.Columns != columns {
		t.Error("defaults changed on second call")
	}
}

func TestHasOverrides(t *testing.T) {
	opts := Options{}
	if opts.HasOverrides() {
		t.Error("empty overrides reported as set")
	}
	opts.Overrides.NumLines = pattern.Int(0)
	if !opts.HasOverrides() {
		t.Error("explicit zero override should count")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	a := opts.ArtifactKeyOpts(FormatSVG)
	opts.Scale = 4
	b := opts.ArtifactKeyOpts(FormatSVG)
	if a != b {
		t.Error("scale should not affect the SVG key")
	}
	if opts.ArtifactKeyOpts(FormatPNG).Scale != 4 {
		t.Error("scale should be part of the PNG key")
	}
	if opts.ArtifactKeyOpts(FormatText).Columns != DefaultColumns {
		t.Error("columns should be part of the text key")
	}
}
