package template

import (
	"os"
	"path/filepath"
	"testing"
)

const carWashHCL = `
template "car_wash" {
  industry   = "car_wash"
  version    = "1.0"
  calculator = "generic_load_v1"

  question "bays" {
    prompt   = "Number of wash bays"
    type     = "number"
    default  = 4
    required = true
  }

  question "washType" {
    prompt = "Wash type"
    type   = "select"

    option "touchless" {
      label = "Touchless"
    }
    option "soft_touch" {
      label = "Soft touch"
    }
  }

  part "site" {
    label     = "Site"
    questions = ["bays", "washType"]
  }

  map "bayCount" {
    from = "bays"
  }

  map "peakLoadKW" {
    from  = "peakLoad"
    scale = 1000
  }
}
`

func writeTemplateFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadHCLFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFile(t, dir, "car_wash.hcl", carWashHCL)

	templates, err := LoadHCLFile(filepath.Join(dir, "car_wash.hcl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}

	tmpl := templates[0]
	if tmpl.ID != "car_wash" || tmpl.CalculatorID != "generic_load_v1" {
		t.Errorf("unexpected template identity: %s / %s", tmpl.ID, tmpl.CalculatorID)
	}
	if len(tmpl.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(tmpl.Questions))
	}

	bays := tmpl.FindQuestion("bays")
	if bays == nil {
		t.Fatal("bays question missing")
	}
	if bays.Default != 4.0 || !bays.Required {
		t.Errorf("bays question decoded wrong: %+v", bays)
	}

	wash := tmpl.FindQuestion("washType")
	if wash == nil || len(wash.Options) != 2 {
		t.Fatal("washType options not decoded")
	}
	if wash.Options[0].Value != "touchless" || wash.Options[0].Label != "Touchless" {
		t.Errorf("option decoded wrong: %+v", wash.Options[0])
	}

	if len(tmpl.Parts) != 1 || len(tmpl.Parts[0].QuestionIDs) != 2 {
		t.Errorf("part decoded wrong: %+v", tmpl.Parts)
	}
	if len(tmpl.Mapping) != 2 {
		t.Fatalf("expected 2 mapping rules, got %d", len(tmpl.Mapping))
	}
	if tmpl.Mapping[1].Scale != 1000 {
		t.Errorf("scale not decoded: %+v", tmpl.Mapping[1])
	}
}

func TestLoadHCLFileRejectsMissingCalculator(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFile(t, dir, "bad.hcl", `
template "bad" {
  industry   = "bad"
  calculator = ""
}
`)

	_, err := LoadHCLFile(filepath.Join(dir, "bad.hcl"))
	if err == nil {
		t.Fatal("expected an error for a template without a calculator")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFile(t, dir, "car_wash.hcl", carWashHCL)
	writeTemplateFile(t, dir, "notes.txt", "not a template")

	reg := NewRegistry()
	n, err := reg.LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 template loaded, got %d", n)
	}
	if reg.GetTemplate("car_wash") == nil {
		t.Error("loaded template not registered")
	}
}
