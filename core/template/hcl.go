// Package template - HCL template file loading
//
// Templates can be authored externally as .hcl files and loaded into a
// registry alongside the built-ins:
//
//	template "car_wash" {
//	  industry   = "car_wash"
//	  version    = "1.0"
//	  calculator = "generic_load_v1"
//
//	  question "bays" {
//	    prompt   = "Number of wash bays"
//	    type     = "number"
//	    default  = 4
//	    required = true
//	  }
//
//	  part "site" {
//	    label     = "Site"
//	    questions = ["bays"]
//	  }
//
//	  map "bayCount" { from = "bays" }
//	}
package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"energy-quote/core/types"
	"energy-quote/internal/errors"
)

type hclRoot struct {
	Templates []hclTemplate `hcl:"template,block"`
}

type hclTemplate struct {
	Key        string        `hcl:"key,label"`
	Industry   string        `hcl:"industry"`
	Version    string        `hcl:"version,optional"`
	Calculator string        `hcl:"calculator"`
	Questions  []hclQuestion `hcl:"question,block"`
	Parts      []hclPart     `hcl:"part,block"`
	Mappings   []hclMapping  `hcl:"map,block"`
	Defaults   cty.Value     `hcl:"defaults,optional"`
}

type hclQuestion struct {
	ID       string      `hcl:"id,label"`
	Prompt   string      `hcl:"prompt"`
	Type     string      `hcl:"type,optional"`
	Default  cty.Value   `hcl:"default,optional"`
	Unit     string      `hcl:"unit,optional"`
	Required bool        `hcl:"required,optional"`
	Help     string      `hcl:"help,optional"`
	Options  []hclOption `hcl:"option,block"`
}

type hclOption struct {
	Value string `hcl:"value,label"`
	Label string `hcl:"label"`
}

type hclPart struct {
	ID        string   `hcl:"id,label"`
	Label     string   `hcl:"label,optional"`
	Questions []string `hcl:"questions"`
}

type hclMapping struct {
	To      string    `hcl:"to,label"`
	From    string    `hcl:"from,optional"`
	Scale   float64   `hcl:"scale,optional"`
	Combine []string  `hcl:"combine,optional"`
	Op      string    `hcl:"op,optional"`
}

// LoadHCLFile parses one .hcl template file
func LoadHCLFile(path string) ([]*types.Template, error) {
	var root hclRoot
	if err := hclsimple.DecodeFile(path, nil, &root); err != nil {
		return nil, errors.Wrap(errors.TypeState, "failed to parse template file "+path, err)
	}

	out := make([]*types.Template, 0, len(root.Templates))
	for _, ht := range root.Templates {
		t, err := convertHCLTemplate(ht)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func convertHCLTemplate(ht hclTemplate) (*types.Template, error) {
	if ht.Calculator == "" {
		return nil, errors.Statef("template %q declares no calculator", ht.Key)
	}

	t := &types.Template{
		Industry:     types.IndustrySlug(ht.Industry),
		ID:           ht.Key,
		Version:      ht.Version,
		CalculatorID: ht.Calculator,
	}

	for _, hq := range ht.Questions {
		q := types.Question{
			ID:       hq.ID,
			Prompt:   hq.Prompt,
			Type:     types.QuestionType(hq.Type),
			Unit:     hq.Unit,
			Required: hq.Required,
			Help:     hq.Help,
		}
		if q.Type == "" {
			q.Type = types.QuestionText
		}
		if !hq.Default.IsNull() {
			q.Default = ctyToGo(hq.Default)
		}
		for _, opt := range hq.Options {
			q.Options = append(q.Options, types.QuestionOption{Value: opt.Value, Label: opt.Label})
		}
		t.Questions = append(t.Questions, q)
	}

	for _, hp := range ht.Parts {
		t.Parts = append(t.Parts, types.TemplatePart{
			ID:          hp.ID,
			Label:       hp.Label,
			QuestionIDs: hp.Questions,
		})
	}

	for _, hm := range ht.Mappings {
		t.Mapping = append(t.Mapping, types.MappingRule{
			To:      hm.To,
			From:    hm.From,
			Scale:   hm.Scale,
			Combine: hm.Combine,
			Op:      types.CombineOp(hm.Op),
		})
	}

	if !ht.Defaults.IsNull() && ht.Defaults.Type().IsObjectType() {
		t.Defaults = make(map[string]interface{})
		for k, v := range ht.Defaults.AsValueMap() {
			t.Defaults[k] = ctyToGo(v)
		}
	}

	return t, nil
}

// ctyToGo converts the cty scalar types templates use into plain Go values
func ctyToGo(v cty.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f
	case cty.Bool:
		return v.True()
	}
	return nil
}

// LoadDir loads every .hcl file in dir into the registry, returning the
// number of templates registered.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hcl") {
			continue
		}
		templates, err := LoadHCLFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return count, err
		}
		for _, t := range templates {
			r.Register(t)
			count++
		}
	}
	return count, nil
}
