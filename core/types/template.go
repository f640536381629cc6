// Package types - Intake template types
package types

// QuestionType enumerates supported answer widgets
type QuestionType string

const (
	QuestionNumber  QuestionType = "number"
	QuestionText    QuestionType = "text"
	QuestionSelect  QuestionType = "select"
	QuestionBoolean QuestionType = "boolean"
)

// QuestionOption is one choice of a select question
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is a single intake question declared by a template
type Question struct {
	// ID is the answer key this question writes
	ID string `json:"id"`

	// Prompt is the user-facing question text
	Prompt string `json:"prompt"`

	// Type is the answer widget type
	Type QuestionType `json:"type"`

	// Default is the question's own declared default value
	Default interface{} `json:"default,omitempty"`

	// Unit is the display unit (sq ft, hours, MW)
	Unit string `json:"unit,omitempty"`

	// Required marks the question as mandatory
	Required bool `json:"required"`

	// Help provides additional user-facing context
	Help string `json:"help,omitempty"`

	// Options lists choices for select questions
	Options []QuestionOption `json:"options,omitempty"`
}

// TemplatePart is a page of questions. Membership is explicit: a question
// belongs to a part iff its id appears in QuestionIDs.
type TemplatePart struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	QuestionIDs []string `json:"question_ids"`
}

// CombineOp is how a derived mapping rule combines its operands
type CombineOp string

const (
	CombineSum     CombineOp = "sum"
	CombineProduct CombineOp = "product"
)

// MappingRule is one declarative transformation from raw answers to
// canonical calculator inputs. Exactly one of From or Combine is set.
type MappingRule struct {
	// To is the canonical input key this rule produces
	To string `json:"to"`

	// From is the raw answer key to rename/convert
	From string `json:"from,omitempty"`

	// Scale multiplies a numeric source value (0 means 1, i.e. no scaling)
	Scale float64 `json:"scale,omitempty"`

	// Combine lists raw answer keys for a derived composite field
	Combine []string `json:"combine,omitempty"`

	// Op is the combine operator (sum, product)
	Op CombineOp `json:"op,omitempty"`
}

// Template is the ordered intake question set for one industry
type Template struct {
	// Industry is the industry this template was authored for
	Industry IndustrySlug `json:"industry"`

	// ID uniquely identifies the template (usually same as Industry)
	ID string `json:"id"`

	// Version is the template authoring version
	Version string `json:"version"`

	// CalculatorID pairs the template with a calculator
	CalculatorID string `json:"calculator_id"`

	// Questions is the ordered question set
	Questions []Question `json:"questions"`

	// Defaults overrides question defaults at the template level
	Defaults map[string]interface{} `json:"defaults,omitempty"`

	// Parts paginates the questions; optional (single implicit part if empty)
	Parts []TemplatePart `json:"parts,omitempty"`

	// Mapping declares the answer -> calculator input transformation
	Mapping []MappingRule `json:"mapping,omitempty"`
}

// QuestionIDs returns the set of declared question ids
func (t *Template) QuestionIDs() map[string]bool {
	ids := make(map[string]bool, len(t.Questions))
	for _, q := range t.Questions {
		ids[q.ID] = true
	}
	return ids
}

// FindQuestion returns the question with the given id, or nil
func (t *Template) FindQuestion(id string) *Question {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i]
		}
	}
	return nil
}

// FindPart returns the part with the given id, or nil
func (t *Template) FindPart(id string) *TemplatePart {
	for i := range t.Parts {
		if t.Parts[i].ID == id {
			return &t.Parts[i]
		}
	}
	return nil
}

// DefaultFor resolves the default value for a question id: template-level
// default first, else the question's own declared default, else nil.
func (t *Template) DefaultFor(id string) (interface{}, bool) {
	if v, ok := t.Defaults[id]; ok {
		return v, true
	}
	if q := t.FindQuestion(id); q != nil && q.Default != nil {
		return q.Default, true
	}
	return nil, false
}
