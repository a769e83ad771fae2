package detector

import "github.com/mjelstad/clinichunk/pkg/types"

// Pattern associates a section label with one header recognizer expression.
// Expressions are compiled case-insensitive and line-anchored: a header is
// recognized only at the start of the document or right after a newline,
// optionally preceded by spaces or tabs.
type Pattern struct {
	Label types.SectionLabel
	Expr  string
}

// DefaultPatterns returns the built-in header registry covering Norwegian and
// English SOAP vocabulary. Declaration order matters: when two headers match
// at the same document offset, the stable sort keeps declaration order and
// the span walk assigns the section text to the later of the tied entries.
// Order-dependent, inherited behavior; see the package documentation.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Subjective
		{types.SectionSubjective, `subjektivt?\b[ \t]*:?`},
		{types.SectionSubjective, `subjective\b[ \t]*:?`},
		{types.SectionSubjective, `anamnese\b[ \t]*:?`},
		{types.SectionSubjective, `aktuelt\b[ \t]*:?`},
		{types.SectionSubjective, `s[ \t]*:`},

		// Objective
		{types.SectionObjective, `objektivt?\b[ \t]*:?`},
		{types.SectionObjective, `objective\b[ \t]*:?`},
		{types.SectionObjective, `status[ \t]+presens\b[ \t]*:?`},
		{types.SectionObjective, `funn\b[ \t]*:?`},
		{types.SectionObjective, `o[ \t]*:`},

		// Assessment
		{types.SectionAssessment, `vurdering\b[ \t]*:?`},
		{types.SectionAssessment, `assessment\b[ \t]*:?`},
		{types.SectionAssessment, `impression\b[ \t]*:?`},
		{types.SectionAssessment, `a[ \t]*:`},

		// Plan
		{types.SectionPlan, `videre[ \t]+plan\b[ \t]*:?`},
		{types.SectionPlan, `plan\b[ \t]*:?`},
		{types.SectionPlan, `tiltak\b[ \t]*:?`},
		{types.SectionPlan, `oppfølging\b[ \t]*:?`},
		{types.SectionPlan, `p[ \t]*:`},
	}
}
