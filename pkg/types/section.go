package types

import "fmt"

// SectionLabel identifies the SOAP section a span of a clinical note belongs to
type SectionLabel string

const (
	SectionSubjective SectionLabel = "subjective"
	SectionObjective  SectionLabel = "objective"
	SectionAssessment SectionLabel = "assessment"
	SectionPlan       SectionLabel = "plan"
	SectionUnlabeled  SectionLabel = "unlabeled"
)

// CanonicalOrder is the fixed emission order for sections. Chunks are always
// emitted in this label order regardless of where the headers physically
// appear in the source note.
var CanonicalOrder = []SectionLabel{
	SectionSubjective,
	SectionObjective,
	SectionAssessment,
	SectionPlan,
	SectionUnlabeled,
}

// Validate checks that the label is one of the known SOAP labels
func (l SectionLabel) Validate() error {
	switch l {
	case SectionSubjective, SectionObjective, SectionAssessment, SectionPlan, SectionUnlabeled:
		return nil
	default:
		return fmt.Errorf("%w: unknown section label %q", ErrInvalidLabel, string(l))
	}
}

// HeaderMatch is a detected section header occurrence in a document.
// Start is the offset of the first character of the header text and End is
// the offset just past the matched header (including any trailing colon).
type HeaderMatch struct {
	Label SectionLabel
	Start int
	End   int
	Text  string
}

// SectionSpan is a contiguous, non-overlapping slice of a document attributed
// to one section label. Text is trimmed; StartChar/EndChar are the
// document-relative offsets of the trimmed text.
type SectionSpan struct {
	Label      SectionLabel
	Text       string
	StartChar  int
	EndChar    int
	TokenCount int
	HeaderText string
}

// SectionConfig holds the per-label chunk-packing parameters
type SectionConfig struct {
	// TargetTokens is the token budget a packed chunk aims not to exceed.
	// A single sentence larger than the budget is still emitted whole.
	TargetTokens int

	// OverlapTokens bounds the tail of the previous chunk carried into the
	// start of the next chunk. Must be strictly less than TargetTokens.
	OverlapTokens int
}

// Validate checks that the config permits the packer to make progress
func (c SectionConfig) Validate() error {
	if c.TargetTokens <= 0 {
		return fmt.Errorf("%w: target token budget must be positive, got %d", ErrConfiguration, c.TargetTokens)
	}
	if c.OverlapTokens < 0 {
		return fmt.Errorf("%w: overlap token budget must be non-negative, got %d", ErrConfiguration, c.OverlapTokens)
	}
	if c.OverlapTokens >= c.TargetTokens {
		return fmt.Errorf("%w: overlap budget %d must be less than target budget %d",
			ErrConfiguration, c.OverlapTokens, c.TargetTokens)
	}
	return nil
}

// DefaultSectionConfigs returns the default packing parameters for every label
func DefaultSectionConfigs() map[SectionLabel]SectionConfig {
	return map[SectionLabel]SectionConfig{
		SectionSubjective: {TargetTokens: 320, OverlapTokens: 48},
		SectionObjective:  {TargetTokens: 320, OverlapTokens: 48},
		SectionAssessment: {TargetTokens: 256, OverlapTokens: 32},
		SectionPlan:       {TargetTokens: 256, OverlapTokens: 32},
		SectionUnlabeled:  {TargetTokens: 256, OverlapTokens: 32},
	}
}
