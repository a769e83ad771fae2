// Package types defines the shared data model for the clinical note chunker.
//
// The central types are:
//   - SectionLabel: the fixed SOAP section enumeration plus "unlabeled"
//   - SectionSpan: a contiguous slice of a note attributed to one label
//   - SectionConfig: per-label token and overlap budgets for packing
//   - ClinicalChunk: one emitted chunk record with full metadata
//
// Chunks serialize to a flat JSON record suitable for appending to a
// downstream index:
//
//	{
//	  "chunk_id": 0,
//	  "patient_id": "p-123",
//	  "visit_date": "2026-03-14",
//	  "note_type": "progress",
//	  "soap_section": "subjective",
//	  "chunk_index": 0,
//	  "chunk_text": "...",
//	  "tokens": 214,
//	  "start_char": 11,
//	  "end_char": 863,
//	  "metadata": {
//	    "section_header": "Subjektiv:",
//	    "total_section_chunks": 3,
//	    "encounter_id": "e-9",
//	    "created_at": "2026-03-14T10:22:31Z"
//	  }
//	}
//
// All types are plain data with validation methods; none hold references to
// the pipeline components that produce them.
package types
