// Package core defines the domain model for requirement quality analysis.
package core

// Requirement is a single natural-language software requirement to evaluate.
// Immutable during orchestration; the caller owns it.
type Requirement struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Context string `json:"context"`
}

// ReviewResult is one role's structured judgment of a requirement.
// Analysis holds whatever structure the model returned: on success a map of
// attribute name to judgment, on failure an error payload that preserves the
// raw model output for audit.
type ReviewResult struct {
	Role     RoleTag        `json:"role"`
	Analysis map[string]any `json:"analysis"`
	Score    float64        `json:"porcentaje"`
}

// DecisionState identifies the refinement action chosen for a requirement.
type DecisionState string

const (
	DecisionMandatoryRewrite DecisionState = "refinado_obligatorio"
	DecisionSuggestions      DecisionState = "sugerencias"
	DecisionOptional         DecisionState = "opcional"
	DecisionAccepted         DecisionState = "aceptado"
	DecisionSynthesized      DecisionState = "nuevo_requisito"
)

// Decision carries the outcome of the refinement policy. Only the fields
// relevant to its State are populated; Detail retains the parsed follow-up
// model output (or an error payload) verbatim.
type Decision struct {
	State         DecisionState  `json:"estado"`
	RefinedText   string         `json:"requisito_refinado_final,omitempty"`
	Suggestions   []string       `json:"sugerencias,omitempty"`
	Message       string         `json:"mensaje,omitempty"`
	Justification string         `json:"justificacion,omitempty"`
	Detail        map[string]any `json:"detalle,omitempty"`
}

// ConsolidatedResult is the sole artifact returned across the core boundary.
// It is fully JSON-serializable and persisted verbatim by the store.
type ConsolidatedResult struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Context is always emitted, even empty, to keep the serialized form
	// stable for stored rows and API consumers.
	Context string `json:"context"`
	// ProjectDescription is set instead of Context when the orchestrator runs
	// in project-description mode.
	ProjectDescription string                   `json:"descripcion_proyecto,omitempty"`
	Average            float64                  `json:"promedio_cumplimiento"`
	Reviews            map[RoleTag]ReviewResult `json:"agents"`
	Decision           *Decision                `json:"refined_requirement,omitempty"`
	// RefinedOption and SynthesizedOption are the two side-by-side
	// alternatives produced in project-description mode. No automatic
	// selection is made between them.
	RefinedOption     *Decision `json:"opcion_refinada,omitempty"`
	SynthesizedOption *Decision `json:"opcion_nueva,omitempty"`
}
