package service

import (
	"fmt"
	"strings"

	"github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"
)

// vagueWords are quality red flags surfaced to the Analyst so the model
// grades ambiguity consistently.
var vagueWords = []string{"rápido", "adecuado", "fácil", "eficiente"}

// rolePrompts maps each role of the closed set to its prompt template. Each
// template embeds the requirement and instructs the service to return a JSON
// object with the role's attribute schema plus an overall percentage. The
// schema is advisory only; nothing downstream assumes the model honored it.
var rolePrompts = map[core.RoleTag]func(req core.Requirement) string{
	core.RoleProductOwner: func(req core.Requirement) string {
		return fmt.Sprintf(`Eres Product Owner. Evalúa necesidad, validez y prioridad del requisito.
Requisito: %s
Contexto: %s

Responde SOLO en JSON. Para cada atributo indica su valor y una sugerencia de mejora:
{
  "validez": {"valor": true/false, "sugerencia": "..."},
  "priorizacion": {"valor": "alta" | "media" | "baja", "sugerencia": "..."},
  "necesidad": {"valor": true/false, "sugerencia": "..."},
  "porcentaje": 0-100
}`, req.Text, req.Context)
	},

	core.RoleAnalyst: func(req core.Requirement) string {
		ambiguous := containsAnyFold(req.Text, vagueWords)
		claridad := "claro"
		if ambiguous {
			claridad = "ambiguo"
		}
		return fmt.Sprintf(`Eres Analyst. Evalúa claridad, completitud, consistencia, atomicidad y conformidad.
Requisito: %s
Contexto: %s
Palabras vagas detectadas: %s
Claridad preliminar: %s

Responde SOLO en JSON. Para cada atributo indica su valor y una sugerencia de mejora:
{
  "claridad": {"valor": "claro" | "ambiguo", "sugerencia": "..."},
  "completitud": {"valor": "completo" | "incompleto", "sugerencia": "..."},
  "consistencia": {"valor": "consistente" | "inconsistente", "sugerencia": "..."},
  "atomicidad": {"valor": "atómico" | "compuesto", "sugerencia": "..."},
  "conformidad": {"valor": "conforme" | "no_conforme", "sugerencia": "..."},
  "porcentaje": 0-100
}`, req.Text, req.Context, strings.Join(vagueWords, ", "), claridad)
	},

	core.RoleScrumMaster: func(req core.Requirement) string {
		return fmt.Sprintf(`Eres Scrum Master. Evalúa modificabilidad, trazabilidad y viabilidad.
Requisito: %s
Contexto: %s

Responde SOLO en JSON. Para cada atributo indica su valor y una sugerencia de mejora:
{
  "modificabilidad": {"valor": "alta" | "media" | "baja", "sugerencia": "..."},
  "trazabilidad": {"valor": "trazable" | "no_trazable", "sugerencia": "..."},
  "viabilidad": {"valor": "viable" | "no_viable", "sugerencia": "..."},
  "porcentaje": 0-100
}`, req.Text, req.Context)
	},

	core.RoleTester: func(req core.Requirement) string {
		return fmt.Sprintf(`Eres Tester. Evalúa verificabilidad y genera como máximo 3 casos de prueba simples.
Requisito: %s
Contexto: %s

Responde SOLO en JSON:
{
  "verificabilidad": {"valor": true/false, "sugerencia": "..."},
  "casos_prueba": ["caso 1", "caso 2", "caso 3"],
  "porcentaje": 0-100
}`, req.Text, req.Context)
	},
}

// rewritePrompt asks for a mandatory rewrite of a low-scoring requirement.
func rewritePrompt(req core.Requirement) string {
	return fmt.Sprintf(`Eres un ingeniero de requisitos. El promedio de cumplimiento es muy bajo (<35%%).
Reescribe el requisito de forma breve, clara y precisa, sin cambiar el tema original.

Requisito original: %s
Contexto: %s

Responde SOLO en JSON:
{
  "estado": "refinado_obligatorio",
  "requisito_refinado_final": "versión corta, clara y precisa"
}`, req.Text, req.Context)
}

// suggestionsPrompt asks for a bounded list of improvement suggestions.
func suggestionsPrompt(req core.Requirement, max int) string {
	return fmt.Sprintf(`Eres un ingeniero de requisitos. El promedio de cumplimiento es moderado (35%%-70%%).
Da máximo %d sugerencias claras y concretas de mejora.

Requisito original: %s
Contexto: %s

Responde SOLO en JSON:
{
  "estado": "sugerencias",
  "sugerencias": ["sugerencia 1", "sugerencia 2", "sugerencia 3"]
}`, max, req.Text, req.Context)
}

// digestRefinePrompt asks for a rewrite conditioned on the combined
// per-attribute suggestions of every reviewer.
func digestRefinePrompt(req core.Requirement, digest string) string {
	return fmt.Sprintf(`Eres un ingeniero de requisitos. Los revisores detectaron problemas de calidad.
Reescribe el requisito aplicando las sugerencias recopiladas, sin cambiar el tema original.

Requisito original: %s
Descripción del proyecto: %s

Sugerencias de los revisores:
%s

Responde SOLO en JSON:
{
  "estado": "refinado_obligatorio",
  "requisito_refinado_final": "versión mejorada",
  "justificacion": "qué sugerencias se aplicaron"
}`, req.Text, req.Context, digest)
}

// synthesisPrompt asks for a brand-new requirement derived from the project
// description alone, deliberately ignoring the original text.
func synthesisPrompt(projectDescription string) string {
	return fmt.Sprintf(`Eres un ingeniero de requisitos. A partir de la descripción del proyecto,
redacta UN requisito nuevo, breve, claro, atómico y verificable. No uses ningún requisito previo.

Descripción del proyecto: %s

Responde SOLO en JSON:
{
  "estado": "nuevo_requisito",
  "requisito_nuevo": "requisito propuesto",
  "justificacion": "por qué este requisito aporta valor al proyecto"
}`, projectDescription)
}

func containsAnyFold(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
