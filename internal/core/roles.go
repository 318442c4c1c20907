package core

// RoleTag identifies one of the fixed reviewer roles. The set is closed:
// every reviewer in an orchestration run carries exactly one of these tags.
type RoleTag string

const (
	RoleProductOwner RoleTag = "Product Owner"
	RoleAnalyst      RoleTag = "Analyst"
	RoleScrumMaster  RoleTag = "Scrum Master"
	RoleTester       RoleTag = "Tester"
)

// Roles returns the closed role set in its canonical order.
func Roles() []RoleTag {
	return []RoleTag{RoleProductOwner, RoleAnalyst, RoleScrumMaster, RoleTester}
}

// Valid reports whether the tag belongs to the closed role set.
func (r RoleTag) Valid() bool {
	switch r {
	case RoleProductOwner, RoleAnalyst, RoleScrumMaster, RoleTester:
		return true
	}
	return false
}

// Attributes returns the advisory attribute schema the role asks the model to
// populate. The model's output is not guaranteed to conform; consumers must
// tolerate missing or extra attributes.
func (r RoleTag) Attributes() []string {
	switch r {
	case RoleProductOwner:
		return []string{"validez", "priorizacion", "necesidad"}
	case RoleAnalyst:
		return []string{"claridad", "completitud", "consistencia", "atomicidad", "conformidad"}
	case RoleScrumMaster:
		return []string{"modificabilidad", "trazabilidad", "viabilidad"}
	case RoleTester:
		return []string{"verificabilidad", "casos_prueba"}
	}
	return nil
}
