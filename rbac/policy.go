// Package rbac holds the static role policy table. It answers section and
// permission questions with no I/O; the table is fixed for the process
// lifetime and safe for concurrent reads.
package rbac

// Role names recognized by the portal.
const (
	RoleAdmin           = "admin"
	RoleSection1Manager = "section1_manager"
	RoleSection2Manager = "section2_manager"
	RoleSection3Manager = "section3_manager"
)

// Permission names recognized by the portal.
const (
	PermSectionManage   = "section_manage"
	PermInventoryManage = "inventory_manage"
	PermReportsView     = "reports_view"
)

type policy struct {
	sections    []int
	permissions []string
}

// Section managers see their own floor section plus inventory and reports.
// admin is handled implicitly and deliberately has no row here.
var policyTable = map[string]policy{
	RoleSection1Manager: {
		sections:    []int{1, 4, 7},
		permissions: []string{PermSectionManage, PermInventoryManage, PermReportsView},
	},
	RoleSection2Manager: {
		sections:    []int{2, 4, 7},
		permissions: []string{PermSectionManage, PermInventoryManage, PermReportsView},
	},
	RoleSection3Manager: {
		sections:    []int{3, 4, 7},
		permissions: []string{PermSectionManage, PermInventoryManage, PermReportsView},
	},
}

var sectionNames = map[int]string{
	1: "Raw Material Handling",
	2: "Dehydration Processing",
	3: "Packaging & Storage",
	4: "Inventory Management",
	5: "Processing",
	6: "Orders",
	7: "Reports",
}

var allPermissions = []string{PermSectionManage, PermInventoryManage, PermReportsView}

// SectionsFor returns the section ids the role may access. admin gets every
// section; unknown roles get nothing.
func SectionsFor(role string) []int {
	if role == RoleAdmin {
		return []int{1, 2, 3, 4, 5, 6, 7}
	}
	p, ok := policyTable[role]
	if !ok {
		return nil
	}
	out := make([]int, len(p.sections))
	copy(out, p.sections)
	return out
}

// PermissionsFor returns the named permissions the role holds. For admin this
// is every recognized permission name; HasPermission is still true for admin
// on names outside this list.
func PermissionsFor(role string) []string {
	if role == RoleAdmin {
		out := make([]string, len(allPermissions))
		copy(out, allPermissions)
		return out
	}
	p, ok := policyTable[role]
	if !ok {
		return nil
	}
	out := make([]string, len(p.permissions))
	copy(out, p.permissions)
	return out
}

// CanAccessSection reports whether the role may open the given section.
func CanAccessSection(role string, section int) bool {
	if role == RoleAdmin {
		_, known := sectionNames[section]
		return known
	}
	for _, s := range policyTable[role].sections {
		if s == section {
			return true
		}
	}
	return false
}

// HasPermission reports whether the role holds the named permission. admin
// holds everything.
func HasPermission(role string, permission string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, p := range policyTable[role].permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// SectionName returns the display name for a section id, or "" for unknown
// ids. Display only, not security-relevant.
func SectionName(section int) string {
	return sectionNames[section]
}
