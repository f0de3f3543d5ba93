// Package roles derives an account role and, for staff, a department from a
// free-text email address. The keyword tables carry both English and
// Kinyarwanda terms because staff addresses are provisioned in either.
package roles

import "strings"

// Role classifies an account.
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleStaff      Role = "staff"
	RoleSuperAdmin Role = "superAdmin"
)

// AdminDepartment is the fixed marker assigned to super-admin accounts.
const AdminDepartment = "Administration"

// GeneralDepartment is assigned when an address looks departmental but
// matches no specific keyword table.
const GeneralDepartment = "General"

type departmentKeywords struct {
	name     string
	keywords []string
}

// Ordered: the first matching department wins, so "department.roads@x.com"
// resolves to Roads, never to the generic bucket.
var departmentTable = []departmentKeywords{
	{"Sanitation", []string{"sanitation", "isuku"}},
	{"Police", []string{"police", "polisi"}},
	{"Electricity", []string{"electricity", "amashanyarazi", "power"}},
	{"Roads", []string{"roads", "imihanda", "road"}},
	{"Water", []string{"water", "amazi"}},
}

// DefaultDepartments lists the seed departments in their fixed order.
func DefaultDepartments() []string {
	out := make([]string, len(departmentTable))
	for i, d := range departmentTable {
		out[i] = d.name
	}
	return out
}

// DepartmentForEmail returns the department whose keyword table matches the
// address, GeneralDepartment for generic departmental addresses, or "" when
// nothing matches. Matching is case-insensitive substring search.
func DepartmentForEmail(email string) string {
	lower := strings.ToLower(email)
	for _, d := range departmentTable {
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				return d.name
			}
		}
	}
	if strings.Contains(lower, "department") || strings.Contains(lower, "dept") {
		return GeneralDepartment
	}
	return ""
}

// Resolve maps an email to its role and department. Deterministic and free
// of side effects, so it can be re-applied to stored accounts at any time.
// The department result is empty for citizens.
func Resolve(email string) (Role, string) {
	lower := strings.ToLower(email)
	if strings.Contains(lower, "admin") {
		return RoleSuperAdmin, AdminDepartment
	}
	if dept := DepartmentForEmail(email); dept != "" {
		return RoleStaff, dept
	}
	if strings.Contains(lower, "staff") {
		return RoleStaff, GeneralDepartment
	}
	return RoleCitizen, ""
}
