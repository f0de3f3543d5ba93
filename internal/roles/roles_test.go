package roles

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		email string
		role  Role
		dept  string
	}{
		{"admin@city.gov", RoleSuperAdmin, "Administration"},
		{"ADMIN@CITY.GOV", RoleSuperAdmin, "Administration"},
		{"staff.sanitation@city.gov", RoleStaff, "Sanitation"},
		{"isuku.team@city.gov", RoleStaff, "Sanitation"},
		{"polisi@city.gov", RoleStaff, "Police"},
		{"power.grid@city.gov", RoleStaff, "Electricity"},
		{"imihanda@city.gov", RoleStaff, "Roads"},
		{"department.roads@x.com", RoleStaff, "Roads"},
		{"amazi@city.gov", RoleStaff, "Water"},
		{"staff@city.gov", RoleStaff, "General"},
		{"dept.office@city.gov", RoleStaff, "General"},
		{"jane@example.com", RoleCitizen, ""},
	}
	for _, tc := range cases {
		role, dept := Resolve(tc.email)
		if role != tc.role || dept != tc.dept {
			t.Fatalf("Resolve(%q) = (%s, %q), want (%s, %q)", tc.email, role, dept, tc.role, tc.dept)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		role, dept := Resolve("staff.sanitation@city.gov")
		if role != RoleStaff || dept != "Sanitation" {
			t.Fatalf("call %d: got (%s, %q)", i, role, dept)
		}
	}
}

func TestAdminBeatsDepartmentKeywords(t *testing.T) {
	// "admin" takes precedence even when a department keyword also matches.
	role, dept := Resolve("admin.water@city.gov")
	if role != RoleSuperAdmin || dept != AdminDepartment {
		t.Fatalf("got (%s, %q)", role, dept)
	}
}

func TestDefaultDepartmentsOrder(t *testing.T) {
	want := []string{"Sanitation", "Police", "Electricity", "Roads", "Water"}
	got := DefaultDepartments()
	if len(got) != len(want) {
		t.Fatalf("got %d departments", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
