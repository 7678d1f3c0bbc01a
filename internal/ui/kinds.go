package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/table"
)

// entityDef is everything the UI knows about one kind: how rows render and
// how the form maps to and from the input DTO.
type entityDef[T any, In any] struct {
	kind    api.Kind
	columns []table.Column[T]
	fields  []fieldSpec
	// values fills the edit form from a record.
	values func(T) map[string]string
	// input parses form values. Field errors are keyed like the form.
	input func(map[string]string) (In, map[string]string)
}

// --- Students ---

var studentDef = entityDef[api.Student, api.StudentInput]{
	kind: api.KindStudent,
	columns: []table.Column[api.Student]{
		{Key: "studentCode", Label: "Code", Sortable: true, Width: 10},
		{Key: "lastName", Label: "Name", Sortable: true, Width: 24, Render: api.Student.FullName},
		{Key: "email", Label: "Email", Sortable: true, Width: 28},
		{Key: "group.name", Label: "Group", Width: 8},
		{Key: "active", Label: "Active", Width: 6, Align: lipgloss.Center},
	},
	fields: []fieldSpec{
		{Key: "studentCode", Label: "Code", Placeholder: "S2024001", CharLimit: 20},
		{Key: "firstName", Label: "First name", CharLimit: 80},
		{Key: "lastName", Label: "Last name", CharLimit: 80},
		{Key: "email", Label: "Email", Placeholder: "name@school.edu"},
		{Key: "active", Label: "Active", Placeholder: "yes/no"},
		{Key: "groupId", Label: "Group ID", Placeholder: "optional"},
	},
	values: func(s api.Student) map[string]string {
		v := map[string]string{
			"studentCode": s.StudentCode,
			"firstName":   s.FirstName,
			"lastName":    s.LastName,
			"email":       s.Email,
			"active":      yesNo(s.Active),
		}
		if s.Group != nil {
			v["groupId"] = strconv.FormatInt(s.Group.ID, 10)
		}
		return v
	},
	input: func(v map[string]string) (api.StudentInput, map[string]string) {
		errs := map[string]string{}
		in := api.StudentInput{
			StudentCode: v["studentCode"],
			FirstName:   v["firstName"],
			LastName:    v["lastName"],
			Email:       v["email"],
			Active:      parseBool(v["active"], "active", errs),
			GroupID:     parseRef(v["groupId"], "groupId", errs),
		}
		return in, errs
	},
}

// --- Teachers ---

var teacherDef = entityDef[api.Teacher, api.TeacherInput]{
	kind: api.KindTeacher,
	columns: []table.Column[api.Teacher]{
		{Key: "lastName", Label: "Name", Sortable: true, Width: 24, Render: api.Teacher.FullName},
		{Key: "email", Label: "Email", Sortable: true, Width: 28},
		{Key: "department", Label: "Department", Sortable: true, Width: 18},
		{Key: "phone", Label: "Phone", Width: 14},
	},
	fields: []fieldSpec{
		{Key: "firstName", Label: "First name", CharLimit: 80},
		{Key: "lastName", Label: "Last name", CharLimit: 80},
		{Key: "email", Label: "Email"},
		{Key: "department", Label: "Department", CharLimit: 120},
		{Key: "phone", Label: "Phone", CharLimit: 30},
	},
	values: func(t api.Teacher) map[string]string {
		return map[string]string{
			"firstName":  t.FirstName,
			"lastName":   t.LastName,
			"email":      t.Email,
			"department": t.Department,
			"phone":      t.Phone,
		}
	},
	input: func(v map[string]string) (api.TeacherInput, map[string]string) {
		return api.TeacherInput{
			FirstName:  v["firstName"],
			LastName:   v["lastName"],
			Email:      v["email"],
			Department: v["department"],
			Phone:      v["phone"],
		}, map[string]string{}
	},
}

// --- Subjects ---

var subjectDef = entityDef[api.Subject, api.SubjectInput]{
	kind: api.KindSubject,
	columns: []table.Column[api.Subject]{
		{Key: "code", Label: "Code", Sortable: true, Width: 10},
		{Key: "name", Label: "Name", Sortable: true, Width: 28},
		{Key: "credits", Label: "Credits", Sortable: true, Width: 7, Align: lipgloss.Right},
		{Key: "semester", Label: "Sem", Sortable: true, Width: 4, Align: lipgloss.Right},
		{Key: "teacher.name", Label: "Teacher", Width: 20},
	},
	fields: []fieldSpec{
		{Key: "code", Label: "Code", CharLimit: 20},
		{Key: "name", Label: "Name", CharLimit: 120},
		{Key: "credits", Label: "Credits", Placeholder: "1-30"},
		{Key: "semester", Label: "Semester", Placeholder: "optional"},
		{Key: "description", Label: "Description", CharLimit: 500},
		{Key: "teacherId", Label: "Teacher ID", Placeholder: "optional"},
	},
	values: func(s api.Subject) map[string]string {
		v := map[string]string{
			"code":        s.Code,
			"name":        s.Name,
			"credits":     strconv.Itoa(s.Credits),
			"description": s.Description,
		}
		if s.Semester > 0 {
			v["semester"] = strconv.Itoa(s.Semester)
		}
		if s.Teacher != nil {
			v["teacherId"] = strconv.FormatInt(s.Teacher.ID, 10)
		}
		return v
	},
	input: func(v map[string]string) (api.SubjectInput, map[string]string) {
		errs := map[string]string{}
		return api.SubjectInput{
			Code:        v["code"],
			Name:        v["name"],
			Credits:     parseInt(v["credits"], "credits", errs),
			Semester:    parseInt(v["semester"], "semester", errs),
			Description: v["description"],
			TeacherID:   parseRef(v["teacherId"], "teacherId", errs),
		}, errs
	},
}

// --- Groups ---

var groupDef = entityDef[api.Group, api.GroupInput]{
	kind: api.KindGroup,
	columns: []table.Column[api.Group]{
		{Key: "name", Label: "Name", Sortable: true, Width: 10},
		{Key: "year", Label: "Year", Sortable: true, Width: 5, Align: lipgloss.Right},
		{Key: "capacity", Label: "Capacity", Sortable: true, Width: 8, Align: lipgloss.Right},
		{Key: "studentCount", Label: "Students", Sortable: true, Width: 8, Align: lipgloss.Right},
		{Key: "tutor.name", Label: "Tutor", Width: 20},
	},
	fields: []fieldSpec{
		{Key: "name", Label: "Name", CharLimit: 60},
		{Key: "year", Label: "Year", Placeholder: "1-10"},
		{Key: "capacity", Label: "Capacity", Placeholder: "1-500"},
		{Key: "tutorId", Label: "Tutor ID", Placeholder: "optional"},
	},
	values: func(g api.Group) map[string]string {
		v := map[string]string{
			"name":     g.Name,
			"year":     strconv.Itoa(g.Year),
			"capacity": strconv.Itoa(g.Capacity),
		}
		if g.Tutor != nil {
			v["tutorId"] = strconv.FormatInt(g.Tutor.ID, 10)
		}
		return v
	},
	input: func(v map[string]string) (api.GroupInput, map[string]string) {
		errs := map[string]string{}
		return api.GroupInput{
			Name:     v["name"],
			Year:     parseInt(v["year"], "year", errs),
			Capacity: parseInt(v["capacity"], "capacity", errs),
			TutorID:  parseRef(v["tutorId"], "tutorId", errs),
		}, errs
	},
}

// --- Parsing helpers ---

func parseInt(s, field string, errs map[string]string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		errs[field] = "must be a whole number"
	}
	return n
}

func parseRef(s, field string, errs map[string]string) *int64 {
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		errs[field] = "must be a positive id"
		return nil
	}
	return &id
}

func parseBool(s, field string, errs map[string]string) bool {
	switch strings.ToLower(s) {
	case "", "n", "no", "false", "0":
		return false
	case "y", "yes", "true", "1":
		return true
	}
	errs[field] = "must be yes or no"
	return false
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
