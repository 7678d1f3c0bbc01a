package api

import "time"

// --- Shared ---

// Ref is a lightweight reference to a related record embedded in a DTO.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string

// --- Student ---

// Student is a person enrolled in one group.
type Student struct {
	ID          int64      `json:"id"`
	StudentCode string     `json:"studentCode"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Active      bool       `json:"active"`
	Group       *Ref       `json:"group,omitempty"`
	EnrolledAt  *time.Time `json:"enrolledAt,omitempty"`
}

func (s Student) EntityID() int64 { return s.ID }

// FullName joins first and last name.
func (s Student) FullName() string {
	return joinName(s.FirstName, s.LastName)
}

// StudentInput defines the fields accepted on create and update.
type StudentInput struct {
	StudentCode string `json:"studentCode" validate:"required,alphanum,max=20"`
	FirstName   string `json:"firstName" validate:"required,max=80"`
	LastName    string `json:"lastName" validate:"required,max=80"`
	Email       string `json:"email" validate:"required,email"`
	Active      bool   `json:"active"`
	GroupID     *int64 `json:"groupId,omitempty"`
}

// --- Teacher ---

// Teacher is a member of staff who can lead subjects and tutor groups.
type Teacher struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func (t Teacher) EntityID() int64 { return t.ID }

// FullName joins first and last name.
func (t Teacher) FullName() string {
	return joinName(t.FirstName, t.LastName)
}

// TeacherInput defines the fields accepted on create and update.
type TeacherInput struct {
	FirstName  string `json:"firstName" validate:"required,max=80"`
	LastName   string `json:"lastName" validate:"required,max=80"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department,omitempty" validate:"max=120"`
	Phone      string `json:"phone,omitempty" validate:"max=30"`
}

// --- Subject ---

// Subject is a course unit taught by one teacher.
type Subject struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	Semester    int    `json:"semester,omitempty"`
	Description string `json:"description,omitempty"`
	Teacher     *Ref   `json:"teacher,omitempty"`
}

func (s Subject) EntityID() int64 { return s.ID }

// SubjectInput defines the fields accepted on create and update.
type SubjectInput struct {
	Code        string `json:"code" validate:"required,max=20"`
	Name        string `json:"name" validate:"required,max=120"`
	Credits     int    `json:"credits" validate:"gte=1,lte=30"`
	Semester    int    `json:"semester,omitempty" validate:"gte=0,lte=12"`
	Description string `json:"description,omitempty" validate:"max=500"`
	TeacherID   *int64 `json:"teacherId,omitempty"`
}

// --- Group ---

// Group is a cohort of students sharing a timetable.
type Group struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	Capacity     int    `json:"capacity"`
	StudentCount int    `json:"studentCount"`
	Tutor        *Ref   `json:"tutor,omitempty"`
}

func (g Group) EntityID() int64 { return g.ID }

// GroupInput defines the fields accepted on create and update.
type GroupInput struct {
	Name     string `json:"name" validate:"required,max=60"`
	Year     int    `json:"year" validate:"gte=1,lte=10"`
	Capacity int    `json:"capacity" validate:"gte=1,lte=500"`
	TutorID  *int64 `json:"tutorId,omitempty"`
}

// --- Auth ---

// LoginInput defines the credentials for logging in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the bearer token issued on login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
