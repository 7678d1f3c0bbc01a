package api

import (
	"fmt"
	"strings"
)

// Kind identifies one managed record type.
type Kind int

const (
	KindStudent Kind = iota
	KindTeacher
	KindSubject
	KindGroup
)

// KindInfo describes how a kind is addressed and labelled.
type KindInfo struct {
	Name     string
	Singular string
	Plural   string
	Path     string
	// Paged kinds are paginated server-side; the rest come back in one
	// bulk response and are paged on the client.
	Paged bool
}

var kindTable = map[Kind]KindInfo{
	KindStudent: {Name: "students", Singular: "student", Plural: "students", Path: "/api/students", Paged: true},
	KindTeacher: {Name: "teachers", Singular: "teacher", Plural: "teachers", Path: "/api/teachers", Paged: true},
	KindSubject: {Name: "subjects", Singular: "subject", Plural: "subjects", Path: "/api/subjects", Paged: true},
	KindGroup:   {Name: "groups", Singular: "group", Plural: "groups", Path: "/api/groups", Paged: false},
}

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindStudent, KindTeacher, KindSubject, KindGroup}
}

// Info returns the metadata for k.
func (k Kind) Info() KindInfo {
	return kindTable[k]
}

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.Name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts singular or plural names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		info := k.Info()
		if s == info.Singular || s == info.Plural {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q (want one of students, teachers, subjects, groups)", s)
}
