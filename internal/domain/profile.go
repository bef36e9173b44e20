package domain

// Extension holds the role-specific attributes joined 1:1 to a user.
// Only the block matching the user's role is ever populated; the others
// stay nil. A populated-but-empty block means the extension row was
// missing and the profile degraded to defaults.

type TeacherInfo struct {
	School   string
	Subjects string
}

type TutorInfo struct {
	Relationship string
	Phone        string
}

type StudentInfo struct {
	School string
	Grade  string
	Points int
}

// Profile is a user merged with its role extension.
type Profile struct {
	User

	Teacher *TeacherInfo
	Tutor   *TutorInfo
	Student *StudentInfo
}

// ExtensionFields is the flat, writable view of role extension data as it
// arrives from registration or profile updates. Which fields are relevant
// depends on the role; the rest are ignored.
type ExtensionFields struct {
	School       string
	Subjects     string
	Grade        string
	Relationship string
	Phone        string
}
