package models

// SectionLink pairs a section id with its display name for navigation.
type SectionLink struct {
	ID   int
	Name string
}

// PageData carries the common fields every rendered page needs.
type PageData struct {
	FullName  string
	Role      string
	Sections  []SectionLink
	Flash     []FlashMessage
	CSRFtoken string
}
