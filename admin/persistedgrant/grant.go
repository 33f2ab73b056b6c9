package persistedgrant

import "time"

// PersistedGrant is one grant issued by the token service. Key is unique.
// Expiration is nil for grants that never expire.
type PersistedGrant struct {
	Key          string
	Type         string
	SubjectID    string
	ClientID     string
	CreationTime time.Time
	Expiration   *time.Time
	Data         string
}

// Search filters and pages persisted grants.
// Text matches the subject or client id exactly; an empty Text matches every grant.
type Search struct {
	Text   string
	Limit  uint
	Offset uint
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

// normalized applies the default page size and caps it.
func (s Search) normalized() Search {
	switch {
	case s.Limit == 0:
		s.Limit = defaultLimit
	case s.Limit > maxLimit:
		s.Limit = maxLimit
	}

	return s
}

// View is the read model of a PersistedGrant handed to callers.
type View struct {
	Key          string     `json:"key"`
	Type         string     `json:"type"`
	SubjectID    string     `json:"subjectId"`
	ClientID     string     `json:"clientId"`
	CreationTime time.Time  `json:"creationTime"`
	Expiration   *time.Time `json:"expiration,omitempty"`
	Data         string     `json:"data"`
}

// ListOf is one page of items plus the total number of matching items.
type ListOf[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func toView(g PersistedGrant) View {
	return View(g)
}
