package models

// Member roles within a group.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group represents a set of people sharing monthly expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Flat 4B", "Trip").
	Name string

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// Members is the current roster. Everyone listed owes an equal share of
	// each month's expenses.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is one user's membership in a group.
type Member struct {
	UserID string
	Role   string

	// Name and Email are filled in from the users table when loaded.
	Name  string
	Email string
}

// MemberIDs returns the user IDs of the roster in stored order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// FindMember returns the membership for userID, if any.
func (g *Group) FindMember(userID string) (Member, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// IsAdmin reports whether userID is an admin of the group.
func (g *Group) IsAdmin(userID string) bool {
	m, ok := g.FindMember(userID)
	return ok && m.Role == RoleAdmin
}

// MemberNames maps user IDs to display names.
func (g *Group) MemberNames() map[string]string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.UserID] = m.Name
	}
	return names
}
