package api

// Group is a group with its current roster.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	Members   []*Member `json:"members"`
	CreatedAt int64     `json:"createdAt"`
}

// Member is one user's membership in a group.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// GroupResponse is returned by every call that changes or fetches one group.
type GroupResponse struct {
	Group *Group `json:"group"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type UpdateGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type JoinGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetJoinInfoRequest struct {
	GroupID string `json:"groupId"`
}

type GetJoinInfoResponse struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

// AddMemberRequest identifies the user to add by mobile number or email.
// Mobile wins when both are set.
type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	Mobile  string `json:"mobile,omitempty"`
	Email   string `json:"email,omitempty"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}
