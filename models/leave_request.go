package models

const (
	ReasonSick     = "sick"
	ReasonCasual   = "casual"
	ReasonVacation = "vacation"
	ReasonOther    = "other"
)

const (
	StatusPending           = "Pending"
	StatusApprovedByTeacher = "Approved by Teacher"
	StatusRejectedByTeacher = "Rejected by Teacher"
	StatusApprovedByAdmin   = "Approved by Admin"
	StatusRejectedByAdmin   = "Rejected by Admin"
)

// LeaveRequest mirrors the record shape of the persisted "leaves"
// snapshot (camelCase field names, dates as YYYY-MM-DD strings).
// UserName/UserRole are a snapshot of the requester at submission time,
// not a live reference to the account.
type LeaveRequest struct {
	ID              string `json:"id"`
	UserName        string `json:"userName"`
	UserRole        string `json:"userRole"`
	Reason          string `json:"reason"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	NumberOfDays    int    `json:"numberOfDays"`
	Status          string `json:"status"`
	TeacherApproved bool   `json:"teacherApproved"`
	AdminApproved   bool   `json:"adminApproved"`

	// Username of the teacher asked to approve; set for student
	// requests only.
	RequestedToTeacher string `json:"requestedToTeacher,omitempty"`
}
