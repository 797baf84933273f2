package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kajalsharma987/my-leave-app/models"
)

// Store persists the three top-level collections as whole-value
// snapshots. Loads fall back to defaults instead of failing; saves are
// fire-and-forget (a crash between the in-memory mutation and the write
// is an accepted loss window).
type Store interface {
	LoadUsers() []models.User
	LoadLeaves() []models.LeaveRequest
	LoadSession() *models.User

	SaveUsers(users []models.User)
	SaveLeaves(leaves []models.LeaveRequest)
	SaveSession(user *models.User)
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Service owns the registered accounts, the leave ledger, and the
// current session. A single mutex serializes every operation so that
// each one runs to completion before the next is accepted; the store
// mirrors each collection after it changes. Cross-process writers
// sharing the same snapshot table may still race — that is a known
// limitation, matching the single-browser scope of the system.
type Service struct {
	mu      sync.Mutex
	store   Store
	users   []models.User
	leaves  []models.LeaveRequest
	current *models.User
}

func New(store Store) *Service {
	return &Service{
		store:   store,
		users:   store.LoadUsers(),
		leaves:  store.LoadLeaves(),
		current: store.LoadSession(),
	}
}

// Register appends a new account. Usernames are unique
// case-insensitively; the role must be one of the three known roles.
func (s *Service) Register(username, password, role string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" || password == "" || role == "" {
		return models.User{}, newError(KindValidation,
			"Please enter username, password, and select a role.")
	}
	if !models.ValidRole(role) {
		return models.User{}, newError(KindValidation,
			"Role must be student, teacher, or admin.")
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return models.User{}, newError(KindDuplicateUsername,
				"Username already exists. Please choose a different one.")
		}
	}

	user := models.User{Username: username, Password: password, Role: role}
	s.users = append(s.users, user)
	s.store.SaveUsers(s.users)
	return user, nil
}

// Login matches the username case-insensitively and the password
// byte-for-byte, then records the account as the current session.
func (s *Service) Login(username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" || password == "" {
		return models.User{}, newError(KindValidation,
			"Please enter both username and password.")
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) && u.Password == password {
			user := u
			s.current = &user
			s.store.SaveSession(s.current)
			return user, nil
		}
	}
	return models.User{}, newError(KindInvalidCredentials,
		"Invalid username or password.")
}

func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.store.SaveSession(nil)
}

func (s *Service) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Teachers returns the usernames of all registered teachers, in
// registration order. The submission form uses it as the choice set for
// the approving teacher.
func (s *Service) Teachers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	teachers := []string{}
	for _, u := range s.users {
		if u.Role == models.RoleTeacher {
			teachers = append(teachers, u.Username)
		}
	}
	return teachers
}

// LeaveInput is a leave submission as entered on the request form.
type LeaveInput struct {
	Reason      string `json:"reason"`
	OtherReason string `json:"otherReason"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`

	// Teacher asked to approve; required for students.
	RequestedToTeacher string `json:"requestedToTeacher"`
}

// Submit validates the input and appends a Pending request to the
// ledger. Teacher requests skip the teacher stage: they are created with
// teacherApproved already set and no requested teacher.
func (s *Service) Submit(user models.User, in LeaveInput) (models.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	finalReason := in.Reason
	if in.Reason == models.ReasonOther {
		finalReason = strings.TrimSpace(in.OtherReason)
	}
	if finalReason == "" {
		if in.Reason == models.ReasonOther {
			return models.LeaveRequest{}, newError(KindMissingOtherReason,
				`Please specify the "Other Reason".`)
		}
		return models.LeaveRequest{}, newError(KindValidation,
			"Please fill in all required leave request fields.")
	}
	if in.StartDate == "" || in.EndDate == "" {
		return models.LeaveRequest{}, newError(KindValidation,
			"Please fill in all required leave request fields.")
	}
	if user.Role == models.RoleStudent && in.RequestedToTeacher == "" {
		return models.LeaveRequest{}, newError(KindMissingApprover,
			"Please select a teacher to approve your leave.")
	}
	if in.Reason == models.ReasonOther && strings.TrimSpace(in.OtherReason) == "" {
		return models.LeaveRequest{}, newError(KindMissingOtherReason,
			`Please specify the "Other Reason".`)
	}
	days := DayCount(in.StartDate, in.EndDate)
	if days <= 0 {
		return models.LeaveRequest{}, newError(KindInvalidDateRange,
			"End date must be on or after the start date.")
	}

	leave := models.LeaveRequest{
		ID:              uuid.NewString(),
		UserName:        user.Username,
		UserRole:        user.Role,
		Reason:          finalReason,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		NumberOfDays:    days,
		Status:          models.StatusPending,
		TeacherApproved: user.Role == models.RoleTeacher,
	}
	if user.Role == models.RoleStudent {
		leave.RequestedToTeacher = in.RequestedToTeacher
	}

	s.leaves = append(s.leaves, leave)
	s.store.SaveLeaves(s.leaves)
	return leave, nil
}

// Transition applies an approve/reject action to the matched record.
// The two stage flags are independent: there is no precondition on the
// current status, an admin may act regardless of the teacher stage.
// A teacher rejection resets adminApproved; admin actions never touch
// teacherApproved.
func (s *Service) Transition(leaveID, action, approverRole string) (models.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if action != ActionApprove && action != ActionReject {
		return models.LeaveRequest{}, newError(KindValidation,
			fmt.Sprintf("Unknown action %q.", action))
	}

	idx := -1
	for i := range s.leaves {
		if s.leaves[i].ID == leaveID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.LeaveRequest{}, newError(KindNotFound,
			"Leave request not found.")
	}

	leave := &s.leaves[idx]
	approve := action == ActionApprove
	switch approverRole {
	case models.RoleTeacher:
		leave.TeacherApproved = approve
		if approve {
			leave.Status = models.StatusApprovedByTeacher
		} else {
			leave.Status = models.StatusRejectedByTeacher
			leave.AdminApproved = false
		}
	case models.RoleAdmin:
		leave.AdminApproved = approve
		if approve {
			leave.Status = models.StatusApprovedByAdmin
		} else {
			leave.Status = models.StatusRejectedByAdmin
		}
	default:
		return models.LeaveRequest{}, newError(KindValidation,
			fmt.Sprintf("Unknown approver role %q.", approverRole))
	}

	s.store.SaveLeaves(s.leaves)
	return *leave, nil
}

// MyLeaves returns every request submitted under the given username.
func (s *Service) MyLeaves(username string) []models.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterLeaves(func(l models.LeaveRequest) bool {
		return l.UserName == username
	})
}

// TeacherQueue returns the student requests pending the given teacher's
// decision.
func (s *Service) TeacherQueue(teacherUsername string) []models.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterLeaves(func(l models.LeaveRequest) bool {
		return l.UserRole == models.RoleStudent &&
			strings.Contains(l.Status, models.StatusPending) &&
			l.RequestedToTeacher == teacherUsername
	})
}

// AdminQueue returns the requests actionable by an admin: anything the
// teacher stage approved, plus teachers' own still-pending requests. A
// student request a teacher never acted on stays out of this queue.
func (s *Service) AdminQueue() []models.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterLeaves(func(l models.LeaveRequest) bool {
		return strings.Contains(l.Status, models.StatusApprovedByTeacher) ||
			(l.UserRole == models.RoleTeacher &&
				strings.Contains(l.Status, models.StatusPending))
	})
}

// filterLeaves copies matching records so callers never alias ledger
// entries outside the lock. Callers must hold mu.
func (s *Service) filterLeaves(keep func(models.LeaveRequest) bool) []models.LeaveRequest {
	out := []models.LeaveRequest{}
	for _, l := range s.leaves {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
