package dto

import (
	"github.com/pratik-mahalle/bizdesk/internal/domain/lead"
	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/domain/team"
)

// LeadRequest creates or replaces a lead
type LeadRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=40"`
	Company string `json:"company" validate:"max=160"`
	Source  string `json:"source" validate:"omitempty,oneof=website referral social email phone event other"`
	Status  string `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Notes   string `json:"notes" validate:"max=4000"`
}

// ToLead builds a lead owned by userID
func (r *LeadRequest) ToLead(userID int64) *lead.Lead {
	return &lead.Lead{
		UserID:  userID,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Source:  r.Source,
		Status:  r.Status,
		Notes:   r.Notes,
	}
}

// TaskRequest creates or replaces a task
type TaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Assignee    string `json:"assignee" validate:"max=120"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToTask builds a task owned by userID
func (r *TaskRequest) ToTask(userID int64) *task.Task {
	return &task.Task{
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Assignee:    r.Assignee,
		DueDate:     r.DueDate,
	}
}

// TaskStatusRequest moves a task to a new status
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// TeamMemberRequest adds or replaces a team member
type TeamMemberRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Email       string   `json:"email" validate:"required,email"`
	Role        string   `json:"role" validate:"omitempty,oneof=owner admin manager member"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,oneof=tasks campaigns invoices leads analytics settings"`
	Status      string   `json:"status" validate:"omitempty,oneof=active pending inactive"`
}

// ToMember builds a member of userID's team
func (r *TeamMemberRequest) ToMember(userID int64) *team.Member {
	return &team.Member{
		UserID:      userID,
		Name:        r.Name,
		Email:       r.Email,
		Role:        r.Role,
		Permissions: r.Permissions,
		Status:      r.Status,
	}
}
