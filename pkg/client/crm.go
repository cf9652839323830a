package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// LeadService handles lead-related API calls
type LeadService struct {
	client *Client
}

// LeadListOptions filters the lead list
type LeadListOptions struct {
	ListOptions
	Status string
	Source string
	Search string
}

// List retrieves one page of leads
func (s *LeadService) List(ctx context.Context, opts *LeadListOptions) (*Page[Lead], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
		if opts.Source != "" {
			query.Set("source", opts.Source)
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
	}

	path := apiPrefix + "/leads"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Lead]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create adds a lead
func (s *LeadService) Create(ctx context.Context, l Lead) (*Lead, error) {
	var created Lead
	if err := s.client.doRequest(ctx, "POST", apiPrefix+"/leads", l, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("%s/leads/%d", apiPrefix, id), nil, nil)
}

// TaskService handles task-related API calls
type TaskService struct {
	client *Client
}

// List retrieves tasks, optionally filtered by status
func (s *TaskService) List(ctx context.Context, status string) ([]Task, error) {
	path := apiPrefix + "/tasks"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}

	var tasks []Task
	if err := s.client.doRequest(ctx, "GET", path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create adds a task
func (s *TaskService) Create(ctx context.Context, t Task) (*Task, error) {
	var created Task
	if err := s.client.doRequest(ctx, "POST", apiPrefix+"/tasks", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus moves a task to pending, in-progress or completed
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status string) (*Task, error) {
	var updated Task
	body := map[string]string{"status": status}
	if err := s.client.doRequest(ctx, "PATCH", fmt.Sprintf("%s/tasks/%d/status", apiPrefix, id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
