package client

import (
	"context"
	"net/http"
	"net/url"
)

// CreateUser registers a backend account for a staff member.
func (c *Client) CreateUser(ctx context.Context, user AuthUser) (*User, error) {
	var out User
	if err := c.do(ctx, requestParams{
		method: http.MethodPost,
		path:   "/users",
		body:   user,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterStudent registers a new student and returns the created record.
func (c *Client) RegisterStudent(ctx context.Context, req CreateStudentRequest) (*Student, error) {
	var out Student
	if err := c.do(ctx, requestParams{
		method: http.MethodPost,
		path:   "/students",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Students lists students, optionally filtered.
func (c *Client) Students(ctx context.Context, query *StudentsListQuery) ([]StudentListItem, error) {
	var out []StudentListItem
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/students",
		query:  query.values(),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Student fetches the full record of one student.
func (c *Client) Student(ctx context.Context, id string) (*Student, error) {
	var out Student
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/students/" + url.PathEscape(id),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudent applies partial updates to a student record.
func (c *Client) UpdateStudent(ctx context.Context, id string, updates UpdateStudentRequest) (*Student, error) {
	var out Student
	if err := c.do(ctx, requestParams{
		method: http.MethodPut,
		path:   "/students/" + url.PathEscape(id),
		body:   updates,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStudent removes a student record.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.do(ctx, requestParams{
		method: http.MethodDelete,
		path:   "/students/" + url.PathEscape(id),
	}, nil)
}
