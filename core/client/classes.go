package client

import (
	"context"
	"net/http"
	"net/url"
)

// Classes lists all class groups.
func (c *Client) Classes(ctx context.Context) ([]ClassGroup, error) {
	var out []ClassGroup
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/classes",
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassTeachers lists the teachers assigned to one class.
func (c *Client) ClassTeachers(ctx context.Context, classID AgeGroup) ([]Teacher, error) {
	var out []Teacher
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/classes/" + url.PathEscape(string(classID)) + "/teachers",
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
