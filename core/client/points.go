package client

import (
	"context"
	"net/http"
	"net/url"
)

// AwardPoints awards daily points to a student, marking which categories
// applied on the given date. Returns the updated student record.
func (c *Client) AwardPoints(ctx context.Context, studentID string, req AwardPointsRequest) (*Student, error) {
	var out Student
	if err := c.do(ctx, requestParams{
		method: http.MethodPost,
		path:   "/students/" + url.PathEscape(studentID) + "/points",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustPoints applies a signed manual correction with a reason, for staff
// fixing mistaken awards. Returns the updated student record.
func (c *Client) AdjustPoints(ctx context.Context, studentID string, req PointAdjustmentRequest) (*Student, error) {
	var out Student
	if err := c.do(ctx, requestParams{
		method: http.MethodPatch,
		path:   "/students/" + url.PathEscape(studentID) + "/points/adjust",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
