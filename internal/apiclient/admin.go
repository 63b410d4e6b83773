package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// TokenSource hands out the current bearer token. It is asked again on
// every call; freshness and caching belong to the identity provider side.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a token that is already in hand, e.g.
// one forwarded from an incoming request.
type StaticToken string

func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

// AdminClient covers the token-bearing admin plane. None of its operations
// retry; every failure surfaces as a typed error.
type AdminClient struct {
	c      *client
	tokens TokenSource
}

func NewAdminClient(cfg Config, tokens TokenSource) *AdminClient {
	return &AdminClient{c: newClient(cfg), tokens: tokens}
}

// token fetches a fresh bearer token. A failing provider downgrades the
// call to unauthenticated so the backend's own 401 does the talking.
func (a *AdminClient) token(ctx context.Context) string {
	tok, err := a.tokens.Token(ctx)
	if err != nil {
		a.c.log.Warn().Err(err).Msg("token source failed, sending request unauthenticated")
		return ""
	}
	return tok
}

// GetAttendees returns one page of the attendee listing. The backend
// sometimes wraps the page in {data:...} and sometimes sends it bare.
func (a *AdminClient) GetAttendees(ctx context.Context, page, limit int) (*AttendeesPage, error) {
	endpoint := fmt.Sprintf("/attendees?page=%d&limit=%d", page, limit)
	raw, err := a.c.doJSON(ctx, http.MethodGet, endpoint, nil, a.token(ctx))
	if err != nil {
		return nil, err
	}
	var result AttendeesPage
	if err := a.c.decode(http.MethodGet, endpoint, unwrapData(raw), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AdminClient) CreateAttendee(ctx context.Context, req CreateAttendeeRequest) (*Attendee, error) {
	return a.attendeeCall(ctx, http.MethodPost, "/attendees", req)
}

func (a *AdminClient) GetAttendee(ctx context.Context, id string) (*Attendee, error) {
	return a.attendeeCall(ctx, http.MethodGet, "/attendees/"+id, nil)
}

func (a *AdminClient) UpdateAttendee(ctx context.Context, id string, req UpdateAttendeeRequest) (*Attendee, error) {
	return a.attendeeCall(ctx, http.MethodPut, "/attendees/"+id, req)
}

func (a *AdminClient) DeleteAttendee(ctx context.Context, id string) error {
	_, err := a.c.doJSON(ctx, http.MethodDelete, "/attendees/"+id, nil, a.token(ctx))
	return err
}

func (a *AdminClient) attendeeCall(ctx context.Context, method, endpoint string, body any) (*Attendee, error) {
	raw, err := a.c.doJSON(ctx, method, endpoint, body, a.token(ctx))
	if err != nil {
		return nil, err
	}
	var attendee Attendee
	if err := a.c.decode(method, endpoint, unwrapData(raw), &attendee); err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (a *AdminClient) CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	return a.groupCall(ctx, http.MethodPost, "/groups", req)
}

func (a *AdminClient) GetGroup(ctx context.Context, id string) (*Group, error) {
	return a.groupCall(ctx, http.MethodGet, "/groups/"+id, nil)
}

func (a *AdminClient) DeleteGroup(ctx context.Context, id string) error {
	_, err := a.c.doJSON(ctx, http.MethodDelete, "/groups/"+id, nil, a.token(ctx))
	return err
}

func (a *AdminClient) groupCall(ctx context.Context, method, endpoint string, body any) (*Group, error) {
	raw, err := a.c.doJSON(ctx, method, endpoint, body, a.token(ctx))
	if err != nil {
		return nil, err
	}
	var group Group
	if err := a.c.decode(method, endpoint, unwrapData(raw), &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetAllGroups lists every group. Tolerates both a bare array and a
// {data:{groups:[...]}} wrapping.
func (a *AdminClient) GetAllGroups(ctx context.Context) ([]Group, error) {
	raw, err := a.c.doJSON(ctx, http.MethodGet, "/groups", nil, a.token(ctx))
	if err != nil {
		return nil, err
	}
	payload := unwrapData(raw)
	var groups []Group
	if err := json.Unmarshal(payload, &groups); err == nil {
		return groups, nil
	}
	var wrapped struct {
		Groups []Group `json:"groups"`
	}
	if err := a.c.decode(http.MethodGet, "/groups", payload, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Groups, nil
}

// UpdateGroupMembers adds or removes a set of attendees in one PUT. The
// backend enforces that an attendee belongs to at most one group; its
// rejection comes back with a message IsMemberConflict recognizes.
func (a *AdminClient) UpdateGroupMembers(ctx context.Context, groupID string, action MemberAction, attendeeIDs []string) error {
	body := updateGroupMembersRequest{Action: action, AttendeeIDs: attendeeIDs}
	_, err := a.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/groups/%s/members", groupID), body, a.token(ctx))
	return err
}

// BulkUploadAttendees submits one CSV as multipart form data under the
// field name "file". The response nests one envelope deeper than the rest
// of the API: {data:{result:...}}, with {result:...} and a bare report as
// fallbacks.
func (a *AdminClient) BulkUploadAttendees(ctx context.Context, filename string, file io.Reader) (*BulkUploadResult, error) {
	const endpoint = "/attendees/bulk-upload"

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("build upload form: %v", err), Status: 0}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("read upload file: %v", err), Status: 0}
	}
	if err := form.Close(); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("build upload form: %v", err), Status: 0}
	}

	raw, err := a.c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    endpoint,
		body:        &buf,
		contentType: form.FormDataContentType(),
		token:       a.token(ctx),
	})
	if err != nil {
		return nil, err
	}

	var result BulkUploadResult
	if err := a.c.decode(http.MethodPost, endpoint, unwrapResult(raw), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// unwrapResult handles the doubly-nested bulk upload envelope.
func unwrapResult(raw json.RawMessage) json.RawMessage {
	var outer struct {
		Data   json.RawMessage `json:"data"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return raw
	}
	if len(outer.Data) > 0 {
		var inner struct {
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(outer.Data, &inner); err == nil && len(inner.Result) > 0 {
			return inner.Result
		}
		return outer.Data
	}
	if len(outer.Result) > 0 {
		return outer.Result
	}
	return raw
}
