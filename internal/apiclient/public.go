package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// PublicClient covers the guest-facing RSVP flow. No call carries
// credentials.
type PublicClient struct {
	c *client
}

func NewPublicClient(cfg Config) *PublicClient {
	return &PublicClient{c: newClient(cfg)}
}

// SearchAttendees looks up invitations by free-text name. The backend has
// shipped three shapes for this endpoint over time ({data:{attendees:[..]}},
// {data:[..]} and a bare array); all three normalize to a flat slice. An
// unrecognized shape yields an empty slice, not an error.
func (p *PublicClient) SearchAttendees(ctx context.Context, name string) ([]Attendee, error) {
	endpoint := "/rsvp/search?name=" + url.QueryEscape(name)
	raw, err := p.c.doJSON(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		var inner struct {
			Attendees []Attendee `json:"attendees"`
		}
		if err := json.Unmarshal(envelope.Data, &inner); err == nil && inner.Attendees != nil {
			return inner.Attendees, nil
		}
		var list []Attendee
		if err := json.Unmarshal(envelope.Data, &list); err == nil {
			return list, nil
		}
	}
	var list []Attendee
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list, nil
	}

	p.c.log.Warn().Str("endpoint", endpoint).Msg("unexpected search response shape")
	return []Attendee{}, nil
}

// SubmitRSVP records one attendee's decision. Pass an empty dietary value
// to leave it out of the request body.
func (p *PublicClient) SubmitRSVP(ctx context.Context, id string, status RSVPStatus, dietary DietaryRequirement) error {
	body := rsvpRequest{RSVPStatus: status, DietaryRequirements: dietary}
	_, err := p.c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/rsvp/%s/respond", id), body, "")
	return err
}

// SubmitGroupRSVP records decisions for several members of one group. The
// caller drops members still on "pending" before calling.
func (p *PublicClient) SubmitGroupRSVP(ctx context.Context, groupID string, responses []GroupRSVPResponse) error {
	body := GroupRSVPRequest{Responses: responses}
	_, err := p.c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/rsvp/group/%s/respond", groupID), body, "")
	return err
}

// GetGroup fetches one group with its members for the group RSVP flow.
func (p *PublicClient) GetGroup(ctx context.Context, groupID string) (*Group, error) {
	endpoint := fmt.Sprintf("/groups/%s", groupID)
	raw, err := p.c.doJSON(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}
	var group Group
	if err := p.c.decode(http.MethodGet, endpoint, unwrapData(raw), &group); err != nil {
		return nil, err
	}
	return &group, nil
}
