package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestSearchAttendeesNormalizesEveryShape(t *testing.T) {
	attendee := `{"id":"a1","firstName":"Sam","lastName":"Smith","rsvpStatus":"pending"}`

	tests := []struct {
		name string
		body string
		want int
	}{
		{"nested attendees envelope", `{"success":true,"data":{"attendees":[` + attendee + `]}}`, 1},
		{"data array envelope", `{"success":true,"data":[` + attendee + `]}`, 1},
		{"bare array", `[` + attendee + `]`, 1},
		{"empty bare array", `[]`, 0},
		{"unrecognized shape", `{"weird":true}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorded
			srv := testServer(t, 200, tt.body, &rec)
			public := NewPublicClient(Config{BaseURL: srv.URL})

			got, err := public.SearchAttendees(context.Background(), "Sam Smith")
			if err != nil {
				t.Fatalf("SearchAttendees: %v", err)
			}
			if got == nil {
				t.Fatal("result must never be nil")
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if tt.want == 1 && got[0].ID != "a1" {
				t.Errorf("attendee id = %q, want a1", got[0].ID)
			}

			if rec.query != "name=Sam+Smith" {
				t.Errorf("query = %q, want name=Sam+Smith", rec.query)
			}
			if _, present := rec.header["Authorization"]; present {
				t.Error("public search must not carry an Authorization header")
			}
		})
	}
}

func TestSubmitRSVP(t *testing.T) {
	var rec recorded
	srv := testServer(t, 200, `{}`, &rec)
	public := NewPublicClient(Config{BaseURL: srv.URL})

	if err := public.SubmitRSVP(context.Background(), "id1", RSVPAccepted, ""); err != nil {
		t.Fatalf("SubmitRSVP: %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/rsvp/id1/respond" {
		t.Errorf("request = %s %s, want POST /rsvp/id1/respond", rec.method, rec.path)
	}
	if _, present := rec.header["Authorization"]; present {
		t.Error("public RSVP must not carry an Authorization header")
	}
	if string(rec.body) != `{"rsvpStatus":"accepted"}` {
		t.Errorf("body = %s, want {\"rsvpStatus\":\"accepted\"}", rec.body)
	}
}

func TestSubmitRSVPWithDietary(t *testing.T) {
	var rec recorded
	srv := testServer(t, 200, `{}`, &rec)
	public := NewPublicClient(Config{BaseURL: srv.URL})

	if err := public.SubmitRSVP(context.Background(), "id1", RSVPDeclined, DietaryVegan); err != nil {
		t.Fatalf("SubmitRSVP: %v", err)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["rsvpStatus"] != "declined" || body["dietaryRequirements"] != "Vegan" {
		t.Errorf("body = %v", body)
	}
}

func TestSubmitGroupRSVP(t *testing.T) {
	var rec recorded
	srv := testServer(t, 200, `{}`, &rec)
	public := NewPublicClient(Config{BaseURL: srv.URL})

	responses := []GroupRSVPResponse{
		{AttendeeID: "a1", RSVPStatus: RSVPAccepted, DietaryRequirements: DietaryVegetarian},
		{AttendeeID: "a2", RSVPStatus: RSVPDeclined},
	}
	if err := public.SubmitGroupRSVP(context.Background(), "g7", responses); err != nil {
		t.Fatalf("SubmitGroupRSVP: %v", err)
	}

	if rec.method != http.MethodPost || rec.path != "/rsvp/group/g7/respond" {
		t.Errorf("request = %s %s, want POST /rsvp/group/g7/respond", rec.method, rec.path)
	}

	var body GroupRSVPRequest
	if err := json.Unmarshal(rec.body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(body.Responses) != 2 || body.Responses[0].AttendeeID != "a1" {
		t.Errorf("responses = %+v", body.Responses)
	}
}

func TestPublicGetGroupUnwrapsEnvelope(t *testing.T) {
	group := `{"id":"g1","name":"Smith family","members":[{"id":"a1","firstName":"Sam","lastName":"Smith","rsvpStatus":"pending"}]}`

	for _, tt := range []struct {
		name string
		body string
	}{
		{"enveloped", `{"success":true,"data":` + group + `}`},
		{"bare", group},
	} {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(t, 200, tt.body, nil)
			public := NewPublicClient(Config{BaseURL: srv.URL})

			got, err := public.GetGroup(context.Background(), "g1")
			if err != nil {
				t.Fatalf("GetGroup: %v", err)
			}
			if got.ID != "g1" || got.Name != "Smith family" || len(got.Members) != 1 {
				t.Errorf("group = %+v", got)
			}
		})
	}
}
