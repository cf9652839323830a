package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/domain/campaign"
	"github.com/pratik-mahalle/bizdesk/internal/domain/post"
)

func TestCampaignHandler_Flow(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.campaign.List(rr, newRequest(http.MethodGet, "/api/v1/campaigns", nil, f.user.ID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rr.Code)
	}
	var seeded []campaign.Campaign
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &seeded); err != nil {
		t.Fatalf("decode campaigns: %v", err)
	}
	if len(seeded) != 1 || seeded[0].Status != campaign.StatusActive {
		t.Fatalf("unexpected seeded campaigns: %+v", seeded)
	}

	rr = httptest.NewRecorder()
	f.campaign.Create(rr, newRequest(http.MethodPost, "/api/v1/campaigns", map[string]interface{}{
		"name": "Newsletter", "channel": "email", "budget": "120.50",
	}, f.user.ID, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	var created campaign.Campaign
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &created); err != nil {
		t.Fatalf("decode campaign: %v", err)
	}
	if created.Status != campaign.StatusDraft {
		t.Errorf("status = %q, want draft", created.Status)
	}

	id := strconv.FormatInt(created.ID, 10)
	rr = httptest.NewRecorder()
	f.campaign.Get(rr, newRequest(http.MethodGet, "/api/v1/campaigns/"+id, nil, f.user.ID+1, idParams(id)))
	if rr.Code != http.StatusNotFound {
		t.Errorf("foreign get status = %d, want 404", rr.Code)
	}

	rr = httptest.NewRecorder()
	f.campaign.Delete(rr, newRequest(http.MethodDelete, "/api/v1/campaigns/"+id, nil, f.user.ID, idParams(id)))
	if rr.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rr.Code)
	}
}

func TestCampaignHandler_RejectsBadInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"missing name", map[string]interface{}{"channel": "email"}, http.StatusBadRequest},
		{"negative budget", map[string]interface{}{"name": "x", "budget": "-5"}, http.StatusBadRequest},
		{"unknown channel", map[string]interface{}{"name": "x", "channel": "radio"}, http.StatusBadRequest},
		{"bad date", map[string]interface{}{"name": "x", "start_date": "next week"}, http.StatusBadRequest},
		{"end before start", map[string]interface{}{"name": "x", "start_date": "2026-05-02", "end_date": "2026-05-01"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			f.campaign.Create(rr, newRequest(http.MethodPost, "/api/v1/campaigns", tt.body, f.user.ID, nil))
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestPostHandler_Flow(t *testing.T) {
	f := newFixture(t)

	rr := httptest.NewRecorder()
	f.posts.Create(rr, newRequest(http.MethodPost, "/api/v1/posts", dto.PostRequest{
		Title: "Case study", Platform: "linkedin",
	}, f.user.ID, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	f.posts.Create(rr, newRequest(http.MethodPost, "/api/v1/posts", dto.PostRequest{
		Title: "Orphan", CampaignID: 999,
	}, f.user.ID, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown campaign status = %d, want 400", rr.Code)
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 2},
		{"by campaign", "?campaign_id=1", 1},
		{"by platform", "?platform=linkedin", 1},
		{"by status", "?status=published", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			f.posts.List(rr, newRequest(http.MethodGet, "/api/v1/posts"+tt.query, nil, f.user.ID, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}
			var posts []post.Post
			if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &posts); err != nil {
				t.Fatalf("decode posts: %v", err)
			}
			if len(posts) != tt.want {
				t.Errorf("got %d posts, want %d", len(posts), tt.want)
			}
		})
	}

	rr = httptest.NewRecorder()
	f.posts.List(rr, newRequest(http.MethodGet, "/api/v1/posts?campaign_id=abc", nil, f.user.ID, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad campaign filter status = %d, want 400", rr.Code)
	}
}
