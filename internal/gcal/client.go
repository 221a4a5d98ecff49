// Package gcal is a minimal Google Calendar v3 client covering exactly the
// surface the booking flow needs: freebusy, event insert/list/patch/delete.
// Authentication is a service-account JWT exchanged for a scoped token on
// every Connect call; sessions are not reused across requests.
package gcal

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"terra/internal/entities"
)

const calendarScope = "https://www.googleapis.com/auth/calendar"

type Config struct {
	ClientEmail string
	PrivateKey  string // PEM-encoded service account key
	BaseURL     string // override for tests; defaults to the Google endpoint
	TokenURL    string
}

type Client struct {
	clientEmail string
	key         *rsa.PrivateKey
	baseURL     string
	tokenURL    string
	hc          *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("gcal: parse private key: %w", err)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/calendar/v3"
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = "https://oauth2.googleapis.com/token"
	}
	return &Client{
		clientEmail: cfg.ClientEmail,
		key:         key,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		tokenURL:    tokenURL,
		hc:          &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Connect signs a service-account assertion and exchanges it for a
// short-lived access token, returning a session bound to that token.
func (c *Client) Connect(ctx context.Context) (*Session, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   c.clientEmail,
		"scope": calendarScope,
		"aud":   c.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(c.key)
	if err != nil {
		return nil, fmt.Errorf("gcal: sign assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("gcal: token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gcal: token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gcal: token exchange: status %d: %s", resp.StatusCode, body)
	}

	var reply struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("gcal: token decode: %w", err)
	}
	if reply.AccessToken == "" {
		return nil, fmt.Errorf("gcal: token exchange returned empty access_token")
	}

	return &Session{token: reply.AccessToken, baseURL: c.baseURL, hc: c.hc}, nil
}

// Session performs calendar calls with one short-lived token.
type Session struct {
	token   string
	baseURL string
	hc      *http.Client
}

type eventResource struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	Start       *eventDay `json:"start,omitempty"`
	End         *eventDay `json:"end,omitempty"`
	ColorID     string    `json:"colorId,omitempty"`
}

type eventDay struct {
	Date string `json:"date"`
}

func toEntity(ev eventResource) entities.CalendarEvent {
	out := entities.CalendarEvent{
		ID:          ev.ID,
		Summary:     ev.Summary,
		Description: ev.Description,
		ColorID:     ev.ColorID,
	}
	if ev.Start != nil {
		out.StartDate = ev.Start.Date
	}
	if ev.End != nil {
		out.EndDate = ev.End.Date
	}
	return out
}

// FreeBusy queries busy intervals for each calendar id over [timeMin, timeMax).
func (s *Session) FreeBusy(ctx context.Context, timeMin, timeMax time.Time, calendarIDs []string) (map[string][]entities.BusyInterval, error) {
	items := make([]map[string]string, 0, len(calendarIDs))
	for _, id := range calendarIDs {
		items = append(items, map[string]string{"id": id})
	}
	body := map[string]any{
		"timeMin": timeMin.UTC().Format(time.RFC3339),
		"timeMax": timeMax.UTC().Format(time.RFC3339),
		"items":   items,
	}

	var reply struct {
		Calendars map[string]struct {
			Busy []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err := s.do(ctx, http.MethodPost, "/freeBusy", nil, body, &reply); err != nil {
		return nil, err
	}

	out := make(map[string][]entities.BusyInterval, len(reply.Calendars))
	for id, cal := range reply.Calendars {
		intervals := make([]entities.BusyInterval, 0, len(cal.Busy))
		for _, b := range cal.Busy {
			intervals = append(intervals, entities.BusyInterval{Start: b.Start, End: b.End})
		}
		out[id] = intervals
	}
	return out, nil
}

// InsertEvent creates an all-day event and returns it with the assigned id.
func (s *Session) InsertEvent(ctx context.Context, calendarID string, ev entities.CalendarEvent) (entities.CalendarEvent, error) {
	body := eventResource{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &eventDay{Date: ev.StartDate},
		End:         &eventDay{Date: ev.EndDate},
		ColorID:     ev.ColorID,
	}
	var reply eventResource
	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(calendarID))
	if err := s.do(ctx, http.MethodPost, path, nil, body, &reply); err != nil {
		return entities.CalendarEvent{}, err
	}
	return toEntity(reply), nil
}

// ListEvents returns events in the window whose text matches query.
func (s *Session) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]entities.CalendarEvent, error) {
	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(calendarID))
	var out []entities.CalendarEvent
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("timeMin", timeMin.UTC().Format(time.RFC3339))
		q.Set("timeMax", timeMax.UTC().Format(time.RFC3339))
		q.Set("singleEvents", "true")
		q.Set("maxResults", "250")
		if query != "" {
			q.Set("q", query)
		}
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var reply struct {
			Items         []eventResource `json:"items"`
			NextPageToken string          `json:"nextPageToken"`
		}
		if err := s.do(ctx, http.MethodGet, path, q, nil, &reply); err != nil {
			return nil, err
		}
		for _, ev := range reply.Items {
			out = append(out, toEntity(ev))
		}
		if reply.NextPageToken == "" {
			return out, nil
		}
		pageToken = reply.NextPageToken
	}
}

// PatchEventDescription replaces a single event's description.
func (s *Session) PatchEventDescription(ctx context.Context, calendarID, eventID, description string) error {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	body := map[string]string{"description": description}
	return s.do(ctx, http.MethodPatch, path, nil, body, nil)
}

// DeleteEvent removes an event by id.
func (s *Session) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	return s.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gcal: marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("gcal: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return fmt.Errorf("gcal: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gcal: %s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gcal: decode response: %w", err)
	}
	return nil
}
