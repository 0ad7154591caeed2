// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package calendar implements the Zoom Rooms calendar bridge client.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/httpclient"
)

// eventPayload is the body of a calendar entry upsert
type eventPayload struct {
	Status  string `json:"status"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Client talks to the calendar bridge with one settings snapshot
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
}

// Ensure Client implements the CalendarClient interface
var _ port.CalendarClient = (*Client)(nil)

// NewClient creates a calendar bridge client. base is the transport below
// the bearer token and tracing layers; nil means http.DefaultTransport.
func NewClient(settings model.Settings, base http.RoundTripper) (*Client, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		base = http.DefaultTransport
	}

	tokenTransport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token, TokenType: "Bearer"}),
		Base:   base,
	}

	httpClient := httpclient.NewClient(httpclient.Config{
		Timeout:    settings.RequestTimeout(),
		MaxRetries: 0, // attempts are bounded by the drain worker
		Transport:  otelhttp.NewTransport(tokenTransport),
	})
	httpClient.AddRoundTripper(&requestIDRoundTripper{})

	return &Client{
		baseURL:    strings.TrimRight(settings.ServiceURL, "/"),
		httpClient: httpClient,
	}, nil
}

// PutEntry creates or replaces a calendar entry on the device
func (c *Client) PutEntry(ctx context.Context, deviceID, entryID string, data model.EntryData) error {
	body, err := json.Marshal(newEventPayload(data))
	if err != nil {
		return fmt.Errorf("failed to encode calendar entry: %w", err)
	}

	endpoint := c.endpoint(deviceID, entryID)
	slog.DebugContext(ctx, "sending calendar entry", "method", http.MethodPut, "url", endpoint)

	if _, err := c.httpClient.Request(ctx, http.MethodPut, endpoint, body, nil); err != nil {
		return MapHTTPError(ctx, err)
	}
	return nil
}

// DeleteEntry removes a calendar entry from the device
func (c *Client) DeleteEntry(ctx context.Context, deviceID, entryID string) error {
	endpoint := c.endpoint(deviceID, entryID)
	slog.DebugContext(ctx, "deleting calendar entry", "method", http.MethodDelete, "url", endpoint)

	if _, err := c.httpClient.Request(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return MapHTTPError(ctx, err)
	}
	return nil
}

func (c *Client) endpoint(deviceID, entryID string) string {
	return c.baseURL + fmt.Sprintf(constants.EventPathFormat,
		url.PathEscape(deviceID),
		url.PathEscape(model.ExternalEntryID(entryID)),
	)
}

func newEventPayload(data model.EntryData) eventPayload {
	return eventPayload{
		Status:  constants.CalendarStatusBusy,
		Start:   data.Start,
		End:     data.End,
		Subject: stripControlChars(data.Title),
		Body:    fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(data.URL), html.EscapeString(data.URL)),
	}
}

// stripControlChars drops C0/C1 control characters the bridge rejects
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// ClientFactory builds a Client per settings snapshot
type ClientFactory struct {
	base http.RoundTripper
}

// Ensure ClientFactory implements the CalendarClientFactory interface
var _ port.CalendarClientFactory = (*ClientFactory)(nil)

// NewClientFactory creates a factory; base may be nil
func NewClientFactory(base http.RoundTripper) *ClientFactory {
	return &ClientFactory{base: base}
}

// NewCalendarClient implements port.CalendarClientFactory
func (f *ClientFactory) NewCalendarClient(settings model.Settings) (port.CalendarClient, error) {
	return NewClient(settings, f.base)
}
