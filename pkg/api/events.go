package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"sibr/fed/pkg/api/types"
	"sibr/fed/pkg/eventually"
	"sibr/fed/pkg/fed"
)

// requiredParameters are the query parameters the handler forces. Parsing
// needs fully expanded event groups and only group parents; a client asking
// for anything else would get events the parser cannot interpret.
var requiredParameters = []struct {
	name     string
	expected string
}{
	{"expand_children", "true"},
	{"expand_siblings", "true"},
	{"metadata.parent", "notexists"},
}

// EventsHandler serves GET /v1/events.
type EventsHandler struct {
	client *eventually.Client
	logger *slog.Logger
}

// NewEventsHandler creates the events handler backed by the given upstream
// client.
func NewEventsHandler(client *eventually.Client) *EventsHandler {
	return &EventsHandler{
		client: client,
		logger: slog.Default().With("component", "api"),
	}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()

	var invalid []types.InvalidParameter
	for _, p := range requiredParameters {
		if bad := validateParameter(params, p.name, p.expected); bad != nil {
			invalid = append(invalid, *bad)
		}
	}
	if len(invalid) > 0 {
		types.WriteJSON(w, http.StatusBadRequest, types.NewInvalidParameters(invalid))
		return
	}

	body, err := h.client.FetchRaw(r.Context(), params)
	if err != nil {
		h.serverError(w, r, types.ErrHTTPFailed, err)
		return
	}

	rawEvents, err := eventually.EventsFromJSON(body)
	if err != nil {
		h.serverError(w, r, types.ErrJSONParseFailed, err)
		return
	}

	parsed := make([]*fed.Event, 0, len(rawEvents))
	for i := range rawEvents {
		event, err := fed.ParseEvent(&rawEvents[i])
		if err != nil {
			h.serverError(w, r, types.ErrFeedParseFailed, err)
			return
		}
		parsed = append(parsed, event)
	}

	types.WriteJSON(w, http.StatusOK, parsed)
}

// validateParameter checks one required query parameter. A missing parameter
// is filled in with the expected value so the upstream request carries it; a
// present parameter must match exactly.
func validateParameter(params url.Values, name, expected string) *types.InvalidParameter {
	if !params.Has(name) {
		params.Set(name, expected)
		return nil
	}
	if value := params.Get(name); value != expected {
		return &types.InvalidParameter{
			Name: name,
			Reason: fmt.Sprintf(
				"Fed requires %s=%s, but received %s=%s. Either pass %s=%s or remove the %s attribute.",
				name, expected, name, value, name, expected, name,
			),
		}
	}
	return nil
}

func (h *EventsHandler) serverError(w http.ResponseWriter, r *http.Request, code string, err error) {
	h.logger.ErrorContext(r.Context(), "events request failed",
		"code", code,
		"query", r.URL.RawQuery,
		"error", err,
	)
	resp := types.NewServerError(code, err.Error())
	types.WriteJSON(w, resp.HTTPStatusCode(), resp)
}
