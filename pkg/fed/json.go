package fed

import (
	"encoding/json"
	"fmt"
)

// payloadTypes maps the "type" discriminator to a payload decoder. Every
// EventData implementation must be registered here for unmarshaling.
var payloadTypes = map[string]func(data []byte) (EventData, error){
	"BeingSpeech":       decodePayload[BeingSpeech],
	"LetsGo":            decodePayload[LetsGo],
	"PlayBall":          decodePayload[PlayBall],
	"HalfInningStart":   decodePayload[HalfInningStart],
	"BatterUp":          decodePayload[BatterUp],
	"Ball":              decodePayload[Ball],
	"FoulBall":          decodePayload[FoulBall],
	"StrikeSwinging":    decodePayload[StrikeSwinging],
	"StrikeLooking":     decodePayload[StrikeLooking],
	"StrikeFlinching":   decodePayload[StrikeFlinching],
	"Flyout":            decodePayload[Flyout],
	"GroundOut":         decodePayload[GroundOut],
	"Hit":               decodePayload[Hit],
	"HomeRun":           decodePayload[HomeRun],
	"StrikeoutSwinging": decodePayload[StrikeoutSwinging],
	"StrikeoutLooking":  decodePayload[StrikeoutLooking],
	"Walk":              decodePayload[Walk],
	"StolenBase":        decodePayload[StolenBase],
	"CaughtStealing":    decodePayload[CaughtStealing],
	"InningEnd":         decodePayload[InningEnd],
	"GameEnd":           decodePayload[GameEnd],
}

func decodePayload[T EventData](data []byte) (EventData, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// envelope gives access to the default (un)marshaling of Event's common
// fields without recursing into the custom JSON methods.
type envelope Event

// MarshalJSON flattens the payload's fields and a "type" discriminator into
// the event's own JSON object.
func (e Event) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(envelope(e))
	if err != nil {
		return nil, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}

	if e.Data == nil {
		return nil, fmt.Errorf("fed event %s has no payload", e.ID)
	}

	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	var payloadFields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &payloadFields); err != nil {
		return nil, err
	}
	for key, value := range payloadFields {
		merged[key] = value
	}

	tag, err := json.Marshal(e.Data.EventType())
	if err != nil {
		return nil, err
	}
	merged["type"] = tag

	return json.Marshal(merged)
}

// UnmarshalJSON reads the "type" discriminator and decodes the payload
// alongside the common fields.
func (e *Event) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*e = Event(env)

	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag.Type == "" {
		return fmt.Errorf("fed event %s has no type discriminator", e.ID)
	}

	decode, ok := payloadTypes[tag.Type]
	if !ok {
		return fmt.Errorf("unknown fed event type %q", tag.Type)
	}

	payload, err := decode(data)
	if err != nil {
		return err
	}
	e.Data = payload
	return nil
}
