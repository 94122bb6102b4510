package fed

import (
	"fmt"

	"sibr/fed/pkg/eventually"
)

// NotImplementedError is returned for event types the parser does not handle
// yet.
type NotImplementedError struct {
	EventType eventually.EventType
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("parsing event type %d is not implemented", e.EventType)
}

// MissingMetadataError is returned when an event lacks a metadata field its
// type requires.
type MissingMetadataError struct {
	EventType eventually.EventType
	Field     string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("expected metadata field %q for event type %d", e.Field, e.EventType)
}

// MissingTagsError is returned when an event does not carry exactly the
// expected number of player, team, or game tags.
type MissingTagsError struct {
	EventType eventually.EventType
	TagType   string
}

func (e *MissingTagsError) Error() string {
	return fmt.Sprintf("expected exactly one %s tag for event type %d", e.TagType, e.EventType)
}

// UnexpectedDescriptionError is returned when a fixed-text event carries a
// different description.
type UnexpectedDescriptionError struct {
	EventType   eventually.EventType
	Description string
	Expected    string
}

func (e *UnexpectedDescriptionError) Error() string {
	return fmt.Sprintf("expected description %q for event type %d, got %q",
		e.Expected, e.EventType, e.Description)
}

// DescriptionParseError is returned when an event description does not match
// its type's grammar.
type DescriptionParseError struct {
	EventType eventually.EventType
	Err       error
}

func (e *DescriptionParseError) Error() string {
	return fmt.Sprintf("failed to parse description of event type %d: %v", e.EventType, e.Err)
}

func (e *DescriptionParseError) Unwrap() error {
	return e.Err
}

// UnknownWeatherError is returned when a game start reports a weather id the
// schema does not know.
type UnknownWeatherError struct {
	Weather int64
}

func (e *UnknownWeatherError) Error() string {
	return fmt.Sprintf("unknown weather id %d", e.Weather)
}

// UnknownBeingError is returned when a being speech reports an unknown being.
type UnknownBeingError struct {
	Being int64
}

func (e *UnknownBeingError) Error() string {
	return fmt.Sprintf("unknown being id %d", e.Being)
}

// UnknownTeamError is returned when an event names a team that is not on the
// known-teams list. Team names are validated because the grammar cannot
// otherwise tell where a name ends.
type UnknownTeamError struct {
	Name string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team name %q", e.Name)
}
