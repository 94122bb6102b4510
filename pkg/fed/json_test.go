package fed

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"sibr/fed/pkg/eventually"
)

func TestEventMarshalFlattens(t *testing.T) {
	event := Event{
		ID:         uuid.MustParse("6d2dc540-9db9-4eb8-bd57-b25ea69a7c2b"),
		Created:    time.Date(2021, 4, 12, 16, 0, 5, 0, time.UTC),
		Sim:        "thisidisstaticyo",
		Tournament: -1,
		Season:     14,
		Day:        27,
		Phase:      6,
		Nuts:       0,
		Data: LetsGo{
			GameEvent: GameEvent{
				GameID:   testGameID,
				HomeTeam: testHomeID,
				AwayTeam: testAwayID,
				Play:     0,
			},
			Weather: eventually.WeatherSolarEclipse,
		},
	}

	encoded, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Common fields and payload fields share one flat object.
	for _, key := range []string{"id", "created", "sim", "season", "day", "type", "gameId", "homeTeam", "awayTeam", "play", "weather"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing key %q in %s", key, encoded)
		}
	}
	if string(fields["type"]) != `"LetsGo"` {
		t.Errorf("got type %s, want \"LetsGo\"", fields["type"])
	}
	if string(fields["weather"]) != "7" {
		t.Errorf("got weather %s, want 7", fields["weather"])
	}

	// No nested payload object.
	if strings.Contains(string(encoded), `"data"`) {
		t.Errorf("payload not flattened: %s", encoded)
	}
}

func TestEventMarshalWithoutPayloadFails(t *testing.T) {
	event := Event{ID: uuid.MustParse("6d2dc540-9db9-4eb8-bd57-b25ea69a7c2b")}
	if _, err := json.Marshal(event); err == nil {
		t.Fatal("expected error for event without payload")
	}
}

func TestEventRoundTrip(t *testing.T) {
	item := "The Dial Tone"
	payloads := []EventData{
		BeingSpeech{Being: BeingTheCoin, Message: "SO MANY HAPPY RETURNS"},
		PlayBall{GameEvent: GameEvent{GameID: testGameID, HomeTeam: testHomeID, AwayTeam: testAwayID, Play: 1}},
		BatterUp{
			GameEvent:    GameEvent{GameID: testGameID, HomeTeam: testHomeID, AwayTeam: testAwayID, Play: 4},
			BatterName:   "Jessica Telephone",
			TeamName:     "Pies",
			WieldingItem: &item,
		},
		Hit{
			GameEvent:  GameEvent{GameID: testGameID, HomeTeam: testHomeID, AwayTeam: testAwayID, Play: 11},
			BatterName: "Aldon Cashmoney",
			BatterID:   testPlayer,
			NumBases:   2,
		},
		GameEnd{
			GameEvent:        GameEvent{GameID: testGameID, HomeTeam: testHomeID, AwayTeam: testAwayID, Play: 241},
			WinnerID:         testAwayID,
			WinningTeamName:  "Tigers",
			WinningTeamScore: 5.1,
			LosingTeamName:   "Lovers",
			LosingTeamScore:  -2,
		},
	}

	for _, payload := range payloads {
		t.Run(payload.EventType(), func(t *testing.T) {
			original := Event{
				ID:         uuid.MustParse("38a04fcc-2f7d-4432-a145-02b2d23e6f5c"),
				Created:    time.Date(2021, 4, 12, 16, 0, 5, 0, time.UTC),
				Sim:        "thisidisstaticyo",
				Tournament: -1,
				Season:     14,
				Day:        27,
				Data:       payload,
			}

			encoded, err := json.Marshal(original)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var decoded Event
			if err := json.Unmarshal(encoded, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if decoded.ID != original.ID || !decoded.Created.Equal(original.Created) {
				t.Errorf("envelope mismatch: %+v", decoded)
			}
			if decoded.Data.EventType() != payload.EventType() {
				t.Fatalf("got type %q, want %q", decoded.Data.EventType(), payload.EventType())
			}

			reencoded, err := json.Marshal(decoded)
			if err != nil {
				t.Fatalf("re-marshal: %v", err)
			}

			var a, b map[string]json.RawMessage
			if err := json.Unmarshal(encoded, &a); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal(reencoded, &b); err != nil {
				t.Fatal(err)
			}
			if len(a) != len(b) {
				t.Fatalf("field count changed: %s vs %s", encoded, reencoded)
			}
			for key, value := range a {
				if string(b[key]) != string(value) {
					t.Errorf("field %q changed: %s vs %s", key, value, b[key])
				}
			}
		})
	}
}

func TestEventUnmarshalErrors(t *testing.T) {
	t.Run("missing type", func(t *testing.T) {
		var event Event
		err := json.Unmarshal([]byte(`{"id":"38a04fcc-2f7d-4432-a145-02b2d23e6f5c"}`), &event)
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		var event Event
		err := json.Unmarshal([]byte(`{"id":"38a04fcc-2f7d-4432-a145-02b2d23e6f5c","type":"Incineration"}`), &event)
		if err == nil || !strings.Contains(err.Error(), "unknown fed event type") {
			t.Fatalf("got %v", err)
		}
	})
}
