package eventually

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies an event in the feed UI.
type EventCategory int

const (
	CategoryRedacted  EventCategory = -1
	CategoryGame      EventCategory = 0
	CategoryChanges   EventCategory = 1
	CategorySpecial   EventCategory = 2
	CategoryOutcomes  EventCategory = 3
	CategoryNarrative EventCategory = 4
)

// Weather identifies the weather a game is played in.
type Weather int

const (
	WeatherVoid               Weather = 0
	WeatherSun2               Weather = 1
	WeatherOvercast           Weather = 2
	WeatherRainy              Weather = 3
	WeatherSandstorm          Weather = 4
	WeatherSnowy              Weather = 5
	WeatherAcidic             Weather = 6
	WeatherSolarEclipse       Weather = 7
	WeatherGlitter            Weather = 8
	WeatherBlooddrain         Weather = 9
	WeatherPeanuts            Weather = 10
	WeatherBirds              Weather = 11
	WeatherFeedback           Weather = 12
	WeatherReverb             Weather = 13
	WeatherBlackHole          Weather = 14
	WeatherCoffee             Weather = 15
	WeatherCoffee2            Weather = 16
	WeatherCoffee3s           Weather = 17
	WeatherFlooding           Weather = 18
	WeatherSalmon             Weather = 19
	WeatherPolarityPlus       Weather = 20
	WeatherPolarityMinus      Weather = 21
	WeatherSun90              Weather = 23
	WeatherSunPoint1          Weather = 24
	WeatherSumSun             Weather = 25
	WeatherSupernovaEclipse   Weather = 26
	WeatherBlackHoleBlackHole Weather = 27
	WeatherJazz               Weather = 28
	WeatherNight              Weather = 29
)

var weatherNames = map[Weather]string{
	WeatherVoid:               "Void",
	WeatherSun2:               "Sun 2",
	WeatherOvercast:           "Overcast",
	WeatherRainy:              "Rainy",
	WeatherSandstorm:          "Sandstorm",
	WeatherSnowy:              "Snowy",
	WeatherAcidic:             "Acidic",
	WeatherSolarEclipse:       "Solar Eclipse",
	WeatherGlitter:            "Glitter",
	WeatherBlooddrain:         "Blooddrain",
	WeatherPeanuts:            "Peanuts",
	WeatherBirds:              "Birds",
	WeatherFeedback:           "Feedback",
	WeatherReverb:             "Reverb",
	WeatherBlackHole:          "Black Hole",
	WeatherCoffee:             "Coffee",
	WeatherCoffee2:            "Coffee 2",
	WeatherCoffee3s:           "Coffee 3s",
	WeatherFlooding:           "Flooding",
	WeatherSalmon:             "Salmon",
	WeatherPolarityPlus:       "Polarity +",
	WeatherPolarityMinus:      "Polarity -",
	WeatherSun90:              "Sun .9",
	WeatherSunPoint1:          "Sun Point 1",
	WeatherSumSun:             "Sum Sun",
	WeatherSupernovaEclipse:   "Supernova Eclipse",
	WeatherBlackHoleBlackHole: "Black Hole (Black Hole)",
	WeatherJazz:               "Jazz",
	WeatherNight:              "Night",
}

// Known reports whether w is a weather the schema knows about.
func (w Weather) Known() bool {
	_, ok := weatherNames[w]
	return ok
}

func (w Weather) String() string {
	if name, ok := weatherNames[w]; ok {
		return name
	}
	return "Unknown"
}

// EventType is the numeric feed event type assigned by the game.
// The table is sparse; the values come from the feed itself.
type EventType int

const (
	TypeUndefined               EventType = -1
	TypeLetsGo                  EventType = 0
	TypePlayBall                EventType = 1
	TypeHalfInning              EventType = 2
	TypePitcherChange           EventType = 3
	TypeStolenBase              EventType = 4
	TypeWalk                    EventType = 5
	TypeStrikeout               EventType = 6
	TypeFlyOut                  EventType = 7
	TypeGroundOut               EventType = 8
	TypeHomeRun                 EventType = 9
	TypeHit                     EventType = 10
	TypeGameEnd                 EventType = 11
	TypeBatterUp                EventType = 12
	TypeStrike                  EventType = 13
	TypeBall                    EventType = 14
	TypeFoulBall                EventType = 15
	TypeRunsOverflowing         EventType = 20
	TypeHomeFieldAdvantage      EventType = 21
	TypeHitByPitch              EventType = 22
	TypeBatterSkipped           EventType = 23
	TypeParty                   EventType = 24
	TypeStrikeZapped            EventType = 25
	TypeWeatherChange           EventType = 26
	TypeMildPitch               EventType = 27
	TypeInningEnd               EventType = 28
	TypeBigDeal                 EventType = 29
	TypeBlackHole               EventType = 30
	TypeSun2                    EventType = 31
	TypeBirdsCircle             EventType = 33
	TypeAmbushedByCrows         EventType = 34
	TypeBirdsUnshell            EventType = 35
	TypeBecomeTripleThreat      EventType = 36
	TypeGainFreeRefill          EventType = 37
	TypeCoffeeBean              EventType = 39
	TypeFeedbackBlocked         EventType = 40
	TypeFeedbackSwap            EventType = 41
	TypeSuperallergicReaction   EventType = 45
	TypeAllergicReaction        EventType = 47
	TypeReverbBestowsReverb     EventType = 48
	TypeReverbRosterShuffle     EventType = 49
	TypeBlooddrain              EventType = 51
	TypeBlooddrainSiphon        EventType = 52
	TypeBlooddrainBlocked       EventType = 53
	TypeIncineration            EventType = 54
	TypeIncinerationBlocked     EventType = 55
	TypeFlagPlanted             EventType = 56
	TypeRenovationBuilt         EventType = 57
	TypeLightSwitchToggled      EventType = 58
	TypeDecreePassed            EventType = 59
	TypeBlessingOrGiftWon       EventType = 60
	TypeWillReceived            EventType = 61
	TypeFloodingSwept           EventType = 62
	TypeSalmonSwim              EventType = 63
	TypePolarityShift           EventType = 64
	TypeEnterSecretBase         EventType = 65
	TypeExitSecretBase          EventType = 66
	TypeConsumersAttack         EventType = 67
	TypeEchoChamber             EventType = 69
	TypeGrindRail               EventType = 70
	TypeTunnelsUsed             EventType = 71
	TypePeanutMister            EventType = 72
	TypePeanutFlavorText        EventType = 73
	TypeTasteTheInfinite        EventType = 74
	TypeEventHorizonActivation  EventType = 76
	TypeEventHorizonAwaits      EventType = 77
	TypeSolarPanelsAwait        EventType = 78
	TypeSolarPanelsActivation   EventType = 79
	TypeTarotReading            EventType = 81
	TypeEmergencyAlert          EventType = 82
	TypeReturnFromElsewhere     EventType = 84
	TypeOverUnder               EventType = 85
	TypeUnderOver               EventType = 86
	TypeUndersea                EventType = 88
	TypeHomebody                EventType = 91
	TypeSuperyummy              EventType = 92
	TypePerk                    EventType = 93
	TypeEarlbird                EventType = 96
	TypeLateToTheParty          EventType = 97
	TypeShameDonor              EventType = 99
	TypeAddedMod                EventType = 106
	TypeRemovedMod              EventType = 107
	TypeModExpires              EventType = 108
	TypePlayerAddedToTeam       EventType = 109
	TypePlayerNecromancy        EventType = 110
	TypePlayerReplacesReturned  EventType = 111
	TypePlayerRemovedFromTeam   EventType = 112
	TypePlayerTraded            EventType = 113
	TypePlayerSwap              EventType = 114
	TypePlayerMoved             EventType = 115
	TypePlayerBornFromIncin     EventType = 116
	TypePlayerStatIncrease      EventType = 117
	TypePlayerStatDecrease      EventType = 118
	TypePlayerStatReroll        EventType = 119
	TypePlayerStatSuperallergic EventType = 122
	TypePlayerMoveFailedForce   EventType = 124
	TypeEnterHallOfFlame        EventType = 125
	TypeExitHallOfFlame         EventType = 126
	TypePlayerGainedItem        EventType = 127
	TypePlayerLostItem          EventType = 128
	TypeReverbFullShuffle       EventType = 130
	TypeReverbLineupShuffle     EventType = 131
	TypeReverbRotationShuffle   EventType = 132
	TypeTeamDivisionMove        EventType = 135
	TypePlayerDivisionMove      EventType = 136
	TypePlayerHatched           EventType = 137
	TypePlayerEvolves           EventType = 139
	TypeTeamWonInternetSeries   EventType = 141
	TypeEarnedPostseasonSlot    EventType = 142
	TypeFinalStandings          EventType = 143
	TypeModChange               EventType = 144
	TypePlayerAlternated        EventType = 145
	TypeAddedModFromOtherMod    EventType = 146
	TypeRemovedModFromOtherMod  EventType = 147
	TypeChangedModFromOtherMod  EventType = 148
	TypeNecromancyNarration     EventType = 149
	TypePlayerPermittedToStay   EventType = 150
	TypeDecreeNarration         EventType = 151
	TypeWillResults             EventType = 152
	TypeTeamStatAdjustment      EventType = 153
	TypeTeamWasShamed           EventType = 154
	TypeTeamDidShame            EventType = 155
	TypeSun2SetWin              EventType = 156
	TypeBlackHoleSwallowedWin   EventType = 157
	TypePostseasonEliminated    EventType = 158
	TypePostseasonAdvance       EventType = 159
	TypeGainBloodType           EventType = 161
	TypeHighPressure            EventType = 165
	TypeLineupSorted            EventType = 166
	TypeNutButton               EventType = 168
	TypeEcho                    EventType = 169
	TypeEchoIntoStatic          EventType = 170
	TypeRemovedModsFromOther    EventType = 171
	TypeAddedModsFromOther      EventType = 172
	TypePsychoacoustics         EventType = 173
	TypeEchoReceiver            EventType = 174
	TypeInvestigationMessage    EventType = 175
	TypeTidings                 EventType = 176
	TypeGlitterCrateDrop        EventType = 177
	TypeMiddling                EventType = 178
	TypePlayerAttributeIncrease EventType = 179
	TypePlayerAttributeDecrease EventType = 180
	TypeEnterCrimeScene         EventType = 181
	TypeAmbitious               EventType = 182
	TypeCoasting                EventType = 184
	TypeItemBreaks              EventType = 185
	TypeItemDamaged             EventType = 186
	TypeBrokenItemRepaired      EventType = 187
	TypeDamagedItemRepaired     EventType = 188
	TypeCommunityChestOpens     EventType = 189
	TypeNoFreeItemSlot          EventType = 190
	TypeFaxMachine              EventType = 191
	TypeHolidayInning           EventType = 192
	TypePrizeMatch              EventType = 193
	TypeTeamReceivedGifts       EventType = 194
	TypeSmithy                  EventType = 195
	TypePlayerSoulIncrease      EventType = 199
	TypeAnnouncement            EventType = 201
	TypeRunsScored              EventType = 209
	TypeWinCollectedRegular     EventType = 214
	TypeWinCollectedPostseason  EventType = 215
	TypeGameOver                EventType = 216
	TypeStormWarning            EventType = 263
	TypeSnowflakes              EventType = 264
)

// Metadata carries the loosely structured portion of a feed event. The feed
// nests related events here: children are sub-events of this event, and
// siblings are the other members of a multi-event group.
type Metadata struct {
	Children []Event `json:"children,omitempty"`

	// Siblings is populated by Eventually's expand_siblings option under a
	// prefixed key so it cannot collide with game metadata.
	Siblings []Event `json:"_eventually_siblingEvents,omitempty"`

	IngestTime   *int64  `json:"_eventually_ingest_time,omitempty"`
	IngestSource *string `json:"_eventually_ingest_source,omitempty"`

	Play       *int64       `json:"play,omitempty"`
	SubPlay    *int64       `json:"subPlay,omitempty"`
	SiblingIDs []uuid.UUID  `json:"siblingIds,omitempty"`
	Parent     *uuid.UUID   `json:"parent,omitempty"`

	// Other holds every metadata key not modeled above (weather, being,
	// winner, mod names, and so on).
	Other map[string]json.RawMessage `json:"-"`
}

// metadataAlias avoids recursing into the custom JSON methods.
type metadataAlias Metadata

var metadataKnownKeys = []string{
	"children", "_eventually_siblingEvents", "_eventually_ingest_time",
	"_eventually_ingest_source", "play", "subPlay", "siblingIds", "parent",
}

// UnmarshalJSON decodes the known fields and collects everything else into
// Other. A JSON null decodes as the zero Metadata: some event types carry
// "metadata": null.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metadata{}
		return nil
	}

	var alias metadataAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range metadataKnownKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		alias.Other = raw
	}

	*m = Metadata(alias)
	return nil
}

// MarshalJSON emits the known fields merged with the keys preserved in Other.
func (m Metadata) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(metadataAlias(m))
	if err != nil {
		return nil, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for key, value := range m.Other {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// GetInt returns an integer metadata field from Other.
func (m Metadata) GetInt(key string) (int64, bool) {
	raw, ok := m.Other[key]
	if !ok {
		return 0, false
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

// GetString returns a string metadata field from Other.
func (m Metadata) GetString(key string) (string, bool) {
	raw, ok := m.Other[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// GetUUID returns a uuid metadata field from Other.
func (m Metadata) GetUUID(key string) (uuid.UUID, bool) {
	s, ok := m.GetString(key)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Event is one raw feed event as served by Eventually.
type Event struct {
	ID       uuid.UUID     `json:"id"`
	Created  time.Time     `json:"created"`
	Type     EventType     `json:"type"`
	Category EventCategory `json:"category"`
	Metadata Metadata      `json:"metadata"`
	Blurb    string        `json:"blurb"`

	// Description is the display text; most of the event's structure is
	// only recoverable by parsing it.
	Description string `json:"description"`

	// Tag lists are null (not empty) for redacted events.
	PlayerTags *[]uuid.UUID `json:"playerTags"`
	GameTags   *[]uuid.UUID `json:"gameTags"`
	TeamTags   *[]uuid.UUID `json:"teamTags"`

	Sim        string `json:"sim"`
	Day        int    `json:"day"`
	Season     int    `json:"season"`
	Tournament int    `json:"tournament"`
	Phase      int    `json:"phase"`
	Nuts       int    `json:"nuts"`
}

// PlayerIDs returns the player tag list, treating null as empty.
func (e *Event) PlayerIDs() []uuid.UUID {
	if e.PlayerTags == nil {
		return nil
	}
	return *e.PlayerTags
}

// GameIDs returns the game tag list, treating null as empty.
func (e *Event) GameIDs() []uuid.UUID {
	if e.GameTags == nil {
		return nil
	}
	return *e.GameTags
}

// TeamIDs returns the team tag list, treating null as empty.
func (e *Event) TeamIDs() []uuid.UUID {
	if e.TeamTags == nil {
		return nil
	}
	return *e.TeamTags
}
