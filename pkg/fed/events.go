package fed

import (
	"time"

	"github.com/google/uuid"

	"sibr/fed/pkg/eventually"
)

// Being identifies the entity speaking in a being speech event.
type Being int

const (
	BeingEmergencyAlert Being = -1
	BeingTheShelledOne  Being = 0
	BeingTheMonitor     Being = 1
	BeingTheCoin        Being = 2
	BeingTheReader      Being = 3
	BeingTheMicrophone  Being = 4
	BeingLootcrates     Being = 5
	BeingNamerifeht     Being = 6
)

// KnownBeing reports whether id maps to a being.
func KnownBeing(id int64) bool {
	return id >= -1 && id <= 6
}

// GameEvent is the game context every game event carries.
type GameEvent struct {
	// GameID is the game's uuid.
	GameID uuid.UUID `json:"gameId"`

	// HomeTeam is the home team's uuid.
	HomeTeam uuid.UUID `json:"homeTeam"`

	// AwayTeam is the away team's uuid.
	AwayTeam uuid.UUID `json:"awayTeam"`

	// Play is the play this event came from. It is always one lower than
	// the playCount field in the corresponding game update.
	Play int64 `json:"play"`
}

// Event is a parsed feed event: the raw event's envelope plus a typed
// payload describing what happened.
type Event struct {
	// ID is the uuid of the event itself.
	ID uuid.UUID `json:"id"`

	// Created is when the event occurred.
	Created time.Time `json:"created"`

	// Sim identifies which universe the event came from. All of Beta is
	// "thisidisstaticyo"; the Short Circuits universes are "gammaN".
	Sim string `json:"sim"`

	// Tournament is -1 outside of tournament play.
	Tournament int `json:"tournament"`

	// Season, zero-indexed.
	Season int `json:"season"`

	// Day, zero-indexed.
	Day int `json:"day"`

	// Phase of the sim, corresponding to the schedule section on the
	// homepage.
	Phase int `json:"phase"`

	// Nuts is the number of times the event has been upshelled.
	Nuts int `json:"nuts"`

	// Data is the typed payload. Its fields and a "type" discriminator are
	// flattened into the event's JSON object.
	Data EventData `json:"-"`
}

// EventData is implemented by every typed payload.
type EventData interface {
	// EventType returns the value of the "type" discriminator.
	EventType() string
}

// BeingSpeech is a god or similar entity speaking.
type BeingSpeech struct {
	Being   Being  `json:"being"`
	Message string `json:"message"`
}

func (BeingSpeech) EventType() string { return "BeingSpeech" }

// LetsGo is always the first event of every game.
type LetsGo struct {
	GameEvent
	Weather eventually.Weather `json:"weather"`
}

func (LetsGo) EventType() string { return "LetsGo" }

// PlayBall is always the second event of every game.
type PlayBall struct {
	GameEvent
}

func (PlayBall) EventType() string { return "PlayBall" }

// HalfInningStart marks the start of a half-inning.
type HalfInningStart struct {
	GameEvent
	TopOfInning bool `json:"topOfInning"`

	// Inning as written in the description (one-indexed).
	Inning          int    `json:"inning"`
	BattingTeamName string `json:"battingTeamName"`
}

func (HalfInningStart) EventType() string { return "HalfInningStart" }

// BatterUp marks a new batter stepping up to the plate.
type BatterUp struct {
	GameEvent
	BatterName string `json:"batterName"`
	TeamName   string `json:"teamName"`

	// WieldingItem names the batter's legacy item, if any. Always empty
	// from season 16 onward.
	WieldingItem *string `json:"wieldingItem"`
}

func (BatterUp) EventType() string { return "BatterUp" }

// Ball is a pitch outside the zone.
type Ball struct {
	GameEvent
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

func (Ball) EventType() string { return "Ball" }

// FoulBall is a foul that did not end the at-bat.
type FoulBall struct {
	GameEvent
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

func (FoulBall) EventType() string { return "FoulBall" }

// StrikeSwinging is a swinging strike.
type StrikeSwinging struct {
	GameEvent
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

func (StrikeSwinging) EventType() string { return "StrikeSwinging" }

// StrikeLooking is a called strike.
type StrikeLooking struct {
	GameEvent
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

func (StrikeLooking) EventType() string { return "StrikeLooking" }

// StrikeFlinching is a strike against a batter with Zero mod; the batter
// flinches instead of swinging.
type StrikeFlinching struct {
	GameEvent
	Balls int `json:"balls"`

	// Strikes should always be 0, but is kept for forward compatibility.
	Strikes int `json:"strikes"`
}

func (StrikeFlinching) EventType() string { return "StrikeFlinching" }

// Flyout is a fly ball caught for an out.
type Flyout struct {
	GameEvent
	BatterName  string `json:"batterName"`
	FielderName string `json:"fielderName"`
}

func (Flyout) EventType() string { return "Flyout" }

// GroundOut is a simple ground out, including sacrifices.
type GroundOut struct {
	GameEvent
	BatterName  string `json:"batterName"`
	FielderName string `json:"fielderName"`
}

func (GroundOut) EventType() string { return "GroundOut" }

// Hit is a single, double, triple, or quadruple.
type Hit struct {
	GameEvent
	BatterName string    `json:"batterName"`
	BatterID   uuid.UUID `json:"batterId"`

	// NumBases: 1 for a Single through 4 for a Quadruple.
	NumBases int `json:"numBases"`
}

func (Hit) EventType() string { return "Hit" }

// HomeRun is a home run, including grand slams.
type HomeRun struct {
	GameEvent
	BatterName string    `json:"batterName"`
	BatterID   uuid.UUID `json:"batterId"`

	// NumRuns scored by the home run, 1 through 4.
	NumRuns int `json:"numRuns"`
}

func (HomeRun) EventType() string { return "HomeRun" }

// StrikeoutSwinging ends an at-bat on a swinging strike.
type StrikeoutSwinging struct {
	GameEvent
	BatterName string `json:"batterName"`
}

func (StrikeoutSwinging) EventType() string { return "StrikeoutSwinging" }

// StrikeoutLooking ends an at-bat on a called strike.
type StrikeoutLooking struct {
	GameEvent
	BatterName string `json:"batterName"`
}

func (StrikeoutLooking) EventType() string { return "StrikeoutLooking" }

// Walk is a batter walking to first on balls.
type Walk struct {
	GameEvent
	BatterName string    `json:"batterName"`
	BatterID   uuid.UUID `json:"batterId"`
}

func (Walk) EventType() string { return "Walk" }

// StolenBase is a successful steal.
type StolenBase struct {
	GameEvent
	RunnerName string    `json:"runnerName"`
	RunnerID   uuid.UUID `json:"runnerId"`

	// Base stolen: 2 for second through 5 for fifth.
	Base int `json:"base"`
}

func (StolenBase) EventType() string { return "StolenBase" }

// CaughtStealing is a failed steal attempt.
type CaughtStealing struct {
	GameEvent
	RunnerName string `json:"runnerName"`

	// Base the runner was caught stealing.
	Base int `json:"base"`
}

func (CaughtStealing) EventType() string { return "CaughtStealing" }

// InningEnd marks the end of a full inning.
type InningEnd struct {
	GameEvent

	// InningNum as written in the description (one-indexed).
	InningNum int `json:"inningNum"`
}

func (InningEnd) EventType() string { return "InningEnd" }

// GameEnd is the final score. The winning team is listed first in the
// description. Scores can be fractional (Sun .1) and negative (Black Hole
// games), hence float64.
type GameEnd struct {
	GameEvent
	WinnerID         uuid.UUID `json:"winnerId"`
	WinningTeamName  string    `json:"winningTeamName"`
	WinningTeamScore float64   `json:"winningTeamScore"`
	LosingTeamName   string    `json:"losingTeamName"`
	LosingTeamScore  float64   `json:"losingTeamScore"`
}

func (GameEnd) EventType() string { return "GameEnd" }
