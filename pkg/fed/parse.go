package fed

import (
	"github.com/google/uuid"

	"sibr/fed/pkg/eventually"
)

// ParseEvent turns a raw feed event into a typed one by parsing its
// description against the grammar for its event type and cross-checking the
// result against the event's tags and metadata.
func ParseEvent(raw *eventually.Event) (*Event, error) {
	data, err := parseEventData(raw)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:         raw.ID,
		Created:    raw.Created,
		Sim:        raw.Sim,
		Tournament: raw.Tournament,
		Season:     raw.Season,
		Day:        raw.Day,
		Phase:      raw.Phase,
		Nuts:       raw.Nuts,
		Data:       data,
	}, nil
}

func parseEventData(raw *eventually.Event) (EventData, error) {
	switch raw.Type {
	case eventually.TypeLetsGo:
		return parseLetsGoEvent(raw)
	case eventually.TypePlayBall:
		return parsePlayBallEvent(raw)
	case eventually.TypeHalfInning:
		return parseHalfInningEvent(raw)
	case eventually.TypeBatterUp:
		return parseBatterUpEvent(raw)
	case eventually.TypeBall:
		return parseBallEvent(raw)
	case eventually.TypeFoulBall:
		return parseFoulBallEvent(raw)
	case eventually.TypeStrike:
		return parseStrikeEvent(raw)
	case eventually.TypeFlyOut:
		return parseFlyoutEvent(raw)
	case eventually.TypeGroundOut:
		return parseGroundOutEvent(raw)
	case eventually.TypeHit:
		return parseHitEvent(raw)
	case eventually.TypeHomeRun:
		return parseHomeRunEvent(raw)
	case eventually.TypeStrikeout:
		return parseStrikeoutEvent(raw)
	case eventually.TypeWalk:
		return parseWalkEvent(raw)
	case eventually.TypeStolenBase:
		return parseStolenBaseEvent(raw)
	case eventually.TypeInningEnd:
		return parseInningEndEvent(raw)
	case eventually.TypeGameEnd:
		return parseGameEndEvent(raw)
	case eventually.TypeBigDeal:
		return parseBigDealEvent(raw)
	default:
		return nil, &NotImplementedError{EventType: raw.Type}
	}
}

// gameEvent extracts the game context shared by every game event. Game
// events carry exactly one game tag; the away team's tag comes before the
// home team's.
func gameEvent(raw *eventually.Event) (GameEvent, error) {
	games := raw.GameIDs()
	if len(games) != 1 {
		return GameEvent{}, &MissingTagsError{EventType: raw.Type, TagType: "game"}
	}

	teams := raw.TeamIDs()
	var away, home uuid.UUID
	switch {
	case len(teams) == 2:
		away, home = teams[0], teams[1]
	// Game over events carry (away, home, home, away).
	case len(teams) == 4 && teams[0] == teams[3] && teams[1] == teams[2]:
		away, home = teams[0], teams[1]
	default:
		return GameEvent{}, &MissingTagsError{EventType: raw.Type, TagType: "team"}
	}

	play := raw.Metadata.Play
	if play == nil {
		return GameEvent{}, &MissingMetadataError{EventType: raw.Type, Field: "play"}
	}

	return GameEvent{
		GameID:   games[0],
		HomeTeam: home,
		AwayTeam: away,
		Play:     *play,
	}, nil
}

// onePlayerTag returns the event's single player tag.
func onePlayerTag(raw *eventually.Event) (uuid.UUID, error) {
	players := raw.PlayerIDs()
	if len(players) != 1 {
		return uuid.Nil, &MissingTagsError{EventType: raw.Type, TagType: "player"}
	}
	return players[0], nil
}

// fixedDescription checks an event whose description never varies.
func fixedDescription(raw *eventually.Event, expected string) error {
	if raw.Description != expected {
		return &UnexpectedDescriptionError{
			EventType:   raw.Type,
			Description: raw.Description,
			Expected:    expected,
		}
	}
	return nil
}

func parseLetsGoEvent(raw *eventually.Event) (EventData, error) {
	if err := fixedDescription(raw, "Let's Go!"); err != nil {
		return nil, err
	}
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	weather, ok := raw.Metadata.GetInt("weather")
	if !ok {
		return nil, &MissingMetadataError{EventType: raw.Type, Field: "weather"}
	}
	if !eventually.Weather(weather).Known() {
		return nil, &UnknownWeatherError{Weather: weather}
	}
	return LetsGo{GameEvent: game, Weather: eventually.Weather(weather)}, nil
}

func parsePlayBallEvent(raw *eventually.Event) (EventData, error) {
	if err := fixedDescription(raw, "Play ball!"); err != nil {
		return nil, err
	}
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	return PlayBall{GameEvent: game}, nil
}

func parseHalfInningEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	top, inning, teamName, err := parseHalfInning(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	if !IsKnownTeamName(teamName) {
		return nil, &UnknownTeamError{Name: teamName}
	}
	return HalfInningStart{
		GameEvent:       game,
		TopOfInning:     top,
		Inning:          inning,
		BattingTeamName: teamName,
	}, nil
}

func parseBatterUpEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batterName, teamName, item, err := parseBatterUp(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	if !IsKnownTeamNickname(teamName) {
		return nil, &UnknownTeamError{Name: teamName}
	}
	return BatterUp{
		GameEvent:    game,
		BatterName:   batterName,
		TeamName:     teamName,
		WieldingItem: item,
	}, nil
}

func parseBallEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	balls, strikes, err := parseBall(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	return Ball{GameEvent: game, Balls: balls, Strikes: strikes}, nil
}

func parseFoulBallEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	balls, strikes, err := parseFoulBall(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	return FoulBall{GameEvent: game, Balls: balls, Strikes: strikes}, nil
}

func parseStrikeEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	kind, balls, strikes, err := parseStrike(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	switch kind {
	case strikeSwinging:
		return StrikeSwinging{GameEvent: game, Balls: balls, Strikes: strikes}, nil
	case strikeLooking:
		return StrikeLooking{GameEvent: game, Balls: balls, Strikes: strikes}, nil
	default:
		return StrikeFlinching{GameEvent: game, Balls: balls, Strikes: strikes}, nil
	}
}

func parseFlyoutEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batter, fielder, err := parseFlyout(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	return Flyout{GameEvent: game, BatterName: batter, FielderName: fielder}, nil
}

func parseGroundOutEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batter, fielder, err := parseGroundOut(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	return GroundOut{GameEvent: game, BatterName: batter, FielderName: fielder}, nil
}

func parseHitEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batter, bases, err := parseHit(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	batterID, err := onePlayerTag(raw)
	if err != nil {
		return nil, err
	}
	return Hit{GameEvent: game, BatterName: batter, BatterID: batterID, NumBases: bases}, nil
}

func parseHomeRunEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batter, runs, err := parseHomeRun(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	batterID, err := onePlayerTag(raw)
	if err != nil {
		return nil, err
	}
	return HomeRun{GameEvent: game, BatterName: batter, BatterID: batterID, NumRuns: runs}, nil
}

func parseStrikeoutEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batter, swinging, err := parseStrikeout(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	if swinging {
		return StrikeoutSwinging{GameEvent: game, BatterName: batter}, nil
	}
	return StrikeoutLooking{GameEvent: game, BatterName: batter}, nil
}

func parseWalkEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	batter, err := parseWalk(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	batterID, err := onePlayerTag(raw)
	if err != nil {
		return nil, err
	}
	return Walk{GameEvent: game, BatterName: batter, BatterID: batterID}, nil
}

func parseStolenBaseEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	runner, base, successful, err := parseStolenBase(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	if !successful {
		return CaughtStealing{GameEvent: game, RunnerName: runner, Base: base}, nil
	}
	runnerID, err := onePlayerTag(raw)
	if err != nil {
		return nil, err
	}
	return StolenBase{GameEvent: game, RunnerName: runner, RunnerID: runnerID, Base: base}, nil
}

func parseInningEndEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	inning, err := parseInningEnd(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	return InningEnd{GameEvent: game, InningNum: inning}, nil
}

func parseGameEndEvent(raw *eventually.Event) (EventData, error) {
	game, err := gameEvent(raw)
	if err != nil {
		return nil, err
	}
	winName, winScore, loseName, loseScore, err := parseGameEnd(raw.Description)
	if err != nil {
		return nil, &DescriptionParseError{EventType: raw.Type, Err: err}
	}
	if !IsKnownTeamNickname(winName) {
		return nil, &UnknownTeamError{Name: winName}
	}
	if !IsKnownTeamNickname(loseName) {
		return nil, &UnknownTeamError{Name: loseName}
	}
	winnerID, ok := raw.Metadata.GetUUID("winner")
	if !ok {
		return nil, &MissingMetadataError{EventType: raw.Type, Field: "winner"}
	}
	return GameEnd{
		GameEvent:        game,
		WinnerID:         winnerID,
		WinningTeamName:  winName,
		WinningTeamScore: winScore,
		LosingTeamName:   loseName,
		LosingTeamScore:  loseScore,
	}, nil
}

func parseBigDealEvent(raw *eventually.Event) (EventData, error) {
	being, ok := raw.Metadata.GetInt("being")
	if !ok {
		return nil, &MissingMetadataError{EventType: raw.Type, Field: "being"}
	}
	if !KnownBeing(being) {
		return nil, &UnknownBeingError{Being: being}
	}
	return BeingSpeech{Being: Being(being), Message: raw.Description}, nil
}
