package fed

import "testing"

func TestParseCountEvents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parse   func(string) (int, int, error)
		balls   int
		strikes int
		wantErr bool
	}{
		{name: "ball", input: "Ball. 2-1", parse: parseBall, balls: 2, strikes: 1},
		{name: "ball double digit", input: "Ball. 12-1", parse: parseBall, balls: 12, strikes: 1},
		{name: "foul ball", input: "Foul Ball. 1-2", parse: parseFoulBall, balls: 1, strikes: 2},
		{name: "ball trailing text", input: "Ball. 2-1 extra", parse: parseBall, wantErr: true},
		{name: "ball missing count", input: "Ball. ", parse: parseBall, wantErr: true},
		{name: "foul ball wrong prefix", input: "Fair Ball. 1-2", parse: parseFoulBall, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balls, strikes, err := tt.parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if balls != tt.balls || strikes != tt.strikes {
				t.Errorf("got %d-%d, want %d-%d", balls, strikes, tt.balls, tt.strikes)
			}
		})
	}
}

func TestParseStrike(t *testing.T) {
	tests := []struct {
		input   string
		kind    strikeKind
		balls   int
		strikes int
		wantErr bool
	}{
		{input: "Strike, swinging. 0-1", kind: strikeSwinging, balls: 0, strikes: 1},
		{input: "Strike, looking. 1-2", kind: strikeLooking, balls: 1, strikes: 2},
		{input: "Strike, flinching. 2-0", kind: strikeFlinching, balls: 2, strikes: 0},
		{input: "Strike, whiffing. 0-1", wantErr: true},
		{input: "Strike, swinging. 0-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, balls, strikes, err := parseStrike(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.kind || balls != tt.balls || strikes != tt.strikes {
				t.Errorf("got kind=%d %d-%d, want kind=%d %d-%d",
					kind, balls, strikes, tt.kind, tt.balls, tt.strikes)
			}
		})
	}
}

func TestParseHalfInning(t *testing.T) {
	top, inning, team, err := parseHalfInning("Top of 1, Hades Tigers batting.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !top || inning != 1 || team != "Hades Tigers" {
		t.Errorf("got top=%v inning=%d team=%q", top, inning, team)
	}

	top, inning, team, err = parseHalfInning("Bottom of 9, Mexico City Wild Wings batting.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top || inning != 9 || team != "Mexico City Wild Wings" {
		t.Errorf("got top=%v inning=%d team=%q", top, inning, team)
	}

	if _, _, _, err := parseHalfInning("Middle of 5, Philly Pies batting."); err == nil {
		t.Error("expected error for unknown half")
	}
}

func TestParseBatterUp(t *testing.T) {
	batter, team, item, err := parseBatterUp("Jessica Telephone batting for the Pies.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batter != "Jessica Telephone" || team != "Pies" || item != nil {
		t.Errorf("got batter=%q team=%q item=%v", batter, team, item)
	}

	batter, team, item, err = parseBatterUp("Jessica Telephone batting for the Pies, wielding The Dial Tone.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batter != "Jessica Telephone" || team != "Pies" {
		t.Errorf("got batter=%q team=%q", batter, team)
	}
	if item == nil || *item != "The Dial Tone" {
		t.Errorf("got item=%v, want The Dial Tone", item)
	}
}

func TestParseOuts(t *testing.T) {
	batter, fielder, err := parseFlyout("Randy Castillo hit a flyout to Sandoval Crossing.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batter != "Randy Castillo" || fielder != "Sandoval Crossing" {
		t.Errorf("got batter=%q fielder=%q", batter, fielder)
	}

	batter, fielder, err = parseGroundOut("Basilio Fig hit a ground out to Winnie Hess.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batter != "Basilio Fig" || fielder != "Winnie Hess" {
		t.Errorf("got batter=%q fielder=%q", batter, fielder)
	}
}

func TestParseHit(t *testing.T) {
	tests := []struct {
		input  string
		batter string
		bases  int
	}{
		{"Aldon Cashmoney hits a Single!", "Aldon Cashmoney", 1},
		{"Aldon Cashmoney hits a Double!", "Aldon Cashmoney", 2},
		{"York Silk hits a Triple!", "York Silk", 3},
		{"York Silk hits a Quadruple!", "York Silk", 4},
	}
	for _, tt := range tests {
		batter, bases, err := parseHit(tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if batter != tt.batter || bases != tt.bases {
			t.Errorf("%q: got batter=%q bases=%d", tt.input, batter, bases)
		}
	}

	if _, _, err := parseHit("York Silk hits a Quintuple!"); err == nil {
		t.Error("expected error for unknown hit kind")
	}
}

func TestParseHomeRun(t *testing.T) {
	tests := []struct {
		input  string
		batter string
		runs   int
	}{
		{"Valentine Games hits a solo home run!", "Valentine Games", 1},
		{"Valentine Games hits a two-run home run!", "Valentine Games", 2},
		{"Valentine Games hits a three-run home run!", "Valentine Games", 3},
		{"Valentine Games hits a grand slam!", "Valentine Games", 4},
	}
	for _, tt := range tests {
		batter, runs, err := parseHomeRun(tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if batter != tt.batter || runs != tt.runs {
			t.Errorf("%q: got batter=%q runs=%d", tt.input, batter, runs)
		}
	}
}

func TestParseStrikeoutAndWalk(t *testing.T) {
	batter, swinging, err := parseStrikeout("Goodwin Morin strikes out swinging.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batter != "Goodwin Morin" || !swinging {
		t.Errorf("got batter=%q swinging=%v", batter, swinging)
	}

	batter, swinging, err = parseStrikeout("Goodwin Morin strikes out looking.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swinging {
		t.Error("expected looking strikeout")
	}

	batter, err = parseWalk("Nagomi Mcdaniel draws a walk.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batter != "Nagomi Mcdaniel" {
		t.Errorf("got batter=%q", batter)
	}
}

func TestParseStolenBase(t *testing.T) {
	runner, base, ok, err := parseStolenBase("Esme Ramsey steals third base!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner != "Esme Ramsey" || base != 3 || !ok {
		t.Errorf("got runner=%q base=%d ok=%v", runner, base, ok)
	}

	runner, base, ok, err = parseStolenBase("Esme Ramsey gets caught stealing second base.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner != "Esme Ramsey" || base != 2 || ok {
		t.Errorf("got runner=%q base=%d ok=%v", runner, base, ok)
	}

	// A caught steal ends with a period, not an exclamation point.
	if _, _, _, err := parseStolenBase("Esme Ramsey gets caught stealing second base!"); err == nil {
		t.Error("expected error for wrong terminator")
	}
}

func TestParseInningEnd(t *testing.T) {
	inning, err := parseInningEnd("Inning 5 is now an Outing.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inning != 5 {
		t.Errorf("got inning=%d, want 5", inning)
	}
}

func TestParseGameEnd(t *testing.T) {
	tests := []struct {
		input     string
		winName   string
		winScore  float64
		loseName  string
		loseScore float64
		wantErr   bool
	}{
		{input: "Tigers 7, Wild Wings 4", winName: "Tigers", winScore: 7, loseName: "Wild Wings", loseScore: 4},
		{input: "Sunbeams 5.1, Crabs 5", winName: "Sunbeams", winScore: 5.1, loseName: "Crabs", loseScore: 5},
		{input: "Pies 3, Lovers -2", winName: "Pies", winScore: 3, loseName: "Lovers", loseScore: -2},
		{input: "Tigers 4, Wild Wings 7", wantErr: true},
		{input: "Tigers 7 Wild Wings 4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			winName, winScore, loseName, loseScore, err := parseGameEnd(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if winName != tt.winName || winScore != tt.winScore ||
				loseName != tt.loseName || loseScore != tt.loseScore {
				t.Errorf("got %q %v, %q %v", winName, winScore, loseName, loseScore)
			}
		})
	}
}
