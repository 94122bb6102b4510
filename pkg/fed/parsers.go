package fed

import (
	"fmt"
	"strconv"
	"strings"
)

// scanner is a cursor over an event description. Parse functions consume the
// input left to right and fail with the position of the first mismatch.
type scanner struct {
	full string
	rest string
}

func newScanner(input string) *scanner {
	return &scanner{full: input, rest: input}
}

// pos returns the byte offset of the cursor, for error messages.
func (s *scanner) pos() int {
	return len(s.full) - len(s.rest)
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("at offset %d of %q: %s", s.pos(), s.full, fmt.Sprintf(format, args...))
}

// tag consumes the literal lit.
func (s *scanner) tag(lit string) error {
	if !strings.HasPrefix(s.rest, lit) {
		return s.errorf("expected %q", lit)
	}
	s.rest = s.rest[len(lit):]
	return nil
}

// tryTag consumes lit if present and reports whether it did.
func (s *scanner) tryTag(lit string) bool {
	if strings.HasPrefix(s.rest, lit) {
		s.rest = s.rest[len(lit):]
		return true
	}
	return false
}

// takeUntil consumes and returns the non-empty text before the next
// occurrence of lit, then consumes lit itself.
func (s *scanner) takeUntil(lit string) (string, error) {
	idx := strings.Index(s.rest, lit)
	if idx < 1 {
		return "", s.errorf("expected text terminated by %q", lit)
	}
	taken := s.rest[:idx]
	s.rest = s.rest[idx+len(lit):]
	return taken, nil
}

// takeTillDigit consumes and returns the text before the next ASCII digit.
func (s *scanner) takeTillDigit() (string, error) {
	idx := strings.IndexFunc(s.rest, func(r rune) bool { return r >= '0' && r <= '9' })
	if idx < 1 {
		return "", s.errorf("expected text followed by a number")
	}
	taken := s.rest[:idx]
	s.rest = s.rest[idx:]
	return taken, nil
}

// number consumes a whole number.
func (s *scanner) number() (int, error) {
	i := 0
	for i < len(s.rest) && s.rest[i] >= '0' && s.rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s.errorf("expected a number")
	}
	n, err := strconv.Atoi(s.rest[:i])
	if err != nil {
		return 0, s.errorf("invalid number %q", s.rest[:i])
	}
	s.rest = s.rest[i:]
	return n, nil
}

// float consumes a non-negative decimal number.
func (s *scanner) float() (float64, error) {
	i := 0
	for i < len(s.rest) && (s.rest[i] >= '0' && s.rest[i] <= '9' || s.rest[i] == '.') {
		i++
	}
	if i == 0 {
		return 0, s.errorf("expected a number")
	}
	f, err := strconv.ParseFloat(s.rest[:i], 64)
	if err != nil {
		return 0, s.errorf("invalid number %q", s.rest[:i])
	}
	s.rest = s.rest[i:]
	return f, nil
}

// oneOf consumes the first matching literal and returns its index.
func (s *scanner) oneOf(lits ...string) (int, error) {
	for i, lit := range lits {
		if s.tryTag(lit) {
			return i, nil
		}
	}
	return 0, s.errorf("expected one of %q", lits)
}

// eof fails unless the whole input has been consumed.
func (s *scanner) eof() error {
	if s.rest != "" {
		return s.errorf("unexpected trailing text %q", s.rest)
	}
	return nil
}

// The parse functions below implement the description grammar for each
// supported event type. They mirror the text the game actually emits.

// parseCount reads a "balls-strikes" count. Double-digit counts occur.
func parseCount(s *scanner) (balls, strikes int, err error) {
	if balls, err = s.number(); err != nil {
		return 0, 0, err
	}
	if err = s.tag("-"); err != nil {
		return 0, 0, err
	}
	if strikes, err = s.number(); err != nil {
		return 0, 0, err
	}
	return balls, strikes, s.eof()
}

// parseBall handles "Ball. 2-1".
func parseBall(input string) (balls, strikes int, err error) {
	s := newScanner(input)
	if err := s.tag("Ball. "); err != nil {
		return 0, 0, err
	}
	return parseCount(s)
}

// parseFoulBall handles "Foul Ball. 1-2".
func parseFoulBall(input string) (balls, strikes int, err error) {
	s := newScanner(input)
	if err := s.tag("Foul Ball. "); err != nil {
		return 0, 0, err
	}
	return parseCount(s)
}

type strikeKind int

const (
	strikeSwinging strikeKind = iota
	strikeLooking
	strikeFlinching
)

// parseStrike handles "Strike, swinging. 0-1" and the looking and flinching
// variants.
func parseStrike(input string) (kind strikeKind, balls, strikes int, err error) {
	s := newScanner(input)
	if err := s.tag("Strike, "); err != nil {
		return 0, 0, 0, err
	}
	which, err := s.oneOf("swinging. ", "looking. ", "flinching. ")
	if err != nil {
		return 0, 0, 0, err
	}
	balls, strikes, err = parseCount(s)
	return strikeKind(which), balls, strikes, err
}

// parseHalfInning handles "Top of 3, Hades Tigers batting.".
func parseHalfInning(input string) (topOfInning bool, inning int, teamName string, err error) {
	s := newScanner(input)
	which, err := s.oneOf("Top", "Bottom")
	if err != nil {
		return false, 0, "", err
	}
	topOfInning = which == 0
	if err = s.tag(" of "); err != nil {
		return false, 0, "", err
	}
	if inning, err = s.number(); err != nil {
		return false, 0, "", err
	}
	if err = s.tag(", "); err != nil {
		return false, 0, "", err
	}
	if teamName, err = s.takeUntil(" batting."); err != nil {
		return false, 0, "", err
	}
	return topOfInning, inning, teamName, s.eof()
}

// parseBatterUp handles "X batting for the Pies." and the legacy
// ", wielding Y." suffix.
func parseBatterUp(input string) (batterName, teamName string, wieldingItem *string, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" batting for the "); err != nil {
		return "", "", nil, err
	}
	// A team name never contains a period or comma.
	idx := strings.IndexAny(s.rest, ",.")
	if idx < 1 {
		return "", "", nil, s.errorf("expected a team name")
	}
	teamName = s.rest[:idx]
	s.rest = s.rest[idx:]

	if s.tryTag(".") {
		return batterName, teamName, nil, s.eof()
	}
	if err = s.tag(", wielding "); err != nil {
		return "", "", nil, err
	}
	item, err := s.takeUntil(".")
	if err != nil {
		return "", "", nil, err
	}
	return batterName, teamName, &item, s.eof()
}

// parseFlyout handles "X hit a flyout to Y.".
func parseFlyout(input string) (batterName, fielderName string, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" hit a flyout to "); err != nil {
		return "", "", err
	}
	if fielderName, err = s.takeUntil("."); err != nil {
		return "", "", err
	}
	return batterName, fielderName, s.eof()
}

// parseGroundOut handles "X hit a ground out to Y.".
func parseGroundOut(input string) (batterName, fielderName string, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" hit a ground out to "); err != nil {
		return "", "", err
	}
	if fielderName, err = s.takeUntil("."); err != nil {
		return "", "", err
	}
	return batterName, fielderName, s.eof()
}

// parseHit handles "X hits a Single!" through "X hits a Quadruple!".
func parseHit(input string) (batterName string, numBases int, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" hits a "); err != nil {
		return "", 0, err
	}
	which, err := s.oneOf("Single!", "Double!", "Triple!", "Quadruple!")
	if err != nil {
		return "", 0, err
	}
	return batterName, which + 1, s.eof()
}

// parseHomeRun handles "X hits a solo home run!" through
// "X hits a grand slam!".
func parseHomeRun(input string) (batterName string, numRuns int, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" hits a "); err != nil {
		return "", 0, err
	}
	which, err := s.oneOf(
		"solo home run!",
		"two-run home run!",
		"three-run home run!",
		"grand slam!",
	)
	if err != nil {
		return "", 0, err
	}
	return batterName, which + 1, s.eof()
}

// parseStrikeout handles "X strikes out swinging." and the looking variant.
func parseStrikeout(input string) (batterName string, swinging bool, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" strikes out "); err != nil {
		return "", false, err
	}
	which, err := s.oneOf("swinging.", "looking.")
	if err != nil {
		return "", false, err
	}
	return batterName, which == 0, s.eof()
}

// parseWalk handles "X draws a walk.".
func parseWalk(input string) (batterName string, err error) {
	s := newScanner(input)
	if batterName, err = s.takeUntil(" draws a walk."); err != nil {
		return "", err
	}
	return batterName, s.eof()
}

// parseStolenBase handles "X steals third base!" and
// "X gets caught stealing second base.".
func parseStolenBase(input string) (runnerName string, base int, successful bool, err error) {
	s := newScanner(input)
	runnerName, err = s.takeUntil(" steals ")
	if err == nil {
		successful = true
	} else {
		s = newScanner(input)
		if runnerName, err = s.takeUntil(" gets caught stealing "); err != nil {
			return "", 0, false, err
		}
	}

	which, err := s.oneOf("first", "second", "third", "fourth", "fifth")
	if err != nil {
		return "", 0, false, err
	}
	base = which + 1

	// Successful steals are exciting, caught ones are not.
	terminator := " base."
	if successful {
		terminator = " base!"
	}
	if err = s.tag(terminator); err != nil {
		return "", 0, false, err
	}
	return runnerName, base, successful, s.eof()
}

// parseInningEnd handles "Inning 5 is now an Outing.".
func parseInningEnd(input string) (inningNum int, err error) {
	s := newScanner(input)
	if err = s.tag("Inning "); err != nil {
		return 0, err
	}
	if inningNum, err = s.number(); err != nil {
		return 0, err
	}
	if err = s.tag(" is now an Outing."); err != nil {
		return 0, err
	}
	return inningNum, s.eof()
}

// parseGameEnd handles "Tigers 7, Wild Wings 4". The winner is listed first.
// Team names are arbitrary words, so the name ends where the score's digits
// begin; a trailing " -" before the digits marks a negative score.
func parseGameEnd(input string) (winName string, winScore float64, loseName string, loseScore float64, err error) {
	s := newScanner(input)

	readTeam := func() (string, float64, error) {
		name, err := s.takeTillDigit()
		if err != nil {
			return "", 0, err
		}
		score, err := s.float()
		if err != nil {
			return "", 0, err
		}
		if stripped, ok := strings.CutSuffix(name, " -"); ok {
			return stripped, -score, nil
		}
		name, ok := strings.CutSuffix(name, " ")
		if !ok {
			return "", 0, s.errorf("expected a space between team name and score")
		}
		return name, score, nil
	}

	if winName, winScore, err = readTeam(); err != nil {
		return "", 0, "", 0, err
	}
	if err = s.tag(", "); err != nil {
		return "", 0, "", 0, err
	}
	if loseName, loseScore, err = readTeam(); err != nil {
		return "", 0, "", 0, err
	}
	if loseScore > winScore {
		return "", 0, "", 0, s.errorf("losing score %v exceeds winning score %v", loseScore, winScore)
	}
	return winName, winScore, loseName, loseScore, s.eof()
}
