// Package estimator implements the position estimation pipeline that
// produces the snapshot document the dashboard displays. It ranks the user
// within the upperclass draw roster, removes people ahead who are expected
// to take a spot in Spelman or another residential college, and converts the
// filtered position into a single-room probability.
package estimator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ammaar-Alam/draw-calculator/internal/logger"
	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

const lastUpdatedLayout = "Jan 2, 2006 3:04 PM"

// Inputs bundles the parsed rosters and parameters for one estimate run.
type Inputs struct {
	Upperclass []Entry   // full upperclass draw, sorted by draw time
	Rooms      []Room    // available rooms list
	Spelman    []Entry   // Spelman-specific draw, sorted by draw time
	OtherRes   [][]Entry // one roster per other residential college

	// ResCollegeTopN is how many top drawers of each other residential
	// college are assumed to take a spot there instead of competing.
	ResCollegeTopN int
}

// Estimate computes the snapshot for the named user. It returns an error
// only when the user cannot be found in the upperclass roster; estimation
// assumptions that cannot be applied (empty rooms list, missing Spelman
// roster) degrade to zero removals instead of failing.
func Estimate(in Inputs, firstName, lastName string) (models.Snapshot, error) {
	user, idx := findUser(in.Upperclass, firstName, lastName)
	if idx < 0 {
		return models.Snapshot{}, fmt.Errorf("user %q %q not found in upperclass roster", firstName, lastName)
	}

	spelmanCapacity := SpelmanCapacity(in.Rooms)
	topSpelman := topPUIDs(in.Spelman, spelmanCapacity)

	otherResEarly := make(map[string]bool)
	for _, college := range in.OtherRes {
		for puid := range topPUIDs(college, in.ResCollegeTopN) {
			otherResEarly[puid] = true
		}
	}

	ahead := in.Upperclass[:idx]
	removedSpelman, removedOtherRes := 0, 0
	for _, person := range ahead {
		if person.PUID == "" {
			logger.Warn("Person ahead (%s %s) has no PUID, keeping in count", person.FirstName, person.LastName)
			continue
		}
		// Spelman membership wins when a PUID shows up in both sets.
		switch {
		case topSpelman[person.PUID]:
			removedSpelman++
		case otherResEarly[person.PUID]:
			removedOtherRes++
		}
	}

	finalAhead := len(ahead) - removedSpelman - removedOtherRes
	singles := AvailableSingles(in.Rooms)

	return models.Snapshot{
		UserName:              user.FirstName + " " + user.LastName,
		PUID:                  user.PUID,
		DrawTime:              user.DrawTime,
		LastUpdated:           time.Now().Format(lastUpdatedLayout),
		RawPosition:           idx + 1,
		InitialAhead:          len(ahead),
		RemovedSpelman:        removedSpelman,
		RemovedOtherRes:       removedOtherRes,
		SpelmanCapacity:       spelmanCapacity,
		OtherResTopN:          in.ResCollegeTopN,
		FinalPositionEstimate: finalAhead,
		AvailableSingles:      singles,
		ProbabilitySingle:     singleProbability(singles, finalAhead),
	}, nil
}

// findUser locates the user in the roster by case-insensitive name match.
func findUser(roster []Entry, firstName, lastName string) (Entry, int) {
	for i, person := range roster {
		if strings.EqualFold(person.FirstName, strings.TrimSpace(firstName)) &&
			strings.EqualFold(person.LastName, strings.TrimSpace(lastName)) {
			return person, i
		}
	}
	return Entry{}, -1
}

// topPUIDs collects the PUIDs of the first n roster entries. Rows without a
// PUID are skipped and do not consume a slot; a duplicated PUID does, since
// each roster row stands for one drawer taking one spot.
func topPUIDs(roster []Entry, n int) map[string]bool {
	puids := make(map[string]bool, n)
	count := 0
	for _, person := range roster {
		if count >= n {
			break
		}
		if person.PUID == "" {
			logger.Warn("Roster row for %s %s missing PUID, skipping for top-drawer check", person.FirstName, person.LastName)
			continue
		}
		puids[person.PUID] = true
		count++
	}
	return puids
}

// singleProbability estimates the percent chance of landing a single: the
// share of available singles over everyone drawing for them (the filtered
// people ahead plus the user), clamped to [0, 100].
func singleProbability(singles, finalAhead int) int {
	if finalAhead < 0 {
		finalAhead = 0
	}
	p := 100 * singles / (finalAhead + 1)
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}
