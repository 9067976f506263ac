package estimator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoster_SortsByDrawTime(t *testing.T) {
	path := writeCSV(t, "roster.csv", "\uFEFF"+`PUID,Draw Time,Last Name,First Name
111,4/22/25 11:00 AM,Lee,Jordan
222,4/22/25 9:30 AM,Alam,Ammaar
333,4/22/25 10:15 AM,Chen,Maya
`)

	roster, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, roster, 3)

	assert.Equal(t, "222", roster[0].PUID)
	assert.Equal(t, "333", roster[1].PUID)
	assert.Equal(t, "111", roster[2].PUID)
	assert.Equal(t, "Ammaar", roster[0].FirstName)
	assert.Equal(t, "4/22/25 9:30 AM", roster[0].DrawTime)
}

func TestLoadRoster_SkipsUnparseableTimes(t *testing.T) {
	path := writeCSV(t, "roster.csv", `PUID,Draw Time,Last Name,First Name
111,not a time,Lee,Jordan
222,4/22/25 9:30 AM,Alam,Ammaar
`)

	roster, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "222", roster[0].PUID)
}

func TestLoadRoster_MissingColumns(t *testing.T) {
	path := writeCSV(t, "roster.csv", `PUID,Draw Time
111,4/22/25 9:30 AM
`)

	_, err := LoadRoster(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Last Name")
}

func TestLoadRoster_MalformedRecord(t *testing.T) {
	// A stray quote mid-file must fail the whole load, not silently drop
	// every row after it.
	path := writeCSV(t, "roster.csv", `PUID,Draw Time,Last Name,First Name
111,4/22/25 9:30 AM,Lee,Jordan
2"22,4/22/25 10:00 AM,Alam,Ammaar
333,4/22/25 10:15 AM,Chen,Maya
`)

	_, err := LoadRoster(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read roster")
}

func TestLoadRooms_MalformedRecord(t *testing.T) {
	path := writeCSV(t, "rooms.csv", `College,Dorm,Room,Type
Upperclass,Spelman,101,SINGLE
Upperclass,Spel"man,102,DOUBLE
Upperclass,Holder,201,SINGLE
`)

	_, err := LoadRooms(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rooms list")
}

func TestSpelmanCapacity(t *testing.T) {
	path := writeCSV(t, "rooms.csv", `College,Dorm,Room,Type
Upperclass,Spelman,101,SINGLE
Upperclass,Spelman,102,DOUBLE
Upperclass,Spelman,103,QUAD
Upperclass,Spelman,104,LOFT
Upperclass,Holder,201,SINGLE
Butler,Spelman,301,DOUBLE
`)

	rooms, err := LoadRooms(path)
	require.NoError(t, err)

	// 1 + 2 + 4, unknown LOFT counts zero, other dorms/colleges ignored.
	assert.Equal(t, 7, SpelmanCapacity(rooms))
	// Spelman 101 and Holder 201.
	assert.Equal(t, 2, AvailableSingles(rooms))
}

func entry(puid, first, last string) Entry {
	return Entry{PUID: puid, FirstName: first, LastName: last, DrawTime: "4/22/25 9:30 AM"}
}

func TestEstimate(t *testing.T) {
	in := Inputs{
		Upperclass: []Entry{
			entry("p1", "Alex", "One"),
			entry("p2", "Blair", "Two"),
			entry("p3", "Casey", "Three"),
			entry("p4", "Drew", "Four"),
			entry("p5", "Emery", "Five"),
			entry("u1", "Ammaar", "Alam"),
			entry("p7", "Quinn", "Seven"), // behind the user, never counted
		},
		Rooms: []Room{
			{College: "Upperclass", Dorm: "Spelman", Room: "101", Type: "SINGLE"},
			{College: "Upperclass", Dorm: "Spelman", Room: "102", Type: "DOUBLE"},
			{College: "Upperclass", Dorm: "Holder", Room: "201", Type: "SINGLE"},
			{College: "Upperclass", Dorm: "Holder", Room: "202", Type: "SINGLE"},
		},
		// Capacity is 3, so the top three Spelman drawers are removed if ahead.
		Spelman: []Entry{
			entry("p1", "Alex", "One"),
			entry("p3", "Casey", "Three"),
			entry("x1", "Not", "Ahead"),
			entry("p4", "Drew", "Four"), // fourth, beyond capacity
		},
		OtherRes: [][]Entry{
			{entry("p2", "Blair", "Two"), entry("x2", "Also Not", "Ahead")},
		},
		ResCollegeTopN: 2,
	}

	snap, err := Estimate(in, "ammaar", "ALAM")
	require.NoError(t, err)

	assert.Equal(t, "Ammaar Alam", snap.UserName)
	assert.Equal(t, "u1", snap.PUID)
	assert.Equal(t, 6, snap.RawPosition)
	assert.Equal(t, 5, snap.InitialAhead)
	assert.Equal(t, 2, snap.RemovedSpelman)  // p1 and p3
	assert.Equal(t, 1, snap.RemovedOtherRes) // p2
	assert.Equal(t, 3, snap.SpelmanCapacity)
	assert.Equal(t, 2, snap.OtherResTopN)
	assert.Equal(t, 2, snap.FinalPositionEstimate)
	assert.Equal(t, 3, snap.AvailableSingles)
	// 100 * 3 / (2 + 1)
	assert.Equal(t, 100, snap.ProbabilitySingle)
	assert.NoError(t, snap.Validate())
}

func TestEstimate_SpelmanWinsOverlap(t *testing.T) {
	in := Inputs{
		Upperclass: []Entry{
			entry("p1", "Alex", "One"),
			entry("u1", "Ammaar", "Alam"),
		},
		Rooms: []Room{
			{College: "Upperclass", Dorm: "Spelman", Room: "101", Type: "SINGLE"},
		},
		Spelman:        []Entry{entry("p1", "Alex", "One")},
		OtherRes:       [][]Entry{{entry("p1", "Alex", "One")}},
		ResCollegeTopN: 5,
	}

	snap, err := Estimate(in, "Ammaar", "Alam")
	require.NoError(t, err)

	assert.Equal(t, 1, snap.RemovedSpelman)
	assert.Equal(t, 0, snap.RemovedOtherRes)
	assert.Equal(t, 0, snap.FinalPositionEstimate)
}

func TestEstimate_UserNotFound(t *testing.T) {
	in := Inputs{Upperclass: []Entry{entry("p1", "Alex", "One")}}

	_, err := Estimate(in, "Nobody", "Here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEstimate_NoAssumptionData(t *testing.T) {
	// No rooms, no Spelman roster, no other colleges: nothing is removed and
	// the singles count is zero.
	in := Inputs{
		Upperclass: []Entry{
			entry("p1", "Alex", "One"),
			entry("u1", "Ammaar", "Alam"),
		},
		ResCollegeTopN: 50,
	}

	snap, err := Estimate(in, "Ammaar", "Alam")
	require.NoError(t, err)

	assert.Equal(t, 1, snap.InitialAhead)
	assert.Equal(t, 0, snap.RemovedSpelman)
	assert.Equal(t, 0, snap.RemovedOtherRes)
	assert.Equal(t, 1, snap.FinalPositionEstimate)
	assert.Equal(t, 0, snap.ProbabilitySingle)
}

func TestTopPUIDs_DuplicateConsumesSlot(t *testing.T) {
	roster := []Entry{
		entry("p1", "Alex", "One"),
		entry("p1", "Alex", "One"), // duplicate row still takes a spot
		entry("p2", "Blair", "Two"),
	}

	puids := topPUIDs(roster, 2)
	assert.True(t, puids["p1"])
	assert.False(t, puids["p2"])

	puids = topPUIDs(roster, 3)
	assert.True(t, puids["p2"])
}

func TestSingleProbability(t *testing.T) {
	tests := []struct {
		singles, finalAhead, want int
	}{
		{200, 300, 66}, // floor(100*200/301)
		{0, 10, 0},
		{10, 0, 100},
		{50, 49, 100},
		{50, 50, 98},
		{1, 99, 1},
	}

	for _, tt := range tests {
		got := singleProbability(tt.singles, tt.finalAhead)
		assert.Equal(t, tt.want, got, "singles=%d finalAhead=%d", tt.singles, tt.finalAhead)
	}
}
