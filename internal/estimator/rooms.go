package estimator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ammaar-Alam/draw-calculator/internal/logger"
)

// Room is one row of the available-rooms CSV.
type Room struct {
	College string
	Dorm    string
	Room    string
	Type    string
}

// roomTypeSpots maps a room type to the number of students it houses.
var roomTypeSpots = map[string]int{
	"SINGLE":  1,
	"DOUBLE":  2,
	"TRIPLE":  3,
	"QUAD":    4,
	"QUINT":   5,
	"6PERSON": 6,
}

// LoadRooms reads the available-rooms CSV (College, Dorm, Room, Type).
func LoadRooms(path string) ([]Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rooms list %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms header: %w", err)
	}
	cols, err := columnIndex(header, "College", "Dorm", "Room", "Type")
	if err != nil {
		return nil, fmt.Errorf("rooms list %s: %w", path, err)
	}

	var rooms []Room
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rooms list %s: %w", path, err)
		}
		rooms = append(rooms, Room{
			College: field(record, cols["College"]),
			Dorm:    field(record, cols["Dorm"]),
			Room:    field(record, cols["Room"]),
			Type:    field(record, cols["Type"]),
		})
	}
	return rooms, nil
}

// SpelmanCapacity sums the student spots across Upperclass Spelman rooms.
// Unknown room types contribute zero spots and are logged.
func SpelmanCapacity(rooms []Room) int {
	capacity := 0
	for _, room := range rooms {
		if !strings.EqualFold(room.College, "Upperclass") || !strings.EqualFold(room.Dorm, "Spelman") {
			continue
		}
		spots, ok := roomTypeSpots[strings.ToUpper(room.Type)]
		if !ok && room.Type != "" {
			logger.Warn("Unknown room type %q for Spelman room %s, assuming 0 capacity", room.Type, room.Room)
		}
		capacity += spots
	}
	return capacity
}

// AvailableSingles counts single rooms in the upperclass draw.
func AvailableSingles(rooms []Room) int {
	count := 0
	for _, room := range rooms {
		if strings.EqualFold(room.College, "Upperclass") && strings.EqualFold(room.Type, "SINGLE") {
			count++
		}
	}
	return count
}
