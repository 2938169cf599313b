package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Room is one of the venue's rooms. The set is closed and venue-specific:
// schedule entries referencing a name outside this list are rejected when
// the schedule document is parsed.
type Room string

const (
	RoomForumHall   Room = "Forum Hall"
	RoomSouthHall2A Room = "South Hall 2A"
	RoomSouthHall2B Room = "South Hall 2B"
	RoomNorthHall   Room = "North Hall"
	RoomTerrace2A   Room = "Terrace 2A"
	RoomTerrace2B   Room = "Terrace 2B"
	RoomClubA       Room = "Club A"
	RoomClubB       Room = "Club B"
	RoomClubC       Room = "Club C"
	RoomClubD       Room = "Club D"
	RoomClubE       Room = "Club E"
	RoomExhibitHall Room = "Exhibit Hall"
)

// ErrUnknownRoom is returned when a room name is not part of the venue.
var ErrUnknownRoom = errors.New("unknown room")

// allRooms lists the venue rooms in canonical order, main halls first.
var allRooms = []Room{
	RoomForumHall,
	RoomSouthHall2A,
	RoomSouthHall2B,
	RoomNorthHall,
	RoomTerrace2A,
	RoomTerrace2B,
	RoomClubA,
	RoomClubB,
	RoomClubC,
	RoomClubD,
	RoomClubE,
	RoomExhibitHall,
}

// AllRooms returns the venue rooms in canonical order.
func AllRooms() []Room {
	return slices.Clone(allRooms)
}

// ParseRoom resolves a display name to a Room, or reports ErrUnknownRoom.
func ParseRoom(name string) (Room, error) {
	r := Room(name)
	if slices.Contains(allRooms, r) {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoom, name)
}

// SortRooms orders rooms in place in canonical venue order. Day room lists
// are sorted this way before serialization so output stays stable.
func SortRooms(rooms []Room) {
	slices.SortFunc(rooms, func(a, b Room) int {
		return slices.Index(allRooms, a) - slices.Index(allRooms, b)
	})
}
