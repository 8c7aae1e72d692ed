package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/reposekdz/eastgate-sub004/models"
)

// MemoryStore is an in-process Store used by the engine tests and by
// local tooling that runs without MySQL. It mirrors the production
// locking discipline with one mutex per room, so the concurrent
// booking race behaves the same way it does against row locks.
//
// It is a plain map store: InRoomTx provides mutual exclusion but not
// rollback, which the tests do not rely on.
type MemoryStore struct {
	mu sync.Mutex

	roomLocks map[uint]*sync.Mutex

	rooms     map[uint]models.Room
	bookings  map[uint]models.Booking
	overrides map[uint]models.PriceOverride
	branches  map[uint]models.Branch
	staff     map[string]models.StaffAccount

	nextRoomID     uint
	nextBookingID  uint
	nextOverrideID uint
	nextBranchID   uint
	nextStaffID    uint
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		roomLocks: make(map[uint]*sync.Mutex),
		rooms:     make(map[uint]models.Room),
		bookings:  make(map[uint]models.Booking),
		overrides: make(map[uint]models.PriceOverride),
		branches:  make(map[uint]models.Branch),
		staff:     make(map[string]models.StaffAccount),
	}
}

func (s *MemoryStore) InRoomTx(ctx context.Context, roomID uint, fn func(tx Store) error) error {
	s.mu.Lock()
	if _, ok := s.rooms[roomID]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(s)
}

// ---------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------

func (s *MemoryStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *MemoryStore) ListRooms(ctx context.Context, branchID uint) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if branchID != 0 && room.BranchID != branchID {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rooms {
		if existing.BranchID == room.BranchID && existing.Number == room.Number {
			return ErrDuplicate
		}
	}
	s.nextRoomID++
	room.ID = s.nextRoomID
	room.CreatedAt = time.Now().UTC()
	room.UpdatedAt = room.CreatedAt
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *MemoryStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return ErrNotFound
	}
	room.UpdatedAt = time.Now().UTC()
	s.rooms[room.ID] = *room
	return nil
}

func (s *MemoryStore) UpdateRoomStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	room.Status = status
	room.UpdatedAt = time.Now().UTC()
	s.rooms[id] = room
	return nil
}

// ---------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------

func (s *MemoryStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if room, ok := s.rooms[booking.RoomID]; ok {
		booking.Room = room
	}
	return &booking, nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := make([]models.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })
	return bookings, nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bookings {
		if existing.ReferenceCode != "" && existing.ReferenceCode == booking.ReferenceCode {
			return ErrDuplicate
		}
	}
	s.nextBookingID++
	booking.ID = s.nextBookingID
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	stored := *booking
	stored.Room = models.Room{}
	s.bookings[booking.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; !ok {
		return ErrNotFound
	}
	booking.UpdatedAt = time.Now().UTC()
	stored := *booking
	stored.Room = models.Room{}
	s.bookings[booking.ID] = stored
	return nil
}

func (s *MemoryStore) CountActiveOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, booking := range s.bookings {
		if booking.RoomID != roomID || booking.ID == excludeID || !booking.Status.Active() {
			continue
		}
		if models.IntervalsOverlap(booking.CheckIn, booking.CheckOut, checkIn, checkOut) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountCheckedIn(ctx context.Context, roomID uint, excludeID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, booking := range s.bookings {
		if booking.RoomID == roomID && booking.ID != excludeID && booking.Status == models.BookingStatusCheckedIn {
			count++
		}
	}
	return count, nil
}

// ---------------------------------------------------------------
// Price overrides
// ---------------------------------------------------------------

func (s *MemoryStore) ActiveOverride(ctx context.Context, roomID, branchID uint) (*models.PriceOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *models.PriceOverride
	for id := range s.overrides {
		override := s.overrides[id]
		if override.RoomID == roomID && override.BranchID == branchID && override.Active {
			if found == nil || override.ID > found.ID {
				o := override
				found = &o
			}
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (s *MemoryStore) SaveOverride(ctx context.Context, override *models.PriceOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if override.ID == 0 {
		s.nextOverrideID++
		override.ID = s.nextOverrideID
		override.CreatedAt = time.Now().UTC()
	}
	override.UpdatedAt = time.Now().UTC()
	s.overrides[override.ID] = *override
	return nil
}

// ---------------------------------------------------------------
// Branches, staff
// ---------------------------------------------------------------

func (s *MemoryStore) GetBranch(ctx context.Context, id uint) (*models.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	branch, ok := s.branches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &branch, nil
}

func (s *MemoryStore) ListBranches(ctx context.Context) ([]models.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	branches := make([]models.Branch, 0, len(s.branches))
	for _, branch := range s.branches {
		branches = append(branches, branch)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].ID < branches[j].ID })
	return branches, nil
}

func (s *MemoryStore) CreateBranch(ctx context.Context, branch *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.branches {
		if existing.Code == branch.Code {
			return ErrDuplicate
		}
	}
	s.nextBranchID++
	branch.ID = s.nextBranchID
	branch.CreatedAt = time.Now().UTC()
	branch.UpdatedAt = branch.CreatedAt
	s.branches[branch.ID] = *branch
	return nil
}

func (s *MemoryStore) GetStaffByUsername(ctx context.Context, username string) (*models.StaffAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.staff[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &staff, nil
}

func (s *MemoryStore) CreateStaff(ctx context.Context, staff *models.StaffAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[staff.Username]; ok {
		return ErrDuplicate
	}
	s.nextStaffID++
	staff.ID = s.nextStaffID
	staff.CreatedAt = time.Now().UTC()
	staff.UpdatedAt = staff.CreatedAt
	s.staff[staff.Username] = *staff
	return nil
}
