package services

import (
	"context"
	"strings"

	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/repository"
)

// RoomService is the room registry: branch and room records plus the
// cached status field collaborators update. It never makes
// availability decisions — those belong to the booking timeline.
type RoomService struct {
	store repository.Store
}

func NewRoomService(store repository.Store) *RoomService {
	return &RoomService{store: store}
}

func (s *RoomService) List(ctx context.Context, branchID uint) ([]models.Room, error) {
	return s.store.ListRooms(ctx, branchID)
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	return s.store.GetRoom(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		return validationErr("room number is required")
	}
	if room.BranchID == 0 {
		return validationErr("branchId is required")
	}
	if _, err := s.store.GetBranch(ctx, room.BranchID); err != nil {
		return err
	}
	if room.NightlyRate < 0 {
		return validationErr("nightlyRate must not be negative")
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	} else if !room.Status.Valid() {
		return validationErr("unknown room status " + string(room.Status))
	}
	return s.store.CreateRoom(ctx, room)
}

func (s *RoomService) Update(ctx context.Context, room *models.Room) error {
	if !room.Status.Valid() {
		return validationErr("unknown room status " + string(room.Status))
	}
	if _, err := s.store.GetRoom(ctx, room.ID); err != nil {
		return err
	}
	return s.store.UpdateRoom(ctx, room)
}

// SetStatus flips the cached room status. This is the endpoint
// housekeeping uses after turnover (cleaning -> available) and staff
// use for maintenance blocks. Input casing is normalized; anything
// outside the enum is rejected.
func (s *RoomService) SetStatus(ctx context.Context, id uint, raw string) (*models.Room, error) {
	status := models.NormalizeRoomStatus(raw)
	if status == "" {
		return nil, validationErr("unknown room status " + raw)
	}
	if err := s.store.UpdateRoomStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.store.GetRoom(ctx, id)
}

// SetPriceOverride installs a branch/room rate override. Any previous
// active override for the pair is deactivated first so at most one row
// applies.
func (s *RoomService) SetPriceOverride(ctx context.Context, roomID uint, nightlyRate int64, active bool) (*models.PriceOverride, error) {
	if nightlyRate <= 0 {
		return nil, validationErr("nightlyRate must be positive")
	}
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if previous, err := s.store.ActiveOverride(ctx, room.ID, room.BranchID); err == nil {
		previous.Active = false
		if err := s.store.SaveOverride(ctx, previous); err != nil {
			return nil, err
		}
	}

	override := &models.PriceOverride{
		RoomID:      room.ID,
		BranchID:    room.BranchID,
		NightlyRate: nightlyRate,
		Active:      active,
	}
	if err := s.store.SaveOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

func (s *RoomService) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return s.store.ListBranches(ctx)
}

func (s *RoomService) CreateBranch(ctx context.Context, branch *models.Branch) error {
	branch.Name = strings.TrimSpace(branch.Name)
	branch.Code = strings.TrimSpace(branch.Code)
	if branch.Name == "" || branch.Code == "" {
		return validationErr("branch name and code are required")
	}
	return s.store.CreateBranch(ctx, branch)
}
