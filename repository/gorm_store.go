package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reposekdz/eastgate-sub004/models"
)

// GormStore is the MySQL-backed Store. Booking-write transactions take
// a SELECT ... FOR UPDATE lock on the room row, which serializes the
// conflict-check-then-insert sequence per room while leaving other
// rooms untouched.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InRoomTx(ctx context.Context, roomID uint, fn func(tx Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return fn(&GormStore{db: tx})
	})
	return translateErr(err)
}

// ---------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------

func (s *GormStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &room, nil
}

func (s *GormStore) ListRooms(ctx context.Context, branchID uint) ([]models.Room, error) {
	var rooms []models.Room
	q := s.db.WithContext(ctx).Order("branch_id, room_number")
	if branchID != 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	return translateErr(s.db.WithContext(ctx).Create(room).Error)
}

func (s *GormStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	return translateErr(s.db.WithContext(ctx).Save(room).Error)
}

func (s *GormStore) UpdateRoomStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Preload("Room").First(&booking, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &booking, nil
}

func (s *GormStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Preload("Room").Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return translateErr(s.db.WithContext(ctx).Create(booking).Error)
}

func (s *GormStore) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	return translateErr(s.db.WithContext(ctx).Save(booking).Error)
}

func (s *GormStore) CountActiveOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveStatuses()).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

func (s *GormStore) CountCheckedIn(ctx context.Context, roomID uint, excludeID uint) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", roomID, models.BookingStatusCheckedIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

// ---------------------------------------------------------------
// Price overrides
// ---------------------------------------------------------------

func (s *GormStore) ActiveOverride(ctx context.Context, roomID, branchID uint) (*models.PriceOverride, error) {
	var override models.PriceOverride
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND branch_id = ? AND active = ?", roomID, branchID, true).
		Order("id DESC").
		First(&override).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &override, nil
}

func (s *GormStore) SaveOverride(ctx context.Context, override *models.PriceOverride) error {
	return translateErr(s.db.WithContext(ctx).Save(override).Error)
}

// ---------------------------------------------------------------
// Branches, staff
// ---------------------------------------------------------------

func (s *GormStore) GetBranch(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := s.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &branch, nil
}

func (s *GormStore) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := s.db.WithContext(ctx).Order("id").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (s *GormStore) CreateBranch(ctx context.Context, branch *models.Branch) error {
	return translateErr(s.db.WithContext(ctx).Create(branch).Error)
}

func (s *GormStore) GetStaffByUsername(ctx context.Context, username string) (*models.StaffAccount, error) {
	var staff models.StaffAccount
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&staff).Error; err != nil {
		return nil, translateErr(err)
	}
	return &staff, nil
}

func (s *GormStore) CreateStaff(ctx context.Context, staff *models.StaffAccount) error {
	return translateErr(s.db.WithContext(ctx).Create(staff).Error)
}

// translateErr maps driver errors onto the package sentinels so
// callers never inspect MySQL error numbers or message text.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062: // duplicate entry
			return ErrDuplicate
		case 1213, 1205: // deadlock, lock wait timeout
			return ErrTxConflict
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
		return ErrDuplicate
	}
	return err
}

// IsRetryable reports whether a failed write transaction may be
// re-run. Only conflicts between concurrent writers qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTxConflict)
}
