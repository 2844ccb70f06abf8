package repository

import (
	"context"
	"time"

	"moffatbay/internal/domain"

	"gorm.io/gorm"
)

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

func (r *RoomTypeRepository) List(ctx context.Context) ([]domain.RoomType, error) {
	var out []domain.RoomType
	tx := r.db.WithContext(ctx).Order("name").Find(&out)
	return out, tx.Error
}

func (r *RoomTypeRepository) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	var rt domain.RoomType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// CountUsable counts the physical capacity of a room type for a stay
// starting at checkIn: every room not under maintenance, plus rooms whose
// maintenance window ends before check-in. A maintenance room without an
// end date is never counted.
func (r *RoomRepository) CountUsable(ctx context.Context, roomTypeID int64, checkIn time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Room{}).
		Where("room_type_id = ?", roomTypeID).
		Where(
			r.db.Where("status <> ?", domain.RoomMaintenance).
				Or("status = ? AND maintenance_until < ?", domain.RoomMaintenance, checkIn),
		).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}
