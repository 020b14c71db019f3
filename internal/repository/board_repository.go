package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create persists the board together with any pre-populated columns and
// members in a single transaction.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetDetailed loads the board with its full tree: columns in order, tasks with
// tags and assignees, members and owner.
func (r *BoardRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Columns.Tasks.Tags").
		Preload("Columns.Tasks.Assignee").
		Preload("Members").
		Preload("Owner").
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// ListForUser returns boards the user owns or is a member of, most recently
// updated first, each with its column/task tree and member list.
func (r *BoardRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Columns.Tasks.Tags").
		Preload("Members").
		Where("owner_id = ? OR id IN (?)",
			userID,
			r.db.Table("board_members").Select("board_id").Where("user_id = ?", userID),
		).
		Order("updated_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Omit("Members", "Columns", "Owner").Save(board).Error
}

// DeleteCascade removes the board and everything it owns: tag associations,
// tasks, columns and membership rows.
func (r *BoardRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var columnIDs []uuid.UUID
		if err := tx.Model(&model.Column{}).Where("board_id = ?", id).Pluck("id", &columnIDs).Error; err != nil {
			return err
		}

		if len(columnIDs) > 0 {
			var taskIDs []uuid.UUID
			if err := tx.Model(&model.Task{}).Where("column_id IN ?", columnIDs).Pluck("id", &taskIDs).Error; err != nil {
				return err
			}
			if len(taskIDs) > 0 {
				if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ?", taskIDs).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", taskIDs).Delete(&model.Task{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("board_id = ?", id).Delete(&model.Column{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec("DELETE FROM board_members WHERE board_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Board{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}

// IsMember reports whether the user has a membership row for the board.
// Board owners are always members via the row created at board creation.
func (r *BoardRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("board_members").
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *BoardRepository) AddMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO board_members (board_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		boardID, userID,
	).Error
}

// RemoveMember is a no-op when the user is not currently a member.
func (r *BoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM board_members WHERE board_id = ? AND user_id = ?",
		boardID, userID,
	).Error
}
