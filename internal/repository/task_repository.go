package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// resolveTags finds or creates a tag row per name. Names are case-sensitive
// and globally unique, so concurrent creates fall back to a re-read.
func resolveTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				if readErr := tx.Where("name = ?", name).First(&tag).Error; readErr != nil {
					return nil, err
				}
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func attachTags(tx *gorm.DB, taskID uuid.UUID, tags []model.Tag) error {
	for _, tag := range tags {
		if err := tx.Exec(
			"INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			taskID, tag.ID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateWithTags creates the task and connects its tag set, creating missing
// tags by name, all within one transaction.
func (r *TaskRepository) CreateWithTags(ctx context.Context, task *model.Task, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		if err := attachTags(tx, task.ID, tags); err != nil {
			return err
		}
		task.Tags = tags
		return nil
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Assignee").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetDetailed additionally loads the task's column and that column's board.
func (r *TaskRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Assignee").
		Preload("Column").
		Preload("Column.Board").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// UpdateWithTags saves the task's scalar fields and, when tagNames is non-nil,
// replaces the entire tag set (clear then reconnect-or-create).
func (r *TaskRepository) UpdateWithTags(ctx context.Context, task *model.Task, tagNames *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit(clause.Associations).Save(task)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}

		if tagNames == nil {
			return nil
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", task.ID).Error; err != nil {
			return err
		}
		tags, err := resolveTags(tx, *tagNames)
		if err != nil {
			return err
		}
		if err := attachTags(tx, task.ID, tags); err != nil {
			return err
		}
		task.Tags = tags
		return nil
	})
}

// Move reconnects the task to a new column.
func (r *TaskRepository) Move(ctx context.Context, taskID, columnID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("column_id", columnID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteCascade removes the task and its tag associations.
func (r *TaskRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}
