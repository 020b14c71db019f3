package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// DefaultColumnTitles are created with every new board, in this order.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Review", "Done"}

// BoardService implements every board mutation: boards, members, columns,
// tasks and tags. Notifications are emitted after the primary transaction
// commits; a failed notification never rolls back or fails the mutation.
type BoardService struct {
	boards        *repository.BoardRepository
	columns       *repository.ColumnRepository
	tasks         *repository.TaskRepository
	users         repository.UserRepositoryInterface
	notifications *repository.NotificationRepository
	mailer        *Mailer
}

func NewBoardService(
	boards *repository.BoardRepository,
	columns *repository.ColumnRepository,
	tasks *repository.TaskRepository,
	users repository.UserRepositoryInterface,
	notifications *repository.NotificationRepository,
	mailer *Mailer,
) *BoardService {
	return &BoardService{
		boards:        boards,
		columns:       columns,
		tasks:         tasks,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
	}
}

func (s *BoardService) notify(ctx context.Context, userID uuid.UUID, title, description string) {
	notification := &model.Notification{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		log.Printf("Failed to create %q notification for user %s: %v", title, userID, err)
	}
}

// CreateBoard creates the board, its four default columns and the owner's
// membership atomically.
func (s *BoardService) CreateBoard(ctx context.Context, title, description string, ownerID uuid.UUID) (*model.Board, error) {
	if title == "" {
		return nil, apperr.Validationf("Title and user ID are required")
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperr.NotFoundf("User not found")
	}

	columns := make([]model.Column, len(DefaultColumnTitles))
	for i, columnTitle := range DefaultColumnTitles {
		columns[i] = model.Column{Title: columnTitle, Order: i}
	}

	board := &model.Board{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Members:     []model.User{*owner},
		Columns:     columns,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) ListBoards(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return s.boards.ListForUser(ctx, userID)
}

func (s *BoardService) GetBoard(ctx context.Context, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetDetailed(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFoundf("Board not found")
	}
	return board, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, boardID uuid.UUID, title, description *string) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFoundf("Board not found")
	}

	if title != nil {
		board.Title = *title
	}
	if description != nil {
		board.Description = *description
	}
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	err := s.boards.DeleteCascade(ctx, boardID)
	if errors.Is(err, repository.ErrBoardNotFound) {
		return apperr.NotFoundf("Board not found")
	}
	return err
}

// AddMember connects the user looked up by email and notifies them. Inviting
// an existing member is a conflict and emits nothing.
func (s *BoardService) AddMember(ctx context.Context, boardID uuid.UUID, email, role string) (*model.Board, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFoundf("User not found")
	}

	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFoundf("Board not found")
	}

	isMember, err := s.boards.IsMember(ctx, boardID, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperr.Conflictf("User is already a member of this board")
	}

	if err := s.boards.AddMember(ctx, boardID, user.ID); err != nil {
		return nil, err
	}

	s.notify(ctx, user.ID, "Board Invitation",
		fmt.Sprintf("You've been invited to collaborate on board %q", board.Title))
	if s.mailer != nil {
		if err := s.mailer.SendInvitation(user.Email, board.Title); err != nil {
			log.Printf("Failed to send invitation email to %s: %v", user.Email, err)
		}
	}

	return s.GetBoard(ctx, boardID)
}

// RemoveMember disconnects the membership. Removing a user who is not a
// member is a no-op.
func (s *BoardService) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFoundf("Board not found")
	}

	if err := s.boards.RemoveMember(ctx, boardID, userID); err != nil {
		return nil, err
	}
	return s.GetBoard(ctx, boardID)
}

// AddColumn appends a column at max(order)+1, or 0 on a board without columns.
func (s *BoardService) AddColumn(ctx context.Context, title string, boardID uuid.UUID) (*model.Column, error) {
	if title == "" {
		return nil, apperr.Validationf("Title and board ID are required")
	}

	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFoundf("Board not found")
	}

	order, err := s.columns.NextOrder(ctx, boardID)
	if err != nil {
		return nil, err
	}

	column := &model.Column{
		BoardID: boardID,
		Title:   title,
		Order:   order,
	}
	if err := s.columns.Create(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *BoardService) UpdateColumn(ctx context.Context, columnID uuid.UUID, title string) (*model.Column, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperr.NotFoundf("Column not found")
	}

	if title != "" {
		column.Title = title
	}
	if err := s.columns.Update(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *BoardService) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	err := s.columns.DeleteCascade(ctx, columnID)
	if errors.Is(err, repository.ErrColumnNotFound) {
		return apperr.NotFoundf("Column not found")
	}
	return err
}

type CreateTaskInput struct {
	Title       string
	ColumnID    uuid.UUID
	Description *string
	AssigneeID  *uuid.UUID
	Tags        []string
}

// CreateTask creates the task with its tag set in one transaction, then
// notifies the assignee when one was named.
func (s *BoardService) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if in.Title == "" {
		return nil, apperr.Validationf("Title and column ID are required")
	}

	column, err := s.columns.GetByID(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperr.NotFoundf("Column not found")
	}

	task := &model.Task{
		Title:       in.Title,
		ColumnID:    in.ColumnID,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
	}
	if err := s.tasks.CreateWithTags(ctx, task, in.Tags); err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		s.notifyAssigned(ctx, *task.AssigneeID, task.Title, task.ColumnID)
		task.Assignee, _ = s.users.GetByID(ctx, *task.AssigneeID)
	}
	return task, nil
}

func (s *BoardService) notifyAssigned(ctx context.Context, assigneeID uuid.UUID, taskTitle string, columnID uuid.UUID) {
	column, err := s.columns.GetWithBoard(ctx, columnID)
	if err != nil || column == nil || column.Board == nil {
		log.Printf("Skipping assignment notification, column %s lookup failed: %v", columnID, err)
		return
	}
	s.notify(ctx, assigneeID, "Task Assigned",
		fmt.Sprintf("You've been assigned to %q in board %q", taskTitle, column.Board.Title))
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	ColumnID    *uuid.UUID
	Assignee    OptionalID
	Tags        *[]string
}

// UpdateTask applies a partial update. A present ColumnID moves the task; the
// assignee field is tri-state (absent = keep, null = unassign, id = reassign);
// a present tag list replaces the entire set. A changed assignee is notified.
func (s *BoardService) UpdateTask(ctx context.Context, taskID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperr.NotFoundf("Task not found")
		}
		return nil, err
	}
	previousAssignee := task.AssigneeID

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = in.Description
	}
	if in.ColumnID != nil {
		column, err := s.columns.GetByID(ctx, *in.ColumnID)
		if err != nil {
			return nil, err
		}
		if column == nil {
			return nil, apperr.NotFoundf("Column not found")
		}
		task.ColumnID = *in.ColumnID
	}
	if in.Assignee.Set {
		task.AssigneeID = in.Assignee.Value
	}

	if err := s.tasks.UpdateWithTags(ctx, task, in.Tags); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperr.NotFoundf("Task not found")
		}
		return nil, err
	}

	if in.Assignee.Set && task.AssigneeID != nil &&
		(previousAssignee == nil || *previousAssignee != *task.AssigneeID) {
		s.notifyAssigned(ctx, *task.AssigneeID, task.Title, task.ColumnID)
	}

	if task.AssigneeID != nil {
		task.Assignee, _ = s.users.GetByID(ctx, *task.AssigneeID)
	} else {
		task.Assignee = nil
	}
	return task, nil
}

// MoveTask reconnects the task to the given column and, when the task is
// assigned, notifies the assignee about the move.
func (s *BoardService) MoveTask(ctx context.Context, taskID, columnID uuid.UUID) (*model.Task, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperr.NotFoundf("Column not found")
	}

	if err := s.tasks.Move(ctx, taskID, columnID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperr.NotFoundf("Task not found")
		}
		return nil, err
	}

	task, err := s.tasks.GetDetailed(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssigneeID != nil && task.Column != nil && task.Column.Board != nil {
		s.notify(ctx, *task.AssigneeID, "Task Moved",
			fmt.Sprintf("Task %q has been moved to %q in board %q",
				task.Title, task.Column.Title, task.Column.Board.Title))
	}
	return task, nil
}

func (s *BoardService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	err := s.tasks.DeleteCascade(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return apperr.NotFoundf("Task not found")
	}
	return err
}
