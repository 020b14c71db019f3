package service_test

import (
	"context"
	"fmt"
	"testing"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoard_DefaultColumns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "Q3 planning", owner.ID)
	require.NoError(t, err)

	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)

	require.Len(t, loaded.Columns, 4)
	for i, title := range []string{"To Do", "In Progress", "Review", "Done"} {
		assert.Equal(t, title, loaded.Columns[i].Title)
		assert.Equal(t, i, loaded.Columns[i].Order)
	}

	assert.Equal(t, owner.ID, loaded.OwnerID)
	require.Len(t, loaded.Members, 1)
	assert.Equal(t, owner.ID, loaded.Members[0].ID)
}

func TestCreateBoard_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	_, err := env.boards.CreateBoard(ctx, "", "", owner.ID)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = env.boards.CreateBoard(ctx, "Roadmap", "", uuid.New())
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, "User not found", apperr.Message(err))
}

func TestGetBoard_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.boards.GetBoard(context.Background(), uuid.New())
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, "Board not found", apperr.Message(err))
}

func TestListBoards_MemberSeesSharedBoard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	invitee := env.createUser(t, "invitee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Shared", "", owner.ID)
	require.NoError(t, err)
	_, err = env.boards.CreateBoard(ctx, "Private", "", owner.ID)
	require.NoError(t, err)

	_, err = env.boards.AddMember(ctx, board.ID, invitee.Email, "member")
	require.NoError(t, err)

	ownerBoards, err := env.boards.ListBoards(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, ownerBoards, 2)

	inviteeBoards, err := env.boards.ListBoards(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, inviteeBoards, 1)
	assert.Equal(t, board.ID, inviteeBoards[0].ID)
}

func TestUpdateBoard_PartialFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "Original", owner.ID)
	require.NoError(t, err)

	title := "Renamed"
	updated, err := env.boards.UpdateBoard(ctx, board.ID, &title, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Original", updated.Description)
}

func TestAddMember_NotifiesInvitee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	invitee := env.createUser(t, "invitee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)

	updated, err := env.boards.AddMember(ctx, board.ID, invitee.Email, "member")
	require.NoError(t, err)
	assert.Len(t, updated.Members, 2)

	notifications := env.userNotifications(t, invitee.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Board Invitation", notifications[0].Title)
	assert.Equal(t, `You've been invited to collaborate on board "Roadmap"`, notifications[0].Description)
	assert.False(t, notifications[0].Read)
}

func TestAddMember_AlreadyMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	invitee := env.createUser(t, "invitee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)

	_, err = env.boards.AddMember(ctx, board.ID, invitee.Email, "member")
	require.NoError(t, err)

	_, err = env.boards.AddMember(ctx, board.ID, invitee.Email, "member")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "User is already a member of this board", apperr.Message(err))

	// The rejected invite emits no second notification.
	assert.Len(t, env.userNotifications(t, invitee.ID), 1)
}

func TestAddMember_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)

	_, err = env.boards.AddMember(ctx, board.ID, "nobody@example.com", "member")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, "User not found", apperr.Message(err))
}

func TestRemoveMember_NonMemberIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	stranger := env.createUser(t, "stranger@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)

	updated, err := env.boards.RemoveMember(ctx, board.ID, stranger.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 1)
}

func TestRemoveMember_DropsMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	invitee := env.createUser(t, "invitee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	_, err = env.boards.AddMember(ctx, board.ID, invitee.Email, "member")
	require.NoError(t, err)

	updated, err := env.boards.RemoveMember(ctx, board.ID, invitee.ID)
	require.NoError(t, err)
	require.Len(t, updated.Members, 1)
	assert.Equal(t, owner.ID, updated.Members[0].ID)
}

func TestAddColumn_AppendsAfterHighestOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)

	column, err := env.boards.AddColumn(ctx, "Blocked", board.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, column.Order)
}

func TestAddColumn_EmptyBoardStartsAtZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)

	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	for _, column := range loaded.Columns {
		require.NoError(t, env.boards.DeleteColumn(ctx, column.ID))
	}

	column, err := env.boards.AddColumn(ctx, "Fresh Start", board.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, column.Order)
}

func TestCreateTask_WithTagsAndAssignee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	assignee := env.createUser(t, "assignee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	todo := loaded.Columns[0]

	description := "Write the docs"
	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:       "Docs",
		ColumnID:    todo.ID,
		Description: &description,
		AssigneeID:  &assignee.ID,
		Tags:        []string{"writing", "urgent"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Docs", task.Title)
	require.NotNil(t, task.Assignee)
	assert.Equal(t, assignee.ID, task.Assignee.ID)
	require.Len(t, task.Tags, 2)

	notifications := env.userNotifications(t, assignee.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Task Assigned", notifications[0].Title)
	assert.Equal(t, `You've been assigned to "Docs" in board "Roadmap"`, notifications[0].Description)
}

func TestCreateTask_UnknownColumn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.boards.CreateTask(context.Background(), service.CreateTaskInput{
		Title:    "Orphan",
		ColumnID: uuid.New(),
	})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, "Column not found", apperr.Message(err))
}

func TestUpdateTask_ReplacesTagSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	todo := loaded.Columns[0]

	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Docs",
		ColumnID: todo.ID,
		Tags:     []string{"writing", "urgent"},
	})
	require.NoError(t, err)

	tags := []string{"review"}
	updated, err := env.boards.UpdateTask(ctx, task.ID, service.UpdateTaskInput{Tags: &tags})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "review", updated.Tags[0].Name)

	// Tags are global; a second task naming "review" reuses the same row.
	other, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Other",
		ColumnID: todo.ID,
		Tags:     []string{"review"},
	})
	require.NoError(t, err)
	require.Len(t, other.Tags, 1)
	assert.Equal(t, updated.Tags[0].ID, other.Tags[0].ID)

	var tagCount int64
	require.NoError(t, env.db.Model(&model.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(3), tagCount)
}

func TestUpdateTask_AssigneeTriState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	assignee := env.createUser(t, "assignee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	todo := loaded.Columns[0]

	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Docs",
		ColumnID: todo.ID,
	})
	require.NoError(t, err)

	// Absent field keeps the current assignee (none).
	title := "Docs v2"
	updated, err := env.boards.UpdateTask(ctx, task.ID, service.UpdateTaskInput{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)

	// Assigning notifies the new assignee once.
	updated, err = env.boards.UpdateTask(ctx, task.ID, service.UpdateTaskInput{
		Assignee: service.OptionalID{Set: true, Value: &assignee.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, assignee.ID, *updated.AssigneeID)
	require.Len(t, env.userNotifications(t, assignee.ID), 1)

	// Re-sending the same assignee is not a change and emits nothing.
	_, err = env.boards.UpdateTask(ctx, task.ID, service.UpdateTaskInput{
		Assignee: service.OptionalID{Set: true, Value: &assignee.ID},
	})
	require.NoError(t, err)
	assert.Len(t, env.userNotifications(t, assignee.ID), 1)

	// An explicit null clears the assignee.
	updated, err = env.boards.UpdateTask(ctx, task.ID, service.UpdateTaskInput{
		Assignee: service.OptionalID{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
	assert.Nil(t, updated.Assignee)
}

func TestMoveTask_LeavesSourceColumn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	todo, done := loaded.Columns[0], loaded.Columns[3]

	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Ship it",
		ColumnID: todo.ID,
	})
	require.NoError(t, err)

	moved, err := env.boards.MoveTask(ctx, task.ID, done.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ColumnID)

	loaded, err = env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Columns[0].Tasks)
	require.Len(t, loaded.Columns[3].Tasks, 1)
	assert.Equal(t, task.ID, loaded.Columns[3].Tasks[0].ID)
}

func TestMoveTask_NotifiesAssignee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	assignee := env.createUser(t, "assignee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	todo, done := loaded.Columns[0], loaded.Columns[3]

	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:      "Ship it",
		ColumnID:   todo.ID,
		AssigneeID: &assignee.ID,
	})
	require.NoError(t, err)

	_, err = env.boards.MoveTask(ctx, task.ID, done.ID)
	require.NoError(t, err)

	notifications := env.userNotifications(t, assignee.ID)
	require.Len(t, notifications, 2)
	var moved *model.Notification
	for i := range notifications {
		if notifications[i].Title == "Task Moved" {
			moved = &notifications[i]
		}
	}
	require.NotNil(t, moved)
	assert.Equal(t,
		fmt.Sprintf(`Task %q has been moved to %q in board %q`, "Ship it", "Done", "Roadmap"),
		moved.Description)
}

func TestMoveTask_UnassignedEmitsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)

	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Quiet move",
		ColumnID: loaded.Columns[0].ID,
	})
	require.NoError(t, err)

	_, err = env.boards.MoveTask(ctx, task.ID, loaded.Columns[1].ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteColumn_CascadesTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)
	todo := loaded.Columns[0]

	_, err = env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Doomed",
		ColumnID: todo.ID,
		Tags:     []string{"cleanup"},
	})
	require.NoError(t, err)

	require.NoError(t, env.boards.DeleteColumn(ctx, todo.ID))

	var taskCount, joinCount int64
	require.NoError(t, env.db.Model(&model.Task{}).Count(&taskCount).Error)
	require.NoError(t, env.db.Table("task_tags").Count(&joinCount).Error)
	assert.Zero(t, taskCount)
	assert.Zero(t, joinCount)

	err = env.boards.DeleteColumn(ctx, todo.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeleteBoard_CascadesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	invitee := env.createUser(t, "invitee@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)

	_, err = env.boards.AddMember(ctx, board.ID, invitee.Email, "member")
	require.NoError(t, err)
	_, err = env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Doomed",
		ColumnID: loaded.Columns[0].ID,
		Tags:     []string{"cleanup"},
	})
	require.NoError(t, err)

	require.NoError(t, env.boards.DeleteBoard(ctx, board.ID))

	for table, want := range map[string]int64{
		"columns":       0,
		"tasks":         0,
		"task_tags":     0,
		"board_members": 0,
	} {
		var count int64
		require.NoError(t, env.db.Table(table).Count(&count).Error)
		assert.Equal(t, want, count, table)
	}

	// Users and their notifications survive the board.
	var userCount int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(2), userCount)
	assert.Len(t, env.userNotifications(t, invitee.ID), 1)

	err = env.boards.DeleteBoard(ctx, board.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeleteTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")

	board, err := env.boards.CreateBoard(ctx, "Roadmap", "", owner.ID)
	require.NoError(t, err)
	loaded, err := env.boards.GetBoard(ctx, board.ID)
	require.NoError(t, err)

	task, err := env.boards.CreateTask(ctx, service.CreateTaskInput{
		Title:    "Short lived",
		ColumnID: loaded.Columns[0].ID,
		Tags:     []string{"temp"},
	})
	require.NoError(t, err)

	require.NoError(t, env.boards.DeleteTask(ctx, task.ID))

	var joinCount int64
	require.NoError(t, env.db.Table("task_tags").Count(&joinCount).Error)
	assert.Zero(t, joinCount)

	err = env.boards.DeleteTask(ctx, task.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, "Task not found", apperr.Message(err))
}
