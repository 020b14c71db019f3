package client

import "context"

// Dispatcher pairs each API call with the store transitions around it: the
// owning slice enters loading, then either the authoritative server result is
// merged in or the server's error message is surfaced verbatim. Nothing is
// retried; a rejected action leaves the rest of the state untouched.
type Dispatcher struct {
	api   *Client
	store *Store
}

func NewDispatcher(api *Client, store *Store) *Dispatcher {
	return &Dispatcher{api: api, store: store}
}

func (d *Dispatcher) Login(ctx context.Context, email, password string) error {
	d.store.Auth.begin()
	auth, err := d.api.Login(ctx, email, password)
	if err != nil {
		d.store.Auth.reject(err.Error())
		return err
	}
	d.store.Auth.setUser(auth.User)
	return nil
}

func (d *Dispatcher) Register(ctx context.Context, in RegisterInput) error {
	d.store.Auth.begin()
	auth, err := d.api.Register(ctx, in)
	if err != nil {
		d.store.Auth.reject(err.Error())
		return err
	}
	d.store.Auth.setUser(auth.User)
	return nil
}

func (d *Dispatcher) Logout() {
	d.store.Auth.clear()
}

func (d *Dispatcher) FetchBoards(ctx context.Context, userID string) error {
	d.store.Boards.begin()
	boards, err := d.api.Boards(ctx, userID)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.setBoards(boards)
	return nil
}

// FetchBoard loads one board and selects it as current.
func (d *Dispatcher) FetchBoard(ctx context.Context, boardID string) error {
	d.store.Boards.begin()
	board, err := d.api.Board(ctx, boardID)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertBoard(*board)
	d.store.Boards.setCurrent(board.ID)
	return nil
}

func (d *Dispatcher) CreateBoard(ctx context.Context, title, description, userID string) error {
	d.store.Boards.begin()
	board, err := d.api.CreateBoard(ctx, title, description, userID)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertBoard(*board)
	return nil
}

func (d *Dispatcher) UpdateBoard(ctx context.Context, boardID, title, description string) error {
	d.store.Boards.begin()
	board, err := d.api.UpdateBoard(ctx, boardID, title, description)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertBoard(*board)
	return nil
}

func (d *Dispatcher) DeleteBoard(ctx context.Context, boardID string) error {
	d.store.Boards.begin()
	if err := d.api.DeleteBoard(ctx, boardID); err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.removeBoard(boardID)
	return nil
}

func (d *Dispatcher) AddMember(ctx context.Context, boardID, email, role string) error {
	d.store.Boards.begin()
	board, err := d.api.AddMember(ctx, boardID, email, role)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertBoard(*board)
	return nil
}

func (d *Dispatcher) RemoveMember(ctx context.Context, boardID, userID string) error {
	d.store.Boards.begin()
	board, err := d.api.RemoveMember(ctx, boardID, userID)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertBoard(*board)
	return nil
}

func (d *Dispatcher) AddColumn(ctx context.Context, title, boardID string) error {
	d.store.Boards.begin()
	column, err := d.api.CreateColumn(ctx, title, boardID)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.addColumn(*column)
	return nil
}

func (d *Dispatcher) UpdateColumn(ctx context.Context, columnID, title string) error {
	d.store.Boards.begin()
	column, err := d.api.UpdateColumn(ctx, columnID, title)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.updateColumn(*column)
	return nil
}

func (d *Dispatcher) DeleteColumn(ctx context.Context, columnID string) error {
	d.store.Boards.begin()
	if err := d.api.DeleteColumn(ctx, columnID); err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.removeColumn(columnID)
	return nil
}

func (d *Dispatcher) CreateTask(ctx context.Context, in CreateTaskInput) error {
	d.store.Boards.begin()
	task, err := d.api.CreateTask(ctx, in)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.addTask(*task)
	return nil
}

func (d *Dispatcher) UpdateTask(ctx context.Context, taskID string, in UpdateTaskInput) error {
	d.store.Boards.begin()
	task, err := d.api.UpdateTask(ctx, taskID, in)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertTask(*task)
	return nil
}

func (d *Dispatcher) MoveTask(ctx context.Context, taskID, columnID string) error {
	d.store.Boards.begin()
	task, err := d.api.MoveTask(ctx, taskID, columnID)
	if err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.upsertTask(*task)
	return nil
}

func (d *Dispatcher) DeleteTask(ctx context.Context, taskID string) error {
	d.store.Boards.begin()
	if err := d.api.DeleteTask(ctx, taskID); err != nil {
		d.store.Boards.reject(err.Error())
		return err
	}
	d.store.Boards.removeTask(taskID)
	return nil
}

func (d *Dispatcher) FetchNotifications(ctx context.Context, userID string) error {
	d.store.Notifications.begin()
	notifications, err := d.api.Notifications(ctx, userID)
	if err != nil {
		d.store.Notifications.reject(err.Error())
		return err
	}
	d.store.Notifications.setAll(notifications)
	return nil
}

func (d *Dispatcher) MarkNotificationRead(ctx context.Context, notificationID string) error {
	d.store.Notifications.begin()
	notification, err := d.api.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		d.store.Notifications.reject(err.Error())
		return err
	}
	d.store.Notifications.markRead(*notification)
	return nil
}

func (d *Dispatcher) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	d.store.Notifications.begin()
	if err := d.api.MarkAllNotificationsRead(ctx, userID); err != nil {
		d.store.Notifications.reject(err.Error())
		return err
	}
	d.store.Notifications.markAllRead()
	return nil
}

func (d *Dispatcher) DeleteNotification(ctx context.Context, notificationID string) error {
	d.store.Notifications.begin()
	if err := d.api.DeleteNotification(ctx, notificationID); err != nil {
		d.store.Notifications.reject(err.Error())
		return err
	}
	d.store.Notifications.remove(notificationID)
	return nil
}
