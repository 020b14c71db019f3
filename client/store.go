package client

// Store is the synchronization state container. It holds three independent
// slices; each tracks loading/error around in-flight requests. The store is
// not safe for concurrent use: it is driven by a single UI loop, and the
// dispatcher reenters it only with a resolved or rejected result.
type Store struct {
	Auth          AuthState
	Boards        BoardsState
	Notifications NotificationsState
}

func NewStore() *Store {
	return &Store{
		Boards: BoardsState{entities: map[string]*Board{}},
	}
}

type AuthState struct {
	User    *User
	Loading bool
	Err     string
}

func (s *AuthState) begin() {
	s.Loading = true
	s.Err = ""
}

func (s *AuthState) reject(message string) {
	s.Loading = false
	s.Err = message
}

func (s *AuthState) setUser(user User) {
	s.Loading = false
	s.User = &user
}

func (s *AuthState) clear() {
	*s = AuthState{}
}

// BoardsState keeps one normalized copy of each board tree, keyed by id, with
// an explicit ordering and a current-selection id. The list and the current
// board are views over the same entities, so a mutation is applied exactly
// once.
type BoardsState struct {
	entities  map[string]*Board
	order     []string
	currentID string
	Loading   bool
	Err       string
}

func (s *BoardsState) begin() {
	s.Loading = true
	s.Err = ""
}

func (s *BoardsState) reject(message string) {
	s.Loading = false
	s.Err = message
}

// List returns the boards in server order.
func (s *BoardsState) List() []Board {
	boards := make([]Board, 0, len(s.order))
	for _, id := range s.order {
		if board, ok := s.entities[id]; ok {
			boards = append(boards, *board)
		}
	}
	return boards
}

// Current returns the selected board, or nil when none is selected.
func (s *BoardsState) Current() *Board {
	if s.currentID == "" {
		return nil
	}
	return s.entities[s.currentID]
}

func (s *BoardsState) setBoards(boards []Board) {
	s.Loading = false
	s.entities = make(map[string]*Board, len(boards))
	s.order = make([]string, 0, len(boards))
	for i := range boards {
		board := boards[i]
		s.entities[board.ID] = &board
		s.order = append(s.order, board.ID)
	}
}

func (s *BoardsState) upsertBoard(board Board) {
	s.Loading = false
	if existing, ok := s.entities[board.ID]; ok {
		// Shallow payloads (board updates) carry no tree; keep the one we have.
		if board.Columns == nil {
			board.Columns = existing.Columns
		}
		if board.Members == nil {
			board.Members = existing.Members
		}
		*existing = board
		return
	}
	s.entities[board.ID] = &board
	s.order = append([]string{board.ID}, s.order...)
}

func (s *BoardsState) setCurrent(boardID string) {
	s.currentID = boardID
}

func (s *BoardsState) removeBoard(boardID string) {
	s.Loading = false
	delete(s.entities, boardID)
	for i, id := range s.order {
		if id == boardID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.currentID == boardID {
		s.currentID = ""
	}
}

func (s *BoardsState) addColumn(column Column) {
	s.Loading = false
	board, ok := s.entities[column.BoardID]
	if !ok {
		return
	}
	if column.Tasks == nil {
		column.Tasks = []Task{}
	}
	board.Columns = append(board.Columns, column)
}

func (s *BoardsState) updateColumn(column Column) {
	s.Loading = false
	board, ok := s.entities[column.BoardID]
	if !ok {
		return
	}
	for i := range board.Columns {
		if board.Columns[i].ID == column.ID {
			board.Columns[i].Title = column.Title
			board.Columns[i].Order = column.Order
			return
		}
	}
}

func (s *BoardsState) removeColumn(columnID string) {
	s.Loading = false
	for _, board := range s.entities {
		for i := range board.Columns {
			if board.Columns[i].ID == columnID {
				board.Columns = append(board.Columns[:i], board.Columns[i+1:]...)
				return
			}
		}
	}
}

func (s *BoardsState) addTask(task Task) {
	s.Loading = false
	if column := s.findColumn(task.ColumnID); column != nil {
		column.Tasks = append(column.Tasks, task)
	}
}

// upsertTask places the task in its column, removing it from any other column
// first: a task lives in exactly one column, so a move must never leave a
// stale copy behind.
func (s *BoardsState) upsertTask(task Task) {
	s.Loading = false
	s.deleteTask(task.ID)
	if column := s.findColumn(task.ColumnID); column != nil {
		column.Tasks = append(column.Tasks, task)
	}
}

func (s *BoardsState) removeTask(taskID string) {
	s.Loading = false
	s.deleteTask(taskID)
}

func (s *BoardsState) findColumn(columnID string) *Column {
	for _, board := range s.entities {
		for i := range board.Columns {
			if board.Columns[i].ID == columnID {
				return &board.Columns[i]
			}
		}
	}
	return nil
}

func (s *BoardsState) deleteTask(taskID string) {
	for _, board := range s.entities {
		for ci := range board.Columns {
			tasks := board.Columns[ci].Tasks
			for ti := range tasks {
				if tasks[ti].ID == taskID {
					board.Columns[ci].Tasks = append(tasks[:ti], tasks[ti+1:]...)
					return
				}
			}
		}
	}
}

// NotificationsState keeps the notification list with an incrementally
// maintained unread counter, which must stay exactly in sync with the list.
type NotificationsState struct {
	Items   []Notification
	Unread  int
	Loading bool
	Err     string
}

func (s *NotificationsState) begin() {
	s.Loading = true
	s.Err = ""
}

func (s *NotificationsState) reject(message string) {
	s.Loading = false
	s.Err = message
}

func (s *NotificationsState) setAll(notifications []Notification) {
	s.Loading = false
	s.Items = notifications
	s.Unread = 0
	for _, n := range notifications {
		if !n.Read {
			s.Unread++
		}
	}
}

func (s *NotificationsState) markRead(notification Notification) {
	s.Loading = false
	for i := range s.Items {
		if s.Items[i].ID == notification.ID {
			if !s.Items[i].Read && notification.Read {
				s.Unread--
			}
			s.Items[i] = notification
			return
		}
	}
}

func (s *NotificationsState) markAllRead() {
	s.Loading = false
	for i := range s.Items {
		s.Items[i].Read = true
	}
	s.Unread = 0
}

func (s *NotificationsState) remove(notificationID string) {
	s.Loading = false
	for i := range s.Items {
		if s.Items[i].ID == notificationID {
			if !s.Items[i].Read {
				s.Unread--
			}
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}
