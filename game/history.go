package game

// BoardHistoryItem records one played move together with what is needed to
// take it back.
type BoardHistoryItem struct {
	Move Move
	// From is where the piece stood before the move, InHand for placements.
	From       Position
	MoveString string
}

// BoardHistory is the append-only log of moves played on a GameBoard.
type BoardHistory struct {
	items []BoardHistoryItem
}

func (h *BoardHistory) Add(m Move, from Position, moveString string) {
	h.items = append(h.items, BoardHistoryItem{Move: m, From: from, MoveString: moveString})
}

// UndoLast removes and returns the last item.
func (h *BoardHistory) UndoLast() (BoardHistoryItem, bool) {
	if len(h.items) == 0 {
		return BoardHistoryItem{}, false
	}
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return last, true
}

func (h *BoardHistory) Last() (BoardHistoryItem, bool) {
	if len(h.items) == 0 {
		return BoardHistoryItem{}, false
	}
	return h.items[len(h.items)-1], true
}

func (h *BoardHistory) Len() int { return len(h.items) }

// Items returns a copy of the log, oldest first.
func (h *BoardHistory) Items() []BoardHistoryItem {
	return append([]BoardHistoryItem(nil), h.items...)
}

// lastMovedPiece is the piece moved by the newest item, or NoPiece after a pass.
func (h *BoardHistory) lastMovedPiece() PieceName {
	last, ok := h.Last()
	if !ok {
		return NoPiece
	}
	return last.Move.Piece
}
