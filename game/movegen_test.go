package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParseBoard(t testing.TB, s string) *Board {
	t.Helper()
	b, err := ParseBoardString(s)
	require.NoError(t, err)
	return b
}

func mustParseGameBoard(t testing.TB, s string) *GameBoard {
	t.Helper()
	g, err := ParseGameBoardString(s)
	require.NoError(t, err)
	return g
}

func at(q, r, stack int) Position { return Position{Q: q, R: r, Stack: stack} }

// destinations returns where name can go, ignoring moves of other pieces.
func destinations(moves *MoveSet, name PieceName) []Position {
	var result []Position
	for _, m := range moves.Slice() {
		if m.Piece == name {
			result = append(result, m.Position)
		}
	}
	return result
}

func TestSlideGate(t *testing.T) {
	b := NewBoard(Base)
	b.drop(WhiteQueenBee, Origin.Neighbor(East))

	t.Run("one occupied flank allows the slide", func(t *testing.T) {
		require.True(t, b.canSlide(Origin, NorthEast))
		require.True(t, b.canSlide(Origin, SouthEast))
	})

	t.Run("no occupied flank blocks the slide", func(t *testing.T) {
		require.False(t, b.canSlide(Origin, West))
		require.False(t, b.canSlide(Origin, NorthWest))
	})

	b.drop(BlackQueenBee, Origin.Neighbor(NorthWest))
	t.Run("two occupied flanks block the slide", func(t *testing.T) {
		require.False(t, b.canSlide(Origin, NorthEast))
	})
}

func TestFirstPlacements(t *testing.T) {
	t.Run("white places an ant at the origin", func(t *testing.T) {
		g := NewGameBoard(Base)
		require.NoError(t, g.Play(Move{Piece: WhiteSoldierAnt1, Position: Origin}))
		require.Equal(t, 1, g.Ply())
		require.Equal(t, InProgress, g.BoardState())
	})

	t.Run("white may not open with the queen", func(t *testing.T) {
		g := NewGameBoard(Base)
		err := g.Play(Move{Piece: WhiteQueenBee, Position: Origin})
		var illegal *IllegalMoveError
		require.ErrorAs(t, err, &illegal)
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, QueenOnFirstTurn, illegal.Kind)
		require.Equal(t, 0, g.Ply(), "A rejected move should not change the board")
	})

	t.Run("only the first piece of each bug type is offered", func(t *testing.T) {
		g := NewGameBoard(Base)
		var pieces []PieceName
		for _, m := range g.ValidMoves().Slice() {
			require.Equal(t, Origin, m.Position)
			pieces = append(pieces, m.Piece)
		}
		require.Equal(t, []PieceName{WhiteSpider1, WhiteBeetle1, WhiteGrasshopper1, WhiteSoldierAnt1}, pieces)

		err := g.Play(Move{Piece: WhiteSpider2, Position: Origin})
		var illegal *IllegalMoveError
		require.ErrorAs(t, err, &illegal)
		require.Equal(t, OutOfOrder, illegal.Kind)
	})

	t.Run("black answers around the origin", func(t *testing.T) {
		g := NewGameBoard(Base)
		require.NoError(t, g.Play(Move{Piece: WhiteSpider1, Position: Origin}))
		got := destinations(g.ValidMoves(), BlackGrasshopper1)
		require.Len(t, got, NumDirections)
		for _, n := range Origin.Neighbors() {
			require.Contains(t, got, n)
		}
	})

	t.Run("disabled expansion pieces are rejected", func(t *testing.T) {
		g := NewGameBoard(Base)
		err := g.Play(Move{Piece: WhiteMosquito, Position: Origin})
		var illegal *IllegalMoveError
		require.ErrorAs(t, err, &illegal)
		require.Equal(t, PieceNotEnabled, illegal.Kind)
	})
}

func TestPlacementAvoidsEnemies(t *testing.T) {
	b := mustParseBoard(t, "Base;InProgress;White[2];wS1[0,0,0];bS1[1,-1,0]")
	got := destinations(b.ValidMoves(), WhiteQueenBee)
	require.ElementsMatch(t, []Position{at(0, -1, 0), at(-1, 0, 0), at(-1, 1, 0)}, got)
}

func TestQueenDeadline(t *testing.T) {
	g := mustParseGameBoard(t, "Base;InProgress;White[4];wS1[0,0,0];bS1[1,-1,0];wS2[-1,1,0];bS2[2,-2,0];wB1[-2,2,0];bQ[3,-3,0]")
	moves := g.ValidMoves()
	require.NotZero(t, moves.Len())
	for _, m := range moves.Slice() {
		require.Equal(t, WhiteQueenBee, m.Piece, "Only the queen may be placed on the fourth turn")
	}

	err := g.Play(Move{Piece: WhiteGrasshopper1, Position: at(-3, 0, 0)})
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	require.Equal(t, QueenDeadline, illegal.Kind)
}

func TestQueenMoves(t *testing.T) {
	b := mustParseBoard(t, "Base;InProgress;White[2];wQ[0,0,0];bQ[1,-1,0]")
	got := destinations(b.ValidMovesFor(WhiteQueenBee), WhiteQueenBee)
	require.ElementsMatch(t, []Position{at(1, -1, 0), at(0, 1, 0)}, got)
}

func TestSpiderMoves(t *testing.T) {
	b := mustParseBoard(t, "Base;InProgress;White[2];wQ[0,0,0];wS1[-1,1,0];bQ[1,-1,0]")
	got := destinations(b.ValidMovesFor(WhiteSpider1), WhiteSpider1)
	require.ElementsMatch(t, []Position{at(2, -1, 0), at(1, 1, 0)}, got,
		"Spider should reach only the cells exactly three slides away")
}

func TestSoldierAntMoves(t *testing.T) {
	b := mustParseBoard(t, "Base;InProgress;White[2];wQ[0,0,0];wA1[-1,1,0];bQ[1,-1,0]")
	got := destinations(b.ValidMovesFor(WhiteSoldierAnt1), WhiteSoldierAnt1)
	require.ElementsMatch(t, []Position{
		at(0, -1, 0), at(1, -1, 0), at(2, -1, 0), at(2, 0, 0),
		at(1, 1, 0), at(0, 1, 0), at(-1, 1, 0),
	}, got, "Ant should reach every other cell around the hive")
}

func TestGrasshopperMoves(t *testing.T) {
	b := mustParseBoard(t, "Base;InProgress;White[3];wQ[0,0,0];wG1[-1,1,0];bQ[1,-1,0];bS1[2,-2,0]")
	got := destinations(b.ValidMovesFor(WhiteGrasshopper1), WhiteGrasshopper1)
	require.Equal(t, []Position{at(3, 0, 0)}, got, "Grasshopper should jump the whole line")
}

func TestBeetleMoves(t *testing.T) {
	t.Run("climbing onto a lone neighbour", func(t *testing.T) {
		b := mustParseBoard(t, "Base;InProgress;White[3];wQ[2,-2,0];wB1[0,0,0];bQ[3,-3,0];bA1[1,-1,0]")
		got := destinations(b.ValidMovesFor(WhiteBeetle1), WhiteBeetle1)
		require.ElementsMatch(t, []Position{at(1, 0, 1), at(1, -1, 0), at(0, 1, 0)}, got)
	})

	t.Run("coming down from a stack", func(t *testing.T) {
		b := mustParseBoard(t, "Base;InProgress;White[3];wQ[2,-2,0];wB1[1,-1,0,1];bQ[3,-3,0];bA1[1,-1,0]")
		got := destinations(b.ValidMovesFor(WhiteBeetle1), WhiteBeetle1)
		require.Len(t, got, NumDirections, "A beetle on top may step to every neighbouring stack")
		require.Contains(t, got, at(2, 0, 1))
		require.Contains(t, got, at(0, 0, 0))
	})

	t.Run("a covered piece cannot move", func(t *testing.T) {
		b := mustParseBoard(t, "Base;InProgress;Black[3];wQ[2,-2,0];wB1[1,-1,0,1];bQ[3,-3,0];bA1[1,-1,0]")
		require.Zero(t, b.ValidMovesFor(BlackSoldierAnt1).Len())
	})

	t.Run("gate of two taller stacks", func(t *testing.T) {
		b := NewBoard(Base)
		b.drop(WhiteQueenBee, Origin)
		b.drop(BlackQueenBee, Origin.Neighbor(NorthEast))
		b.drop(BlackBeetle1, Origin.Neighbor(NorthEast).Above())
		b.drop(WhiteSpider1, Origin.Neighbor(SouthEast))
		b.drop(BlackBeetle2, Origin.Neighbor(SouthEast).Above())

		_, ok := b.beetleStep(Origin, East)
		require.False(t, ok, "Both flanks are taller than take-off and landing")
		dest, ok := b.beetleStep(Origin.Above(), East)
		require.False(t, ok, "Flanks of height two still block from height one")
		require.Equal(t, Origin.Neighbor(East), dest)
	})
}

func TestLadybugMoves(t *testing.T) {
	b := mustParseBoard(t, "Base+L;InProgress;White[2];wQ[0,0,0];wL[-1,1,0];bQ[1,-1,0]")
	got := destinations(b.ValidMovesFor(WhiteLadybug), WhiteLadybug)
	require.ElementsMatch(t, []Position{
		at(2, 0, 0), at(2, -1, 0), at(1, -1, 0), at(0, 1, 0), at(1, 1, 0),
	}, got)
	require.Equal(t, at(-1, 0, 0), b.Piece(WhiteLadybug).Position, "Speculative hops should be undone")
}

func TestMosquitoMoves(t *testing.T) {
	t.Run("copies a neighbouring queen", func(t *testing.T) {
		b := mustParseBoard(t, "Base+M;InProgress;White[2];wQ[0,0,0];wM[-1,1,0];bQ[1,-1,0]")
		got := destinations(b.ValidMovesFor(WhiteMosquito), WhiteMosquito)
		require.ElementsMatch(t, []Position{at(0, -1, 0), at(-1, 1, 0)}, got)
	})

	t.Run("copies nothing from another mosquito", func(t *testing.T) {
		b := mustParseBoard(t, "Base+M;InProgress;White[3];wQ[1,-1,0];wM[-1,1,0];bM[0,0,0];bQ[2,-2,0]")
		require.Zero(t, b.ValidMovesFor(WhiteMosquito).Len())
	})

	t.Run("moves only as a beetle on top of the hive", func(t *testing.T) {
		b := mustParseBoard(t, "Base+M;InProgress;White[4];wQ[-1,1,0];wG1[-2,2,0];bQ[1,-1,0];bA1[0,0,0];bA2[0,1,-1];wM[0,0,0,1]")
		got := destinations(b.ValidMovesFor(WhiteMosquito), WhiteMosquito)
		require.ElementsMatch(t, []Position{
			at(1, 0, 1), at(1, -1, 0), at(0, -1, 1), at(-1, 0, 1), at(-1, 1, 0), at(0, 1, 0),
		}, got)
	})

	t.Run("throws like a touching pillbug while pinned", func(t *testing.T) {
		b := mustParseBoard(t, "Base+MP;InProgress;White[4];wQ[-1,1,0];wM[0,0,0];bA1[1,-1,0];bP[0,-1,1]")
		require.False(t, b.CanMoveWithoutBreakingHive(WhiteMosquito))

		moves := b.ValidMovesFor(WhiteMosquito)
		require.Empty(t, destinations(moves, WhiteMosquito), "A pinned mosquito cannot walk")
		free := []Position{at(1, -1, 0), at(0, -1, 0), at(-1, 1, 0)}
		for _, thrown := range []PieceName{WhiteQueenBee, BlackSoldierAnt1, BlackPillbug} {
			require.ElementsMatch(t, free, destinations(moves, thrown), thrown.String())
		}
		require.Equal(t, 9, moves.Len())
	})
}

func TestPillbugThrow(t *testing.T) {
	b := mustParseBoard(t, "Base+P;InProgress;White[3];wQ[-1,1,0];wP[0,0,0];bA1[1,-1,0]")
	require.False(t, b.CanMoveWithoutBreakingHive(WhitePillbug))

	moves := b.ValidMovesFor(WhitePillbug)
	require.Empty(t, destinations(moves, WhitePillbug), "A pinned pillbug cannot walk")
	require.ElementsMatch(t, []Position{at(1, -1, 0), at(0, -1, 0), at(-1, 1, 0), at(0, 1, 0)},
		destinations(moves, BlackSoldierAnt1))
	require.ElementsMatch(t, []Position{at(1, -1, 0), at(0, -1, 0), at(-1, 1, 0), at(0, 1, 0)},
		destinations(moves, WhiteQueenBee))

	t.Run("the last moved piece cannot be thrown", func(t *testing.T) {
		g, err := ParseGameString(`Base+P;InProgress;White[4];wP;bA1 wP-;wQ -wP;bQ bA1\;wS1 -wQ;bQ wP\`)
		require.NoError(t, err)
		require.Equal(t, BlackQueenBee, g.LastPieceMoved())
		require.Equal(t, at(0, 1, 0), g.Piece(BlackQueenBee).Position)

		moves := g.ValidMovesFor(WhitePillbug)
		require.Empty(t, destinations(moves, BlackQueenBee))
		require.NotEmpty(t, destinations(moves, BlackSoldierAnt1))
		require.Empty(t, destinations(moves, WhiteQueenBee), "Throwing the queen would split the hive")
	})
}

func TestOneHive(t *testing.T) {
	b := mustParseBoard(t, "Base;InProgress;White[3];wQ[0,0,0];wS1[-1,1,0];bQ[1,-1,0];bS1[2,-2,0]")
	require.True(t, b.IsOneHive())
	require.False(t, b.CanMoveWithoutBreakingHive(WhiteQueenBee), "The queen links both halves")
	require.False(t, b.CanMoveWithoutBreakingHive(BlackQueenBee))
	require.True(t, b.CanMoveWithoutBreakingHive(WhiteSpider1))
	require.True(t, b.CanMoveWithoutBreakingHive(BlackSpider1))
	require.True(t, b.IsOneHive(), "Checking should leave the hive intact")

	b.lift(WhiteQueenBee)
	require.False(t, b.IsOneHive())
}

func TestValidMovesCache(t *testing.T) {
	g := mustParseGameBoard(t, "Base;InProgress;White[2];wQ[0,0,0];wA1[-1,1,0];bQ[1,-1,0]")
	resets := g.CacheStats().Resets

	first := g.ValidMovesFor(WhiteSoldierAnt1)
	second := g.ValidMovesFor(WhiteSoldierAnt1)
	require.Same(t, first, second, "Repeated queries should hit the cache")

	stats := g.CacheStats()
	require.Equal(t, uint64(1), stats.Misses[WhiteSoldierAnt1])
	require.Equal(t, uint64(1), stats.Hits[WhiteSoldierAnt1])
	require.Equal(t, resets, stats.Resets, "Queries should not reset the cache")

	require.NoError(t, g.Play(first.Slice()[0]))
	require.Equal(t, resets+1, g.CacheStats().Resets, "A ply change should reset the cache once")
	require.NotSame(t, first, g.ValidMovesFor(WhiteSoldierAnt1))
}

func TestGameOverHasNoMoves(t *testing.T) {
	g := mustParseGameBoard(t, "Base;BlackWins;White[4];wQ[0,0,0];bQ[1,-1,0];bS1[1,0,-1];bS2[0,1,-1];bB1[-1,1,0];bB2[-1,0,1];bG1[0,-1,1]")
	require.Zero(t, g.ValidMoves().Len())
	winner, ok := g.BoardState().Winner()
	require.True(t, ok)
	require.Equal(t, Black, winner)

	err := g.Pass()
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	require.Equal(t, GameIsOver, illegal.Kind)
}

func TestForcedPass(t *testing.T) {
	// White's queen is boxed in and every free cell touches black.
	g := mustParseGameBoard(t, "Base;InProgress;White[5];wQ[0,0,0];bQ[1,-1,0];bS1[1,0,-1];bS2[0,1,-1];bB1[-1,1,0];bB2[-1,0,1]")
	require.Equal(t, []Move{Pass}, g.ValidMoves().Slice())

	require.NoError(t, g.Pass())
	require.Equal(t, Black, g.CurrentColor())

	err := g.Pass()
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	require.Equal(t, PassWithValidMoves, illegal.Kind)
	require.True(t, slices.ContainsFunc(g.ValidMoves().Slice(), func(m Move) bool { return m.Piece == BlackQueenBee }))
}
