package game

import (
	"errors"
	"log"

	lua "github.com/yuin/gopher-lua"
)

type BotScript struct {
	ScriptName       string
	ScriptDefinition string
}

// Bundled difficulty scripts. The script sees the belief grid as a 1-based
// nested table of CellState numbers and returns the cell to fire at. Cadet
// sweeps the board without the parity trick, which makes it noticeably
// weaker than the tracker it replaces.
var botScripts = map[string]*BotScript{
	"Cadet": {
		ScriptName: "Cadet",
		ScriptDefinition: `
			function getNextAttack(board)
				for y = 1, #board do
					for x = 1, #board[y] do
						if board[y][x] == 0 then
							return {X = x - 1, Y = y - 1}
						end
					end
				end
			end
		`,
	},
}

// Difficulties lists the selectable bot difficulties, weakest first.
var Difficulties = []string{"Cadet", "Admiral"}

// NewStrategyForDifficulty wires the bot for the chosen difficulty. Admiral
// (and anything unrecognized) plays the tracker directly; other levels run a
// bundled Lua script on top of it.
func NewStrategyForDifficulty(difficulty string, tracker *Tracker) Strategy {
	script, ok := botScripts[difficulty]
	if !ok {
		return tracker
	}
	return &LuaStrategy{Tracker: tracker, Script: script.ScriptDefinition}
}

// LuaStrategy lets a Lua script pick the shot while the embedded tracker
// keeps the belief state. Script failures and illegal picks fall back to the
// tracker, so a broken script can never stall the game.
type LuaStrategy struct {
	Tracker *Tracker
	Script  string
}

func (s *LuaStrategy) NextAttack() (int, int) {
	x, y, err := s.scriptedAttack()
	if err != nil {
		log.Printf("Lua strategy fallback: %v", err)
		return s.Tracker.NextAttack()
	}
	return x, y
}

// RegisterResult always feeds the embedded tracker so the belief state stays
// consistent no matter who picked the shot.
func (s *LuaStrategy) RegisterResult(col int, row int, isHit bool, isSunk bool) {
	s.Tracker.RegisterResult(col, row, isHit, isSunk)
}

func (s *LuaStrategy) scriptedAttack() (int, int, error) {
	luaState := lua.NewState()
	defer luaState.Close()

	if err := luaState.DoString(s.Script); err != nil {
		return 0, 0, errors.New("could not parse lua script definition")
	}

	luaState.Push(luaState.GetGlobal("getNextAttack"))
	luaState.Push(beliefGridToLuaTable(luaState, s.Tracker))
	if err := luaState.PCall(1, 1, nil); err != nil {
		return 0, 0, errors.New("could not execute lua script definition")
	}

	luaReturn := luaState.Get(-1)
	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return 0, 0, errors.New("lua script returned " + luaReturn.Type().String() + ", expected table")
	}
	luaState.Pop(1)

	cell := convertLuaCellTableToGoStruct(luaTable)
	if cell.X < 0 || cell.X >= s.Tracker.Cols || cell.Y < 0 || cell.Y >= s.Tracker.Rows {
		return 0, 0, errors.New("lua script picked an out-of-bounds cell")
	}
	if s.Tracker.StateAt(cell.X, cell.Y) != CellUnknown {
		return 0, 0, errors.New("lua script picked an already resolved cell")
	}

	return cell.X, cell.Y, nil
}

func beliefGridToLuaTable(luaState *lua.LState, tracker *Tracker) *lua.LTable {
	boardTbl := luaState.NewTable()
	for _, rowStates := range tracker.BeliefGrid() {
		rowTbl := luaState.NewTable()
		for _, state := range rowStates {
			rowTbl.Append(lua.LNumber(state))
		}
		boardTbl.Append(rowTbl)
	}
	return boardTbl
}

func convertLuaCellTableToGoStruct(luaTbl *lua.LTable) Cell {
	result := Cell{X: -1, Y: -1}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "X":
			result.X = int(lua.LVAsNumber(value))
		case "Y":
			result.Y = int(lua.LVAsNumber(value))
		}
	})
	return result
}
