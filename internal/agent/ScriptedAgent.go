package agent

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// DefaultScript is used when the scripted agent is built without a source.
// It chases the nearest pellet checking the y axis first.
const DefaultScript = `
local function isLegal(state, dir)
	for _, candidate in ipairs(state.legal) do
		if candidate == dir then
			return true
		end
	end
	return false
end

function chooseAction(state)
	local here = state.position
	local best, target = nil, nil
	for _, pellet in ipairs(state.food) do
		local dist = math.abs(pellet.x - here.x) + math.abs(pellet.y - here.y)
		if best == nil or dist < best then
			best, target = dist, pellet
		end
	end

	if target ~= nil then
		if target.y > here.y and isLegal(state, "North") then return "North" end
		if target.y < here.y and isLegal(state, "South") then return "South" end
		if target.x > here.x and isLegal(state, "East") then return "East" end
		if target.x < here.x and isLegal(state, "West") then return "West" end
	end

	if state.last ~= "Stop" and isLegal(state, state.last) then
		return state.last
	end
	return "Stop"
end
`

const scriptEntryPoint = "chooseAction"

var ErrScriptResult = errors.New("lua strategy returned an unusable value")

// ScriptedAgent delegates the decision to a Lua function
// chooseAction(state) that returns a direction name. Whatever the script
// does, the returned move is always legal.
type ScriptedAgent struct {
	proto      *lua.FunctionProto
	compileErr error
	rng        *rand.Rand
	logger     *log.Logger
	memory     *Memory
}

func NewScriptedAgent(source string, rng *rand.Rand, logger *log.Logger) *ScriptedAgent {
	if strings.TrimSpace(source) == "" {
		source = DefaultScript
	}
	proto, err := compileScript(source)
	if err != nil {
		logger.Error("could not compile lua strategy", "error", err)
	}
	return &ScriptedAgent{
		proto:      proto,
		compileErr: err,
		rng:        rng,
		logger:     logger,
		memory:     NewMemory(),
	}
}

func compileScript(source string) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(strings.NewReader(source), "strategy")
	if err != nil {
		return nil, fmt.Errorf("could not parse lua strategy definition: %w", err)
	}
	proto, err := lua.Compile(chunk, "strategy")
	if err != nil {
		return nil, fmt.Errorf("could not compile lua strategy definition: %w", err)
	}
	return proto, nil
}

func (a *ScriptedAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()

	choice, err := a.evaluate(sensor, legal)
	if err != nil {
		a.logger.Warn("lua strategy failed", "error", err)
	}

	dir := commit(choice, legal, a.memory, a.rng)
	if dir != Stop {
		a.memory.Last = dir
	}
	return dir
}

func (a *ScriptedAgent) evaluate(sensor Sensor, legal Actions) (Direction, error) {
	if a.compileErr != nil {
		return "", a.compileErr
	}

	luaState := lua.NewState()
	defer luaState.Close()

	luaState.Push(luaState.NewFunctionFromProto(a.proto))
	if err := luaState.PCall(0, lua.MultRet, nil); err != nil {
		return "", fmt.Errorf("could not load lua strategy definition: %w", err)
	}

	entry := luaState.GetGlobal(scriptEntryPoint)
	if entry.Type() != lua.LTFunction {
		return "", fmt.Errorf("lua strategy does not define %s", scriptEntryPoint)
	}

	err := luaState.CallByParam(lua.P{Fn: entry, NRet: 1, Protect: true},
		a.stateTable(luaState, sensor, legal))
	if err != nil {
		return "", fmt.Errorf("could not execute lua strategy definition: %w", err)
	}

	ret := luaState.Get(-1)
	luaState.Pop(1)

	name, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%w: got %s, expected string", ErrScriptResult, ret.Type().String())
	}
	dir, ok := ParseDirection(string(name))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrScriptResult, string(name))
	}
	return dir, nil
}

func (a *ScriptedAgent) stateTable(luaState *lua.LState, sensor Sensor, legal Actions) *lua.LTable {
	state := luaState.NewTable()

	legalTable := luaState.NewTable()
	for _, d := range legal {
		legalTable.Append(lua.LString(d))
	}
	state.RawSetString("legal", legalTable)
	state.RawSetString("position", positionTable(luaState, sensor.Position()))
	state.RawSetString("food", positionsTable(luaState, sensor.Food()))
	state.RawSetString("capsules", positionsTable(luaState, sensor.Capsules()))
	state.RawSetString("ghosts", positionsTable(luaState, sensor.Ghosts()))
	state.RawSetString("corners", positionsTable(luaState, sensor.Corners()))
	state.RawSetString("last", lua.LString(a.memory.Last))
	return state
}

func positionTable(luaState *lua.LState, p Position) *lua.LTable {
	t := luaState.NewTable()
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))
	return t
}

func positionsTable(luaState *lua.LState, positions []Position) *lua.LTable {
	t := luaState.NewTable()
	for _, p := range positions {
		t.Append(positionTable(luaState, p))
	}
	return t
}
