package shell

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("wordfray_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

func pushResult(L *lua.LState, r *Response, err error) int {
	if err != nil {
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

func New(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	r, err := sc.newMatch(&shellcmd{
		cmd:  "new",
		args: strings.Fields(lv),
	})
	return pushResult(L, r, err)
}

func Place(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	cmd, err := extractFields("place " + lv)
	if err != nil {
		return pushResult(L, nil, err)
	}
	r, err := sc.place(cmd)
	return pushResult(L, r, err)
}

func Submit(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.submit(&shellcmd{cmd: "submit"})
	return pushResult(L, r, err)
}

func Mulligan(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.mulligan(&shellcmd{cmd: "mulligan"})
	return pushResult(L, r, err)
}

func Restart(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.restart(&shellcmd{cmd: "restart"})
	return pushResult(L, r, err)
}

func Show(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.show(&shellcmd{cmd: "show"})
	return pushResult(L, r, err)
}

func Check(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	r, err := sc.check(&shellcmd{
		cmd:  "check",
		args: strings.Fields(lv),
	})
	return pushResult(L, r, err)
}

func Set(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	r, err := sc.set(&shellcmd{
		cmd:  "set",
		args: strings.Fields(lv),
	})
	return pushResult(L, r, err)
}

func Autoplay(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	cmd, err := extractFields("autoplay " + lv)
	if err != nil {
		return pushResult(L, nil, err)
	}
	r, err := sc.autoplay(cmd)
	return pushResult(L, r, err)
}

// State pushes the current match snapshot as a Lua table, or nil when
// no match is live.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		L.Push(lua.LNil)
		return 1
	}
	b, err := json.Marshal(sc.match.Snapshot())
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	lv, err := luajson.Decode(L, b)
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lv)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("wordfray_shell", lsc)
	L.SetGlobal("wordfray_new", L.NewFunction(New))
	L.SetGlobal("wordfray_place", L.NewFunction(Place))
	L.SetGlobal("wordfray_submit", L.NewFunction(Submit))
	L.SetGlobal("wordfray_mulligan", L.NewFunction(Mulligan))
	L.SetGlobal("wordfray_restart", L.NewFunction(Restart))
	L.SetGlobal("wordfray_show", L.NewFunction(Show))
	L.SetGlobal("wordfray_check", L.NewFunction(Check))
	L.SetGlobal("wordfray_set", L.NewFunction(Set))
	L.SetGlobal("wordfray_state", L.NewFunction(State))
	L.SetGlobal("wordfray_autoplay", L.NewFunction(Autoplay))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("script-error")
		return nil, err
	}
	return nil, nil
}
