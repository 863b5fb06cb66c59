package lua

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	glua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/rigsim/actor"
	"github.com/lixenwraith/rigsim/input"
)

// register installs the "sim" table and the key name table "keys"
func (s *Script) register() {
	L := s.state
	sim := L.NewTable()
	L.SetFuncs(sim, map[string]glua.LGFunction{
		"key_down":               s.keyQuery(func(code int) bool { return s.host.IsKeyDown(code) }),
		"key_pressed":            s.keyQuery(func(code int) bool { return s.host.WasKeyPressed(code) }),
		"key_released":           s.keyQuery(func(code int) bool { return s.host.WasKeyReleased(code) }),
		"input_changed":          s.inputChanged,
		"mouse":                  s.mouse,
		"camera_position":        s.cameraPosition,
		"set_camera_position":    s.setCameraPosition,
		"set_camera_orientation": s.setCameraOrientation,
		"actors":                 s.actors,
		"position":               s.position,
		"translate":              s.translate,
		"hide":                   s.hide,
		"remove":                 s.remove,
		"spawn":                  s.spawn,
		"exit":                   s.exit,
		"log":                    s.log,
	})
	L.SetGlobal("sim", sim)

	keys := L.NewTable()
	for name, k := range input.KeyNames() {
		L.SetField(keys, name, glua.LNumber(k))
	}
	L.SetGlobal("keys", keys)
}

// checkHost raises a Lua error when called outside setup/update
func (s *Script) checkHost(L *glua.LState) bool {
	if s.host == nil {
		L.RaiseError("%s", ErrNoHost.Error())
		return false
	}
	return true
}

// keyArg accepts an integral key code or a key name; anything else maps to -1
// so the host reports it as out of range
func keyArg(L *glua.LState, n int) int {
	switch v := L.Get(n).(type) {
	case glua.LNumber:
		f := float64(v)
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return -1
		}
		return int(f)
	case glua.LString:
		if k, ok := input.KeyByName(string(v)); ok {
			return int(k)
		}
	}
	return -1
}

func (s *Script) keyQuery(q func(code int) bool) glua.LGFunction {
	return func(L *glua.LState) int {
		if !s.checkHost(L) {
			return 0
		}
		L.Push(glua.LBool(q(keyArg(L, 1))))
		return 1
	}
}

func (s *Script) inputChanged(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	L.Push(glua.LBool(s.host.HasInputChanged()))
	return 1
}

func (s *Script) mouse(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	m := s.host.MouseDelta()
	L.Push(glua.LNumber(m.DX))
	L.Push(glua.LNumber(m.DY))
	return 2
}

func pushVec(L *glua.LState, v mgl32.Vec3) int {
	L.Push(glua.LNumber(v.X()))
	L.Push(glua.LNumber(v.Y()))
	L.Push(glua.LNumber(v.Z()))
	return 3
}

func vecArg(L *glua.LState, first int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(L.CheckNumber(first)),
		float32(L.CheckNumber(first + 1)),
		float32(L.CheckNumber(first + 2)),
	}
}

func (s *Script) cameraPosition(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	return pushVec(L, s.host.Camera().Position)
}

func (s *Script) setCameraPosition(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	s.host.SetCameraPosition(vecArg(L, 1))
	return 0
}

// set_camera_orientation(yaw_deg, pitch_deg)
func (s *Script) setCameraOrientation(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	yaw := mgl32.DegToRad(float32(L.CheckNumber(1)))
	pitch := mgl32.DegToRad(float32(L.OptNumber(2, 0)))
	q := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
	s.host.SetCameraOrientation(q)
	return 0
}

func (s *Script) actors(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	tbl := L.NewTable()
	for _, id := range s.host.ActorIDs() {
		tbl.Append(glua.LNumber(id))
	}
	L.Push(tbl)
	return 1
}

func idArg(L *glua.LState, n int) actor.ID {
	return actor.ID(L.CheckInt64(n))
}

func (s *Script) position(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	p, ok := s.host.ActorPosition(idArg(L, 1))
	if !ok {
		L.Push(glua.LNil)
		return 1
	}
	return pushVec(L, p)
}

func (s *Script) translate(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	s.host.Translate(idArg(L, 1), vecArg(L, 2))
	return 0
}

func (s *Script) hide(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	s.host.SetHidden(idArg(L, 1), L.OptBool(2, true))
	return 0
}

func (s *Script) remove(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	s.host.Remove(idArg(L, 1))
	return 0
}

// spawn(template, x, y, z) returns the new id, or nil and an error message
func (s *Script) spawn(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	name := L.CheckString(1)
	at := mgl32.Vec3{
		float32(L.OptNumber(2, 0)),
		float32(L.OptNumber(3, 0)),
		float32(L.OptNumber(4, 0)),
	}
	id, err := s.host.Spawn(name, at)
	if err != nil {
		L.Push(glua.LNil)
		L.Push(glua.LString(err.Error()))
		return 2
	}
	L.Push(glua.LNumber(id))
	return 1
}

func (s *Script) exit(L *glua.LState) int {
	if !s.checkHost(L) {
		return 0
	}
	s.host.RequestExit()
	return 0
}

func (s *Script) log(L *glua.LState) int {
	slog.Info("script", "name", s.name, "msg", L.CheckString(1))
	return 0
}
