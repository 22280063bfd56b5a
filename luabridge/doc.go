// Package luabridge moves tables between the ir model and a running
// gopher-lua state.
//
// ToLua and FromLua convert values; Encode and Decode go through gomap
// so that Go structs and enums reach Lua code as tables laid out by
// their shapes:
//
//	L := lua.NewState()
//	lv, err := luabridge.Encode(L, Named{IsReady: true})
//	L.SetGlobal("val", lv)
//	// val.is_ready == true in Lua
//
// Eval runs a chunk of Lua data, such as a table constructor, in a
// state with no libraries and converts what it returns.
package luabridge
