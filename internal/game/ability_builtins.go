// path: internal/game/ability_builtins.go
package game

func init() {
	mustRegisterAbilityHandler(KindDragon, pushHandler{})
	mustRegisterAbilityHandler(KindBadgermole, tunnelHandler{})
}

func mustRegisterAbilityHandler(kind Kind, h AbilityHandler) {
	if err := RegisterAbilityHandler(kind, h); err != nil {
		panic(err)
	}
}
