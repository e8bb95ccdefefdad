package session

import "github.com/wricardo/ping-game/game/engine"

// Rules describes the fixed game parameters for observers and clients.
type Rules struct {
	BoardWidth   int            `json:"board_width"`
	MovesPerTurn int            `json:"moves_per_turn"`
	ShootRadius  int            `json:"shoot_radius"`
	Shapes       []engine.Shape `json:"shapes"`
	Directions   []string       `json:"directions"`
	Actions      []string       `json:"actions"`
}

// GameRules returns the parameters every match is played with.
func GameRules() Rules {
	dirs := make([]string, 0, 4)
	for _, d := range engine.Directions() {
		dirs = append(dirs, d.String())
	}
	return Rules{
		BoardWidth:   engine.BoardWidth,
		MovesPerTurn: engine.MovesPerTurn,
		ShootRadius:  engine.ShootRadius,
		Shapes:       engine.Shapes,
		Directions:   dirs,
		Actions:      []string{TypeMove, TypeShoot, TypePlace, TypePing},
	}
}
