package entity

const (
	KindHuman = "human"
	KindBot   = "bot"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
	Kind string `json:"kind"`
}

func NewHumanPlayer(id, name string, mark Mark) *Player {
	return &Player{ID: id, Name: name, Mark: mark, Kind: KindHuman}
}

func NewBotPlayer(id, name string, mark Mark) *Player {
	return &Player{ID: id, Name: name, Mark: mark, Kind: KindBot}
}

func (that *Player) IsBot() bool {
	return that.Kind == KindBot
}
