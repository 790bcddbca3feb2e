package entity

const botName = "computer"

type Player struct {
	Name string `json:"name"`
	Mark Cell   `json:"mark"`
	Bot  bool   `json:"bot,omitempty"`
}

func NewHumanPlayer(name string) *Player {
	return &Player{
		Name: name,
		Mark: PlayerMark,
	}
}

func NewBotPlayer() *Player {
	return &Player{
		Name: botName,
		Mark: ComputerMark,
		Bot:  true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}
