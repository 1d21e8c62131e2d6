package domain

type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
}
