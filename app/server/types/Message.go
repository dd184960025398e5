package types

type Message struct {
	Message string `json:"message"`
}
