package Models

// PushRequest is the payload handed to the FCM sender.
type PushRequest struct {
	Tokens []string `json:"tokens"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
}
