package model

const (
	UsersTable    = "Users"
	RoomsTable    = "ChatRooms"
	MessagesTable = "Messages"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type User struct {
	ID       string `json:"id" dynamodbav:"id"`
	Username string `json:"username" dynamodbav:"username"`
	Password string `json:"password" dynamodbav:"password"`
	Status   string `json:"status" dynamodbav:"status"`
}

type Room struct {
	ID   string `json:"id" dynamodbav:"id"`
	Name string `json:"name" dynamodbav:"name"`
}

// Message is owned by the store once persisted; the websocket core only
// constructs and forwards it. Timestamp is an RFC 3339 UTC instant.
type Message struct {
	ID        string `json:"id" dynamodbav:"id"`
	Content   string `json:"content" dynamodbav:"content"`
	Username  string `json:"username" dynamodbav:"username"`
	RoomID    string `json:"roomId" dynamodbav:"roomId"`
	Timestamp string `json:"timestamp" dynamodbav:"timestamp"`
}
