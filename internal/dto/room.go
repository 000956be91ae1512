package dto

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type RoomResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PostMessageRequest struct {
	Content  string `json:"content"`
	Username string `json:"username"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Username  string `json:"username"`
	RoomID    string `json:"roomId"`
	Timestamp string `json:"timestamp"`
}
