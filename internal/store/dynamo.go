package store

import (
	"chat-server-backend/internal/database"
	"chat-server-backend/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoRepository keeps users and rooms as single items and each message as
// its own item keyed by roomId. Item-level writes mean concurrent AddMessage
// calls never clobber each other, so no extra serialization is needed here.
type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) *DynamoRepository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetUsers(ctx context.Context) ([]model.User, error) {
	items, err := r.db.Client.ScanItems(ctx, model.UsersTable, "", nil, nil)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(items))
	for _, item := range items {
		var user model.User
		if err := attributevalue.UnmarshalMap(item, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *DynamoRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	items, err := r.db.Client.ScanItems(
		ctx,
		model.UsersTable,
		"username = :username",
		map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
		nil,
	)
	if err != nil {
		return model.User{}, err
	}
	if len(items) == 0 {
		return model.User{}, ErrNotFound
	}

	var user model.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *DynamoRepository) CreateUser(ctx context.Context, username, password string) (model.User, error) {
	_, err := r.GetUserByUsername(ctx, username)
	if err == nil {
		return model.User{}, ErrDuplicateUsername
	}
	if !errors.Is(err, ErrNotFound) {
		return model.User{}, err
	}

	user := model.User{
		ID:       TimeID("user"),
		Username: username,
		Password: password,
		Status:   model.StatusOnline,
	}
	if err := r.db.Client.PutItem(ctx, model.UsersTable, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *DynamoRepository) UpdateUserStatus(ctx context.Context, userID, status string) (model.User, error) {
	var existing model.User
	err := r.db.Client.GetItem(
		ctx,
		model.UsersTable,
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		&existing,
	)
	if err != nil {
		if isNotFoundError(err) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}

	var user model.User
	err = r.db.Client.UpdateItem(
		ctx,
		model.UsersTable,
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		"SET #status = :status",
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		},
		map[string]string{"#status": "status"},
		&user,
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *DynamoRepository) CreateChatRoom(ctx context.Context, name string) (model.Room, error) {
	rooms, err := r.GetChatRooms(ctx)
	if err != nil {
		return model.Room{}, err
	}

	room := model.Room{
		ID:   fmt.Sprintf("room%d", len(rooms)+1),
		Name: name,
	}
	if err := r.db.Client.PutItem(ctx, model.RoomsTable, room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (r *DynamoRepository) GetChatRooms(ctx context.Context) ([]model.Room, error) {
	items, err := r.db.Client.ScanItems(ctx, model.RoomsTable, "", nil, nil)
	if err != nil {
		return nil, err
	}

	rooms := make([]model.Room, 0, len(items))
	for _, item := range items {
		var room model.Room
		if err := attributevalue.UnmarshalMap(item, &room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *DynamoRepository) AddMessage(ctx context.Context, roomID string, message model.Message) (model.Message, error) {
	if err := r.db.Client.PutItem(ctx, model.MessagesTable, message); err != nil {
		return model.Message{}, err
	}
	return message, nil
}

func (r *DynamoRepository) GetMessages(ctx context.Context, roomID string) ([]model.Message, error) {
	items, err := r.db.Client.QueryItems(
		ctx,
		model.MessagesTable,
		nil,
		"roomId = :roomId",
		map[string]types.AttributeValue{
			":roomId": &types.AttributeValueMemberS{Value: roomID},
		},
		nil,
		aws.Bool(true),
	)
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(items))
	for _, item := range items {
		var message model.Message
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
