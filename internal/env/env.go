package env

import (
	"os"
)

const (
	ListenAddr       = "CHAT_LISTEN_ADDR"
	StoreBackend     = "CHAT_STORE"
	DBPath           = "CHAT_DB_PATH"
	RedisURL         = "CHAT_REDIS_URL"
	RedisPass        = "CHAT_REDIS_PASS"
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
)

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
