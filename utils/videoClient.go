package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// VideoRoomToken is a join token issued by the conferencing provider
type VideoRoomToken struct {
	Token     string `json:"token"`
	RoomURL   string `json:"room_url"`
	ExpiresIn int    `json:"expires_in"`
}

// CreateVideoRoomToken asks the conferencing provider for a join token. The
// provider owns the call itself; we only mint tokens and mirror the session
// lifecycle locally.
func CreateVideoRoomToken(roomCode, displayName string, isHost bool) (*VideoRoomToken, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.VideoApiKey).
		SetBody(map[string]interface{}{
			"room":         roomCode,
			"display_name": displayName,
			"is_host":      isHost,
		}).
		Post(config.AppConfig.VideoApiURL + "/rooms/tokens")
	if err != nil {
		log.Printf("[VIDEO] Failed to create room token: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("[VIDEO] Room token rejected: %s", resp.String())
		return nil, fmt.Errorf("video provider returned status %d", resp.StatusCode())
	}

	var token VideoRoomToken
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		log.Printf("[VIDEO] Failed to parse token response: %v", err)
		return nil, err
	}

	return &token, nil
}
