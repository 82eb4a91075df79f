package ws

type MessageType string

const (
	MsgRewardGranted       MessageType = "reward_granted"
	MsgLevelUp             MessageType = "level_up"
	MsgAchievementUnlocked MessageType = "achievement_unlocked"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

type RewardPayload struct {
	XPChange   int `json:"xpChange"`
	GoldChange int `json:"goldChange"`
}

type LevelUpPayload struct {
	NewLevel int `json:"newLevel"`
}

type AchievementPayload struct {
	DefinitionID string `json:"definitionId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Tier         string `json:"level"`
	XPReward     int    `json:"xpReward"`
}
