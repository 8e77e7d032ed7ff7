package model

import "time"

// Target types an Action may point at.
const (
	TargetNone  = ""
	TargetImage = "image"
	TargetUser  = "user"
)

// Action 动作日志（只追加，不更新不删除）
// ID 自增，同一 created_at 下按插入顺序排序。
type Action struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ActorID string `json:"actor_id" gorm:"type:varchar(36);not null;index:idx_action_actor_created"`
	Verb    string `json:"verb" gorm:"type:varchar(256);not null"`
	// TargetType + TargetID 标签式目标引用，二者同时存在或同时为空
	TargetType string `json:"target_type,omitempty" gorm:"type:varchar(16);index:idx_action_target"`
	TargetID   string `json:"target_id,omitempty" gorm:"type:varchar(36);index:idx_action_target"`

	CreatedAt time.Time `json:"created_at" gorm:"index;index:idx_action_actor_created"`

	// Target 读取时按类型批量装配，不落库
	Target interface{} `gorm:"-" json:"target,omitempty"`
}

func (Action) TableName() string { return "actions" }
