package stubserver

import "time"

// Message is one stored history entry. MessageID is what goes over the wire;
// the auto-increment ID only fixes the order.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	MessageID string    `gorm:"type:varchar(26);uniqueIndex;not null"`
	UserID    string    `gorm:"type:varchar(128);index;not null"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Text      string    `gorm:"type:text"`
	FileURL   string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time
}

func (Message) TableName() string { return "stub_messages" }

// wireTimestamp matches the zone-less ISO layout of the reference backend.
const wireTimestamp = "2006-01-02T15:04:05.000000"

type messageResp struct {
	ID        string  `json:"id"`
	Role      string  `json:"role"`
	Text      *string `json:"text"`
	FileURL   *string `json:"file_url"`
	Timestamp string  `json:"timestamp"`
}

func toResp(m Message) messageResp {
	r := messageResp{
		ID:        m.MessageID,
		Role:      m.Role,
		Timestamp: m.CreatedAt.Local().Format(wireTimestamp),
	}
	if m.Text != "" || m.Role == RoleUser {
		text := m.Text
		r.Text = &text
	}
	if m.FileURL != "" {
		url := m.FileURL
		r.FileURL = &url
	}
	return r
}
