package stubserver

import (
	"context"
	"testing"
)

func TestOpen_MemoryDatabaseKeepsHistory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	repo := NewRepo(db)
	ctx := context.Background()

	for _, text := range []string{"one", "two"} {
		if err := repo.InsertMessage(ctx, &Message{MessageID: text, UserID: "u", Role: RoleUser, Text: text}); err != nil {
			t.Fatal(err)
		}
	}
	msgs, err := repo.History(ctx, "u")
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 || msgs[0].Text != "one" {
		t.Errorf("history = %+v", msgs)
	}
}
