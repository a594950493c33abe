package kv_test

import (
	"context"
	"errors"
	"testing"

	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/dynamodb/kv"
	"philcali.me/forkify/internal/exceptions"
	"philcali.me/forkify/internal/test"
)

func TestKeyValueService(t *testing.T) {
	server := test.StartLocalServer(test.LOCAL_DDB_PORT, t)
	client, err := server.CreateLocalClient()
	if err != nil {
		t.Fatalf("Failed to create local client: %s", err)
	}
	tableName, err := test.CreateTable(client)
	if err != nil {
		t.Fatalf("Failed to create table: %s", err)
	}
	service := kv.NewKeyValueService(tableName, "forkify", client)
	ctx := context.Background()

	t.Run("Get(missing)=>NotFound", func(t *testing.T) {
		_, err := service.Get(ctx, data.BOOKMARKS_KEY)
		var nfe *exceptions.NotFoundError
		if !errors.As(err, &nfe) {
			t.Fatalf("Expected NotFoundError, got %v", err)
		}
	})

	t.Run("Put=>Get", func(t *testing.T) {
		if err := service.Put(ctx, data.BOOKMARKS_KEY, []byte(`[{"id":"pizza-01"}]`)); err != nil {
			t.Fatalf("Failed to put bookmarks: %s", err)
		}
		value, err := service.Get(ctx, data.BOOKMARKS_KEY)
		if err != nil {
			t.Fatalf("Failed to get bookmarks: %s", err)
		}
		if string(value) != `[{"id":"pizza-01"}]` {
			t.Fatalf("Unexpected value %q", value)
		}
	})

	t.Run("Namespace isolation", func(t *testing.T) {
		other := kv.NewKeyValueService(tableName, "other", client)
		if _, err := other.Get(ctx, data.BOOKMARKS_KEY); err == nil {
			t.Fatal("Expected another namespace to miss the key")
		}
	})
}
