package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/biosearch/internal/db"
)

func newMockStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	c := mock.NewClient(gomock.NewController(t))
	return NewStoreForTest(c), c
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}

// --- connection ---

func TestNewStore_NoAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		result  rueidis.RedisResult
		wantErr bool
	}{
		{"pong", mock.Result(mock.RedisString("PONG")), false},
		{"timeout", mock.ErrorResult(context.DeadlineExceeded), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("PING")).Return(tt.result)

			if err := s.Ping(context.Background()); (err != nil) != tt.wantErr {
				t.Fatalf("Ping error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWaitForReady_RecoversAfterFailures(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
			Return(mock.ErrorResult(errors.New("LOADING Redis is loading the dataset in memory"))).
			Times(2),
		c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
			Return(mock.Result(mock.RedisString("PONG"))),
	)

	if err := s.WaitForReady(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("connection refused"))).
		AnyTimes()

	err := s.WaitForReady(context.Background(), 250*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

// --- hashes ---

func TestReplaceHash_RunsInTransaction(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().DoMulti(gomock.Any(),
		mock.Match("MULTI"),
		mock.Match("DEL", "biosearch:blob:images:a.jpg"),
		mock.Match("HSET", "biosearch:blob:images:a.jpg", "content_type", "image/jpeg"),
		mock.Match("EXEC"),
	).Return([]rueidis.RedisResult{
		mock.Result(mock.RedisString("OK")),
		mock.Result(mock.RedisString("QUEUED")),
		mock.Result(mock.RedisString("QUEUED")),
		mock.Result(mock.RedisArray(mock.RedisInt64(1), mock.RedisInt64(1))),
	})

	err := s.ReplaceHash(context.Background(), "biosearch:blob:images:a.jpg",
		map[string]string{"content_type": "image/jpeg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReplaceHash_ExecError(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().DoMulti(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.Result(mock.RedisString("QUEUED")),
			mock.Result(mock.RedisString("QUEUED")),
			mock.ErrorResult(errors.New("EXECABORT")),
		})

	err := s.ReplaceHash(context.Background(), "k", map[string]string{"f": "v"})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestReplaceHash_NoFields(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	if err := s.ReplaceHash(context.Background(), "k", nil); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestHGetAll(t *testing.T) {
	tests := []struct {
		name         string
		result       rueidis.RedisResult
		wantFields   int
		wantNotFound bool
		wantDBError  bool
	}{
		{
			name: "found",
			result: mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"content_type": mock.RedisString("text/plain"),
				"data":         mock.RedisString("hello"),
			})),
			wantFields: 2,
		},
		{
			name:         "empty hash is missing",
			result:       mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})),
			wantNotFound: true,
		},
		{
			name:         "nil reply is missing",
			result:       mock.Result(mock.RedisNil()),
			wantNotFound: true,
		},
		{
			name:        "network error",
			result:      mock.ErrorResult(context.DeadlineExceeded),
			wantDBError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("HGETALL", "k")).Return(tt.result)

			m, err := s.HGetAll(context.Background(), "k")
			if got := errors.Is(err, db.ErrKeyNotFound); got != tt.wantNotFound {
				t.Errorf("ErrKeyNotFound = %v, want %v (err %v)", got, tt.wantNotFound, err)
			}
			if got := isDBError(err); got != tt.wantDBError {
				t.Errorf("db.Error = %v, want %v (err %v)", got, tt.wantDBError, err)
			}
			if len(m) != tt.wantFields {
				t.Errorf("fields = %v, want %d", m, tt.wantFields)
			}
		})
	}
}

func TestDel(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().Do(gomock.Any(), mock.Match("DEL", "present")).Return(mock.Result(mock.RedisInt64(1))),
		c.EXPECT().Do(gomock.Any(), mock.Match("DEL", "absent")).Return(mock.Result(mock.RedisInt64(0))),
		c.EXPECT().Do(gomock.Any(), mock.Match("DEL", "down")).Return(mock.ErrorResult(context.Canceled)),
	)

	ctx := context.Background()
	if err := s.Del(ctx, "present"); err != nil {
		t.Errorf("present: %v", err)
	}
	if err := s.Del(ctx, "absent"); err != nil {
		t.Errorf("absent key must not fail: %v", err)
	}
	if err := s.Del(ctx, "down"); !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

func TestScan_FollowsCursor(t *testing.T) {
	s, c := newMockStore(t)
	var cursors []string
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "SCAN" })).
		DoAndReturn(func(_ context.Context, cmd rueidis.Completed) rueidis.RedisResult {
			cursor := cmd.Commands()[1]
			cursors = append(cursors, cursor)
			if cursor == "0" {
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(42),
					mock.RedisArray(mock.RedisString("biosearch:blob:images:a.jpg")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0),
				mock.RedisArray(mock.RedisString("biosearch:blob:images:b.jpg")),
			))
		}).Times(2)

	keys, err := s.Scan(context.Background(), "biosearch:blob:images:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
	if len(cursors) != 2 || cursors[1] != "42" {
		t.Errorf("cursors = %v, want [0 42]", cursors)
	}
}

func TestScan_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().Do(gomock.Any(), gomock.Any()).Return(mock.ErrorResult(context.DeadlineExceeded))

	if _, err := s.Scan(context.Background(), "*"); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- plain values ---

func TestGet(t *testing.T) {
	tests := []struct {
		name         string
		result       rueidis.RedisResult
		want         string
		wantNotFound bool
		wantDBError  bool
	}{
		{"hit", mock.Result(mock.RedisBlobString(`{"tags":[]}`)), `{"tags":[]}`, false, false},
		{"miss", mock.Result(mock.RedisNil()), "", true, false},
		{"error", mock.ErrorResult(context.DeadlineExceeded), "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newMockStore(t)
			c.EXPECT().Do(gomock.Any(), mock.Match("GET", "k")).Return(tt.result)

			data, err := s.Get(context.Background(), "k")
			if string(data) != tt.want {
				t.Errorf("data = %q, want %q", data, tt.want)
			}
			if got := errors.Is(err, db.ErrKeyNotFound); got != tt.wantNotFound {
				t.Errorf("ErrKeyNotFound = %v, want %v", got, tt.wantNotFound)
			}
			if got := isDBError(err); got != tt.wantDBError {
				t.Errorf("db.Error = %v, want %v", got, tt.wantDBError)
			}
		})
	}
}

func TestSetWithTTL(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().Do(gomock.Any(), mock.Match("SET", "k", "v", "EX", "300")).
			Return(mock.Result(mock.RedisString("OK"))),
		c.EXPECT().Do(gomock.Any(), gomock.Any()).
			Return(mock.ErrorResult(errors.New("OOM command not allowed"))),
	)

	if err := s.SetWithTTL(context.Background(), "k", []byte("v"), 5*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetWithTTL(context.Background(), "k", []byte("v"), 5*time.Minute); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}
